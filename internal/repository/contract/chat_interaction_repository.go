package contract

import (
	"context"

	"linen-chatbot-be/internal/entity"
	"linen-chatbot-be/internal/repository/specification"
)

type ChatInteractionRepository interface {
	Create(ctx context.Context, interaction *entity.ChatInteraction) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatInteraction, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	CountByOutcome(ctx context.Context) ([]entity.OutcomeCount, error)
}
