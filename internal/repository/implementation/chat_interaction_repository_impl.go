package implementation

import (
	"context"

	"linen-chatbot-be/internal/entity"
	"linen-chatbot-be/internal/mapper"
	"linen-chatbot-be/internal/model"
	"linen-chatbot-be/internal/repository/contract"
	"linen-chatbot-be/internal/repository/specification"

	"gorm.io/gorm"
)

type ChatInteractionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewChatInteractionRepository(db *gorm.DB) contract.ChatInteractionRepository {
	return &ChatInteractionRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *ChatInteractionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ChatInteractionRepositoryImpl) Create(ctx context.Context, interaction *entity.ChatInteraction) error {
	m := r.mapper.ChatInteractionToModel(interaction)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*interaction = *r.mapper.ChatInteractionToEntity(m)
	return nil
}

func (r *ChatInteractionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatInteraction, error) {
	var models []*model.ChatInteraction
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ChatInteractionsToEntities(models), nil
}

func (r *ChatInteractionRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ChatInteraction{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ChatInteractionRepositoryImpl) CountByOutcome(ctx context.Context) ([]entity.OutcomeCount, error) {
	var rows []entity.OutcomeCount
	err := r.db.WithContext(ctx).
		Model(&model.ChatInteraction{}).
		Select("outcome, COUNT(*) AS count").
		Group("outcome").
		Order("count DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
