package service

import (
	"context"
	"encoding/json"

	"linen-chatbot-be/internal/dto"
	"linen-chatbot-be/internal/entity"
	"linen-chatbot-be/internal/pkg/logger"
	"linen-chatbot-be/internal/repository/contract"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService writes chat interaction events to the interaction log.
type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	repo      contract.ChatInteractionRepository
	logger    logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	repo contract.ChatInteractionRepository,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		repo:      repo,
		logger:    log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.ChatInteractionMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("CONSUMER", "Failed to unmarshal interaction", map[string]interface{}{"error": err.Error()})
		msg.Ack() // redelivery cannot fix a bad payload
		return
	}

	interaction := &entity.ChatInteraction{
		Id:        uuid.New(),
		SessionId: payload.SessionId,
		Query:     payload.Query,
		Tokens:    payload.Tokens,
		Outcome:   payload.Outcome,
		FaqId:     payload.FaqId,
		Score:     payload.Score,
		CreatedAt: payload.OccurredAt,
	}

	if err := cs.repo.Create(ctx, interaction); err != nil {
		cs.logger.Error("CONSUMER", "Failed to store interaction", map[string]interface{}{"error": err.Error(), "outcome": payload.Outcome})
		msg.Nack()
		return
	}

	cs.logger.Debug("CONSUMER", "Interaction stored", map[string]interface{}{"outcome": payload.Outcome, "faq_id": payload.FaqId})
	msg.Ack()
}
