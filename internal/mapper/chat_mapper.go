package mapper

import (
	"linen-chatbot-be/internal/dto"
	"linen-chatbot-be/internal/entity"
	"linen-chatbot-be/internal/model"

	"gorm.io/datatypes"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

// Session Mappers

func (m *ChatMapper) ChatSessionToResponse(s *entity.ChatSession) *dto.ChatSessionResponse {
	if s == nil {
		return nil
	}

	messages := make([]dto.ChatMessageResponse, 0, len(s.Messages))
	for i := range s.Messages {
		messages = append(messages, *m.ChatMessageToResponse(&s.Messages[i]))
	}

	return &dto.ChatSessionResponse{
		Id:        s.Id,
		State:     s.State,
		Messages:  messages,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func (m *ChatMapper) ChatMessageToResponse(msg *entity.ChatMessage) *dto.ChatMessageResponse {
	if msg == nil {
		return nil
	}
	return &dto.ChatMessageResponse{
		Id:          msg.Id,
		Text:        msg.Text,
		Sender:      msg.Sender,
		Timestamp:   msg.Timestamp,
		Suggestions: msg.Suggestions,
	}
}

// Interaction Mappers

func (m *ChatMapper) ChatInteractionToModel(i *entity.ChatInteraction) *model.ChatInteraction {
	if i == nil {
		return nil
	}
	return &model.ChatInteraction{
		Id:        i.Id,
		SessionId: i.SessionId,
		Query:     i.Query,
		Tokens:    datatypes.JSONSlice[string](i.Tokens),
		Outcome:   i.Outcome,
		FaqId:     i.FaqId,
		Score:     i.Score,
		CreatedAt: i.CreatedAt,
	}
}

func (m *ChatMapper) ChatInteractionToEntity(i *model.ChatInteraction) *entity.ChatInteraction {
	if i == nil {
		return nil
	}
	return &entity.ChatInteraction{
		Id:        i.Id,
		SessionId: i.SessionId,
		Query:     i.Query,
		Tokens:    []string(i.Tokens),
		Outcome:   i.Outcome,
		FaqId:     i.FaqId,
		Score:     i.Score,
		CreatedAt: i.CreatedAt,
	}
}

func (m *ChatMapper) ChatInteractionsToEntities(models []*model.ChatInteraction) []*entity.ChatInteraction {
	out := make([]*entity.ChatInteraction, 0, len(models))
	for _, i := range models {
		out = append(out, m.ChatInteractionToEntity(i))
	}
	return out
}

func (m *ChatMapper) ChatInteractionToResponse(i *entity.ChatInteraction) dto.InteractionResponse {
	tokens := i.Tokens
	if tokens == nil {
		tokens = []string{}
	}
	return dto.InteractionResponse{
		Id:        i.Id,
		SessionId: i.SessionId,
		Query:     i.Query,
		Tokens:    tokens,
		Outcome:   i.Outcome,
		FaqId:     i.FaqId,
		Score:     i.Score,
		CreatedAt: i.CreatedAt,
	}
}
