package dto

import (
	"time"

	"github.com/google/uuid"
)

type ChatMessageResponse struct {
	Id          uuid.UUID `json:"id"`
	Text        string    `json:"text"`
	Sender      string    `json:"sender"`
	Timestamp   time.Time `json:"timestamp"`
	Suggestions []string  `json:"suggestions,omitempty"`
}

type ChatSessionResponse struct {
	Id        uuid.UUID             `json:"id"`
	State     string                `json:"state"`
	Messages  []ChatMessageResponse `json:"messages"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
}

type SendMessageRequest struct {
	Text string `json:"text" validate:"required,max=1000"`
}

type SendMessageResponse struct {
	SessionId uuid.UUID            `json:"session_id"`
	Sent      *ChatMessageResponse `json:"sent"`
	Reply     *ChatMessageResponse `json:"reply"`
	Source    string               `json:"source"`
	FaqId     string               `json:"faq_id,omitempty"`
	Score     int                  `json:"score,omitempty"`
}

type AskRequest struct {
	Query string `json:"query" validate:"required,max=1000"`
}

type AskResponse struct {
	Answer      string   `json:"answer"`
	Suggestions []string `json:"suggestions"`
	Topic       string   `json:"topic"`
	Source      string   `json:"source"`
	FaqId       string   `json:"faq_id,omitempty"`
	Score       int      `json:"score,omitempty"`
}

type FAQResponse struct {
	Id       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Category string `json:"category"`
}

type FAQCategoriesResponse struct {
	Categories []string `json:"categories"`
}

type QuickQuestionsResponse struct {
	Questions []string `json:"questions"`
}

type EscalateRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"max=2000"`
}

type EscalateResponse struct {
	TicketId uuid.UUID `json:"ticket_id"`
	Channel  string    `json:"channel"`
}

// ChatInteractionMessage is the in-process event emitted for every bot reply.
type ChatInteractionMessage struct {
	SessionId  string    `json:"session_id"`
	Query      string    `json:"query"`
	Tokens     []string  `json:"tokens"`
	Outcome    string    `json:"outcome"`
	FaqId      string    `json:"faq_id"`
	Score      int       `json:"score"`
	OccurredAt time.Time `json:"occurred_at"`
}

// WebSocket frames.

type ChatSocketRequest struct {
	Text string `json:"text"`
}

type ChatSocketFrame struct {
	Type    string               `json:"type"`
	Data    *SendMessageResponse `json:"data,omitempty"`
	Message string               `json:"message,omitempty"`
}
