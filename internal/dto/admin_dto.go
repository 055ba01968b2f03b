package dto

import (
	"time"

	"github.com/google/uuid"
)

type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AdminLoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type InteractionListRequest struct {
	Outcome string `query:"outcome"`
	Limit   int    `query:"limit"`
	Offset  int    `query:"offset"`
}

type InteractionResponse struct {
	Id        uuid.UUID `json:"id"`
	SessionId string    `json:"session_id,omitempty"`
	Query     string    `json:"query"`
	Tokens    []string  `json:"tokens"`
	Outcome   string    `json:"outcome"`
	FaqId     string    `json:"faq_id,omitempty"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

type InteractionListResponse struct {
	Items []InteractionResponse `json:"items"`
	Total int64                 `json:"total"`
}

type OutcomeCountResponse struct {
	Outcome string `json:"outcome"`
	Count   int64  `json:"count"`
}

type TopQuestionResponse struct {
	FaqId    string `json:"faq_id"`
	Question string `json:"question"`
	Category string `json:"category"`
	Hits     int64  `json:"hits"`
}
