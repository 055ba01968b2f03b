package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatInteraction struct {
	Id        uuid.UUID
	SessionId string
	Query     string
	Tokens    []string
	Outcome   string
	FaqId     string
	Score     int
	CreatedAt time.Time
}

type OutcomeCount struct {
	Outcome string
	Count   int64
}
