package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatMessage struct {
	Id          uuid.UUID
	Text        string
	Sender      string
	Timestamp   time.Time
	Suggestions []string
}

func (m ChatMessage) clone() ChatMessage {
	if m.Suggestions != nil {
		m.Suggestions = append([]string(nil), m.Suggestions...)
	}
	return m
}
