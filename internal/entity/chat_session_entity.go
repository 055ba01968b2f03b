package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatSession struct {
	Id        uuid.UUID
	State     string
	Messages  []ChatMessage
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Clone copies the message list so callers never share it with the store.
func (s *ChatSession) Clone() *ChatSession {
	c := *s
	c.Messages = make([]ChatMessage, len(s.Messages))
	for i, m := range s.Messages {
		c.Messages[i] = m.clone()
	}
	return &c
}

func (s *ChatSession) Append(m ChatMessage) {
	s.Messages = append(s.Messages, m)
	s.UpdatedAt = m.Timestamp
}
