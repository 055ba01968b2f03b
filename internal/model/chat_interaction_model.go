package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ChatInteraction is one answered user message, kept for corpus-gap analysis.
type ChatInteraction struct {
	Id        uuid.UUID                   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId string                      `gorm:"type:varchar(36);index"`
	Query     string                      `gorm:"type:text;not null"`
	Tokens    datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	Outcome   string                      `gorm:"type:varchar(20);not null;index"`
	FaqId     string                      `gorm:"type:varchar(50);index"`
	Score     int                         `gorm:"not null;default:0"`
	CreatedAt time.Time                   `gorm:"autoCreateTime;index"`
}

func (ChatInteraction) TableName() string {
	return "chat_interactions"
}
