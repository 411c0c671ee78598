package model

import (
	"time"

	"gorm.io/datatypes"
)

type ChatSession struct {
	Id          int64             `gorm:"primaryKey;autoIncrement"`
	UserId      string            `gorm:"type:text;not null;index"` // User ownership for data isolation
	Name        string            `gorm:"type:text;not null"`
	SessionType string            `gorm:"type:text;not null;default:'GENERAL';index"`
	Context     datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt   time.Time         `gorm:"autoCreateTime"`
	// Bumped manually on append/rewind so rewind can move it backwards;
	// autoUpdateTime would overwrite the reset.
	UpdatedAt time.Time

	// Association fields are what makes AutoMigrate emit the FK
	// constraints; both child tables must drop with the session.
	Messages     []ChatMessage `gorm:"foreignKey:SessionId;constraint:OnDelete:CASCADE"`
	TaskContexts []TaskContext `gorm:"foreignKey:SessionId;constraint:OnDelete:CASCADE"`
}

func (ChatSession) TableName() string {
	return "chat_sessions"
}
