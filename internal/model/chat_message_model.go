package model

import "time"

type ChatMessage struct {
	Id           int64     `gorm:"primaryKey;autoIncrement"`
	SessionId    int64     `gorm:"not null;index;uniqueIndex:idx_session_order"`
	Role         string    `gorm:"type:text;not null"` // human | assistant
	Content      string    `gorm:"type:text;not null"`
	MessageOrder int       `gorm:"not null;uniqueIndex:idx_session_order"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
