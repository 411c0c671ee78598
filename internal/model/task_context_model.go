package model

import (
	"time"

	"gorm.io/datatypes"
)

type TaskContext struct {
	Id        int64             `gorm:"primaryKey;autoIncrement"`
	SessionId int64             `gorm:"not null;uniqueIndex:idx_session_task"`
	TaskName  string            `gorm:"type:text;not null;uniqueIndex:idx_session_task"`
	Status    string            `gorm:"type:text;not null"`
	Payload   datatypes.JSONMap `gorm:"type:jsonb"`
	UpdatedAt time.Time         `gorm:"autoUpdateTime"`
}

func (TaskContext) TableName() string {
	return "task_contexts"
}
