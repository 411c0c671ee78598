package model

import (
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type ContentChunk struct {
	Id         int64             `gorm:"primaryKey;autoIncrement"`
	MaterialId string            `gorm:"type:text;index"`
	ChunkText  string            `gorm:"type:text;not null"`
	Level      string            `gorm:"type:text;index"`
	SkillType  string            `gorm:"type:text"`
	Metadata   datatypes.JSONMap `gorm:"type:jsonb"`
	Embedding  pgvector.Vector   `gorm:"type:vector(768)"` // nomic-embed-text dimensions
}

func (ContentChunk) TableName() string {
	return "content_chunks"
}
