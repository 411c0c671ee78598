package mapper

import (
	"nihongo-tutor-be/internal/entity"
	"nihongo-tutor-be/internal/model"
)

type ContentChunkMapper struct{}

func NewContentChunkMapper() *ContentChunkMapper {
	return &ContentChunkMapper{}
}

func (m *ContentChunkMapper) ToEntity(c *model.ContentChunk) *entity.ContentChunk {
	if c == nil {
		return nil
	}
	return &entity.ContentChunk{
		Id:         c.Id,
		MaterialId: c.MaterialId,
		ChunkText:  c.ChunkText,
		Level:      c.Level,
		SkillType:  c.SkillType,
		Metadata:   map[string]any(c.Metadata),
	}
}

func (m *ContentChunkMapper) ToEntities(models []*model.ContentChunk) []*entity.ContentChunk {
	entities := make([]*entity.ContentChunk, len(models))
	for i, c := range models {
		entities[i] = m.ToEntity(c)
	}
	return entities
}
