package implementation

import (
	"context"

	"nihongo-tutor-be/internal/entity"
	"nihongo-tutor-be/internal/mapper"
	"nihongo-tutor-be/internal/model"
	"nihongo-tutor-be/internal/repository/contract"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ContentChunkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ContentChunkMapper
}

func NewContentChunkRepository(db *gorm.DB) contract.ContentChunkRepository {
	return &ContentChunkRepositoryImpl{
		db:     db,
		mapper: mapper.NewContentChunkMapper(),
	}
}

// permitted filter columns; caller keys outside this set are dropped
var chunkFilterColumns = map[string]string{
	"material_id": "material_id",
	"level":       "level",
	"skill_type":  "skill_type",
}

func (r *ContentChunkRepositoryImpl) Search(ctx context.Context, embedding []float32, topK int, filters map[string]string) ([]*entity.ContentChunk, error) {
	query := r.db.WithContext(ctx).Model(&model.ContentChunk{})
	for key, value := range filters {
		column, ok := chunkFilterColumns[key]
		if !ok {
			continue
		}
		query = query.Where(column+" = ?", value)
	}

	var models []*model.ContentChunk
	err := query.
		Clauses(clause.OrderBy{Expression: clause.Expr{
			SQL:  "embedding <=> ?",
			Vars: []interface{}{pgvector.NewVector(embedding)},
		}}).
		Limit(topK).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ContentChunkRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.ContentChunk{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
