package implementation

import (
	"context"
	"errors"

	"nihongo-tutor-be/internal/entity"
	"nihongo-tutor-be/internal/mapper"
	"nihongo-tutor-be/internal/model"
	"nihongo-tutor-be/internal/repository/contract"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TaskContextRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TaskContextMapper
}

func NewTaskContextRepository(db *gorm.DB) contract.TaskContextRepository {
	return &TaskContextRepositoryImpl{
		db:     db,
		mapper: mapper.NewTaskContextMapper(),
	}
}

func (r *TaskContextRepositoryImpl) Upsert(ctx context.Context, taskContext *entity.TaskContext) error {
	m := r.mapper.ToModel(taskContext)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}, {Name: "task_name"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "payload", "updated_at"}),
		}).
		Create(m).Error
}

func (r *TaskContextRepositoryImpl) Find(ctx context.Context, sessionId int64, taskName string) (*entity.TaskContext, error) {
	var m model.TaskContext
	err := r.db.WithContext(ctx).
		Where("session_id = ? AND task_name = ?", sessionId, taskName).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *TaskContextRepositoryImpl) Clear(ctx context.Context, sessionId int64, taskName string) error {
	return r.db.WithContext(ctx).
		Where("session_id = ? AND task_name = ?", sessionId, taskName).
		Delete(&model.TaskContext{}).Error
}
