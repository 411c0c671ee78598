package contract

import (
	"context"

	"nihongo-tutor-be/internal/entity"
)

type TaskContextRepository interface {
	// Upsert inserts or replaces on the (session_id, task_name) key.
	Upsert(ctx context.Context, taskContext *entity.TaskContext) error
	Find(ctx context.Context, sessionId int64, taskName string) (*entity.TaskContext, error)
	Clear(ctx context.Context, sessionId int64, taskName string) error
}
