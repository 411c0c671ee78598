package contract

import (
	"context"
	"time"

	"nihongo-tutor-be/internal/entity"
	"nihongo-tutor-be/internal/repository/specification"
)

type ChatSessionRepository interface {
	Create(ctx context.Context, session *entity.ChatSession) error
	Delete(ctx context.Context, id int64) error
	Rename(ctx context.Context, id int64, newName string) error
	// Touch sets updated_at explicitly; rewind moves it backwards so
	// gorm's autoUpdateTime is bypassed on purpose.
	Touch(ctx context.Context, id int64, at time.Time) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
