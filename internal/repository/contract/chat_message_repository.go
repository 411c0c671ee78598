package contract

import (
	"context"

	"nihongo-tutor-be/internal/entity"
	"nihongo-tutor-be/internal/repository/specification"
)

type ChatMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error
	DeleteByIds(ctx context.Context, ids []int64) error
	// MaxOrder returns 0 for a session with no messages.
	MaxOrder(ctx context.Context, sessionId int64) (int, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
