package contract

import (
	"context"

	"nihongo-tutor-be/internal/entity"
)

type UserRepository interface {
	// Upsert creates the user row if absent; a duplicate is a no-op success.
	Upsert(ctx context.Context, user *entity.User) error
	FindById(ctx context.Context, id string) (*entity.User, error)
	Count(ctx context.Context) (int64, error)
}
