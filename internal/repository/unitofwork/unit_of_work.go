package unitofwork

import (
	"context"

	"nihongo-tutor-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	ChatSessionRepository() contract.ChatSessionRepository
	ChatMessageRepository() contract.ChatMessageRepository
	TaskContextRepository() contract.TaskContextRepository
	ContentChunkRepository() contract.ContentChunkRepository
}
