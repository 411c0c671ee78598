package contract

import (
	"context"

	"nihongo-tutor-be/internal/entity"
)

// ContentChunkRepository is the retrieval-side corpus access used by the
// RAG agents. Search delegates ranking to pgvector's cosine operator.
type ContentChunkRepository interface {
	Search(ctx context.Context, embedding []float32, topK int, filters map[string]string) ([]*entity.ContentChunk, error)
	Count(ctx context.Context) (int64, error)
}
