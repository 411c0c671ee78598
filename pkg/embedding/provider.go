package embedding

import "context"

// EmbeddingProvider turns text into a dense vector for pgvector search.
// Only the retrieval agents consume this; the session core never does.
type EmbeddingProvider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
