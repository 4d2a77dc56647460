package service

import (
	"context"

	"github.com/tieubaoca/docqa-be/types"
)

// AIService is the language model behind answer generation. Single-turn, no
// streaming.
type AIService interface {
	Generate(ctx context.Context, prompt string, opts types.GenerateOptions) (string, error)
}

// EmbeddingService exposes the embedding model directly. The vector store
// embeds on its own during search and ingestion; this is only used for
// diagnostics.
type EmbeddingService interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
