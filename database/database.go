package database

import (
	"context"

	"github.com/tieubaoca/docqa-be/types"
)

// VectorDatabase defines the store operations the retrieval pipeline needs.
// Implementations are injected so tests can substitute doubles.
type VectorDatabase interface {
	// AddDocuments writes chunks in batches and returns how many were inserted.
	// Batches are atomic individually, not across the whole call: a failing
	// batch aborts the ingestion but earlier batches stay written.
	AddDocuments(ctx context.Context, docs []types.DocumentChunk) (int, error)

	// SimilaritySearchWithScore runs one vector search and returns chunks with
	// the store's similarity score, ranked descending. A nil or empty filter
	// searches the whole class; filter keys "source", "chunk" and "chunkCount"
	// match the recognized properties, anything else matches custom metadata.
	SimilaritySearchWithScore(ctx context.Context, query string, k int, filter map[string]string) ([]types.RetrievedDocument, error)

	// ListMetadataValues returns the distinct values of a metadata property
	// across all stored chunks.
	ListMetadataValues(ctx context.Context, key string) ([]string, error)
}
