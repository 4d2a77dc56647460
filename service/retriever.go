package service

import (
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/tieubaoca/docqa-be/database"
	"github.com/tieubaoca/docqa-be/types"
)

// Retriever runs similarity searches against the vector store. With a filter
// it issues a single search; without one it fans out one search per known
// source and re-ranks the merged pool client-side. Weaviate's query layer
// behaves inconsistently on broad unfiltered queries, spreading the search
// across known partitions keeps an approximate top-k-by-similarity semantics.
type Retriever struct {
	store   database.VectorDatabase
	sources *SourceService
}

func NewRetriever(store database.VectorDatabase, sources *SourceService) *Retriever {
	return &Retriever{
		store:   store,
		sources: sources,
	}
}

// Retrieve returns at most k documents sorted descending by similarity score.
// An empty result is not an error, it is a valid "no relevant documents".
func (r *Retriever) Retrieve(ctx context.Context, query string, k int, filter map[string]string) ([]types.RetrievedDocument, error) {
	if len(filter) > 0 {
		docs, err := r.store.SimilaritySearchWithScore(ctx, query, k, filter)
		if err != nil {
			return nil, fmt.Errorf("%w: filtered search: %v", types.ErrStoreRead, err)
		}
		return docs, nil
	}
	return r.retrieveFederated(ctx, query, k), nil
}

func (r *Retriever) retrieveFederated(ctx context.Context, query string, k int) []types.RetrievedDocument {
	sources := r.sources.ListSources(ctx)

	perSource := 1
	if len(sources) > 0 && k/len(sources) > 1 {
		perSource = k / len(sources)
	}

	var pool []types.RetrievedDocument
	for _, source := range sources {
		docs, err := r.store.SimilaritySearchWithScore(ctx, query, perSource, map[string]string{"source": source})
		if err != nil {
			// one bad source must not abort retrieval for the others
			log.Printf("Search failed for source %q, skipping: %v", source, err)
			continue
		}
		pool = append(pool, docs...)
	}

	if len(pool) == 0 {
		// last resort: one broad unfiltered search
		docs, err := r.store.SimilaritySearchWithScore(ctx, query, k, nil)
		if err != nil {
			log.Printf("Broad fallback search failed: %v", err)
			return nil
		}
		pool = docs
	}

	// stable sort keeps discovery order for equal scores
	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].SimilarityScore > pool[j].SimilarityScore
	})
	if len(pool) > k {
		pool = pool[:k]
	}
	return pool
}
