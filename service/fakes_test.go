package service

import (
	"context"
	"errors"

	"github.com/tieubaoca/docqa-be/types"
)

// fakeStore is an in-memory VectorDatabase double. Per-source results are
// returned as configured regardless of k so tests control pool sizes exactly.
type fakeStore struct {
	sources     []string
	listErr     error
	bySource    map[string][]types.RetrievedDocument
	failSources map[string]bool
	broad       []types.RetrievedDocument
	broadErr    error
	filteredErr error

	added  [][]types.DocumentChunk
	addErr error

	searchCalls []searchCall
}

type searchCall struct {
	query  string
	k      int
	filter map[string]string
}

func (f *fakeStore) AddDocuments(ctx context.Context, docs []types.DocumentChunk) (int, error) {
	if f.addErr != nil {
		return 0, f.addErr
	}
	f.added = append(f.added, docs)
	return len(docs), nil
}

func (f *fakeStore) SimilaritySearchWithScore(ctx context.Context, query string, k int, filter map[string]string) ([]types.RetrievedDocument, error) {
	f.searchCalls = append(f.searchCalls, searchCall{query: query, k: k, filter: filter})
	if len(filter) == 0 {
		if f.broadErr != nil {
			return nil, f.broadErr
		}
		return f.broad, nil
	}
	if f.filteredErr != nil {
		return nil, f.filteredErr
	}
	source := filter["source"]
	if f.failSources[source] {
		return nil, errors.New("search exploded")
	}
	return f.bySource[source], nil
}

func (f *fakeStore) ListMetadataValues(ctx context.Context, key string) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.sources, nil
}

type fakeAI struct {
	response string
	err      error
	prompts  []string
	opts     []types.GenerateOptions
}

func (f *fakeAI) Generate(ctx context.Context, prompt string, opts types.GenerateOptions) (string, error) {
	f.prompts = append(f.prompts, prompt)
	f.opts = append(f.opts, opts)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

type fakeQueryLog struct {
	entries []*types.QueryLogEntry
	err     error
}

func (f *fakeQueryLog) AppendQueryLog(ctx context.Context, entry *types.QueryLogEntry) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeQueryLog) ListQueryLog(ctx context.Context, page, limit int64) ([]*types.QueryLogEntry, error) {
	return f.entries, nil
}

func retrievedDoc(source string, chunk int, content string, score float64) types.RetrievedDocument {
	return types.RetrievedDocument{
		DocumentChunk: types.DocumentChunk{
			Content: content,
			Metadata: types.Metadata{
				Source: source,
				Chunk:  chunk,
			},
		},
		SimilarityScore: score,
	}
}
