package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tieubaoca/docqa-be/types"
)

func newTestRetriever(store *fakeStore) *Retriever {
	return NewRetriever(store, NewSourceService(store, []string{"manual"}))
}

func TestRetrieveFederatedMergesAndRanks(t *testing.T) {
	store := &fakeStore{
		sources: []string{"A", "B"},
		bySource: map[string][]types.RetrievedDocument{
			"A": {
				retrievedDoc("A", 0, "a1", 0.9),
				retrievedDoc("A", 1, "a2", 0.4),
			},
			"B": {
				retrievedDoc("B", 0, "b1", 0.7),
				retrievedDoc("B", 1, "b2", 0.2),
			},
		},
	}
	docs, err := newTestRetriever(store).Retrieve(context.Background(), "q", 3, nil)
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, "a1", docs[0].Content)
	assert.Equal(t, "b1", docs[1].Content)
	assert.Equal(t, "a2", docs[2].Content)
}

func TestRetrieveFederatedSkipsFailingSource(t *testing.T) {
	store := &fakeStore{
		sources: []string{"A", "B"},
		bySource: map[string][]types.RetrievedDocument{
			"B": {retrievedDoc("B", 0, "b1", 0.7)},
		},
		failSources: map[string]bool{"A": true},
	}
	docs, err := newTestRetriever(store).Retrieve(context.Background(), "q", 4, nil)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "B", docs[0].Metadata.Source)
}

func TestRetrieveFederatedEqualScoresKeepDiscoveryOrder(t *testing.T) {
	store := &fakeStore{
		sources: []string{"A", "B"},
		bySource: map[string][]types.RetrievedDocument{
			"A": {retrievedDoc("A", 0, "a", 0.5)},
			"B": {retrievedDoc("B", 0, "b", 0.5)},
		},
	}
	docs, err := newTestRetriever(store).Retrieve(context.Background(), "q", 2, nil)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a", docs[0].Content)
	assert.Equal(t, "b", docs[1].Content)
}

func TestRetrieveFederatedPerSourceK(t *testing.T) {
	store := &fakeStore{sources: []string{"A", "B"}}
	_, err := newTestRetriever(store).Retrieve(context.Background(), "q", 8, nil)
	require.NoError(t, err)

	// two per-source searches ask for floor(8/2) each, then an empty pool
	// triggers the broad fallback
	require.Len(t, store.searchCalls, 3)
	assert.Equal(t, 4, store.searchCalls[0].k)
	assert.Equal(t, map[string]string{"source": "A"}, store.searchCalls[0].filter)
	assert.Equal(t, 4, store.searchCalls[1].k)
	assert.Equal(t, map[string]string{"source": "B"}, store.searchCalls[1].filter)
	assert.Empty(t, store.searchCalls[2].filter)
}

func TestRetrieveFederatedBroadFallback(t *testing.T) {
	store := &fakeStore{
		sources:     []string{"A"},
		failSources: map[string]bool{"A": true},
		broad:       []types.RetrievedDocument{retrievedDoc("A", 0, "found broadly", 0.6)},
	}
	docs, err := newTestRetriever(store).Retrieve(context.Background(), "q", 4, nil)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "found broadly", docs[0].Content)
}

func TestRetrieveFederatedNothingFound(t *testing.T) {
	store := &fakeStore{
		sources:     []string{"A"},
		failSources: map[string]bool{"A": true},
		broadErr:    errors.New("store down"),
	}
	docs, err := newTestRetriever(store).Retrieve(context.Background(), "q", 4, nil)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestRetrieveFederatedUsesFallbackSourcesOnDiscoveryError(t *testing.T) {
	store := &fakeStore{
		listErr: errors.New("aggregate failed"),
		bySource: map[string][]types.RetrievedDocument{
			"manual": {retrievedDoc("manual", 0, "m1", 0.8)},
		},
	}
	docs, err := newTestRetriever(store).Retrieve(context.Background(), "q", 4, nil)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "manual", docs[0].Metadata.Source)
}

func TestRetrieveFiltered(t *testing.T) {
	store := &fakeStore{
		bySource: map[string][]types.RetrievedDocument{
			"A": {retrievedDoc("A", 0, "a1", 0.9)},
		},
	}
	docs, err := newTestRetriever(store).Retrieve(context.Background(), "q", 4, map[string]string{"source": "A"})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	require.Len(t, store.searchCalls, 1)
	assert.Equal(t, map[string]string{"source": "A"}, store.searchCalls[0].filter)
}

func TestRetrieveFilteredError(t *testing.T) {
	store := &fakeStore{filteredErr: errors.New("bad filter")}
	_, err := newTestRetriever(store).Retrieve(context.Background(), "q", 4, map[string]string{"source": "A"})
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrStoreRead)
}
