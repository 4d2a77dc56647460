package service

import (
	"context"
	"log"

	"github.com/tieubaoca/docqa-be/database"
)

// SourceService discovers the distinct document sources currently indexed.
// It fails soft: a store error yields the configured fallback set so that
// retrieval can still attempt something.
type SourceService struct {
	store           database.VectorDatabase
	fallbackSources []string
}

func NewSourceService(store database.VectorDatabase, fallbackSources []string) *SourceService {
	return &SourceService{
		store:           store,
		fallbackSources: fallbackSources,
	}
}

func (s *SourceService) ListSources(ctx context.Context) []string {
	values, err := s.store.ListMetadataValues(ctx, "source")
	if err != nil {
		log.Printf("Source discovery failed, using fallback sources: %v", err)
		return s.fallbackSources
	}
	return values
}
