package database

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/tieubaoca/docqa-be/config"
	"github.com/tieubaoca/docqa-be/types"
	"github.com/weaviate/weaviate-go-client/v4/weaviate"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/auth"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/filters"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"
)

const BATCH_SIZE = 200

var (
	CHUNK_CLASS        = "DocumentChunk"
	CHUNK_CLASS_OBJECT = &models.Class{
		Class: CHUNK_CLASS,
		Properties: []*models.Property{
			{Name: "content", DataType: []string{"text"}},
			{Name: "source", DataType: []string{"text"}},
			{Name: "chunk", DataType: []string{"int"}},
			{Name: "chunkCount", DataType: []string{"int"}},
			{Name: "custom", DataType: []string{"object"},
				NestedProperties: []*models.NestedProperty{
					{Name: "filename", DataType: []string{"text"}},
					{Name: "fileSize", DataType: []string{"text"}},
					{Name: "fileType", DataType: []string{"text"}},
					{Name: "description", DataType: []string{"text"}},
					{Name: "uploadedAt", DataType: []string{"text"}},
					{Name: "processedAt", DataType: []string{"text"}},
				},
			},
			{Name: "createdAt", DataType: []string{"int"}},
		},
		VectorIndexType: "hnsw",
	}
)

type WeaviateStore struct {
	client *weaviate.Client
}

func NewWeaviateStore(config config.WeaviateStoreConfig) (*WeaviateStore, error) {
	var scheme string
	if strings.Contains(config.Host, "https") {
		scheme = "https"
	} else {
		scheme = "http"
	}
	host := strings.TrimPrefix(config.Host, scheme+"://")
	cfg := weaviate.Config{
		Host:   host,
		Scheme: scheme,
	}
	if config.APIKey != "" {
		cfg.AuthConfig = auth.ApiKey{
			Value: config.APIKey,
		}
		cfg.Headers = map[string]string{
			"X-Weaviate-Api-Key":     config.APIKey,
			"X-Weaviate-Cluster-Url": fmt.Sprintf("%s://%s", scheme, host),
		}
	}
	CHUNK_CLASS_OBJECT.Vectorizer = config.Text2Vec
	CHUNK_CLASS_OBJECT.ModuleConfig = config.ModuleConfig
	client, err := weaviate.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create weaviate client: %v", err)
	}

	schema, err := client.Schema().Getter().Do(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to get schema: %v", err)
	}

	hasChunkClass := false
	for _, class := range schema.Classes {
		if class.Class == CHUNK_CLASS {
			hasChunkClass = true
			break
		}
	}
	// Create DocumentChunk class if it doesn't exist
	if !hasChunkClass {
		err = client.Schema().ClassCreator().WithClass(CHUNK_CLASS_OBJECT).Do(context.Background())
		if err != nil {
			return nil, fmt.Errorf("failed to create DocumentChunk class: %v", err)
		}
	}
	return &WeaviateStore{
		client: client,
	}, nil
}

func (s *WeaviateStore) ReInit() error {
	err := s.client.Schema().ClassDeleter().WithClassName(CHUNK_CLASS).Do(context.Background())
	if err != nil {
		return fmt.Errorf("failed to delete DocumentChunk class: %v", err)
	}

	err = s.client.Schema().ClassCreator().WithClass(CHUNK_CLASS_OBJECT).Do(context.Background())
	if err != nil {
		return fmt.Errorf("failed to create DocumentChunk class: %v", err)
	}
	return nil
}

func (s *WeaviateStore) AddDocuments(ctx context.Context, docs []types.DocumentChunk) (int, error) {
	total := len(docs)
	inserted := 0
	for i := 0; i < total; i += BATCH_SIZE {
		end := i + BATCH_SIZE
		if end > total {
			end = total
		}

		batcher := s.client.Batch().ObjectsBatcher()
		for j := i; j < end; j++ {
			createdAt := docs[j].CreatedAt
			if createdAt == 0 {
				createdAt = time.Now().Unix()
			}
			batcher = batcher.WithObjects(&models.Object{
				Class:      CHUNK_CLASS,
				Properties: chunkProperties(&docs[j], createdAt),
			})
		}

		_, err := batcher.Do(ctx)
		if err != nil {
			return inserted, fmt.Errorf("failed to insert batch %d-%d: %v", i, end, err)
		}
		inserted += end - i

		log.Printf("Inserted batch %d-%d of %d chunks", i, end, total)
	}

	return inserted, nil
}

func (s *WeaviateStore) SimilaritySearchWithScore(ctx context.Context, query string, k int, filter map[string]string) ([]types.RetrievedDocument, error) {
	fields := []graphql.Field{
		{Name: "content"},
		{Name: "source"},
		{Name: "chunk"},
		{Name: "chunkCount"},
		{Name: "custom", Fields: []graphql.Field{
			{Name: "filename"},
			{Name: "fileSize"},
			{Name: "fileType"},
			{Name: "description"},
			{Name: "uploadedAt"},
			{Name: "processedAt"},
		}},
		{Name: "createdAt"},
		{Name: "_additional", Fields: []graphql.Field{{Name: "certainty"}, {Name: "id"}}},
	}
	nearText := s.client.GraphQL().NearTextArgBuilder().
		WithConcepts([]string{query})

	getBuilder := s.client.GraphQL().Get().
		WithClassName(CHUNK_CLASS).
		WithFields(fields...).
		WithNearText(nearText)
	if k > 0 {
		getBuilder = getBuilder.WithLimit(k)
	}
	if where := buildWhereFilter(filter); where != nil {
		getBuilder = getBuilder.WithWhere(where)
	}

	result, err := getBuilder.Do(ctx)
	if err != nil {
		return nil, err
	}
	if result.Errors != nil {
		return nil, fmt.Errorf("search failed: %v", result.Errors[0].Message)
	}

	var docs []types.RetrievedDocument
	if data, ok := result.Data["Get"].(map[string]interface{})[CHUNK_CLASS].([]interface{}); ok {
		for _, item := range data {
			if props, ok := item.(map[string]interface{}); ok {
				doc := types.RetrievedDocument{
					DocumentChunk: parseChunk(props),
				}
				if additional, ok := props["_additional"].(map[string]interface{}); ok {
					doc.ID, _ = additional["id"].(string)
					if certainty, ok := additional["certainty"].(float64); ok {
						doc.SimilarityScore = certainty
					}
				}
				docs = append(docs, doc)
			}
		}
	}

	return docs, nil
}

func (s *WeaviateStore) ListMetadataValues(ctx context.Context, key string) ([]string, error) {
	result, err := s.client.GraphQL().Aggregate().
		WithClassName(CHUNK_CLASS).
		WithGroupBy(key).
		WithFields(graphql.Field{
			Name:   "groupedBy",
			Fields: []graphql.Field{{Name: "value"}},
		}).
		Do(ctx)
	if err != nil {
		return nil, err
	}
	if result.Errors != nil {
		return nil, fmt.Errorf("aggregate failed: %v", result.Errors[0].Message)
	}

	var values []string
	if data, ok := result.Data["Aggregate"].(map[string]interface{})[CHUNK_CLASS].([]interface{}); ok {
		for _, item := range data {
			group, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			groupedBy, ok := group["groupedBy"].(map[string]interface{})
			if !ok {
				continue
			}
			if value, ok := groupedBy["value"].(string); ok && value != "" {
				values = append(values, value)
			}
		}
	}
	return values, nil
}

// Helper functions
func chunkProperties(doc *types.DocumentChunk, createdAt int64) map[string]interface{} {
	custom := doc.Metadata.Custom
	if custom == nil {
		custom = map[string]string{}
	}
	return map[string]interface{}{
		"content":    doc.Content,
		"source":     doc.Metadata.Source,
		"chunk":      doc.Metadata.Chunk,
		"chunkCount": doc.Metadata.ChunkCount,
		"custom":     custom,
		"createdAt":  createdAt,
	}
}

func parseChunk(props map[string]interface{}) types.DocumentChunk {
	chunk := types.DocumentChunk{
		Metadata: types.Metadata{
			Custom: parseStringMap(props["custom"]),
		},
	}
	chunk.Content, _ = props["content"].(string)
	chunk.Metadata.Source, _ = props["source"].(string)
	if v, ok := props["chunk"].(float64); ok {
		chunk.Metadata.Chunk = int(v)
	}
	if v, ok := props["chunkCount"].(float64); ok {
		chunk.Metadata.ChunkCount = int(v)
	}
	if v, ok := props["createdAt"].(float64); ok {
		chunk.CreatedAt = int64(v)
	}
	return chunk
}

func parseStringMap(v interface{}) map[string]string {
	if v == nil {
		return nil
	}
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil
	}
	result := make(map[string]string)
	for k, value := range m {
		if s, ok := value.(string); ok {
			result[k] = s
		}
	}
	return result
}

func buildWhereFilter(filter map[string]string) *filters.WhereBuilder {
	var operands []*filters.WhereBuilder

	for key, value := range filter {
		switch key {
		case "source":
			operands = append(operands, filters.Where().
				WithPath([]string{"source"}).
				WithOperator(filters.Equal).
				WithValueString(value))
		case "chunk", "chunkCount":
			n, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				continue
			}
			operands = append(operands, filters.Where().
				WithPath([]string{key}).
				WithOperator(filters.Equal).
				WithValueInt(n))
		default:
			operands = append(operands, filters.Where().
				WithPath([]string{"custom", key}).
				WithOperator(filters.Equal).
				WithValueString(value))
		}
	}

	switch len(operands) {
	case 0:
		return nil
	case 1:
		return operands[0]
	default:
		return filters.Where().
			WithOperator(filters.And).
			WithOperands(operands)
	}
}
