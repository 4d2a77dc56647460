package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/tieubaoca/docqa-be/config"
	"github.com/tieubaoca/docqa-be/database"
	"github.com/tieubaoca/docqa-be/types"
	"github.com/tieubaoca/docqa-be/utils"
)

const maxUploadSize = 10 << 20 // 10MB

// IngestService turns raw text or uploaded files into metadata-tagged chunks
// and writes them to the vector store in one batch call per ingestion.
type IngestService struct {
	store     database.VectorDatabase
	uploadDir string
	defaults  config.ChunkingConfig
}

func NewIngestService(store database.VectorDatabase, uploadDir string, defaults config.ChunkingConfig) *IngestService {
	return &IngestService{
		store:     store,
		uploadDir: uploadDir,
		defaults:  defaults,
	}
}

func (s *IngestService) IngestText(ctx context.Context, req types.IngestTextRequest) (*types.IngestResult, error) {
	if err := types.Validate(req); err != nil {
		return nil, err
	}
	source := req.Source
	if source == "" {
		source = "manual"
	}
	custom := map[string]string{}
	for k, v := range req.Custom {
		custom[k] = v
	}
	if req.Description != "" {
		custom["description"] = req.Description
	}
	return s.ingest(ctx, req.Text, source, custom, req.ChunkSize, req.ChunkOverlap)
}

func (s *IngestService) IngestFile(ctx context.Context, header *multipart.FileHeader, meta types.UploadMetadata) (*types.IngestResult, error) {
	if header == nil {
		return nil, fmt.Errorf("%w: missing file", types.ErrValidation)
	}
	if header.Size > maxUploadSize {
		return nil, fmt.Errorf("%w: file too large", types.ErrValidation)
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !isTextExt(ext) {
		return nil, fmt.Errorf("%w: unsupported file type: %s", types.ErrValidation, ext)
	}

	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %v", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %v", err)
	}
	text := string(data)
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: file is empty", types.ErrValidation)
	}

	source := meta.Source
	if source == "" {
		source = header.Filename
	}
	custom := map[string]string{
		"filename":   header.Filename,
		"fileSize":   fmt.Sprintf("%d", header.Size),
		"fileType":   strings.TrimPrefix(ext, "."),
		"uploadedAt": time.Now().UTC().Format(time.RFC3339),
	}
	for k, v := range meta.Custom {
		custom[k] = v
	}
	if meta.Description != "" {
		custom["description"] = meta.Description
	}

	// keep the original around for the document viewer; not fatal if it fails
	if s.uploadDir != "" {
		if _, err := utils.SaveUploadedFile(header, s.uploadDir); err != nil {
			log.Printf("Failed to save upload copy of %s: %v", header.Filename, err)
		}
	}

	return s.ingest(ctx, text, source, custom, meta.ChunkSize, meta.ChunkOverlap)
}

func (s *IngestService) ingest(ctx context.Context, text, source string, custom map[string]string, chunkSize, chunkOverlap int) (*types.IngestResult, error) {
	if chunkSize == 0 {
		chunkSize = s.defaults.ChunkSize
	}
	if chunkSize < 0 {
		return nil, fmt.Errorf("%w: chunk size must be positive", types.ErrValidation)
	}
	if chunkOverlap == 0 {
		chunkOverlap = s.defaults.ChunkOverlap
	}
	if chunkOverlap < 0 {
		return nil, fmt.Errorf("%w: chunk overlap must not be negative", types.ErrValidation)
	}

	chunker := NewChunker(chunkSize, chunkOverlap)
	pieces := chunker.SplitText(text)
	if len(pieces) == 0 {
		return nil, fmt.Errorf("%w: text is empty", types.ErrValidation)
	}

	processedAt := time.Now().UTC().Format(time.RFC3339)
	docs := make([]types.DocumentChunk, 0, len(pieces))
	for i, piece := range pieces {
		chunkCustom := make(map[string]string, len(custom)+1)
		for k, v := range custom {
			chunkCustom[k] = v
		}
		chunkCustom["processedAt"] = processedAt
		docs = append(docs, types.DocumentChunk{
			Content: piece,
			Metadata: types.Metadata{
				Source:     source,
				Chunk:      i,
				ChunkCount: len(pieces),
				Custom:     chunkCustom,
			},
			CreatedAt: time.Now().Unix(),
		})
	}

	inserted, err := s.store.AddDocuments(ctx, docs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrStoreWrite, err)
	}
	log.Printf("Ingested %d chunks for source %q", inserted, source)

	return &types.IngestResult{
		InsertedCount: inserted,
		ChunkCount:    len(pieces),
	}, nil
}

func isTextExt(ext string) bool {
	switch ext {
	case ".txt", ".md", ".markdown", ".text", ".csv", ".log":
		return true
	}
	return false
}
