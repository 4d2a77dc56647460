package service

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tieubaoca/docqa-be/config"
	"github.com/tieubaoca/docqa-be/types"
)

func newTestIngestService(store *fakeStore) *IngestService {
	return NewIngestService(store, "", config.ChunkingConfig{
		ChunkSize:    800,
		ChunkOverlap: 100,
	})
}

func TestIngestTextDefaults(t *testing.T) {
	store := &fakeStore{}
	svc := newTestIngestService(store)

	res, err := svc.IngestText(context.Background(), types.IngestTextRequest{Text: "hello world"})
	require.NoError(t, err)
	assert.Equal(t, 1, res.InsertedCount)
	assert.Equal(t, 1, res.ChunkCount)

	require.Len(t, store.added, 1)
	require.Len(t, store.added[0], 1)
	doc := store.added[0][0]
	assert.Equal(t, "hello world", doc.Content)
	assert.Equal(t, "manual", doc.Metadata.Source)
	assert.Equal(t, 0, doc.Metadata.Chunk)
	assert.Equal(t, 1, doc.Metadata.ChunkCount)
	assert.NotEmpty(t, doc.Metadata.Custom["processedAt"])
}

func TestIngestTextChunkIndices(t *testing.T) {
	store := &fakeStore{}
	svc := newTestIngestService(store)

	res, err := svc.IngestText(context.Background(), types.IngestTextRequest{
		Text:         "Alpha beta gamma delta.",
		Source:       "handbook",
		ChunkSize:    10,
		ChunkOverlap: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, res.ChunkCount)
	assert.Equal(t, 4, res.InsertedCount)

	require.Len(t, store.added, 1)
	docs := store.added[0]
	require.Len(t, docs, 4)
	for i, doc := range docs {
		assert.Equal(t, i, doc.Metadata.Chunk)
		assert.Equal(t, 4, doc.Metadata.ChunkCount)
		assert.Equal(t, "handbook", doc.Metadata.Source)
	}
}

func TestIngestTextCustomMetadata(t *testing.T) {
	store := &fakeStore{}
	svc := newTestIngestService(store)

	_, err := svc.IngestText(context.Background(), types.IngestTextRequest{
		Text:        "some content",
		Description: "release notes",
		Custom:      map[string]string{"team": "platform"},
	})
	require.NoError(t, err)

	doc := store.added[0][0]
	assert.Equal(t, "release notes", doc.Metadata.Custom["description"])
	assert.Equal(t, "platform", doc.Metadata.Custom["team"])
}

func TestIngestTextEmpty(t *testing.T) {
	svc := newTestIngestService(&fakeStore{})
	_, err := svc.IngestText(context.Background(), types.IngestTextRequest{Text: ""})
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrValidation)
}

func TestIngestTextStoreFailure(t *testing.T) {
	store := &fakeStore{addErr: errors.New("batch rejected")}
	svc := newTestIngestService(store)
	_, err := svc.IngestText(context.Background(), types.IngestTextRequest{Text: "hello"})
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrStoreWrite)
}

func TestIngestTextRepeatedIngestionsAreIndependent(t *testing.T) {
	store := &fakeStore{}
	svc := newTestIngestService(store)

	req := types.IngestTextRequest{Text: "the same text twice"}
	_, err := svc.IngestText(context.Background(), req)
	require.NoError(t, err)
	_, err = svc.IngestText(context.Background(), req)
	require.NoError(t, err)

	// no dedup: each ingestion writes its own batch
	require.Len(t, store.added, 2)
	assert.Equal(t, store.added[0][0].Content, store.added[1][0].Content)
}

func uploadHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	return req.MultipartForm.File["file"][0]
}

func TestIngestFile(t *testing.T) {
	store := &fakeStore{}
	svc := NewIngestService(store, t.TempDir(), config.ChunkingConfig{ChunkSize: 800, ChunkOverlap: 100})

	header := uploadHeader(t, "notes.txt", "uploaded file content")
	res, err := svc.IngestFile(context.Background(), header, types.UploadMetadata{Description: "meeting notes"})
	require.NoError(t, err)
	assert.Equal(t, 1, res.ChunkCount)

	doc := store.added[0][0]
	assert.Equal(t, "notes.txt", doc.Metadata.Source)
	assert.Equal(t, "notes.txt", doc.Metadata.Custom["filename"])
	assert.Equal(t, "txt", doc.Metadata.Custom["fileType"])
	assert.Equal(t, "meeting notes", doc.Metadata.Custom["description"])
	assert.NotEmpty(t, doc.Metadata.Custom["uploadedAt"])
}

func TestIngestFileSourceOverride(t *testing.T) {
	store := &fakeStore{}
	svc := newTestIngestService(store)

	header := uploadHeader(t, "notes.md", "# heading\n\nbody")
	_, err := svc.IngestFile(context.Background(), header, types.UploadMetadata{Source: "wiki"})
	require.NoError(t, err)
	assert.Equal(t, "wiki", store.added[0][0].Metadata.Source)
}

func TestIngestFileUnsupportedType(t *testing.T) {
	svc := newTestIngestService(&fakeStore{})
	header := uploadHeader(t, "binary.pdf", "%PDF-1.4")
	_, err := svc.IngestFile(context.Background(), header, types.UploadMetadata{})
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrValidation)
	assert.Contains(t, err.Error(), "unsupported file type")
}

func TestIngestFileEmpty(t *testing.T) {
	svc := newTestIngestService(&fakeStore{})
	header := uploadHeader(t, "empty.txt", "   \n  ")
	_, err := svc.IngestFile(context.Background(), header, types.UploadMetadata{})
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrValidation)
}

func TestIngestFileMissing(t *testing.T) {
	svc := newTestIngestService(&fakeStore{})
	_, err := svc.IngestFile(context.Background(), nil, types.UploadMetadata{})
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrValidation)
}

func TestIngestTextLongDocumentCoversInput(t *testing.T) {
	store := &fakeStore{}
	svc := newTestIngestService(store)

	text := strings.Repeat("All work and no play makes Jack a dull boy. ", 200)
	res, err := svc.IngestText(context.Background(), types.IngestTextRequest{
		Text:         text,
		ChunkSize:    120,
		ChunkOverlap: 20,
	})
	require.NoError(t, err)
	assert.Greater(t, res.ChunkCount, 1)

	for _, doc := range store.added[0] {
		assert.LessOrEqual(t, len([]rune(doc.Content)), 120)
		assert.Contains(t, text, doc.Content)
	}
}
