package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate runs struct tag validation and wraps failures as ErrValidation.
func Validate(v interface{}) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

type AskRequest struct {
	Question    string            `json:"question" validate:"required"`
	K           int               `json:"k" validate:"omitempty,min=1,max=20"`
	Filter      map[string]string `json:"filter,omitempty"`
	Model       string            `json:"model,omitempty"`
	Temperature float32           `json:"temperature" validate:"omitempty,min=0,max=2"`
}

type AskResponse struct {
	Answer     string            `json:"answer"`
	Confidence int               `json:"confidence"`
	Reasoning  string            `json:"reasoning"`
	Metrics    ConfidenceMetrics `json:"metrics"`
	Sources    []SourceMatch     `json:"sources"`
}

type SearchRequest struct {
	Query  string            `json:"query" validate:"required"`
	K      int               `json:"k" validate:"omitempty,min=1,max=20"`
	Filter map[string]string `json:"filter,omitempty"`
}

type IngestTextRequest struct {
	Text         string            `json:"text" validate:"required"`
	Source       string            `json:"source,omitempty"`
	Description  string            `json:"description,omitempty"`
	Custom       map[string]string `json:"custom,omitempty"`
	ChunkSize    int               `json:"chunk_size" validate:"omitempty,min=1"`
	ChunkOverlap int               `json:"chunk_overlap" validate:"omitempty,min=0"`
}

// UploadMetadata is the json blob attached to a multipart file upload.
type UploadMetadata struct {
	Source       string            `json:"source,omitempty"`
	Description  string            `json:"description,omitempty"`
	Custom       map[string]string `json:"custom,omitempty"`
	ChunkSize    int               `json:"chunk_size,omitempty"`
	ChunkOverlap int               `json:"chunk_overlap,omitempty"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
