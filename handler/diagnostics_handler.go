package handler

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tieubaoca/docqa-be/service"
	"github.com/tieubaoca/docqa-be/types"
)

// DiagnosticsHandler calls the embedding service directly so an operator can
// verify connectivity and the model's dimensionality.
type DiagnosticsHandler struct {
	embedder EmbeddingDiagnosticsService
}

type EmbeddingDiagnosticsService interface {
	service.EmbeddingService
	EmbeddingModel() string
}

func NewDiagnosticsHandler(embedder EmbeddingDiagnosticsService) *DiagnosticsHandler {
	return &DiagnosticsHandler{
		embedder: embedder,
	}
}

func (h *DiagnosticsHandler) HandleEmbedding(c *gin.Context) {
	text := c.Query("text")
	if text == "" {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Query parameter 'text' is required",
		})
		return
	}

	vector, err := h.embedder.Embed(c.Request.Context(), text)
	if err != nil {
		respondError(c, err)
		return
	}

	norm := 0.0
	for _, v := range vector {
		norm += float64(v) * float64(v)
	}
	norm = math.Sqrt(norm)

	respondOK(c, types.EmbeddingDiagnostics{
		Model:     h.embedder.EmbeddingModel(),
		Dimension: len(vector),
		Norm:      norm,
	})
}
