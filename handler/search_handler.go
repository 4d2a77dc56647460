package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tieubaoca/docqa-be/service"
	"github.com/tieubaoca/docqa-be/types"
)

type SearchHandler struct {
	retriever     *service.Retriever
	sourceService *service.SourceService
}

func NewSearchHandler(retriever *service.Retriever, sourceService *service.SourceService) *SearchHandler {
	return &SearchHandler{
		retriever:     retriever,
		sourceService: sourceService,
	}
}

func (h *SearchHandler) HandleSearch(c *gin.Context) {
	var req types.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: fmt.Sprintf("Invalid request body: %v", err),
		})
		return
	}
	if err := types.Validate(req); err != nil {
		respondError(c, err)
		return
	}
	if req.K == 0 {
		req.K = 5
	}

	docs, err := h.retriever.Retrieve(c.Request.Context(), req.Query, req.K, req.Filter)
	if err != nil {
		respondError(c, err)
		return
	}

	results := make([]types.ScoredDocument, 0, len(docs))
	for _, doc := range docs {
		results = append(results, types.ScoredDocument{
			Content:         doc.Content,
			Metadata:        doc.Metadata,
			SimilarityScore: doc.SimilarityScore,
			Relevance:       service.RelevanceTier(doc.SimilarityScore),
		})
	}
	respondOK(c, types.SearchResponse{Documents: results})
}

func (h *SearchHandler) HandleSources(c *gin.Context) {
	sources := h.sourceService.ListSources(c.Request.Context())
	respondOK(c, gin.H{"sources": sources})
}
