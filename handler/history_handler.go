package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tieubaoca/docqa-be/repository"
)

type HistoryHandler struct {
	queryLog repository.QueryLogRepo
}

func NewHistoryHandler(queryLog repository.QueryLogRepo) *HistoryHandler {
	return &HistoryHandler{
		queryLog: queryLog,
	}
}

func (h *HistoryHandler) HandleHistory(c *gin.Context) {
	page, _ := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)

	entries, err := h.queryLog.ListQueryLog(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"entries": entries, "page": page, "limit": limit})
}
