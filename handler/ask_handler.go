package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tieubaoca/docqa-be/service"
	"github.com/tieubaoca/docqa-be/types"
)

type AskHandler struct {
	answerService *service.AnswerService
}

func NewAskHandler(answerService *service.AnswerService) *AskHandler {
	return &AskHandler{
		answerService: answerService,
	}
}

func (h *AskHandler) HandleAsk(c *gin.Context) {
	var req types.AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: fmt.Sprintf("Invalid request body: %v", err),
		})
		return
	}

	resp, err := h.answerService.Ask(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, resp)
}
