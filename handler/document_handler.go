package handler

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tieubaoca/docqa-be/types"
)

// DocumentHandler serves the saved upload copies back to the browser UI.
type DocumentHandler struct {
	uploadDir string
}

func NewDocumentHandler(uploadDir string) *DocumentHandler {
	return &DocumentHandler{
		uploadDir: uploadDir,
	}
}

func (h *DocumentHandler) ServeDocument(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Query parameter 'name' is required",
		})
		return
	}
	// keep requests inside the upload directory
	name = filepath.Base(name)
	if strings.HasPrefix(name, ".") {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Invalid file name",
		})
		return
	}
	c.File(filepath.Join(h.uploadDir, name))
}
