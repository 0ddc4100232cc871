package handler

import (
	"net/http"
	"path"
	"path/filepath"

	"SafeCampus/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UploadHandler stores uploaded media on local disk and returns a stable URL
// for it. Callers attach the returned URL to posts, reports or profiles.
type UploadHandler struct {
	cfg config.UploadConfig
}

func NewUploadHandler(cfg config.UploadConfig) *UploadHandler {
	return &UploadHandler{cfg: cfg}
}

func (h *UploadHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "file is required"})
		return
	}

	name := uuid.NewString() + filepath.Ext(file.Filename)
	dst := filepath.Join(h.cfg.Dir, name)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "upload failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": path.Join(h.cfg.BaseURL, name)})
}
