package handler

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/user/dreamyvoice/internal/logger"
	"github.com/user/dreamyvoice/internal/middleware"
	"github.com/user/dreamyvoice/internal/service"
	"github.com/user/dreamyvoice/internal/utils"
)

// mediaKey returns the wildcard key without its leading slash.
func mediaKey(c *gin.Context) string {
	return strings.TrimPrefix(c.Param("key"), "/")
}

// GetMedia GET /media/:bucket/*key
func (h *Handler) GetMedia(c *gin.Context) {
	obj, err := h.Media.Open(c.Request.Context(), c.Param("bucket"), mediaKey(c))
	if err != nil {
		c.Error(err)
		return
	}
	defer obj.Body.Close()

	if obj.ContentType != "" {
		c.Header("Content-Type", obj.ContentType)
	}
	if obj.ContentLength > 0 {
		c.Header("Content-Length", strconv.FormatInt(obj.ContentLength, 10))
	}
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, obj.Body); err != nil {
		logger.Warningf("media: stream %s/%s interrupted: %v", c.Param("bucket"), mediaKey(c), err)
	}
}

// UploadMedia POST /media/:bucket
func (h *Handler) UploadMedia(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, service.MaxMediaUpload+1<<20)

	fh, err := c.FormFile("file")
	if err != nil {
		c.Error(utils.Validation("file is required", utils.FieldError{Field: "file", Message: "is required"}))
		return
	}
	file, err := fh.Open()
	if err != nil {
		c.Error(utils.Upstream(err))
		return
	}
	defer file.Close()

	bucket, key, err := h.Media.Upload(c.Request.Context(), middleware.CurrentUser(c), c.Param("bucket"), c.PostForm("key"), service.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        file,
	})
	if err != nil {
		c.Error(err)
		return
	}
	utils.Created(c, gin.H{"bucket": bucket, "key": key})
}

// DeleteMedia DELETE /media/:bucket/*key
func (h *Handler) DeleteMedia(c *gin.Context) {
	if err := h.Media.Delete(c.Request.Context(), middleware.CurrentUser(c), c.Param("bucket"), mediaKey(c)); err != nil {
		c.Error(err)
		return
	}
	utils.NoContent(c)
}
