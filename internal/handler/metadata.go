package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/user/dreamyvoice/internal/utils"
)

// Genres GET /metadata/genres
func (h *Handler) Genres(c *gin.Context) {
	genres, err := h.Metadata.Genres(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	utils.Success(c, gin.H{"genres": genres})
}

// Tags GET /metadata/tags
func (h *Handler) Tags(c *gin.Context) {
	tags, err := h.Metadata.Tags(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	utils.Success(c, gin.H{"tags": tags})
}

// AgeRatings GET /metadata/age-ratings
func (h *Handler) AgeRatings(c *gin.Context) {
	utils.Success(c, gin.H{"ageRatings": h.Metadata.AgeRatings()})
}
