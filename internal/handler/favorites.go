package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/user/dreamyvoice/internal/middleware"
	"github.com/user/dreamyvoice/internal/utils"
)

// ListFavorites GET /favorites
func (h *Handler) ListFavorites(c *gin.Context) {
	favorites, err := h.Favorites.List(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		c.Error(err)
		return
	}
	utils.Success(c, gin.H{"favorites": favorites})
}

// GetFavorite GET /favorites/:slug
func (h *Handler) GetFavorite(c *gin.Context) {
	ok, err := h.Favorites.IsFavorite(c.Request.Context(), middleware.CurrentUser(c), c.Param("slug"))
	if err != nil {
		c.Error(err)
		return
	}
	utils.Success(c, gin.H{"isFavorite": ok})
}

// AddFavorite POST /favorites/:slug
func (h *Handler) AddFavorite(c *gin.Context) {
	if err := h.Favorites.Add(c.Request.Context(), middleware.CurrentUser(c), c.Param("slug")); err != nil {
		c.Error(err)
		return
	}
	utils.Created(c, gin.H{"isFavorite": true})
}

// RemoveFavorite DELETE /favorites/:slug
func (h *Handler) RemoveFavorite(c *gin.Context) {
	if err := h.Favorites.Remove(c.Request.Context(), middleware.CurrentUser(c), c.Param("slug")); err != nil {
		c.Error(err)
		return
	}
	utils.Success(c, gin.H{"isFavorite": false})
}
