package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/user/dreamyvoice/internal/middleware"
	"github.com/user/dreamyvoice/internal/service"
	"github.com/user/dreamyvoice/internal/utils"
)

type createTitleRequest struct {
	Slug                string   `json:"slug" binding:"required,slug"`
	Name                string   `json:"name" binding:"required"`
	Description         *string  `json:"description"`
	CoverKey            *string  `json:"coverKey"`
	Published           bool     `json:"published"`
	Genres              []string `json:"genres"`
	Tags                []string `json:"tags"`
	AgeRating           *string  `json:"ageRating"`
	OriginalReleaseDate *string  `json:"originalReleaseDate"`
}

type updateTitleRequest struct {
	Name                *string                `json:"name"`
	Description         utils.Optional[string] `json:"description"`
	CoverKey            utils.Optional[string] `json:"coverKey"`
	Published           *bool                  `json:"published"`
	Genres              *[]string              `json:"genres"`
	Tags                *[]string              `json:"tags"`
	AgeRating           utils.Optional[string] `json:"ageRating"`
	OriginalReleaseDate utils.Optional[string] `json:"originalReleaseDate"`
}

// ListTitles GET /titles
func (h *Handler) ListTitles(c *gin.Context) {
	includeDrafts := c.Query("includeDrafts") == "1"
	filter := service.ParseTitleFilter(c.Query)

	titles, err := h.Catalog.ListTitles(c.Request.Context(), middleware.CurrentUser(c), includeDrafts, filter)
	if err != nil {
		c.Error(err)
		return
	}
	utils.Success(c, gin.H{"titles": titles})
}

// GetTitle GET /titles/:slug
func (h *Handler) GetTitle(c *gin.Context) {
	title, err := h.Catalog.GetTitle(c.Request.Context(), middleware.CurrentUser(c), c.Param("slug"))
	if err != nil {
		c.Error(err)
		return
	}
	utils.Success(c, gin.H{"title": title})
}

// RandomTitle GET /titles/random
func (h *Handler) RandomTitle(c *gin.Context) {
	slug, err := h.Catalog.RandomSlug(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	utils.Success(c, gin.H{"slug": slug})
}

// CreateTitle POST /titles
func (h *Handler) CreateTitle(c *gin.Context) {
	var req createTitleRequest
	if !bind(c, &req) {
		return
	}

	title, err := h.Catalog.CreateTitle(c.Request.Context(), service.TitleInput{
		Slug:                req.Slug,
		Name:                req.Name,
		Description:         req.Description,
		CoverKey:            req.CoverKey,
		Published:           req.Published,
		Genres:              req.Genres,
		Tags:                req.Tags,
		AgeRating:           req.AgeRating,
		OriginalReleaseDate: req.OriginalReleaseDate,
	})
	if err != nil {
		c.Error(err)
		return
	}
	utils.Created(c, gin.H{"title": title})
}

// UpdateTitle PATCH /titles/:slug
func (h *Handler) UpdateTitle(c *gin.Context) {
	var req updateTitleRequest
	if !bind(c, &req) {
		return
	}

	title, err := h.Catalog.UpdateTitle(c.Request.Context(), c.Param("slug"), service.TitleUpdate{
		Name:                req.Name,
		Description:         req.Description,
		CoverKey:            req.CoverKey,
		Published:           req.Published,
		Genres:              req.Genres,
		Tags:                req.Tags,
		AgeRating:           req.AgeRating,
		OriginalReleaseDate: req.OriginalReleaseDate,
	})
	if err != nil {
		c.Error(err)
		return
	}
	utils.Success(c, gin.H{"title": title})
}

// DeleteTitle DELETE /titles/:slug
func (h *Handler) DeleteTitle(c *gin.Context) {
	if err := h.Catalog.DeleteTitle(c.Request.Context(), c.Param("slug")); err != nil {
		c.Error(err)
		return
	}
	utils.NoContent(c)
}

type commentRequest struct {
	Body string `json:"body" form:"body" binding:"required"`
}

// ListComments GET /titles/:slug/comments
func (h *Handler) ListComments(c *gin.Context) {
	comments, err := h.Catalog.ListComments(c.Request.Context(), middleware.CurrentUser(c), c.Param("slug"))
	if err != nil {
		c.Error(err)
		return
	}
	utils.Success(c, gin.H{"comments": comments})
}

// CreateComment POST /titles/:slug/comments
func (h *Handler) CreateComment(c *gin.Context) {
	var req commentRequest
	if !bind(c, &req) {
		return
	}
	comment, err := h.Catalog.CreateComment(c.Request.Context(), middleware.CurrentUser(c), c.Param("slug"), req.Body)
	if err != nil {
		c.Error(err)
		return
	}
	utils.Created(c, gin.H{"comment": comment})
}
