package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/user/dreamyvoice/internal/repository"
	"github.com/user/dreamyvoice/internal/utils"
)

// episodeRequest accepts both playerSrc and player_src spellings.
type episodeRequest struct {
	Number          *int                `json:"number"`
	Name            *string             `json:"name"`
	PlayerSrc       *string             `json:"playerSrc"`
	PlayerSrcSnake  *string             `json:"player_src"`
	DurationMinutes utils.Optional[int] `json:"durationMinutes"`
	Published       *bool               `json:"published"`
}

func (r episodeRequest) mutation() repository.EpisodeMutation {
	src := r.PlayerSrc
	if src == nil {
		src = r.PlayerSrcSnake
	}
	return repository.EpisodeMutation{
		Number:          r.Number,
		Name:            r.Name,
		PlayerSrc:       src,
		DurationMinutes: r.DurationMinutes.Value,
		SetDuration:     r.DurationMinutes.Set,
		Published:       r.Published,
	}
}

type bulkEpisodesRequest struct {
	Episodes []episodeRequest `json:"episodes" binding:"required"`
}

// CreateEpisode POST /titles/:slug/episodes
func (h *Handler) CreateEpisode(c *gin.Context) {
	var req episodeRequest
	if !bind(c, &req) {
		return
	}
	episode, err := h.Catalog.CreateEpisode(c.Request.Context(), c.Param("slug"), req.mutation())
	if err != nil {
		c.Error(err)
		return
	}
	utils.Created(c, gin.H{"episode": episode})
}

// UpdateEpisode PATCH /titles/:slug/episodes/:id
func (h *Handler) UpdateEpisode(c *gin.Context) {
	var req episodeRequest
	if !bind(c, &req) {
		return
	}
	episode, err := h.Catalog.UpdateEpisode(c.Request.Context(), c.Param("slug"), c.Param("id"), req.mutation())
	if err != nil {
		c.Error(err)
		return
	}
	utils.Success(c, gin.H{"episode": episode})
}

// UpsertEpisode PUT /titles/:slug/episodes/number/:number
func (h *Handler) UpsertEpisode(c *gin.Context) {
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		c.Error(utils.Validation("invalid episode number", utils.FieldError{Field: "number", Message: "must be an integer"}))
		return
	}
	var req episodeRequest
	if !bind(c, &req) {
		return
	}

	episode, created, err := h.Catalog.UpsertEpisode(c.Request.Context(), c.Param("slug"), number, req.mutation())
	if err != nil {
		c.Error(err)
		return
	}
	if created {
		utils.Created(c, gin.H{"episode": episode})
		return
	}
	utils.Success(c, gin.H{"episode": episode})
}

// BulkCreateEpisodes POST /titles/:slug/episodes/bulk
func (h *Handler) BulkCreateEpisodes(c *gin.Context) {
	var req bulkEpisodesRequest
	if !bind(c, &req) {
		return
	}
	ms := make([]repository.EpisodeMutation, 0, len(req.Episodes))
	for _, e := range req.Episodes {
		ms = append(ms, e.mutation())
	}

	episodes, err := h.Catalog.BulkCreateEpisodes(c.Request.Context(), c.Param("slug"), ms)
	if err != nil {
		c.Error(err)
		return
	}
	utils.Created(c, gin.H{"episodes": episodes})
}

// DeleteEpisode DELETE /titles/:slug/episodes/:id
func (h *Handler) DeleteEpisode(c *gin.Context) {
	if err := h.Catalog.DeleteEpisode(c.Request.Context(), c.Param("slug"), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	utils.NoContent(c)
}
