package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/user/dreamyvoice/internal/service"
	"github.com/user/dreamyvoice/internal/utils"
)

type teamMemberRequest struct {
	Name      string  `json:"name" binding:"required,max=128"`
	Role      string  `json:"role" binding:"required,max=128"`
	AvatarKey *string `json:"avatarKey" binding:"omitempty,max=256"`
}

// ListTeamMembers GET /team-members
func (h *Handler) ListTeamMembers(c *gin.Context) {
	members, err := h.Team.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	utils.Success(c, gin.H{"teamMembers": members})
}

// CreateTeamMember POST /team-members
func (h *Handler) CreateTeamMember(c *gin.Context) {
	var req teamMemberRequest
	if !bind(c, &req) {
		return
	}
	member, err := h.Team.Create(c.Request.Context(), service.TeamMemberInput{
		Name:      req.Name,
		Role:      req.Role,
		AvatarKey: req.AvatarKey,
	})
	if err != nil {
		c.Error(err)
		return
	}
	utils.Created(c, gin.H{"teamMember": member})
}

// DeleteTeamMember DELETE /team-members/:id
func (h *Handler) DeleteTeamMember(c *gin.Context) {
	if err := h.Team.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	utils.NoContent(c)
}
