package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/user/dreamyvoice/internal/admin"
	"github.com/user/dreamyvoice/internal/middleware"
	"github.com/user/dreamyvoice/internal/model"
	"github.com/user/dreamyvoice/internal/utils"
)

// AdminDashboard GET /admin
func (h *Handler) AdminDashboard(c *gin.Context) {
	stats, err := h.Admin.Stats(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.HTML(http.StatusOK, "admin/dashboard.html", gin.H{
		"Title":     "DreamyVoice Admin",
		"User":      middleware.CurrentUser(c),
		"Stats":     stats,
		"Groups":    admin.Groups(),
		"LogoutURL": "/admin/auth/logout",
	})
}

// AdminResources GET /admin/resources
func (h *Handler) AdminResources(c *gin.Context) {
	utils.Success(c, gin.H{"resources": admin.Resources()})
}

// AdminRecords GET /admin/resources/:name
func (h *Handler) AdminRecords(c *gin.Context) {
	name := c.Param("name")
	records, err := h.Admin.Records(c.Request.Context(), name)
	if err != nil {
		c.Error(err)
		return
	}
	utils.Success(c, gin.H{"resource": name, "records": records})
}

type moderateRequest struct {
	Status string `json:"status" binding:"required,oneof=PENDING APPROVED REJECTED"`
}

// AdminModerateComment PATCH /admin/comments/:id
func (h *Handler) AdminModerateComment(c *gin.Context) {
	var req moderateRequest
	if !bind(c, &req) {
		return
	}
	comment, err := h.Catalog.ModerateComment(c.Request.Context(), c.Param("id"), model.CommentStatus(req.Status))
	if err != nil {
		c.Error(err)
		return
	}
	utils.Success(c, gin.H{"comment": comment})
}

// AdminDeleteUser DELETE /admin/users/:id
func (h *Handler) AdminDeleteUser(c *gin.Context) {
	id := c.Param("id")
	if current := middleware.CurrentUser(c); current != nil && current.ID == id {
		c.Error(utils.Validation("admins cannot delete themselves"))
		return
	}
	if err := h.Admin.DeleteUser(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	utils.NoContent(c)
}
