package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/user/dreamyvoice/internal/middleware"
	"github.com/user/dreamyvoice/internal/model"
	"github.com/user/dreamyvoice/internal/utils"
)

type credentialsRequest struct {
	Username string `json:"username" form:"username" binding:"required,min=3,max=32"`
	Password string `json:"password" form:"password" binding:"required,min=6,max=128"`
}

// Register POST /auth/register
func (h *Handler) Register(c *gin.Context) {
	var req credentialsRequest
	if !bind(c, &req) {
		return
	}

	user, err := h.Auth.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		c.Error(err)
		return
	}
	if err := h.startSession(c, user); err != nil {
		c.Error(err)
		return
	}
	utils.Created(c, gin.H{"user": model.ToPublicUser(user)})
}

// Login POST /auth/login
func (h *Handler) Login(c *gin.Context) {
	var req credentialsRequest
	if !bind(c, &req) {
		return
	}

	user, err := h.Auth.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		c.Error(err)
		return
	}
	if user == nil {
		c.Error(utils.Unauthorized("invalid credentials"))
		return
	}
	if err := h.startSession(c, user); err != nil {
		c.Error(err)
		return
	}
	utils.Success(c, gin.H{"user": model.ToPublicUser(user)})
}

// Logout POST /auth/logout
func (h *Handler) Logout(c *gin.Context) {
	h.endSession(c)
	utils.NoContent(c)
}

// Me GET /auth/me
func (h *Handler) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.Error(utils.Unauthorized("not authenticated"))
		return
	}
	utils.Success(c, gin.H{"user": model.ToPublicUser(user)})
}
