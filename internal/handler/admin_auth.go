package handler

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/user/dreamyvoice/internal/logger"
	"github.com/user/dreamyvoice/internal/middleware"
	"github.com/user/dreamyvoice/internal/model"
	"github.com/user/dreamyvoice/internal/utils"
)

const adminHome = "/admin"

// AdminLoginPage GET /admin/auth/login
func (h *Handler) AdminLoginPage(c *gin.Context) {
	if middleware.CurrentUser(c).IsAdmin() {
		c.Redirect(http.StatusFound, adminHome)
		return
	}

	session := sessions.Default(c)
	flashes := session.Flashes()
	if err := session.Save(); err != nil {
		logger.Warningf("admin: failed to save flash session: %v", err)
	}

	c.HTML(http.StatusOK, "admin/login.html", gin.H{
		"Title":   "DreamyVoice Admin Login",
		"Action":  middleware.AdminLoginPath,
		"Flashes": flashes,
	})
}

// AdminLogin POST /admin/auth/login
func (h *Handler) AdminLogin(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBind(&req); err != nil {
		h.adminLoginFailed(c, utils.FromBinding(err))
		return
	}

	user, err := h.Auth.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		c.Error(err)
		return
	}
	if user == nil || !user.IsAdmin() {
		h.adminLoginFailed(c, utils.Unauthorized("insufficient rights or invalid credentials"))
		return
	}
	if err := h.startSession(c, user); err != nil {
		c.Error(err)
		return
	}

	if utils.WantsHTML(c) {
		c.Redirect(http.StatusFound, adminHome)
		return
	}
	utils.Success(c, gin.H{"user": model.ToPublicUser(user)})
}

// AdminLogout POST /admin/auth/logout
func (h *Handler) AdminLogout(c *gin.Context) {
	h.endSession(c)
	if utils.WantsHTML(c) {
		c.Redirect(http.StatusFound, middleware.AdminLoginPath)
		return
	}
	utils.NoContent(c)
}

// adminLoginFailed sends browsers back to the form with a flash message and
// renders the error for API clients.
func (h *Handler) adminLoginFailed(c *gin.Context, err *utils.AppError) {
	if !utils.WantsHTML(c) {
		c.Error(err)
		return
	}
	session := sessions.Default(c)
	session.AddFlash(err.Message)
	if saveErr := session.Save(); saveErr != nil {
		logger.Warningf("admin: failed to save flash session: %v", saveErr)
	}
	c.Redirect(http.StatusFound, middleware.AdminLoginPath)
}
