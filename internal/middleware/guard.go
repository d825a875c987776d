package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/user/dreamyvoice/internal/utils"
)

// AdminLoginPath is where browsers are sent when they lack admin rights.
const AdminLoginPath = "/admin/auth/login"

// RequireAuth rejects requests without a signed-in user.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			utils.RenderError(c, utils.Unauthorized("authentication required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin rejects non-admins. Browser navigations are redirected to the
// admin login page, API clients get 403.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c).IsAdmin() {
			c.Next()
			return
		}
		if utils.WantsHTML(c) {
			c.Redirect(http.StatusFound, AdminLoginPath)
			c.Abort()
			return
		}
		utils.RenderError(c, utils.Forbidden("admin access required"))
		c.Abort()
	}
}
