package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/user/dreamyvoice/internal/logger"
	"github.com/user/dreamyvoice/internal/utils"
)

// ErrorHandler renders the last error a handler attached with c.Error.
// Upstream failures are logged and rendered with a generic message.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		appErr := utils.AsAppError(c.Errors.Last().Err)
		if appErr.Kind == utils.KindUpstream {
			logger.Errorf("%s %s: %v", c.Request.Method, c.Request.URL.Path, c.Errors.Last().Err)
		}
		if c.Writer.Written() {
			return
		}
		utils.Error(c, appErr.Status, appErr.Message, appErr.Fields...)
	}
}

// Recovery turns panics into a JSON 500 without exposing the stack.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Errorf("panic serving %s %s: %v", c.Request.Method, c.Request.URL.Path, recovered)
		utils.Error(c, http.StatusInternalServerError, "internal server error")
		c.Abort()
	})
}
