package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/user/dreamyvoice/internal/model"
)

const (
	ctxUserKey    = "current_user"
	ctxSessionKey = "current_session"
)

// SessionResolver turns a cookie value into an active session. Resolve
// returns (nil, nil) for sessions that are missing or expired.
type SessionResolver interface {
	ParseToken(token string) (string, error)
	Resolve(ctx context.Context, id string) (*model.Session, error)
}

// SessionCookie holds the session cookie attributes. The cookie is always HttpOnly.
type SessionCookie struct {
	Name     string
	Secure   bool
	SameSite http.SameSite
}

// Set writes the cookie so that it expires together with the session.
func (sc SessionCookie) Set(c *gin.Context, value string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	if maxAge < 1 {
		maxAge = 1
	}
	c.SetSameSite(sc.SameSite)
	c.SetCookie(sc.Name, value, maxAge, "/", "", sc.Secure, true)
}

// Clear removes the cookie from the browser.
func (sc SessionCookie) Clear(c *gin.Context) {
	c.SetSameSite(sc.SameSite)
	c.SetCookie(sc.Name, "", -1, "/", "", sc.Secure, true)
}

// Session resolves the session cookie on every request. Unknown, tampered or
// expired cookies are cleared and the request continues anonymously.
func Session(resolver SessionResolver, cookie SessionCookie) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookie.Name)
		if err != nil || token == "" {
			c.Next()
			return
		}

		id, err := resolver.ParseToken(token)
		if err != nil {
			cookie.Clear(c)
			c.Next()
			return
		}

		session, err := resolver.Resolve(c.Request.Context(), id)
		switch {
		case err != nil:
			c.Error(err)
			c.Abort()
			return
		case session == nil:
			cookie.Clear(c)
		default:
			user := session.User
			c.Set(ctxSessionKey, session)
			c.Set(ctxUserKey, &user)
		}
		c.Next()
	}
}

// CurrentUser returns the signed-in user, or nil.
func CurrentUser(c *gin.Context) *model.User {
	if v, ok := c.Get(ctxUserKey); ok {
		if user, ok := v.(*model.User); ok {
			return user
		}
	}
	return nil
}

// CurrentSession returns the active session, or nil.
func CurrentSession(c *gin.Context) *model.Session {
	if v, ok := c.Get(ctxSessionKey); ok {
		if session, ok := v.(*model.Session); ok {
			return session
		}
	}
	return nil
}

// SetCurrentUser attaches user to the request.
func SetCurrentUser(c *gin.Context, user *model.User) {
	c.Set(ctxUserKey, user)
}
