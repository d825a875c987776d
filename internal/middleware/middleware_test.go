package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/user/dreamyvoice/internal/model"
	"github.com/user/dreamyvoice/internal/utils"
)

type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) ParseToken(token string) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}

func (m *MockResolver) Resolve(ctx context.Context, id string) (*model.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}

var testCookie = SessionCookie{Name: "dv_session", SameSite: http.SameSiteLaxMode}

func setupRouter(resolver SessionResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler())
	r.Use(Session(resolver, testCookie))
	r.GET("/whoami", func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, user.Username)
	})
	r.GET("/private", RequireAuth(), func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/admin", RequireAdmin(), func(c *gin.Context) { c.String(http.StatusOK, "dashboard") })
	return r
}

func request(r http.Handler, path, cookie string, header ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: testCookie.Name, Value: cookie})
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func clearsCookie(w *httptest.ResponseRecorder) bool {
	for _, c := range w.Result().Cookies() {
		if c.Name == testCookie.Name && c.MaxAge < 0 {
			return true
		}
	}
	return false
}

func activeSession(role model.Role) *model.Session {
	return &model.Session{
		ID:        "s1",
		ExpiresAt: time.Now().Add(time.Hour),
		User:      model.User{ID: "u1", Username: "kira", Role: role},
	}
}

func TestSessionAnonymousWithoutCookie(t *testing.T) {
	resolver := new(MockResolver)
	w := request(setupRouter(resolver), "/whoami", "")

	assert.Equal(t, "anonymous", w.Body.String())
	resolver.AssertNotCalled(t, "ParseToken", mock.Anything)
}

func TestSessionResolvesUser(t *testing.T) {
	resolver := new(MockResolver)
	resolver.On("ParseToken", "signed").Return("s1", nil)
	resolver.On("Resolve", mock.Anything, "s1").Return(activeSession(model.RoleUser), nil)

	w := request(setupRouter(resolver), "/whoami", "signed")
	assert.Equal(t, "kira", w.Body.String())
	assert.False(t, clearsCookie(w))
	resolver.AssertExpectations(t)
}

func TestSessionTamperedCookieIsCleared(t *testing.T) {
	resolver := new(MockResolver)
	resolver.On("ParseToken", "forged").Return("", errors.New("signature is invalid"))

	w := request(setupRouter(resolver), "/whoami", "forged")
	assert.Equal(t, "anonymous", w.Body.String())
	assert.True(t, clearsCookie(w))
	resolver.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
}

func TestSessionExpiredCookieIsCleared(t *testing.T) {
	resolver := new(MockResolver)
	resolver.On("ParseToken", "old").Return("s1", nil)
	resolver.On("Resolve", mock.Anything, "s1").Return(nil, nil)

	w := request(setupRouter(resolver), "/private", "old")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.True(t, clearsCookie(w))
}

func TestSessionStoreFailureIs500(t *testing.T) {
	resolver := new(MockResolver)
	resolver.On("ParseToken", "signed").Return("s1", nil)
	resolver.On("Resolve", mock.Anything, "s1").Return(nil, utils.Upstream(errors.New("db down")))

	w := request(setupRouter(resolver), "/whoami", "signed")
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body utils.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "internal server error", body.Message)
	assert.NotContains(t, w.Body.String(), "db down")
}

func TestRequireAuth(t *testing.T) {
	resolver := new(MockResolver)
	resolver.On("ParseToken", "signed").Return("s1", nil)
	resolver.On("Resolve", mock.Anything, "s1").Return(activeSession(model.RoleUser), nil)
	r := setupRouter(resolver)

	w := request(r, "/private", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)

	w = request(r, "/private", "signed")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	resolver := new(MockResolver)
	resolver.On("ParseToken", "user").Return("s1", nil)
	resolver.On("ParseToken", "admin").Return("s2", nil)
	resolver.On("Resolve", mock.Anything, "s1").Return(activeSession(model.RoleUser), nil)
	resolver.On("Resolve", mock.Anything, "s2").Return(activeSession(model.RoleAdmin), nil)
	r := setupRouter(resolver)

	w := request(r, "/admin", "user", "Accept", "application/json")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = request(r, "/admin", "", "Accept", "text/html,application/xhtml+xml")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, AdminLoginPath, w.Header().Get("Location"))

	w = request(r, "/admin", "user", "Accept", "*/*")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = request(r, "/admin", "admin")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "dashboard", w.Body.String())
}

func TestSessionCookieAttributes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	cookie := SessionCookie{Name: "dv_session", Secure: true, SameSite: http.SameSiteStrictMode}
	cookie.Set(c, "token", time.Now().Add(time.Hour))

	header := w.Header().Get("Set-Cookie")
	assert.Contains(t, header, "dv_session=token")
	assert.Contains(t, header, "HttpOnly")
	assert.Contains(t, header, "Secure")
	assert.Contains(t, header, "SameSite=Strict")
	assert.True(t, strings.Contains(header, "Max-Age=3600") || strings.Contains(header, "Max-Age=3599"), header)
}

func TestRecoveryRendersJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Recovery())
	r.GET("/panic", func(c *gin.Context) { panic("kaboom") })

	w := request(r, "/panic", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal server error")
	assert.NotContains(t, w.Body.String(), "kaboom")
}

func TestErrorHandlerRendersValidationFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/bad", func(c *gin.Context) {
		c.Error(utils.Validation("invalid title", utils.FieldError{Field: "slug", Message: "is required"}))
	})

	w := request(r, "/bad", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body utils.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "invalid title", body.Message)
	require.Len(t, body.Fields, 1)
	assert.Equal(t, "slug", body.Fields[0].Field)
}
