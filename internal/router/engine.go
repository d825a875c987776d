package router

import (
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/user/dreamyvoice/internal/handler"
	"github.com/user/dreamyvoice/internal/middleware"
	"github.com/user/dreamyvoice/internal/utils"
)

const flashSessionName = "dreamyvoice_flash"

// Options wires the request pipeline.
type Options struct {
	Sessions    middleware.SessionResolver
	Cookie      middleware.SessionCookie
	FlashSecret string
}

// New builds the API engine: recovery, request log, gzip (media excluded),
// flash cookies, error funnel and session resolution run in that order
// before any route.
func New(h *handler.Handler, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/media"})))

	store := cookie.NewStore([]byte(opts.FlashSecret))
	store.Options(sessions.Options{
		Path:     "/admin",
		MaxAge:   600,
		HttpOnly: true,
		Secure:   opts.Cookie.Secure,
		SameSite: opts.Cookie.SameSite,
	})
	r.Use(sessions.Sessions(flashSessionName, store))

	r.Use(middleware.ErrorHandler())
	r.Use(middleware.Session(opts.Sessions, opts.Cookie))

	r.HTMLRender = LoadTemplates()
	r.NoRoute(func(c *gin.Context) {
		utils.Error(c, http.StatusNotFound, "not found")
	})

	RegisterRoutes(r, h)
	return r
}
