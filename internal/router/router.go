package router

import (
	"github.com/gin-gonic/gin"
	"github.com/user/dreamyvoice/internal/handler"
	"github.com/user/dreamyvoice/internal/middleware"
)

// RegisterRoutes mounts every API route. The session middleware must already
// be installed on r.
func RegisterRoutes(r *gin.Engine, h *handler.Handler) {
	handler.RegisterValidators()

	r.GET("/health", h.Health)

	// ==================== auth ====================
	auth := r.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
		auth.GET("/me", h.Me)
	}

	// ==================== catalog ====================
	titles := r.Group("/titles")
	{
		titles.GET("", h.ListTitles)
		titles.GET("/random", h.RandomTitle)
		titles.GET("/:slug", h.GetTitle)
		titles.POST("", middleware.RequireAdmin(), h.CreateTitle)
		titles.PATCH("/:slug", middleware.RequireAdmin(), h.UpdateTitle)
		titles.DELETE("/:slug", middleware.RequireAdmin(), h.DeleteTitle)

		titles.GET("/:slug/comments", h.ListComments)
		titles.POST("/:slug/comments", middleware.RequireAuth(), h.CreateComment)

		episodes := titles.Group("/:slug/episodes", middleware.RequireAdmin())
		{
			episodes.POST("", h.CreateEpisode)
			episodes.POST("/bulk", h.BulkCreateEpisodes)
			episodes.PUT("/number/:number", h.UpsertEpisode)
			episodes.PATCH("/:id", h.UpdateEpisode)
			episodes.DELETE("/:id", h.DeleteEpisode)
		}
	}

	metadata := r.Group("/metadata")
	{
		metadata.GET("/genres", h.Genres)
		metadata.GET("/tags", h.Tags)
		metadata.GET("/age-ratings", h.AgeRatings)
	}

	team := r.Group("/team-members")
	{
		team.GET("", h.ListTeamMembers)
		team.POST("", middleware.RequireAdmin(), h.CreateTeamMember)
		team.DELETE("/:id", middleware.RequireAdmin(), h.DeleteTeamMember)
	}

	// ==================== media ====================
	media := r.Group("/media")
	{
		media.GET("/:bucket/*key", h.GetMedia)
		media.POST("/:bucket", middleware.RequireAuth(), h.UploadMedia)
		media.DELETE("/:bucket/*key", middleware.RequireAuth(), h.DeleteMedia)
	}

	// ==================== signed-in user ====================
	profile := r.Group("/profile", middleware.RequireAuth())
	{
		profile.GET("", h.GetProfile)
		profile.PATCH("", h.UpdateProfile)
	}

	favorites := r.Group("/favorites", middleware.RequireAuth())
	{
		favorites.GET("", h.ListFavorites)
		favorites.GET("/:slug", h.GetFavorite)
		favorites.POST("/:slug", h.AddFavorite)
		favorites.DELETE("/:slug", h.RemoveFavorite)
	}

	// ==================== admin ====================
	adminAuth := r.Group("/admin/auth")
	{
		adminAuth.GET("/login", h.AdminLoginPage)
		adminAuth.POST("/login", h.AdminLogin)
		adminAuth.POST("/logout", h.AdminLogout)
	}

	admin := r.Group("/admin", middleware.RequireAdmin())
	{
		admin.GET("", h.AdminDashboard)
		admin.GET("/resources", h.AdminResources)
		admin.GET("/resources/:name", h.AdminRecords)
		admin.PATCH("/comments/:id", h.AdminModerateComment)
		admin.DELETE("/users/:id", h.AdminDeleteUser)
	}
}
