package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/user/dreamyvoice/internal/middleware"
	"github.com/user/dreamyvoice/internal/model"
	"github.com/user/dreamyvoice/internal/repository"
	"github.com/user/dreamyvoice/internal/service"
	"github.com/user/dreamyvoice/internal/storage"
	"github.com/user/dreamyvoice/internal/utils"
)

// AuthService verifies and registers credentials.
type AuthService interface {
	Register(ctx context.Context, username, password string) (*model.User, error)
	Authenticate(ctx context.Context, username, password string) (*model.User, error)
}

// SessionService opens and closes sessions.
type SessionService interface {
	Create(ctx context.Context, userID, userAgent, ip string) (*model.Session, error)
	SignToken(session *model.Session) (string, error)
	Delete(ctx context.Context, id string)
}

// CatalogService serves titles, episodes and comments.
type CatalogService interface {
	ListTitles(ctx context.Context, viewer *model.User, includeDrafts bool, filter service.TitleFilter) ([]model.TitleView, error)
	GetTitle(ctx context.Context, viewer *model.User, slug string) (*model.TitleView, error)
	RandomSlug(ctx context.Context) (string, error)
	CreateTitle(ctx context.Context, in service.TitleInput) (*model.TitleView, error)
	UpdateTitle(ctx context.Context, slug string, u service.TitleUpdate) (*model.TitleView, error)
	DeleteTitle(ctx context.Context, slug string) error

	ListComments(ctx context.Context, viewer *model.User, slug string) ([]model.CommentView, error)
	CreateComment(ctx context.Context, author *model.User, slug, body string) (*model.CommentView, error)
	ModerateComment(ctx context.Context, id string, status model.CommentStatus) (*model.CommentView, error)

	CreateEpisode(ctx context.Context, slug string, m repository.EpisodeMutation) (*model.EpisodeView, error)
	UpdateEpisode(ctx context.Context, slug, id string, m repository.EpisodeMutation) (*model.EpisodeView, error)
	UpsertEpisode(ctx context.Context, slug string, number int, m repository.EpisodeMutation) (*model.EpisodeView, bool, error)
	BulkCreateEpisodes(ctx context.Context, slug string, ms []repository.EpisodeMutation) ([]model.EpisodeView, error)
	DeleteEpisode(ctx context.Context, slug, id string) error
}

// FavoriteService manages favorites of the signed-in user.
type FavoriteService interface {
	List(ctx context.Context, user *model.User) ([]model.FavoriteView, error)
	IsFavorite(ctx context.Context, user *model.User, slug string) (bool, error)
	Add(ctx context.Context, user *model.User, slug string) error
	Remove(ctx context.Context, user *model.User, slug string) error
}

// MediaService stores and streams uploaded files.
type MediaService interface {
	Upload(ctx context.Context, user *model.User, bucket, key string, file service.Upload) (storage.Bucket, string, error)
	Delete(ctx context.Context, user *model.User, bucket, key string) error
	Open(ctx context.Context, bucket, key string) (*storage.Object, error)
}

type ProfileService interface {
	Update(ctx context.Context, user *model.User, u service.ProfileUpdate) (*model.User, error)
}

type TeamService interface {
	List(ctx context.Context) ([]*model.TeamMember, error)
	Create(ctx context.Context, in service.TeamMemberInput) (*model.TeamMember, error)
	Delete(ctx context.Context, id string) error
}

type MetadataService interface {
	Genres(ctx context.Context) ([]string, error)
	Tags(ctx context.Context) ([]string, error)
	AgeRatings() []string
}

type AdminService interface {
	Stats(ctx context.Context) (*service.Stats, error)
	Records(ctx context.Context, name string) (interface{}, error)
	DeleteUser(ctx context.Context, id string) error
}

// Handler holds the HTTP handlers and their dependencies.
type Handler struct {
	Auth      AuthService
	Sessions  SessionService
	Catalog   CatalogService
	Favorites FavoriteService
	Media     MediaService
	Profile   ProfileService
	Team      TeamService
	Metadata  MetadataService
	Admin     AdminService
	Cookie    middleware.SessionCookie
}

// Health reports that the process is up.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// startSession opens a session for user and writes the cookie.
func (h *Handler) startSession(c *gin.Context, user *model.User) error {
	session, err := h.Sessions.Create(c.Request.Context(), user.ID, c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		return err
	}
	token, err := h.Sessions.SignToken(session)
	if err != nil {
		return utils.Upstream(err)
	}
	h.Cookie.Set(c, token, session.ExpiresAt)
	return nil
}

// endSession deletes the current session, if any, and always clears the cookie.
func (h *Handler) endSession(c *gin.Context) {
	if session := middleware.CurrentSession(c); session != nil {
		h.Sessions.Delete(c.Request.Context(), session.ID)
	}
	h.Cookie.Clear(c)
}

// bind decodes the request body into dst and reports a validation error.
func bind(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBind(dst); err != nil {
		c.Error(utils.FromBinding(err))
		return false
	}
	return true
}
