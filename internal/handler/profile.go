package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/user/dreamyvoice/internal/middleware"
	"github.com/user/dreamyvoice/internal/model"
	"github.com/user/dreamyvoice/internal/service"
	"github.com/user/dreamyvoice/internal/utils"
)

type profileRequest struct {
	Username *string `json:"username" form:"username"`
}

// GetProfile GET /profile
func (h *Handler) GetProfile(c *gin.Context) {
	utils.Success(c, gin.H{"user": model.ToPublicUser(middleware.CurrentUser(c))})
}

// UpdateProfile PATCH /profile accepts JSON or a multipart form with an
// optional "avatar" file.
func (h *Handler) UpdateProfile(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, service.MaxAvatarSize+1<<20)

	var req profileRequest
	if c.ContentType() == gin.MIMEJSON {
		if !bind(c, &req) {
			return
		}
	} else if username, ok := c.GetPostForm("username"); ok {
		req.Username = &username
	}

	update := service.ProfileUpdate{Username: req.Username}
	if fh, err := c.FormFile("avatar"); err == nil {
		file, err := fh.Open()
		if err != nil {
			c.Error(utils.Upstream(err))
			return
		}
		defer file.Close()
		update.Avatar = &service.Upload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Body:        file,
		}
	}

	user, err := h.Profile.Update(c.Request.Context(), middleware.CurrentUser(c), update)
	if err != nil {
		c.Error(err)
		return
	}
	middleware.SetCurrentUser(c, user)
	utils.Success(c, gin.H{"user": model.ToPublicUser(user)})
}
