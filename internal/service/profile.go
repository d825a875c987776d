package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/user/dreamyvoice/internal/model"
	"github.com/user/dreamyvoice/internal/repository"
	"github.com/user/dreamyvoice/internal/storage"
	"github.com/user/dreamyvoice/internal/utils"
)

// MaxAvatarSize caps avatar uploads.
const MaxAvatarSize = 5 << 20

var avatarTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/webp": true,
}

// ProfileService updates the signed-in user's own profile.
type ProfileService struct {
	users   *repository.UserRepository
	gateway *storage.Gateway
}

func NewProfileService(users *repository.UserRepository, gateway *storage.Gateway) *ProfileService {
	return &ProfileService{users: users, gateway: gateway}
}

// ProfileUpdate carries the optional username and avatar changes.
type ProfileUpdate struct {
	Username *string
	Avatar   *Upload
}

// Update applies u to user. A new avatar is stored under a fresh key before
// the old one is removed best-effort.
func (s *ProfileService) Update(ctx context.Context, user *model.User, u ProfileUpdate) (*model.User, error) {
	updated := *user
	changed := false

	if u.Username != nil {
		username := strings.TrimSpace(*u.Username)
		if n := utf8.RuneCountInString(username); n < 3 || n > 32 {
			return nil, utils.Validation("invalid profile", utils.FieldError{Field: "username", Message: "must be between 3 and 32 characters"})
		}
		if username != user.Username {
			if _, err := s.users.FindByUsername(ctx, username); err == nil {
				return nil, utils.Conflict("username is already taken")
			} else if !errors.Is(err, repository.ErrNotFound) {
				return nil, utils.Upstream(err)
			}
			updated.Username = username
			changed = true
		}
	}

	var oldAvatar string
	if u.Avatar != nil {
		if !avatarTypes[u.Avatar.ContentType] {
			return nil, utils.Validation("invalid avatar", utils.FieldError{Field: "avatar", Message: "only PNG, JPEG or WEBP images are allowed"})
		}
		if u.Avatar.Size > MaxAvatarSize {
			return nil, utils.Validation("invalid avatar", utils.FieldError{Field: "avatar", Message: "must be at most 5 MiB"})
		}
		key := storage.MakeObjectKey(u.Avatar.Filename)
		if err := s.gateway.Upload(ctx, storage.BucketAvatars, key, u.Avatar.Body, u.Avatar.Size, u.Avatar.ContentType); err != nil {
			return nil, err
		}
		if user.AvatarKey != nil {
			oldAvatar = *user.AvatarKey
		}
		updated.AvatarKey = &key
		changed = true
	}

	if !changed {
		return user, nil
	}
	if err := s.users.UpdateProfile(ctx, &updated); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, utils.Conflict("username is already taken")
		}
		return nil, utils.Upstream(err)
	}
	if oldAvatar != "" {
		s.gateway.DeleteQuietly(ctx, storage.BucketAvatars, oldAvatar)
	}
	return &updated, nil
}
