package service

import (
	"context"
	"io"
	"strings"

	"github.com/user/dreamyvoice/internal/model"
	"github.com/user/dreamyvoice/internal/storage"
	"github.com/user/dreamyvoice/internal/utils"
)

// MaxMediaUpload caps files uploaded through the media endpoints.
const MaxMediaUpload = 20 << 20

// Upload describes one uploaded file.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// MediaService applies the upload policy on top of the storage gateway:
// any signed-in user may write avatars, only admins may write covers, and
// reads are public.
type MediaService struct {
	gateway *storage.Gateway
}

func NewMediaService(gateway *storage.Gateway) *MediaService {
	return &MediaService{gateway: gateway}
}

// CanWrite reports whether user may upload to or delete from bucket.
func CanWrite(user *model.User, bucket storage.Bucket) error {
	if user == nil {
		return utils.Unauthorized("authentication required")
	}
	if bucket == storage.BucketCovers && !user.IsAdmin() {
		return utils.Forbidden("only admins may upload covers")
	}
	return nil
}

// Upload stores a file and returns its key. An empty key gets a fresh one.
func (s *MediaService) Upload(ctx context.Context, user *model.User, bucketName, key string, file Upload) (storage.Bucket, string, error) {
	bucket, err := s.gateway.EnsureBucket(bucketName)
	if err != nil {
		return "", "", err
	}
	if err := CanWrite(user, bucket); err != nil {
		return "", "", err
	}
	if file.Size > MaxMediaUpload {
		return "", "", utils.Validation("file is too large", utils.FieldError{Field: "file", Message: "must be at most 20 MiB"})
	}

	key = strings.TrimSpace(key)
	if key == "" {
		key = storage.MakeObjectKey(file.Filename)
	}
	if err := s.gateway.Upload(ctx, bucket, key, file.Body, file.Size, file.ContentType); err != nil {
		return "", "", err
	}
	return bucket, key, nil
}

// Delete removes an object under the same policy as uploads.
func (s *MediaService) Delete(ctx context.Context, user *model.User, bucketName, key string) error {
	bucket, err := s.gateway.EnsureBucket(bucketName)
	if err != nil {
		return err
	}
	if err := CanWrite(user, bucket); err != nil {
		return err
	}
	return s.gateway.Delete(ctx, bucket, key)
}

// Open streams an object to anyone.
func (s *MediaService) Open(ctx context.Context, bucketName, key string) (*storage.Object, error) {
	bucket, err := s.gateway.EnsureBucket(bucketName)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(key) == "" {
		return nil, utils.Validation("key is required", utils.FieldError{Field: "key", Message: "is required"})
	}
	return s.gateway.Get(ctx, bucket, key)
}
