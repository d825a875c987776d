// Package storage maps the logical media buckets onto an S3-compatible store.
package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/user/dreamyvoice/internal/logger"
	"github.com/user/dreamyvoice/internal/utils"
)

// Bucket is a logical bucket name as it appears in URLs.
type Bucket string

const (
	BucketAvatars Bucket = "avatars"
	BucketCovers  Bucket = "covers"
)

const cleanupTimeout = 30 * time.Second

// ErrObjectNotFound is returned by an ObjectStore when the key does not exist.
var ErrObjectNotFound = errors.New("object not found")

// Object is a readable stored object. Body must be closed by the caller.
type Object struct {
	Body          io.ReadCloser
	ContentType   string
	ContentLength int64
}

// ObjectStore is the subset of the S3 API the gateway relies on.
type ObjectStore interface {
	PutObject(ctx context.Context, bucket, key string, body io.Reader, size int64, contentType string) error
	GetObject(ctx context.Context, bucket, key string) (*Object, error)
	RemoveObject(ctx context.Context, bucket, key string) error
}

// Gateway resolves logical buckets and forwards object operations to the store.
type Gateway struct {
	store   ObjectStore
	buckets map[Bucket]string
}

// NewGateway creates a gateway over store. buckets maps each logical bucket to
// the backing bucket name.
func NewGateway(store ObjectStore, buckets map[Bucket]string) *Gateway {
	return &Gateway{store: store, buckets: buckets}
}

// EnsureBucket validates a bucket name taken from a request.
func (g *Gateway) EnsureBucket(name string) (Bucket, error) {
	b := Bucket(name)
	if _, ok := g.buckets[b]; !ok {
		return "", utils.NotFound("bucket not found")
	}
	return b, nil
}

// MakeObjectKey returns a fresh key for an uploaded file. The original
// filename is kept as a sanitized suffix when present.
func MakeObjectKey(originalFilename string) string {
	id := uuid.NewString()
	name := strings.TrimSpace(originalFilename)
	if name == "" {
		return id
	}
	return utils.CollapseDashes(id + "-" + utils.SanitizeFilename(name))
}

// Upload stores body under key, replacing any existing object.
func (g *Gateway) Upload(ctx context.Context, bucket Bucket, key string, body io.Reader, size int64, contentType string) error {
	backing, err := g.resolve(bucket)
	if err != nil {
		return err
	}
	if err := g.store.PutObject(ctx, backing, key, body, size, contentType); err != nil {
		return utils.Upstream(err)
	}
	return nil
}

// Delete removes an object.
func (g *Gateway) Delete(ctx context.Context, bucket Bucket, key string) error {
	backing, err := g.resolve(bucket)
	if err != nil {
		return err
	}
	if err := g.store.RemoveObject(ctx, backing, key); err != nil {
		return utils.Upstream(err)
	}
	return nil
}

// DeleteQuietly removes an object that is no longer referenced. It is detached
// from ctx cancellation and failures are only logged.
func (g *Gateway) DeleteQuietly(ctx context.Context, bucket Bucket, key string) {
	if key == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
	defer cancel()
	if err := g.Delete(ctx, bucket, key); err != nil {
		logger.Warningf("storage: failed to delete %s/%s: %v", bucket, key, err)
	}
}

// Get opens an object for streaming.
func (g *Gateway) Get(ctx context.Context, bucket Bucket, key string) (*Object, error) {
	backing, err := g.resolve(bucket)
	if err != nil {
		return nil, err
	}
	obj, err := g.store.GetObject(ctx, backing, key)
	if errors.Is(err, ErrObjectNotFound) {
		return nil, utils.NotFound("file not found")
	}
	if err != nil {
		return nil, utils.Upstream(err)
	}
	return obj, nil
}

func (g *Gateway) resolve(bucket Bucket) (string, error) {
	backing, ok := g.buckets[bucket]
	if !ok {
		return "", utils.NotFound("bucket not found")
	}
	return backing, nil
}
