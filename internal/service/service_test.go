package service

import (
	"bytes"
	"context"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/user/dreamyvoice/internal/model"
	"github.com/user/dreamyvoice/internal/repository"
	"github.com/user/dreamyvoice/internal/storage"
	"github.com/user/dreamyvoice/internal/testutil"
	"golang.org/x/crypto/bcrypt"
)

var testHosts = []string{"kodik.info"}

func newTestRepos(t *testing.T) *repository.Repositories {
	t.Helper()
	return repository.NewRepositories(testutil.NewDB(t, repository.Migrate), testHosts)
}

func newFastAuth(repos *repository.Repositories) *AuthService {
	s := NewAuthService(repos.User)
	s.cost = bcrypt.MinCost
	return s
}

func mustRegister(t *testing.T, auth *AuthService, username string) *model.User {
	t.Helper()
	u, err := auth.Register(context.Background(), username, "secret123")
	require.NoError(t, err)
	return u
}

func ptr[T any](v T) *T {
	return &v
}

// cleaner records best-effort deletes.
type cleaner struct {
	mu      sync.Mutex
	deleted []string
}

func (c *cleaner) DeleteQuietly(_ context.Context, bucket storage.Bucket, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleted = append(c.deleted, string(bucket)+"/"+key)
}

func (c *cleaner) Deleted() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.deleted...)
}

type memStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
}

func newMemStore() *memStore {
	return &memStore{objects: map[string][]byte{}, types: map[string]string{}}
}

func (m *memStore) PutObject(_ context.Context, bucket, key string, body io.Reader, _ int64, contentType string) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[bucket+"/"+key] = data
	m.types[bucket+"/"+key] = contentType
	return nil
}

func (m *memStore) GetObject(_ context.Context, bucket, key string) (*storage.Object, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[bucket+"/"+key]
	if !ok {
		return nil, storage.ErrObjectNotFound
	}
	return &storage.Object{
		Body:          io.NopCloser(bytes.NewReader(data)),
		ContentType:   m.types[bucket+"/"+key],
		ContentLength: int64(len(data)),
	}, nil
}

func (m *memStore) RemoveObject(_ context.Context, bucket, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, bucket+"/"+key)
	return nil
}

func (m *memStore) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[key]
	return ok
}

func newTestGateway(store storage.ObjectStore) *storage.Gateway {
	return storage.NewGateway(store, map[storage.Bucket]string{
		storage.BucketAvatars: "avatars",
		storage.BucketCovers:  "covers",
	})
}
