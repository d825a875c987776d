package router

import (
	"context"
	"errors"

	"github.com/stretchr/testify/mock"
	"github.com/user/dreamyvoice/internal/model"
	"github.com/user/dreamyvoice/internal/repository"
	"github.com/user/dreamyvoice/internal/service"
	"github.com/user/dreamyvoice/internal/storage"
)

// fakeResolver maps cookie values straight to sessions.
type fakeResolver map[string]*model.Session

func (f fakeResolver) ParseToken(token string) (string, error) {
	if _, ok := f[token]; !ok {
		return "", errors.New("token is malformed")
	}
	return token, nil
}

func (f fakeResolver) Resolve(_ context.Context, id string) (*model.Session, error) {
	return f[id], nil
}

type MockAuth struct{ mock.Mock }

func (m *MockAuth) Register(ctx context.Context, username, password string) (*model.User, error) {
	args := m.Called(ctx, username, password)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *MockAuth) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	args := m.Called(ctx, username, password)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

type MockSessions struct{ mock.Mock }

func (m *MockSessions) Create(ctx context.Context, userID, userAgent, ip string) (*model.Session, error) {
	args := m.Called(ctx, userID, userAgent, ip)
	session, _ := args.Get(0).(*model.Session)
	return session, args.Error(1)
}

func (m *MockSessions) SignToken(session *model.Session) (string, error) {
	args := m.Called(session)
	return args.String(0), args.Error(1)
}

func (m *MockSessions) Delete(ctx context.Context, id string) {
	m.Called(ctx, id)
}

type MockCatalog struct{ mock.Mock }

func (m *MockCatalog) ListTitles(ctx context.Context, viewer *model.User, includeDrafts bool, filter service.TitleFilter) ([]model.TitleView, error) {
	args := m.Called(ctx, viewer, includeDrafts, filter)
	titles, _ := args.Get(0).([]model.TitleView)
	return titles, args.Error(1)
}

func (m *MockCatalog) GetTitle(ctx context.Context, viewer *model.User, slug string) (*model.TitleView, error) {
	args := m.Called(ctx, viewer, slug)
	title, _ := args.Get(0).(*model.TitleView)
	return title, args.Error(1)
}

func (m *MockCatalog) RandomSlug(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockCatalog) CreateTitle(ctx context.Context, in service.TitleInput) (*model.TitleView, error) {
	args := m.Called(ctx, in)
	title, _ := args.Get(0).(*model.TitleView)
	return title, args.Error(1)
}

func (m *MockCatalog) UpdateTitle(ctx context.Context, slug string, u service.TitleUpdate) (*model.TitleView, error) {
	args := m.Called(ctx, slug, u)
	title, _ := args.Get(0).(*model.TitleView)
	return title, args.Error(1)
}

func (m *MockCatalog) DeleteTitle(ctx context.Context, slug string) error {
	return m.Called(ctx, slug).Error(0)
}

func (m *MockCatalog) ListComments(ctx context.Context, viewer *model.User, slug string) ([]model.CommentView, error) {
	args := m.Called(ctx, viewer, slug)
	comments, _ := args.Get(0).([]model.CommentView)
	return comments, args.Error(1)
}

func (m *MockCatalog) CreateComment(ctx context.Context, author *model.User, slug, body string) (*model.CommentView, error) {
	args := m.Called(ctx, author, slug, body)
	comment, _ := args.Get(0).(*model.CommentView)
	return comment, args.Error(1)
}

func (m *MockCatalog) ModerateComment(ctx context.Context, id string, status model.CommentStatus) (*model.CommentView, error) {
	args := m.Called(ctx, id, status)
	comment, _ := args.Get(0).(*model.CommentView)
	return comment, args.Error(1)
}

func (m *MockCatalog) CreateEpisode(ctx context.Context, slug string, e repository.EpisodeMutation) (*model.EpisodeView, error) {
	args := m.Called(ctx, slug, e)
	episode, _ := args.Get(0).(*model.EpisodeView)
	return episode, args.Error(1)
}

func (m *MockCatalog) UpdateEpisode(ctx context.Context, slug, id string, e repository.EpisodeMutation) (*model.EpisodeView, error) {
	args := m.Called(ctx, slug, id, e)
	episode, _ := args.Get(0).(*model.EpisodeView)
	return episode, args.Error(1)
}

func (m *MockCatalog) UpsertEpisode(ctx context.Context, slug string, number int, e repository.EpisodeMutation) (*model.EpisodeView, bool, error) {
	args := m.Called(ctx, slug, number, e)
	episode, _ := args.Get(0).(*model.EpisodeView)
	return episode, args.Bool(1), args.Error(2)
}

func (m *MockCatalog) BulkCreateEpisodes(ctx context.Context, slug string, es []repository.EpisodeMutation) ([]model.EpisodeView, error) {
	args := m.Called(ctx, slug, es)
	episodes, _ := args.Get(0).([]model.EpisodeView)
	return episodes, args.Error(1)
}

func (m *MockCatalog) DeleteEpisode(ctx context.Context, slug, id string) error {
	return m.Called(ctx, slug, id).Error(0)
}

type MockMedia struct{ mock.Mock }

func (m *MockMedia) Upload(ctx context.Context, user *model.User, bucket, key string, file service.Upload) (storage.Bucket, string, error) {
	args := m.Called(ctx, user, bucket, key, file)
	b, _ := args.Get(0).(storage.Bucket)
	return b, args.String(1), args.Error(2)
}

func (m *MockMedia) Delete(ctx context.Context, user *model.User, bucket, key string) error {
	return m.Called(ctx, user, bucket, key).Error(0)
}

func (m *MockMedia) Open(ctx context.Context, bucket, key string) (*storage.Object, error) {
	args := m.Called(ctx, bucket, key)
	obj, _ := args.Get(0).(*storage.Object)
	return obj, args.Error(1)
}

type MockAdmin struct{ mock.Mock }

func (m *MockAdmin) Stats(ctx context.Context) (*service.Stats, error) {
	args := m.Called(ctx)
	stats, _ := args.Get(0).(*service.Stats)
	return stats, args.Error(1)
}

func (m *MockAdmin) Records(ctx context.Context, name string) (interface{}, error) {
	args := m.Called(ctx, name)
	return args.Get(0), args.Error(1)
}

func (m *MockAdmin) DeleteUser(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type stubMetadata struct{}

func (stubMetadata) Genres(context.Context) ([]string, error) { return []string{"Драма", "Комедия"}, nil }
func (stubMetadata) Tags(context.Context) ([]string, error)   { return []string{"Школа"}, nil }
func (stubMetadata) AgeRatings() []string                    { return []string{"G", "PG"} }
