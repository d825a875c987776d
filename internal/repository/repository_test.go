package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/user/dreamyvoice/internal/model"
	"github.com/user/dreamyvoice/internal/testutil"
)

var testHosts = []string{"kodik.info", "video.sibnet.ru"}

func newTestRepos(t *testing.T) *Repositories {
	t.Helper()
	return NewRepositories(testutil.NewDB(t, Migrate), testHosts)
}

func mustUser(t *testing.T, repos *Repositories, username string) *model.User {
	t.Helper()
	u, err := repos.User.Create(context.Background(), username, "hash")
	require.NoError(t, err)
	return u
}

func mustTitle(t *testing.T, repos *Repositories, slug string, published bool) *model.Title {
	t.Helper()
	title := &model.Title{Slug: slug, Name: "Title " + slug, Published: published}
	require.NoError(t, repos.Title.Create(context.Background(), title))
	return title
}

func ptr[T any](v T) *T {
	return &v
}
