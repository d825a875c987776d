package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/dreamyvoice/internal/model"
)

func TestCommentModerationVisibility(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()
	u := mustUser(t, repos, "kira")
	title := mustTitle(t, repos, "show-a", true)

	pending := &model.Comment{TitleID: title.ID, UserID: u.ID, Body: "first", Status: model.CommentPending}
	require.NoError(t, repos.Comment.Create(ctx, pending))
	assert.Equal(t, "kira", pending.User.Username)

	approved := &model.Comment{TitleID: title.ID, UserID: u.ID, Body: "second", Status: model.CommentApproved}
	require.NoError(t, repos.Comment.Create(ctx, approved))

	visible, err := repos.Comment.ListByTitle(ctx, title.ID, false)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "second", visible[0].Body)
	assert.Equal(t, "kira", visible[0].User.Username)

	all, err := repos.Comment.ListByTitle(ctx, title.ID, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	n, err := repos.Comment.CountByStatus(ctx, model.CommentPending)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestCommentSetStatus(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()
	u := mustUser(t, repos, "kira")
	title := mustTitle(t, repos, "show-a", true)
	c := &model.Comment{TitleID: title.ID, UserID: u.ID, Body: "hello", Status: model.CommentPending}
	require.NoError(t, repos.Comment.Create(ctx, c))

	updated, err := repos.Comment.SetStatus(ctx, c.ID, model.CommentRejected)
	require.NoError(t, err)
	assert.Equal(t, model.CommentRejected, updated.Status)
	assert.Equal(t, "kira", updated.User.Username)

	_, err = repos.Comment.SetStatus(ctx, "missing", model.CommentApproved)
	assert.ErrorIs(t, err, ErrNotFound)
}
