package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/dreamyvoice/internal/utils"
)

func TestProfileUpdateUsername(t *testing.T) {
	repos := newTestRepos(t)
	auth := newFastAuth(repos)
	profile := NewProfileService(repos.User, newTestGateway(newMemStore()))
	ctx := context.Background()

	kira := mustRegister(t, auth, "kira")
	mustRegister(t, auth, "taken")

	updated, err := profile.Update(ctx, kira, ProfileUpdate{Username: ptr("  kira-chan ")})
	require.NoError(t, err)
	assert.Equal(t, "kira-chan", updated.Username)

	_, err = profile.Update(ctx, updated, ProfileUpdate{Username: ptr("taken")})
	assert.True(t, utils.IsKind(err, utils.KindConflict))

	_, err = profile.Update(ctx, updated, ProfileUpdate{Username: ptr("ab")})
	assert.True(t, utils.IsKind(err, utils.KindValidation))

	same, err := profile.Update(ctx, updated, ProfileUpdate{Username: ptr("kira-chan")})
	require.NoError(t, err)
	assert.Equal(t, updated.ID, same.ID)
}

func TestProfileUpdateAvatarReplacesOld(t *testing.T) {
	repos := newTestRepos(t)
	store := newMemStore()
	profile := NewProfileService(repos.User, newTestGateway(store))
	ctx := context.Background()
	kira := mustRegister(t, newFastAuth(repos), "kira")

	first, err := profile.Update(ctx, kira, ProfileUpdate{Avatar: ptr(upload("a.png", "one", "image/png"))})
	require.NoError(t, err)
	require.NotNil(t, first.AvatarKey)
	oldKey := *first.AvatarKey
	assert.True(t, store.Has("avatars/"+oldKey))

	second, err := profile.Update(ctx, first, ProfileUpdate{Avatar: ptr(upload("b.webp", "two", "image/webp"))})
	require.NoError(t, err)
	require.NotNil(t, second.AvatarKey)
	assert.NotEqual(t, oldKey, *second.AvatarKey)
	assert.True(t, store.Has("avatars/"+*second.AvatarKey))
	assert.False(t, store.Has("avatars/"+oldKey))

	reloaded, err := repos.User.FindByID(ctx, kira.ID)
	require.NoError(t, err)
	assert.Equal(t, *second.AvatarKey, *reloaded.AvatarKey)
}

func TestProfileAvatarRules(t *testing.T) {
	repos := newTestRepos(t)
	profile := NewProfileService(repos.User, newTestGateway(newMemStore()))
	ctx := context.Background()
	kira := mustRegister(t, newFastAuth(repos), "kira")

	_, err := profile.Update(ctx, kira, ProfileUpdate{Avatar: ptr(upload("a.gif", "gif", "image/gif"))})
	assert.True(t, utils.IsKind(err, utils.KindValidation))

	big := upload("a.png", "x", "image/png")
	big.Size = MaxAvatarSize + 1
	_, err = profile.Update(ctx, kira, ProfileUpdate{Avatar: &big})
	assert.True(t, utils.IsKind(err, utils.KindValidation))
}
