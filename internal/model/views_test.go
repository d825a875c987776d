package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToEpisodeViewHidesDraftPlayer(t *testing.T) {
	draft := &Episode{ID: "e1", Number: 1, Name: "Pilot", PlayerSrc: "https://kodik.info/1", Published: false}

	public := ToEpisodeView(draft, false)
	assert.Nil(t, public.PlayerSrc)

	raw, err := json.Marshal(public)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "playerSrc")

	admin := ToEpisodeView(draft, true)
	require.NotNil(t, admin.PlayerSrc)
	assert.Equal(t, "https://kodik.info/1", *admin.PlayerSrc)
}

func TestToTitleView(t *testing.T) {
	released := time.Date(2019, 4, 6, 0, 0, 0, 0, time.UTC)
	rating := "PG-13"
	title := &Title{
		ID:                  "t1",
		Slug:                "show-a",
		Name:                "Show A",
		Published:           true,
		AgeRating:           &rating,
		OriginalReleaseDate: &released,
		Genres:              []Genre{{Name: "драма"}},
		Tags:                []Tag{{Name: "школа"}, {Name: "магия"}},
		Episodes: []Episode{
			{ID: "e1", Number: 1, Name: "One", PlayerSrc: "https://kodik.info/1", Published: true},
		},
	}

	v := ToTitleView(title, false)
	assert.Equal(t, []string{"драма"}, v.Genres)
	assert.Equal(t, []string{"школа", "магия"}, v.Tags)
	require.NotNil(t, v.OriginalReleaseDate)
	assert.Equal(t, "2019-04-06", *v.OriginalReleaseDate)
	require.Len(t, v.Episodes, 1)
	assert.NotNil(t, v.Episodes[0].PlayerSrc)
}

func TestToTitleViewEmptyCollections(t *testing.T) {
	raw, err := json.Marshal(ToTitleView(&Title{ID: "t1"}, false))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"episodes":[]`)
	assert.Contains(t, string(raw), `"genres":[]`)
	assert.Contains(t, string(raw), `"originalReleaseDate":null`)
}

func TestToCommentViewStatusForModerators(t *testing.T) {
	c := &Comment{ID: "c1", Body: "nice", Status: CommentPending, User: User{ID: "u1", Username: "kira"}}

	public := ToCommentView(c, false)
	assert.Nil(t, public.Status)
	assert.Equal(t, "kira", public.Author.Username)

	mod := ToCommentView(c, true)
	require.NotNil(t, mod.Status)
	assert.Equal(t, CommentPending, *mod.Status)
}

func TestPublicUserNeverCarriesHash(t *testing.T) {
	u := &User{ID: "u1", Username: "kira", PasswordHash: "$2a$12$secret", Role: RoleAdmin}
	raw, err := json.Marshal(ToPublicUser(u))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret")
	assert.NotContains(t, string(raw), "password")
}

func TestIsAdminNilSafe(t *testing.T) {
	var u *User
	assert.False(t, u.IsAdmin())
	assert.True(t, (&User{Role: RoleAdmin}).IsAdmin())
	assert.False(t, (&User{Role: RoleUser}).IsAdmin())
}

func TestSessionExpiredAt(t *testing.T) {
	now := time.Now()
	s := &Session{ExpiresAt: now}
	assert.False(t, s.ExpiredAt(now))
	assert.True(t, s.ExpiredAt(now.Add(time.Nanosecond)))
}

func TestIsAgeRating(t *testing.T) {
	assert.True(t, IsAgeRating("Rx"))
	assert.False(t, IsAgeRating("RX"))
	assert.False(t, IsAgeRating("NC-17"))
}
