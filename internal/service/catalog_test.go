package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/dreamyvoice/internal/model"
	"github.com/user/dreamyvoice/internal/repository"
	"github.com/user/dreamyvoice/internal/utils"
)

type catalogFixture struct {
	repos   *repository.Repositories
	catalog *CatalogService
	objects *cleaner
	admin   *model.User
	viewer  *model.User
}

func newCatalogFixture(t *testing.T) *catalogFixture {
	t.Helper()
	repos := newTestRepos(t)
	auth := newFastAuth(repos)
	objects := &cleaner{}
	return &catalogFixture{
		repos:   repos,
		catalog: NewCatalogService(repos, objects),
		objects: objects,
		admin:   mustRegister(t, auth, "admin"),
		viewer:  mustRegister(t, auth, "viewer"),
	}
}

func (f *catalogFixture) title(t *testing.T, slug string, published bool) *model.TitleView {
	t.Helper()
	v, err := f.catalog.CreateTitle(context.Background(), TitleInput{Slug: slug, Name: "Title " + slug, Published: published})
	require.NoError(t, err)
	return v
}

func episodeInput(n int, published bool) repository.EpisodeMutation {
	return repository.EpisodeMutation{
		Number:    ptr(n),
		Name:      ptr("Episode"),
		PlayerSrc: ptr("https://kodik.info/e"),
		Published: ptr(published),
	}
}

func TestListTitlesDraftVisibility(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()
	f.title(t, "public-show", true)
	f.title(t, "draft-show", false)

	anon, err := f.catalog.ListTitles(ctx, nil, true, TitleFilter{})
	require.NoError(t, err)
	assert.Len(t, anon, 1)

	viewer, err := f.catalog.ListTitles(ctx, f.viewer, true, TitleFilter{})
	require.NoError(t, err)
	assert.Len(t, viewer, 1, "a non-admin asking for drafts gets the public list")

	adminDefault, err := f.catalog.ListTitles(ctx, f.admin, false, TitleFilter{})
	require.NoError(t, err)
	assert.Len(t, adminDefault, 1)

	adminDrafts, err := f.catalog.ListTitles(ctx, f.admin, true, TitleFilter{})
	require.NoError(t, err)
	assert.Len(t, adminDrafts, 2)
}

func TestGetTitleHidesDrafts(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()
	f.title(t, "draft-show", false)

	_, err := f.catalog.GetTitle(ctx, f.viewer, "draft-show")
	assert.True(t, utils.IsKind(err, utils.KindNotFound))

	v, err := f.catalog.GetTitle(ctx, f.admin, "DRAFT-SHOW")
	require.NoError(t, err)
	assert.Equal(t, "draft-show", v.Slug)
}

func TestGetTitleDraftEpisodes(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()
	f.title(t, "show-a", true)
	_, err := f.catalog.CreateEpisode(ctx, "show-a", episodeInput(1, true))
	require.NoError(t, err)
	_, err = f.catalog.CreateEpisode(ctx, "show-a", episodeInput(2, false))
	require.NoError(t, err)

	public, err := f.catalog.GetTitle(ctx, nil, "show-a")
	require.NoError(t, err)
	require.Len(t, public.Episodes, 1)
	assert.NotNil(t, public.Episodes[0].PlayerSrc)

	admin, err := f.catalog.GetTitle(ctx, f.admin, "show-a")
	require.NoError(t, err)
	require.Len(t, admin.Episodes, 2)
	assert.NotNil(t, admin.Episodes[1].PlayerSrc)
}

func TestCreateTitleValidation(t *testing.T) {
	f := newCatalogFixture(t)

	_, err := f.catalog.CreateTitle(context.Background(), TitleInput{
		Slug:                "Bad Slug!",
		Name:                "ab",
		AgeRating:           ptr("NC-17"),
		OriginalReleaseDate: ptr("06/04/2019"),
	})
	require.Error(t, err)
	appErr := utils.AsAppError(err)
	assert.Equal(t, utils.KindValidation, appErr.Kind)

	var fields []string
	for _, fe := range appErr.Fields {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{"slug", "name", "ageRating", "originalReleaseDate"}, fields)
}

func TestCreateTitleNormalizesAndConflicts(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	v, err := f.catalog.CreateTitle(ctx, TitleInput{
		Slug:                " Show-A ",
		Name:                "  Show A  ",
		Description:         ptr("   "),
		Genres:              []string{"Драма"},
		AgeRating:           ptr("PG-13"),
		OriginalReleaseDate: ptr("2019-04-06"),
	})
	require.NoError(t, err)
	assert.Equal(t, "show-a", v.Slug)
	assert.Equal(t, "Show A", v.Name)
	assert.Nil(t, v.Description)
	assert.Equal(t, []string{"драма"}, v.Genres)
	require.NotNil(t, v.OriginalReleaseDate)
	assert.Equal(t, "2019-04-06", *v.OriginalReleaseDate)

	_, err = f.catalog.CreateTitle(ctx, TitleInput{Slug: "show-a", Name: "Another"})
	assert.True(t, utils.IsKind(err, utils.KindConflict))
}

func TestUpdateTitle(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()
	_, err := f.catalog.CreateTitle(ctx, TitleInput{Slug: "show-a", Name: "Show A", CoverKey: ptr("old-cover.png")})
	require.NoError(t, err)

	_, err = f.catalog.UpdateTitle(ctx, "show-a", TitleUpdate{})
	assert.True(t, utils.IsKind(err, utils.KindValidation))

	v, err := f.catalog.UpdateTitle(ctx, "show-a", TitleUpdate{
		Name:      ptr("Show A Renamed"),
		CoverKey:  utils.Some("new-cover.png"),
		Published: ptr(true),
		Tags:      &[]string{"школа"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Show A Renamed", v.Name)
	assert.True(t, v.Published)
	assert.Equal(t, []string{"школа"}, v.Tags)
	require.NotNil(t, v.CoverKey)
	assert.Equal(t, "new-cover.png", *v.CoverKey)
	assert.Equal(t, []string{"covers/old-cover.png"}, f.objects.Deleted())

	v, err = f.catalog.UpdateTitle(ctx, "show-a", TitleUpdate{Description: utils.Optional[string]{Set: true}})
	require.NoError(t, err)
	assert.Nil(t, v.Description)

	_, err = f.catalog.UpdateTitle(ctx, "show-a", TitleUpdate{AgeRating: utils.Some("XXX")})
	assert.True(t, utils.IsKind(err, utils.KindValidation))

	_, err = f.catalog.UpdateTitle(ctx, "missing", TitleUpdate{Name: ptr("Whatever")})
	assert.True(t, utils.IsKind(err, utils.KindNotFound))
}

func TestDeleteTitleRemovesCover(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()
	_, err := f.catalog.CreateTitle(ctx, TitleInput{Slug: "show-a", Name: "Show A", CoverKey: ptr("cover.png")})
	require.NoError(t, err)

	require.NoError(t, f.catalog.DeleteTitle(ctx, "show-a"))
	assert.Equal(t, []string{"covers/cover.png"}, f.objects.Deleted())

	err = f.catalog.DeleteTitle(ctx, "show-a")
	assert.True(t, utils.IsKind(err, utils.KindNotFound))
}

func TestRandomSlug(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	_, err := f.catalog.RandomSlug(ctx)
	assert.True(t, utils.IsKind(err, utils.KindNotFound))

	f.title(t, "show-a", true)
	slug, err := f.catalog.RandomSlug(ctx)
	require.NoError(t, err)
	assert.Equal(t, "show-a", slug)
}

func TestCommentsModeration(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()
	f.title(t, "show-a", true)

	_, err := f.catalog.CreateComment(ctx, f.viewer, "show-a", "  hi ")
	assert.True(t, utils.IsKind(err, utils.KindValidation))

	pending, err := f.catalog.CreateComment(ctx, f.viewer, "show-a", "Great episode!")
	require.NoError(t, err)
	assert.Nil(t, pending.Status)

	approved, err := f.catalog.CreateComment(ctx, f.admin, "show-a", "Thanks for watching")
	require.NoError(t, err)
	require.NotNil(t, approved.Status)
	assert.Equal(t, model.CommentApproved, *approved.Status)

	public, err := f.catalog.ListComments(ctx, nil, "show-a")
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, "Thanks for watching", public[0].Body)
	assert.Nil(t, public[0].Status)

	moderated, err := f.catalog.ModerateComment(ctx, pending.ID, model.CommentApproved)
	require.NoError(t, err)
	assert.Equal(t, model.CommentApproved, *moderated.Status)

	public, err = f.catalog.ListComments(ctx, f.viewer, "show-a")
	require.NoError(t, err)
	assert.Len(t, public, 2)

	_, err = f.catalog.ModerateComment(ctx, pending.ID, "SPAM")
	assert.True(t, utils.IsKind(err, utils.KindValidation))
	_, err = f.catalog.ModerateComment(ctx, "missing", model.CommentRejected)
	assert.True(t, utils.IsKind(err, utils.KindNotFound))
}

func TestCommentOnDraftTitle(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()
	f.title(t, "draft-show", false)

	_, err := f.catalog.CreateComment(ctx, f.viewer, "draft-show", "Can I see this?")
	assert.True(t, utils.IsKind(err, utils.KindNotFound))

	_, err = f.catalog.CreateComment(ctx, f.admin, "draft-show", "Internal note")
	assert.NoError(t, err)
}

func TestEpisodeErrors(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()
	f.title(t, "draft-show", false)

	created, err := f.catalog.CreateEpisode(ctx, "draft-show", episodeInput(1, false))
	require.NoError(t, err)

	_, err = f.catalog.CreateEpisode(ctx, "draft-show", episodeInput(1, false))
	assert.True(t, utils.IsKind(err, utils.KindConflict))

	bad := episodeInput(2, true)
	bad.PlayerSrc = ptr("https://evil.example/e")
	_, err = f.catalog.CreateEpisode(ctx, "draft-show", bad)
	assert.True(t, utils.IsKind(err, utils.KindValidation))

	_, err = f.catalog.CreateEpisode(ctx, "missing", episodeInput(1, true))
	assert.True(t, utils.IsKind(err, utils.KindNotFound))

	_, err = f.catalog.UpdateEpisode(ctx, "draft-show", "missing", repository.EpisodeMutation{Name: ptr("Renamed")})
	assert.True(t, utils.IsKind(err, utils.KindNotFound))

	_, created2, err := f.catalog.UpsertEpisode(ctx, "draft-show", 1, repository.EpisodeMutation{Published: ptr(true)})
	require.NoError(t, err)
	assert.False(t, created2)

	views, err := f.catalog.BulkCreateEpisodes(ctx, "draft-show", []repository.EpisodeMutation{episodeInput(2, true), episodeInput(3, true)})
	require.NoError(t, err)
	assert.Len(t, views, 2)

	require.NoError(t, f.catalog.DeleteEpisode(ctx, "draft-show", created.ID))
	err = f.catalog.DeleteEpisode(ctx, "draft-show", created.ID)
	assert.True(t, utils.IsKind(err, utils.KindNotFound))
}
