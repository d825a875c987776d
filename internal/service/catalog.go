package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/user/dreamyvoice/internal/model"
	"github.com/user/dreamyvoice/internal/repository"
	"github.com/user/dreamyvoice/internal/storage"
	"github.com/user/dreamyvoice/internal/utils"
)

// ObjectCleaner drops stored objects that are no longer referenced.
type ObjectCleaner interface {
	DeleteQuietly(ctx context.Context, bucket storage.Bucket, key string)
}

// CatalogService serves titles, episodes and comments with draft visibility rules.
type CatalogService struct {
	titles   *repository.TitleRepository
	episodes *repository.EpisodeRepository
	comments *repository.CommentRepository
	objects  ObjectCleaner
}

func NewCatalogService(repos *repository.Repositories, objects ObjectCleaner) *CatalogService {
	return &CatalogService{
		titles:   repos.Title,
		episodes: repos.Episode,
		comments: repos.Comment,
		objects:  objects,
	}
}

// TitleInput is the payload for creating a title.
type TitleInput struct {
	Slug                string
	Name                string
	Description         *string
	CoverKey            *string
	Published           bool
	Genres              []string
	Tags                []string
	AgeRating           *string
	OriginalReleaseDate *string
}

// TitleUpdate lists the fields to change on a title. Unset fields are kept.
type TitleUpdate struct {
	Name                *string
	Description         utils.Optional[string]
	CoverKey            utils.Optional[string]
	Published           *bool
	Genres              *[]string
	Tags                *[]string
	AgeRating           utils.Optional[string]
	OriginalReleaseDate utils.Optional[string]
}

func (u TitleUpdate) empty() bool {
	return u.Name == nil && !u.Description.Set && !u.CoverKey.Set && u.Published == nil &&
		u.Genres == nil && u.Tags == nil && !u.AgeRating.Set && !u.OriginalReleaseDate.Set
}

// ListTitles returns the catalog. Drafts are included only when an admin asks
// for them; a non-admin's request for drafts is ignored.
func (s *CatalogService) ListTitles(ctx context.Context, viewer *model.User, includeDrafts bool, filter TitleFilter) ([]model.TitleView, error) {
	canSeeDrafts := includeDrafts && viewer.IsAdmin()

	titles, err := s.titles.List(ctx, canSeeDrafts)
	if err != nil {
		return nil, utils.Upstream(err)
	}
	if !filter.IsZero() {
		titles = ApplyFilter(titles, filter)
	}

	views := make([]model.TitleView, 0, len(titles))
	for _, t := range titles {
		views = append(views, model.ToTitleView(t, canSeeDrafts))
	}
	return views, nil
}

// GetTitle returns a title by slug. Drafts are visible to admins only.
func (s *CatalogService) GetTitle(ctx context.Context, viewer *model.User, slug string) (*model.TitleView, error) {
	includeDrafts := viewer.IsAdmin()
	title, err := s.findTitle(ctx, slug, includeDrafts)
	if err != nil {
		return nil, err
	}
	view := model.ToTitleView(title, includeDrafts)
	return &view, nil
}

// RandomSlug returns the slug of a random published title.
func (s *CatalogService) RandomSlug(ctx context.Context) (string, error) {
	slug, err := s.titles.RandomPublishedSlug(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return "", utils.NotFound("no published titles")
	}
	if err != nil {
		return "", utils.Upstream(err)
	}
	return slug, nil
}

// ListComments returns a title's comments oldest first. Admins see every
// comment with its status; everyone else sees approved comments only.
func (s *CatalogService) ListComments(ctx context.Context, viewer *model.User, slug string) ([]model.CommentView, error) {
	moderator := viewer.IsAdmin()
	title, err := s.findTitle(ctx, slug, moderator)
	if err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByTitle(ctx, title.ID, moderator)
	if err != nil {
		return nil, utils.Upstream(err)
	}
	views := make([]model.CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, model.ToCommentView(c, moderator))
	}
	return views, nil
}

// CreateComment adds a comment by author. Admin comments are approved right
// away, all others wait for moderation.
func (s *CatalogService) CreateComment(ctx context.Context, author *model.User, slug, body string) (*model.CommentView, error) {
	body = strings.TrimSpace(body)
	if n := utf8.RuneCountInString(body); n < 3 {
		return nil, utils.Validation("invalid comment", utils.FieldError{Field: "body", Message: "comment is too short"})
	} else if n > 2000 {
		return nil, utils.Validation("invalid comment", utils.FieldError{Field: "body", Message: "comment is too long"})
	}

	title, err := s.findTitle(ctx, slug, author.IsAdmin())
	if err != nil {
		return nil, err
	}

	comment := &model.Comment{
		TitleID: title.ID,
		UserID:  author.ID,
		Body:    body,
		Status:  model.CommentPending,
	}
	if author.IsAdmin() {
		comment.Status = model.CommentApproved
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, utils.Upstream(err)
	}

	view := model.ToCommentView(comment, author.IsAdmin())
	return &view, nil
}

// ModerateComment sets the status of a comment.
func (s *CatalogService) ModerateComment(ctx context.Context, id string, status model.CommentStatus) (*model.CommentView, error) {
	if !model.IsCommentStatus(string(status)) {
		return nil, utils.Validation("invalid status", utils.FieldError{Field: "status", Message: "must be one of PENDING APPROVED REJECTED"})
	}
	comment, err := s.comments.SetStatus(ctx, id, status)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, utils.NotFound("comment not found")
	}
	if err != nil {
		return nil, utils.Upstream(err)
	}
	view := model.ToCommentView(comment, true)
	return &view, nil
}

// CreateTitle stores a new title.
func (s *CatalogService) CreateTitle(ctx context.Context, in TitleInput) (*model.TitleView, error) {
	var fields []utils.FieldError

	slug := strings.ToLower(strings.TrimSpace(in.Slug))
	if n := len(slug); n < 3 || n > 64 {
		fields = append(fields, utils.FieldError{Field: "slug", Message: "must be between 3 and 64 characters"})
	} else if !utils.IsSlug(slug) {
		fields = append(fields, utils.FieldError{Field: "slug", Message: "may only contain lowercase latin letters, digits and hyphens"})
	}
	name, fe := titleName(in.Name)
	fields = append(fields, fe...)
	description, fe := trimmedOptional("description", in.Description, 5000)
	fields = append(fields, fe...)
	coverKey, fe := trimmedOptional("coverKey", in.CoverKey, 255)
	fields = append(fields, fe...)
	rating, fe := ageRating(in.AgeRating)
	fields = append(fields, fe...)
	released, fe := releaseDate(in.OriginalReleaseDate)
	fields = append(fields, fe...)
	if len(fields) > 0 {
		return nil, utils.Validation("invalid title", fields...)
	}

	title := &model.Title{
		Slug:                slug,
		Name:                name,
		Description:         description,
		CoverKey:            coverKey,
		Published:           in.Published,
		AgeRating:           rating,
		OriginalReleaseDate: released,
		Genres:              genreRows(in.Genres),
		Tags:                tagRows(in.Tags),
	}
	if err := s.titles.Create(ctx, title); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, utils.Conflict("a title with this slug already exists")
		}
		return nil, utils.Upstream(err)
	}

	view := model.ToTitleView(title, true)
	return &view, nil
}

// UpdateTitle changes the title matching slug. A replaced cover is removed
// from storage on a best-effort basis.
func (s *CatalogService) UpdateTitle(ctx context.Context, slug string, u TitleUpdate) (*model.TitleView, error) {
	if u.empty() {
		return nil, utils.Validation("nothing to update")
	}

	existing, err := s.findTitle(ctx, slug, true)
	if err != nil {
		return nil, err
	}

	columns := map[string]interface{}{}
	var fields []utils.FieldError
	if u.Name != nil {
		name, fe := titleName(*u.Name)
		fields = append(fields, fe...)
		columns["name"] = name
	}
	if u.Description.Set {
		description, fe := trimmedNullable("description", u.Description.Value, 5000)
		fields = append(fields, fe...)
		columns["description"] = description
	}
	var newCover *string
	if u.CoverKey.Set {
		cover, fe := trimmedNullable("coverKey", u.CoverKey.Value, 255)
		fields = append(fields, fe...)
		columns["cover_key"] = cover
		newCover = cover
	}
	if u.Published != nil {
		columns["published"] = *u.Published
	}
	if u.AgeRating.Set {
		rating, fe := ageRating(u.AgeRating.Value)
		fields = append(fields, fe...)
		columns["age_rating"] = rating
	}
	if u.OriginalReleaseDate.Set {
		released, fe := releaseDate(u.OriginalReleaseDate.Value)
		fields = append(fields, fe...)
		columns["original_release_date"] = released
	}
	if len(fields) > 0 {
		return nil, utils.Validation("invalid title", fields...)
	}

	changes := repository.TitleChanges{Columns: columns}
	if u.Genres != nil {
		changes.Genres = append([]string{}, *u.Genres...)
	}
	if u.Tags != nil {
		changes.Tags = append([]string{}, *u.Tags...)
	}
	if err := s.titles.Update(ctx, existing.ID, changes); err != nil {
		return nil, utils.Upstream(err)
	}

	if u.CoverKey.Set && existing.CoverKey != nil && (newCover == nil || *newCover != *existing.CoverKey) {
		s.objects.DeleteQuietly(ctx, storage.BucketCovers, *existing.CoverKey)
	}
	return s.GetTitle(ctx, &model.User{Role: model.RoleAdmin}, existing.Slug)
}

// DeleteTitle removes a title with everything it owns.
func (s *CatalogService) DeleteTitle(ctx context.Context, slug string) error {
	title, err := s.findTitle(ctx, slug, true)
	if err != nil {
		return err
	}
	if err := s.titles.Delete(ctx, title.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.NotFound("title not found")
		}
		return utils.Upstream(err)
	}
	if title.CoverKey != nil {
		s.objects.DeleteQuietly(ctx, storage.BucketCovers, *title.CoverKey)
	}
	return nil
}

// CreateEpisode adds an episode to the title matching slug.
func (s *CatalogService) CreateEpisode(ctx context.Context, slug string, m repository.EpisodeMutation) (*model.EpisodeView, error) {
	title, err := s.findTitle(ctx, slug, true)
	if err != nil {
		return nil, err
	}
	episode, err := s.episodes.Create(ctx, title.ID, m)
	if err != nil {
		return nil, episodeError(err)
	}
	view := model.ToEpisodeView(episode, true)
	return &view, nil
}

// UpdateEpisode changes one episode of the title matching slug.
func (s *CatalogService) UpdateEpisode(ctx context.Context, slug, id string, m repository.EpisodeMutation) (*model.EpisodeView, error) {
	title, err := s.findTitle(ctx, slug, true)
	if err != nil {
		return nil, err
	}
	episode, err := s.episodes.Update(ctx, title.ID, id, m)
	if err != nil {
		return nil, episodeError(err)
	}
	view := model.ToEpisodeView(episode, true)
	return &view, nil
}

// UpsertEpisode updates the episode with the given number or creates it.
func (s *CatalogService) UpsertEpisode(ctx context.Context, slug string, number int, m repository.EpisodeMutation) (*model.EpisodeView, bool, error) {
	title, err := s.findTitle(ctx, slug, true)
	if err != nil {
		return nil, false, err
	}
	episode, created, err := s.episodes.UpsertByNumber(ctx, title.ID, number, m)
	if err != nil {
		return nil, false, episodeError(err)
	}
	view := model.ToEpisodeView(episode, true)
	return &view, created, nil
}

// BulkCreateEpisodes adds several episodes at once.
func (s *CatalogService) BulkCreateEpisodes(ctx context.Context, slug string, ms []repository.EpisodeMutation) ([]model.EpisodeView, error) {
	title, err := s.findTitle(ctx, slug, true)
	if err != nil {
		return nil, err
	}
	episodes, err := s.episodes.BulkCreate(ctx, title.ID, ms)
	if err != nil {
		return nil, episodeError(err)
	}
	views := make([]model.EpisodeView, 0, len(episodes))
	for _, e := range episodes {
		views = append(views, model.ToEpisodeView(e, true))
	}
	return views, nil
}

// DeleteEpisode removes one episode of the title matching slug.
func (s *CatalogService) DeleteEpisode(ctx context.Context, slug, id string) error {
	title, err := s.findTitle(ctx, slug, true)
	if err != nil {
		return err
	}
	return episodeError(s.episodes.Delete(ctx, title.ID, id))
}

func (s *CatalogService) findTitle(ctx context.Context, slug string, includeDrafts bool) (*model.Title, error) {
	title, err := s.titles.FindBySlug(ctx, slug, includeDrafts)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, utils.NotFound("title not found")
	}
	if err != nil {
		return nil, utils.Upstream(err)
	}
	return title, nil
}

func episodeError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrDuplicate):
		return utils.Conflict("an episode with this number already exists")
	case errors.Is(err, repository.ErrNotFound):
		return utils.NotFound("episode not found")
	case utils.IsKind(err, utils.KindValidation):
		return err
	default:
		return utils.Upstream(err)
	}
}

func titleName(raw string) (string, []utils.FieldError) {
	name := strings.TrimSpace(raw)
	if n := utf8.RuneCountInString(name); n < 3 || n > 128 {
		return name, []utils.FieldError{{Field: "name", Message: "must be between 3 and 128 characters"}}
	}
	return name, nil
}

// trimmedOptional treats blank values as absent.
func trimmedOptional(field string, raw *string, max int) (*string, []utils.FieldError) {
	if raw == nil {
		return nil, nil
	}
	v := strings.TrimSpace(*raw)
	if v == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(v) > max {
		return nil, []utils.FieldError{{Field: field, Message: "is too long"}}
	}
	return &v, nil
}

// trimmedNullable keeps blank strings, only nil clears the column.
func trimmedNullable(field string, raw *string, max int) (*string, []utils.FieldError) {
	if raw == nil {
		return nil, nil
	}
	v := strings.TrimSpace(*raw)
	if utf8.RuneCountInString(v) > max {
		return nil, []utils.FieldError{{Field: field, Message: "is too long"}}
	}
	return &v, nil
}

func ageRating(raw *string) (*string, []utils.FieldError) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	v := strings.TrimSpace(*raw)
	if !model.IsAgeRating(v) {
		return nil, []utils.FieldError{{Field: "ageRating", Message: "must be one of " + strings.Join(model.AgeRatings, " ")}}
	}
	return &v, nil
}

func releaseDate(raw *string) (*time.Time, []utils.FieldError) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	d, err := time.Parse(model.ReleaseDateLayout, strings.TrimSpace(*raw))
	if err != nil {
		return nil, []utils.FieldError{{Field: "originalReleaseDate", Message: "must be a YYYY-MM-DD date"}}
	}
	return &d, nil
}

func genreRows(names []string) []model.Genre {
	rows := make([]model.Genre, 0, len(names))
	for _, n := range names {
		rows = append(rows, model.Genre{Name: n})
	}
	return rows
}

func tagRows(names []string) []model.Tag {
	rows := make([]model.Tag, 0, len(names))
	for _, n := range names {
		rows = append(rows, model.Tag{Name: n})
	}
	return rows
}
