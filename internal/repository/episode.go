package repository

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/user/dreamyvoice/internal/model"
	"github.com/user/dreamyvoice/internal/utils"
	"gorm.io/gorm"
)

const (
	maxEpisodeNumber   = 10000
	maxEpisodeDuration = 2000
)

// EpisodeMutation is the write command behind every episode entry point:
// create, update, upsert by number and bulk create. Nil fields are left
// untouched on update. SetDuration applies DurationMinutes even when nil,
// which clears the stored duration.
type EpisodeMutation struct {
	Number          *int
	Name            *string
	PlayerSrc       *string
	DurationMinutes *int
	SetDuration     bool
	Published       *bool
}

type EpisodeRepository struct {
	db           *gorm.DB
	allowedHosts map[string]struct{}
}

func NewEpisodeRepository(db *gorm.DB, allowedHosts []string) *EpisodeRepository {
	hosts := make(map[string]struct{}, len(allowedHosts))
	for _, h := range allowedHosts {
		hosts[strings.ToLower(strings.TrimSpace(h))] = struct{}{}
	}
	return &EpisodeRepository{db: db, allowedHosts: hosts}
}

// Validate checks m before it reaches the database. With full set, number,
// name and player source are required.
func (r *EpisodeRepository) Validate(m EpisodeMutation, full bool) error {
	fields := r.check(m, full, "")
	if len(fields) > 0 {
		return utils.Validation("invalid episode", fields...)
	}
	return nil
}

func (r *EpisodeRepository) check(m EpisodeMutation, full bool, prefix string) []utils.FieldError {
	var fields []utils.FieldError
	add := func(field, msg string) {
		fields = append(fields, utils.FieldError{Field: prefix + field, Message: msg})
	}

	if m.Number != nil {
		if *m.Number < 1 || *m.Number > maxEpisodeNumber {
			add("number", fmt.Sprintf("must be between 1 and %d", maxEpisodeNumber))
		}
	} else if full {
		add("number", "is required")
	}

	if m.Name != nil {
		if n := len([]rune(strings.TrimSpace(*m.Name))); n < 3 || n > 128 {
			add("name", "must be between 3 and 128 characters")
		}
	} else if full {
		add("name", "is required")
	}

	if m.PlayerSrc != nil {
		if err := r.checkHost(*m.PlayerSrc); err != nil {
			add("playerSrc", err.Error())
		}
	} else if full {
		add("playerSrc", "is required")
	}

	if m.DurationMinutes != nil && (*m.DurationMinutes < 1 || *m.DurationMinutes > maxEpisodeDuration) {
		add("durationMinutes", fmt.Sprintf("must be between 1 and %d", maxEpisodeDuration))
	}
	return fields
}

// checkHost accepts absolute http(s) URLs whose hostname is allow-listed.
func (r *EpisodeRepository) checkHost(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return errors.New("must be a valid URL")
	}
	host := strings.ToLower(u.Hostname())
	if _, ok := r.allowedHosts[host]; !ok {
		return fmt.Errorf("host %q is not allowed", host)
	}
	return nil
}

// Create inserts a new episode under titleID.
func (r *EpisodeRepository) Create(ctx context.Context, titleID string, m EpisodeMutation) (*model.Episode, error) {
	if err := r.Validate(m, true); err != nil {
		return nil, err
	}
	episode := newEpisode(titleID, m)
	if err := r.db.WithContext(ctx).Create(episode).Error; err != nil {
		return nil, translate(err)
	}
	return episode, nil
}

// Update applies m to the episode with the given id under titleID.
func (r *EpisodeRepository) Update(ctx context.Context, titleID, id string, m EpisodeMutation) (*model.Episode, error) {
	if err := r.Validate(m, false); err != nil {
		return nil, err
	}

	var episode model.Episode
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND title_id = ?", id, titleID).First(&episode).Error; err != nil {
			return err
		}
		return applyEpisode(tx, &episode, m)
	})
	if err != nil {
		return nil, translate(err)
	}
	return &episode, nil
}

// UpsertByNumber updates the episode with the given number, or creates it.
// The returned flag reports whether a row was created.
func (r *EpisodeRepository) UpsertByNumber(ctx context.Context, titleID string, number int, m EpisodeMutation) (*model.Episode, bool, error) {
	m.Number = &number

	var episode model.Episode
	err := r.db.WithContext(ctx).Where("title_id = ? AND number = ?", titleID, number).First(&episode).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		created, err := r.Create(ctx, titleID, m)
		return created, err == nil, err
	case err != nil:
		return nil, false, err
	}

	if err := r.Validate(m, false); err != nil {
		return nil, false, err
	}
	if err := applyEpisode(r.db.WithContext(ctx), &episode, m); err != nil {
		return nil, false, translate(err)
	}
	return &episode, false, nil
}

// BulkCreate validates every mutation first and then inserts them all in one
// transaction. Nothing is written when any item is invalid.
func (r *EpisodeRepository) BulkCreate(ctx context.Context, titleID string, ms []EpisodeMutation) ([]*model.Episode, error) {
	if len(ms) == 0 {
		return nil, utils.Validation("invalid episodes", utils.FieldError{Field: "episodes", Message: "must not be empty"})
	}

	var fields []utils.FieldError
	for i, m := range ms {
		fields = append(fields, r.check(m, true, fmt.Sprintf("episodes[%d].", i))...)
	}
	if len(fields) > 0 {
		return nil, utils.Validation("invalid episodes", fields...)
	}

	episodes := make([]*model.Episode, 0, len(ms))
	for _, m := range ms {
		episodes = append(episodes, newEpisode(titleID, m))
	}
	if err := r.db.WithContext(ctx).Create(&episodes).Error; err != nil {
		return nil, translate(err)
	}
	return episodes, nil
}

// Delete removes one episode of a title.
func (r *EpisodeRepository) Delete(ctx context.Context, titleID, id string) error {
	res := r.db.WithContext(ctx).Where("id = ? AND title_id = ?", id, titleID).Delete(&model.Episode{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListAll returns every episode grouped by title and ordered by number.
func (r *EpisodeRepository) ListAll(ctx context.Context) ([]*model.Episode, error) {
	var episodes []*model.Episode
	err := r.db.WithContext(ctx).Order("title_id ASC").Order("number ASC").Find(&episodes).Error
	return episodes, err
}

func newEpisode(titleID string, m EpisodeMutation) *model.Episode {
	episode := &model.Episode{
		TitleID:         titleID,
		Number:          *m.Number,
		Name:            strings.TrimSpace(*m.Name),
		PlayerSrc:       strings.TrimSpace(*m.PlayerSrc),
		DurationMinutes: m.DurationMinutes,
	}
	if m.Published != nil {
		episode.Published = *m.Published
	}
	return episode
}

func applyEpisode(tx *gorm.DB, episode *model.Episode, m EpisodeMutation) error {
	columns := map[string]interface{}{}
	if m.Number != nil {
		columns["number"] = *m.Number
	}
	if m.Name != nil {
		columns["name"] = strings.TrimSpace(*m.Name)
	}
	if m.PlayerSrc != nil {
		columns["player_src"] = strings.TrimSpace(*m.PlayerSrc)
	}
	if m.SetDuration || m.DurationMinutes != nil {
		columns["duration_minutes"] = m.DurationMinutes
	}
	if m.Published != nil {
		columns["published"] = *m.Published
	}
	if len(columns) == 0 {
		return nil
	}
	return tx.Model(episode).Updates(columns).Error
}
