package repository

import (
	"context"
	"strings"
	"time"

	"github.com/user/dreamyvoice/internal/model"
	"gorm.io/gorm"
)

type TitleRepository struct {
	db *gorm.DB
}

func NewTitleRepository(db *gorm.DB) *TitleRepository {
	return &TitleRepository{db: db}
}

// withRelations preloads genres, tags and episodes ordered by number.
// Draft episodes are dropped unless includeDrafts is set.
func withRelations(db *gorm.DB, includeDrafts bool) *gorm.DB {
	return db.
		Preload("Genres", func(db *gorm.DB) *gorm.DB { return db.Order("name ASC") }).
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("name ASC") }).
		Preload("Episodes", func(db *gorm.DB) *gorm.DB {
			if !includeDrafts {
				db = db.Where("published = ?", true)
			}
			return db.Order("number ASC")
		})
}

// List returns titles, most recently updated first.
func (r *TitleRepository) List(ctx context.Context, includeDrafts bool) ([]*model.Title, error) {
	var titles []*model.Title
	q := withRelations(r.db.WithContext(ctx), includeDrafts)
	if !includeDrafts {
		q = q.Where("published = ?", true)
	}
	err := q.Order("updated_at DESC").Find(&titles).Error
	return titles, err
}

// FindBySlug matches slug case-insensitively. Draft titles are reported as
// missing unless includeDrafts is set.
func (r *TitleRepository) FindBySlug(ctx context.Context, slug string, includeDrafts bool) (*model.Title, error) {
	var title model.Title
	q := withRelations(r.db.WithContext(ctx), includeDrafts).
		Where("LOWER(slug) = ?", strings.ToLower(strings.TrimSpace(slug)))
	if err := q.First(&title).Error; err != nil {
		return nil, translate(err)
	}
	if !title.Published && !includeDrafts {
		return nil, ErrNotFound
	}
	return &title, nil
}

// RandomPublishedSlug picks the slug of one published title.
func (r *TitleRepository) RandomPublishedSlug(ctx context.Context) (string, error) {
	var slugs []string
	err := r.db.WithContext(ctx).Model(&model.Title{}).
		Where("published = ?", true).
		Order("RANDOM()").
		Limit(1).
		Pluck("slug", &slugs).Error
	if err != nil {
		return "", err
	}
	if len(slugs) == 0 {
		return "", ErrNotFound
	}
	return slugs[0], nil
}

// Create inserts a title. Genre and tag names on the title are created on demand.
func (r *TitleRepository) Create(ctx context.Context, title *model.Title) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		genres, err := resolveGenres(tx, title.GenreNames())
		if err != nil {
			return err
		}
		tags, err := resolveTags(tx, title.TagNames())
		if err != nil {
			return err
		}
		title.Genres, title.Tags = genres, tags
		return tx.Omit("Genres.*", "Tags.*", "Episodes").Create(title).Error
	})
	return translate(err)
}

// TitleChanges lists the columns to update. Nil slices leave the genre and
// tag sets untouched; empty slices clear them.
type TitleChanges struct {
	Columns map[string]interface{}
	Genres  []string
	Tags    []string
}

// Update applies changes to the title with the given id.
func (r *TitleRepository) Update(ctx context.Context, id string, changes TitleChanges) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		title := &model.Title{ID: id}
		if len(changes.Columns) > 0 {
			res := tx.Model(title).Updates(changes.Columns)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrNotFound
			}
		} else if err := tx.Model(title).Update("updated_at", time.Now()).Error; err != nil {
			return err
		}

		if changes.Genres != nil {
			genres, err := resolveGenres(tx, changes.Genres)
			if err != nil {
				return err
			}
			if err := tx.Model(title).Association("Genres").Replace(genres); err != nil {
				return err
			}
		}
		if changes.Tags != nil {
			tags, err := resolveTags(tx, changes.Tags)
			if err != nil {
				return err
			}
			if err := tx.Model(title).Association("Tags").Replace(tags); err != nil {
				return err
			}
		}
		return nil
	})
	return translate(err)
}

// Delete removes a title with its episodes, comments, favorites and metadata links.
func (r *TitleRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		title := &model.Title{ID: id}
		for _, child := range []interface{}{&model.Episode{}, &model.Comment{}, &model.Favorite{}} {
			if err := tx.Where("title_id = ?", id).Delete(child).Error; err != nil {
				return err
			}
		}
		if err := tx.Model(title).Association("Genres").Clear(); err != nil {
			return err
		}
		if err := tx.Model(title).Association("Tags").Clear(); err != nil {
			return err
		}
		res := tx.Delete(title)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// Count returns the number of titles.
func (r *TitleRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Title{}).Count(&count).Error
	return count, err
}

func resolveGenres(tx *gorm.DB, names []string) ([]model.Genre, error) {
	genres := make([]model.Genre, 0, len(names))
	for _, name := range normalizeNames(names) {
		genre := model.Genre{Name: name}
		if err := tx.Where(model.Genre{Name: name}).FirstOrCreate(&genre).Error; err != nil {
			return nil, err
		}
		genres = append(genres, genre)
	}
	return genres, nil
}

func resolveTags(tx *gorm.DB, names []string) ([]model.Tag, error) {
	tags := make([]model.Tag, 0, len(names))
	for _, name := range normalizeNames(names) {
		tag := model.Tag{Name: name}
		if err := tx.Where(model.Tag{Name: name}).FirstOrCreate(&tag).Error; err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// normalizeNames trims, lowercases and dedupes names, keeping first-seen order.
func normalizeNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
