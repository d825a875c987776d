package repository

import (
	"context"

	"github.com/user/dreamyvoice/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MetadataRepository manages the genre and tag dictionaries.
type MetadataRepository struct {
	db *gorm.DB
}

func NewMetadataRepository(db *gorm.DB) *MetadataRepository {
	return &MetadataRepository{db: db}
}

// GenreNames returns every genre name in alphabetical order.
func (r *MetadataRepository) GenreNames(ctx context.Context) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).Model(&model.Genre{}).Order("name ASC").Pluck("name", &names).Error
	return names, err
}

// TagNames returns every tag name in alphabetical order.
func (r *MetadataRepository) TagNames(ctx context.Context) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).Model(&model.Tag{}).Order("name ASC").Pluck("name", &names).Error
	return names, err
}

// EnsureGenres inserts the missing genre names.
func (r *MetadataRepository) EnsureGenres(ctx context.Context, names []string) error {
	names = normalizeNames(names)
	if len(names) == 0 {
		return nil
	}
	rows := make([]model.Genre, 0, len(names))
	for _, name := range names {
		rows = append(rows, model.Genre{Name: name})
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
}

// EnsureTags inserts the missing tag names.
func (r *MetadataRepository) EnsureTags(ctx context.Context, names []string) error {
	names = normalizeNames(names)
	if len(names) == 0 {
		return nil
	}
	rows := make([]model.Tag, 0, len(names))
	for _, name := range names {
		rows = append(rows, model.Tag{Name: name})
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
}
