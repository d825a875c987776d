package repository

import (
	"context"

	"github.com/user/dreamyvoice/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FavoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Add marks a title as favorite. Adding twice is a no-op.
func (r *FavoriteRepository) Add(ctx context.Context, userID, titleID string) error {
	favorite := &model.Favorite{
		UserID:  userID,
		TitleID: titleID,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(favorite).Error
}

// Remove drops a favorite.
func (r *FavoriteRepository) Remove(ctx context.Context, userID, titleID string) error {
	return r.db.WithContext(ctx).Where("user_id = ? AND title_id = ?", userID, titleID).Delete(&model.Favorite{}).Error
}

// IsFavorited reports whether the user favorited the title.
func (r *FavoriteRepository) IsFavorited(ctx context.Context, userID, titleID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Favorite{}).
		Where("user_id = ? AND title_id = ?", userID, titleID).
		Count(&count).Error
	return count > 0, err
}

// ListByUser returns the user's favorites with their titles, newest first.
// Draft titles are skipped unless includeDrafts is set.
func (r *FavoriteRepository) ListByUser(ctx context.Context, userID string, includeDrafts bool) ([]*model.Favorite, error) {
	var favorites []*model.Favorite
	q := r.db.WithContext(ctx).
		Joins("Title").
		Where("favorites.user_id = ?", userID)
	if !includeDrafts {
		q = q.Where(`"Title"."published" = ?`, true)
	}
	err := q.Order("favorites.created_at DESC").Order("favorites.id DESC").Find(&favorites).Error
	return favorites, err
}
