package repository

import (
	"context"

	"github.com/user/dreamyvoice/internal/model"
	"gorm.io/gorm"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// ListByTitle returns a title's comments with authors, oldest first.
// Unless includeModeration is set only approved comments are returned.
func (r *CommentRepository) ListByTitle(ctx context.Context, titleID string, includeModeration bool) ([]*model.Comment, error) {
	var comments []*model.Comment
	q := r.db.WithContext(ctx).Preload("User").Where("title_id = ?", titleID)
	if !includeModeration {
		q = q.Where("status = ?", model.CommentApproved)
	}
	err := q.Order("created_at ASC").Find(&comments).Error
	return comments, err
}

// Create inserts a comment and loads its author.
func (r *CommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	db := r.db.WithContext(ctx)
	if err := db.Omit("User", "Title").Create(comment).Error; err != nil {
		return translate(err)
	}
	return translate(db.Where("id = ?", comment.UserID).First(&comment.User).Error)
}

// SetStatus changes the moderation status of a comment.
func (r *CommentRepository) SetStatus(ctx context.Context, id string, status model.CommentStatus) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("User").Where("id = ?", id).First(&comment).Error; err != nil {
			return err
		}
		return tx.Model(&comment).Update("status", status).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &comment, nil
}

// ListAll returns every comment, newest first.
func (r *CommentRepository) ListAll(ctx context.Context) ([]*model.Comment, error) {
	var comments []*model.Comment
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&comments).Error
	return comments, err
}

// CountByStatus returns how many comments have the given status.
func (r *CommentRepository) CountByStatus(ctx context.Context, status model.CommentStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Comment{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
