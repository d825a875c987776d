package repository

import (
	"context"
	"time"

	"github.com/user/dreamyvoice/internal/model"
	"gorm.io/gorm"
)

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create stores a new session.
func (r *SessionRepository) Create(ctx context.Context, session *model.Session) error {
	return translate(r.db.WithContext(ctx).Create(session).Error)
}

// FindWithUser loads a session and its owner.
func (r *SessionRepository) FindWithUser(ctx context.Context, id string) (*model.Session, error) {
	var session model.Session
	err := r.db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&session).Error
	if err != nil {
		return nil, translate(err)
	}
	return &session, nil
}

// Delete removes a session. Deleting a missing session is not an error.
func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Session{}).Error
}

// DeleteExpired removes every session that expired before now and reports how many.
func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("expires_at < ?", now).Delete(&model.Session{})
	return res.RowsAffected, res.Error
}

// ListAll returns every session, newest first.
func (r *SessionRepository) ListAll(ctx context.Context) ([]*model.Session, error) {
	var sessions []*model.Session
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&sessions).Error
	return sessions, err
}
