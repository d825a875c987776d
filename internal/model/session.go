package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Session is a server-side login record. Its ID is the token carried by the
// session cookie.
type Session struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	UserID    string    `json:"userId" gorm:"size:36;not null;index"`
	User      User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	ExpiresAt time.Time `json:"expiresAt" gorm:"not null;index"`
	UserAgent *string   `json:"userAgent" gorm:"size:512"`
	IP        *string   `json:"ip" gorm:"size:64"`
	CreatedAt time.Time `json:"createdAt"`
}

func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// ExpiredAt reports whether the session is past its expiry at now.
func (s *Session) ExpiredAt(now time.Time) bool {
	return s.ExpiresAt.Before(now)
}
