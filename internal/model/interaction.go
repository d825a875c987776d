package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CommentStatus is the moderation state of a comment.
type CommentStatus string

const (
	CommentPending  CommentStatus = "PENDING"
	CommentApproved CommentStatus = "APPROVED"
	CommentRejected CommentStatus = "REJECTED"
)

// IsCommentStatus reports whether s names a moderation state.
func IsCommentStatus(s string) bool {
	switch CommentStatus(s) {
	case CommentPending, CommentApproved, CommentRejected:
		return true
	}
	return false
}

// Comment is a user comment on a title.
type Comment struct {
	ID        string        `json:"id" gorm:"primaryKey;size:36"`
	TitleID   string        `json:"titleId" gorm:"size:36;not null;index"`
	Title     *Title        `json:"-" gorm:"foreignKey:TitleID;constraint:OnDelete:CASCADE"`
	UserID    string        `json:"userId" gorm:"size:36;not null;index"`
	User      User          `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Body      string        `json:"body" gorm:"type:text;not null"`
	Status    CommentStatus `json:"status" gorm:"size:16;not null;default:PENDING;index"`
	CreatedAt time.Time     `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// Favorite marks a title as favorited by a user, at most once per pair.
type Favorite struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	UserID    string    `json:"userId" gorm:"size:36;not null;uniqueIndex:idx_favorite_user_title"`
	User      *User     `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	TitleID   string    `json:"titleId" gorm:"size:36;not null;uniqueIndex:idx_favorite_user_title"`
	Title     *Title    `json:"-" gorm:"foreignKey:TitleID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
}

// TeamMember is a person shown on the public team page.
type TeamMember struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	Name      string    `json:"name" gorm:"size:128;not null"`
	Role      string    `json:"role" gorm:"size:128;not null"`
	AvatarKey *string   `json:"avatarKey" gorm:"size:256"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (m *TeamMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
