package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AgeRatings is the closed set of accepted age ratings, in display order.
var AgeRatings = []string{"G", "PG", "PG-13", "R", "R+", "Rx"}

// IsAgeRating reports whether s is a known age rating.
func IsAgeRating(s string) bool {
	for _, r := range AgeRatings {
		if r == s {
			return true
		}
	}
	return false
}

// Title is a catalog entry. Slugs are stored lowercased so the unique index
// enforces case-insensitive uniqueness.
type Title struct {
	ID                  string     `json:"id" gorm:"primaryKey;size:36"`
	Slug                string     `json:"slug" gorm:"uniqueIndex;size:64;not null"`
	Name                string     `json:"name" gorm:"size:128;not null"`
	Description         *string    `json:"description" gorm:"type:text"`
	CoverKey            *string    `json:"coverKey" gorm:"size:255"`
	Published           bool       `json:"published" gorm:"not null;default:false;index"`
	AgeRating           *string    `json:"ageRating" gorm:"size:8"`
	OriginalReleaseDate *time.Time `json:"originalReleaseDate"`
	Genres              []Genre    `json:"-" gorm:"many2many:title_genres;constraint:OnDelete:CASCADE"`
	Tags                []Tag      `json:"-" gorm:"many2many:title_tags;constraint:OnDelete:CASCADE"`
	Episodes            []Episode  `json:"-" gorm:"foreignKey:TitleID;constraint:OnDelete:CASCADE"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt" gorm:"index"`
}

func (t *Title) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// GenreNames returns the names of the title's genres.
func (t *Title) GenreNames() []string {
	names := make([]string, 0, len(t.Genres))
	for _, g := range t.Genres {
		names = append(names, g.Name)
	}
	return names
}

// TagNames returns the names of the title's tags.
func (t *Title) TagNames() []string {
	names := make([]string, 0, len(t.Tags))
	for _, tag := range t.Tags {
		names = append(names, tag.Name)
	}
	return names
}

// Episode belongs to a Title; Number is unique within it.
type Episode struct {
	ID              string    `json:"id" gorm:"primaryKey;size:36"`
	TitleID         string    `json:"titleId" gorm:"size:36;not null;uniqueIndex:idx_episode_title_number"`
	Number          int       `json:"number" gorm:"not null;uniqueIndex:idx_episode_title_number"`
	Name            string    `json:"name" gorm:"size:128;not null"`
	PlayerSrc       string    `json:"playerSrc" gorm:"size:2048;not null"`
	DurationMinutes *int      `json:"durationMinutes"`
	Published       bool      `json:"published" gorm:"not null;default:false"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func (e *Episode) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// Genre is a catalog genre keyword.
type Genre struct {
	ID   uint   `json:"-" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;size:64;not null"`
}

// Tag is a free-form catalog tag.
type Tag struct {
	ID   uint   `json:"-" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;size:64;not null"`
}
