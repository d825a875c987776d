package model

import "time"

// ReleaseDateLayout is the wire format of originalReleaseDate.
const ReleaseDateLayout = "2006-01-02"

// EpisodeView is the public shape of an episode.
type EpisodeView struct {
	ID              string  `json:"id"`
	Number          int     `json:"number"`
	Name            string  `json:"name"`
	DurationMinutes *int    `json:"durationMinutes"`
	PlayerSrc       *string `json:"playerSrc,omitempty"`
	Published       bool    `json:"published"`
}

// ToEpisodeView hides the player source of unpublished episodes unless
// drafts are visible.
func ToEpisodeView(e *Episode, includeDrafts bool) EpisodeView {
	v := EpisodeView{
		ID:              e.ID,
		Number:          e.Number,
		Name:            e.Name,
		DurationMinutes: e.DurationMinutes,
		Published:       e.Published,
	}
	if includeDrafts || e.Published {
		src := e.PlayerSrc
		v.PlayerSrc = &src
	}
	return v
}

// TitleView is the public shape of a title with its episodes.
type TitleView struct {
	ID                  string        `json:"id"`
	Slug                string        `json:"slug"`
	Name                string        `json:"name"`
	Description         *string       `json:"description"`
	CoverKey            *string       `json:"coverKey"`
	Published           bool          `json:"published"`
	Genres              []string      `json:"genres"`
	Tags                []string      `json:"tags"`
	AgeRating           *string       `json:"ageRating"`
	OriginalReleaseDate *string       `json:"originalReleaseDate"`
	CreatedAt           time.Time     `json:"createdAt"`
	UpdatedAt           time.Time     `json:"updatedAt"`
	Episodes            []EpisodeView `json:"episodes"`
}

func ToTitleView(t *Title, includeDrafts bool) TitleView {
	v := TitleView{
		ID:          t.ID,
		Slug:        t.Slug,
		Name:        t.Name,
		Description: t.Description,
		CoverKey:    t.CoverKey,
		Published:   t.Published,
		Genres:      t.GenreNames(),
		Tags:        t.TagNames(),
		AgeRating:   t.AgeRating,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		Episodes:    make([]EpisodeView, 0, len(t.Episodes)),
	}
	if t.OriginalReleaseDate != nil {
		d := t.OriginalReleaseDate.Format(ReleaseDateLayout)
		v.OriginalReleaseDate = &d
	}
	for i := range t.Episodes {
		v.Episodes = append(v.Episodes, ToEpisodeView(&t.Episodes[i], includeDrafts))
	}
	return v
}

// CommentAuthor is the author block embedded in a comment.
type CommentAuthor struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	AvatarKey *string `json:"avatarKey"`
}

// CommentView is the public shape of a comment. Status is only set for moderators.
type CommentView struct {
	ID        string         `json:"id"`
	Body      string         `json:"body"`
	Status    *CommentStatus `json:"status,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	Author    CommentAuthor  `json:"author"`
}

func ToCommentView(c *Comment, includeStatus bool) CommentView {
	v := CommentView{
		ID:        c.ID,
		Body:      c.Body,
		CreatedAt: c.CreatedAt,
		Author: CommentAuthor{
			ID:        c.User.ID,
			Username:  c.User.Username,
			AvatarKey: c.User.AvatarKey,
		},
	}
	if includeStatus {
		status := c.Status
		v.Status = &status
	}
	return v
}

// FavoriteView is one entry of a user's favorites list.
type FavoriteView struct {
	ID       string  `json:"id"`
	Slug     string  `json:"slug"`
	Name     string  `json:"name"`
	CoverKey *string `json:"coverKey"`
}
