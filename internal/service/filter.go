package service

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/user/dreamyvoice/internal/model"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Catalog sort orders. The empty order keeps most-recently-updated first.
const (
	SortNameAsc     = "name_asc"
	SortNameDesc    = "name_desc"
	SortCreatedDesc = "created_desc"
	SortCreatedAsc  = "created_asc"
)

// Progress filter values.
const (
	StatusAll      = "all"
	StatusOngoing  = "ongoing"
	StatusReleased = "released"
)

var reYear = regexp.MustCompile(`^\d{4}$`)

// TitleFilter narrows and orders a catalog listing.
type TitleFilter struct {
	Query    string
	Genre    string
	Tag      string
	Status   string
	Rating   string
	YearFrom *int
	YearTo   *int
	Sort     string
}

// ParseTitleFilter builds a filter from raw query values. Unknown values are
// ignored rather than rejected. "completed" is accepted as an alias of
// "released", and "year" fills both bounds when they are absent.
func ParseTitleFilter(get func(key string) string) TitleFilter {
	f := TitleFilter{
		Query:  strings.TrimSpace(get("query")),
		Genre:  strings.ToLower(strings.TrimSpace(get("genre"))),
		Tag:    strings.ToLower(strings.TrimSpace(get("tag"))),
		Status: StatusAll,
	}

	status := get("status")
	if status == "" {
		status = get("progress")
	}
	switch status {
	case StatusOngoing:
		f.Status = StatusOngoing
	case "completed", StatusReleased:
		f.Status = StatusReleased
	}

	if rating := strings.ToUpper(strings.TrimSpace(get("rating"))); model.IsAgeRating(rating) {
		f.Rating = rating
	} else if rating == "RX" {
		f.Rating = "Rx"
	}

	year := parseYear(get("year"))
	f.YearFrom, f.YearTo = year, year
	if from := parseYear(get("yearFrom")); from != nil {
		f.YearFrom = from
	}
	if to := parseYear(get("yearTo")); to != nil {
		f.YearTo = to
	}

	switch s := strings.ToLower(get("sort")); s {
	case SortNameAsc, SortNameDesc, SortCreatedDesc, SortCreatedAsc:
		f.Sort = s
	}
	return f
}

func parseYear(v string) *int {
	if !reYear.MatchString(v) {
		return nil
	}
	y, _ := strconv.Atoi(v)
	return &y
}

// IsZero reports whether the filter leaves a listing untouched.
func (f TitleFilter) IsZero() bool {
	return f.Query == "" && f.Genre == "" && f.Tag == "" &&
		(f.Status == "" || f.Status == StatusAll) && f.Rating == "" &&
		f.YearFrom == nil && f.YearTo == nil && f.Sort == ""
}

// enrichedTitle carries the derived attributes filtering works on.
type enrichedTitle struct {
	title       *model.Title
	genres      []string
	tags        []string
	ageRating   string
	completed   bool
	releaseYear int
}

func enrich(t *model.Title) enrichedTitle {
	e := enrichedTitle{
		title:  t,
		genres: t.GenreNames(),
		tags:   t.TagNames(),
	}

	var description string
	if t.Description != nil {
		description = *t.Description
	}
	if len(e.genres) == 0 {
		e.genres = DetectGenres(description)
	}
	if len(e.tags) == 0 {
		e.tags = DetectTags(description)
	}
	if t.AgeRating != nil && model.IsAgeRating(*t.AgeRating) {
		e.ageRating = *t.AgeRating
	} else {
		e.ageRating = DetectAgeRating(description)
	}

	e.completed = t.Published
	for _, ep := range t.Episodes {
		if !ep.Published {
			e.completed = false
			break
		}
	}

	if t.OriginalReleaseDate != nil {
		e.releaseYear = t.OriginalReleaseDate.Year()
	} else {
		e.releaseYear = t.CreatedAt.Year()
	}
	return e
}

func (e enrichedTitle) matches(f TitleFilter) bool {
	if f.Query != "" && !strings.Contains(strings.ToLower(e.title.Name), strings.ToLower(f.Query)) {
		return false
	}
	if f.YearFrom != nil && e.releaseYear < *f.YearFrom {
		return false
	}
	if f.YearTo != nil && e.releaseYear > *f.YearTo {
		return false
	}
	if f.Genre != "" && !contains(e.genres, f.Genre) {
		return false
	}
	if f.Tag != "" && !contains(e.tags, f.Tag) {
		return false
	}
	switch f.Status {
	case StatusReleased:
		if !e.completed {
			return false
		}
	case StatusOngoing:
		if e.completed {
			return false
		}
	}
	if f.Rating != "" && e.ageRating != f.Rating {
		return false
	}
	return true
}

// ApplyFilter filters and sorts titles in memory. Titles arrive most
// recently updated first and keep that order when no sort is requested.
func ApplyFilter(titles []*model.Title, f TitleFilter) []*model.Title {
	out := make([]*model.Title, 0, len(titles))
	for _, t := range titles {
		if enrich(t).matches(f) {
			out = append(out, t)
		}
	}

	switch f.Sort {
	case SortNameAsc, SortNameDesc:
		col := collate.New(language.Russian, collate.IgnoreCase, collate.IgnoreDiacritics)
		sort.SliceStable(out, func(i, j int) bool {
			cmp := col.CompareString(out[i].Name, out[j].Name)
			if f.Sort == SortNameDesc {
				return cmp > 0
			}
			return cmp < 0
		})
	case SortCreatedAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	case SortCreatedDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	}
	return out
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if strings.EqualFold(item, v) {
			return true
		}
	}
	return false
}
