package service

import (
	"regexp"
	"strings"

	"github.com/user/dreamyvoice/internal/model"
	"github.com/user/dreamyvoice/internal/utils"
)

// GenreKeywords is the fixed genre dictionary seeded on startup.
var GenreKeywords = []string{
	"экшен", "комедия", "драма", "фэнтези", "сверхъестественное", "фантастика",
	"сёнен", "романтика", "приключения", "повседневность", "сейнен", "этти",
	"детектив", "меха", "военное", "психологическое", "ужасы", "исторический",
	"спорт", "сёдзё", "триллер", "музыка", "пародия", "игры", "боевые искусства",
	"сёдзё-ай", "дзёсей",
}

// TagKeywords is the fixed tag dictionary seeded on startup.
var TagKeywords = []string{
	"bdrip", "webrip", "школа", "олдскул", "магия", "hdtvrip", "демоны", "война",
	"космос", "роботы", "любовь", "вампиры", "оружие", "будущее", "дружба",
	"сражения", "повседневность", "клуб", "кровь", "друзья", "супер сила", "боги",
	"dvdrip",
}

var ageRatingPatterns = func() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(model.AgeRatings))
	for _, rating := range model.AgeRatings {
		patterns = append(patterns, regexp.MustCompile(
			`(?i)(^|[^A-Z0-9+\-])`+regexp.QuoteMeta(rating)+`([^A-Z0-9+\-]|$)`,
		))
	}
	return patterns
}()

// DetectGenres returns the genre keywords mentioned in description.
func DetectGenres(description string) []string {
	return detectKeywords(description, GenreKeywords)
}

// DetectTags returns the tag keywords mentioned in description.
func DetectTags(description string) []string {
	return detectKeywords(description, TagKeywords)
}

// DetectAgeRating returns the first age rating that appears as a standalone
// word in description, or "".
func DetectAgeRating(description string) string {
	for i, re := range ageRatingPatterns {
		if re.MatchString(description) {
			return model.AgeRatings[i]
		}
	}
	return ""
}

func detectKeywords(description string, keywords []string) []string {
	normalized := utils.NormalizeText(description)
	if normalized == "" {
		return nil
	}
	var found []string
	for _, kw := range keywords {
		if strings.Contains(normalized, utils.NormalizeText(kw)) {
			found = append(found, kw)
		}
	}
	return found
}
