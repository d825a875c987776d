package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	reUnsafeKeyChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)
	reDashes         = regexp.MustCompile(`-+`)
	reSlug           = regexp.MustCompile(`^[a-z0-9-]+$`)
)

// NormalizeText lowercases s, strips diacritics and folds ё into е so keyword
// matching is insensitive to how a description was typed.
func NormalizeText(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		folded = strings.ToLower(s)
	}
	folded = strings.ReplaceAll(folded, "ё", "е")
	return strings.TrimSpace(folded)
}

// SanitizeFilename replaces every run of characters outside [A-Za-z0-9._-]
// with a single hyphen.
func SanitizeFilename(name string) string {
	cleaned := reUnsafeKeyChars.ReplaceAllString(strings.TrimSpace(name), "-")
	return CollapseDashes(cleaned)
}

// CollapseDashes turns runs of hyphens into one.
func CollapseDashes(s string) string {
	return reDashes.ReplaceAllString(s, "-")
}

// IsSlug reports whether s only contains lowercase latin letters, digits and hyphens.
func IsSlug(s string) bool {
	return reSlug.MatchString(s)
}
