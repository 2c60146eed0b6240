package brandeck

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const defaultSlug = "deck"

// DefaultFilename returns <YYYY-MM-DD>-<slug>.pptx for a deck titled title.
func DefaultFilename(title string, t time.Time) string {
	return t.Format("2006-01-02") + "-" + Slug(title) + ".pptx"
}

// Slug transliterates s to lowercase ASCII, collapsing every run of other
// characters to a single hyphen.
func Slug(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	stripped = cases.Lower(language.Und).String(stripped)
	var sb strings.Builder
	hyphen := false
	for _, r := range stripped {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
			hyphen = false
			continue
		}
		if !hyphen && sb.Len() > 0 {
			sb.WriteByte('-')
			hyphen = true
		}
	}
	slug := strings.TrimSuffix(sb.String(), "-")
	if slug == "" {
		return defaultSlug
	}
	return slug
}
