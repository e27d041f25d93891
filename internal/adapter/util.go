package adapter

import (
	"errors"
	"html"
	"regexp"
	"strings"
)

// DefaultHoursOld is the recency window handed to providers. Older listings
// are excluded by the provider query itself; nothing downstream re-checks it.
const DefaultHoursOld = 72

var errNoKeywords = errors.New("no keywords to search for")

var htmlTagRegex = regexp.MustCompile(`<[^>]*>`)

// extractText converts an HTML or HTML-encoded snippet to plain text.
// Entities are unescaped first so encoded markup is stripped too, then
// whitespace is collapsed.
func extractText(content string) string {
	unescaped := html.UnescapeString(content)
	plain := htmlTagRegex.ReplaceAllString(unescaped, " ")
	return strings.Join(strings.Fields(plain), " ")
}

// BuildQuery joins keywords into a single provider search string.
// A lone keyword is used verbatim; several are OR-joined.
func BuildQuery(keywords []string) (string, error) {
	switch len(keywords) {
	case 0:
		return "", errNoKeywords
	case 1:
		return keywords[0], nil
	default:
		return strings.Join(keywords, " OR "), nil
	}
}

// recencyDays converts an hour window into whole days for providers that only
// accept a day granularity, rounding up so the window is never narrowed.
func recencyDays(hoursOld int) int {
	if hoursOld <= 0 {
		return 1
	}
	return (hoursOld + 23) / 24
}
