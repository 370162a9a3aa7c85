package jobsearch

import (
	"regexp"
	"strings"
)

// maxDescriptionLength caps every posting description, counted in runes.
const maxDescriptionLength = 400

var (
	brPattern       = regexp.MustCompile(`(?i)<\s*br\s*/?>`)
	tagPattern      = regexp.MustCompile(`<[^>]+>`)
	newlinesPattern = regexp.MustCompile(`\n{3,}`)
)

// stripHTML is a small sanitizer for provider descriptions: <br> variants
// become newlines, every other tag is dropped, and runs of 3+ newlines
// collapse to 2.
func stripHTML(s string) string {
	if s == "" {
		return ""
	}
	s = brPattern.ReplaceAllString(s, "\n")
	s = tagPattern.ReplaceAllString(s, "")
	s = newlinesPattern.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// sanitizeDescription strips HTML and truncates to maxDescriptionLength.
func sanitizeDescription(s string) string {
	s = stripHTML(s)
	runes := []rune(s)
	if len(runes) > maxDescriptionLength {
		return string(runes[:maxDescriptionLength])
	}
	return s
}
