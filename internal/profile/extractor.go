package profile

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

const (
	offlineSummaryPrefix = "Rule-based analysis (no API key). "
	summaryMaxLength     = 220

	seniorYears = 8
	midYears    = 3
)

// yearsPattern matches "5 years", "10+ yrs" and similar phrases.
var yearsPattern = regexp.MustCompile(`(?i)(\d{1,2})\s*\+?\s*(?:years|yrs)\b`)

// Extractor derives a Profile from raw CV text using the lexicon plus
// numeric and keyword heuristics. It is deterministic and fully offline.
type Extractor struct {
	lexicon *Lexicon
	logger  *zap.Logger
}

func NewExtractor(lexicon *Lexicon, logger *zap.Logger) *Extractor {
	if lexicon == nil {
		lexicon = DefaultLexicon()
	}
	return &Extractor{lexicon: lexicon, logger: logger}
}

// Extract builds a Profile from the given CV text. It tolerates arbitrarily
// short or long input; length validation belongs to the calling boundary.
func (e *Extractor) Extract(cvText string) Profile {
	text := strings.ToLower(cvText)

	skills := matchPhrases(text, e.lexicon.Skills)
	titles := matchPhrases(text, e.lexicon.Titles)

	maxYears := maxYearsMentioned(text)
	level := experienceLevel(text, maxYears)

	var jobTypes []string
	if containsAny(text, "remote", "work from home", "wfh") {
		jobTypes = append(jobTypes, "remote")
	}
	if containsAny(text, "part-time", "part time") {
		jobTypes = append(jobTypes, "part-time")
	}
	if containsAny(text, "full-time", "full time") {
		jobTypes = append(jobTypes, "full-time")
	}

	if e.logger != nil {
		e.logger.Debug("rule-based extraction",
			zap.Int("skills", len(skills)),
			zap.Int("titles", len(titles)),
			zap.Int("max_years", maxYears),
			zap.String("experience_level", level),
		)
	}

	return Profile{
		JobTitles:           titles,
		Skills:              skills,
		ExperienceLevel:     level,
		RecommendedJobTypes: jobTypes,
		Summary:             offlineSummary(cvText),
	}.Normalize()
}

// matchPhrases returns lexicon phrases occurring as substrings in the
// lower-cased text, sorted alphabetically for deterministic output.
func matchPhrases(text string, phrases []string) []string {
	var matched []string
	for _, phrase := range phrases {
		if strings.Contains(text, strings.ToLower(phrase)) {
			matched = append(matched, phrase)
		}
	}
	sort.Strings(matched)
	return matched
}

// maxYearsMentioned scans for year counts and returns the largest one found,
// or 0 when the text mentions none.
func maxYearsMentioned(text string) int {
	max := 0
	for _, m := range yearsPattern.FindAllStringSubmatch(text, -1) {
		years, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if years > max {
			max = years
		}
	}
	return max
}

// experienceLevel applies the heuristic ladder. The intern/student check
// takes precedence over any year count.
func experienceLevel(text string, maxYears int) string {
	switch {
	case containsAny(text, "intern", "student"):
		return "student"
	case maxYears >= seniorYears:
		return "senior"
	case maxYears >= midYears:
		return "mid"
	case maxYears > 0:
		return "junior"
	default:
		return "unknown"
	}
}

func offlineSummary(cvText string) string {
	trimmed := strings.TrimSpace(cvText)
	runes := []rune(trimmed)
	if len(runes) > summaryMaxLength {
		return offlineSummaryPrefix + string(runes[:summaryMaxLength]) + "..."
	}
	return offlineSummaryPrefix + trimmed
}

func containsAny(text string, needles ...string) bool {
	for _, needle := range needles {
		if strings.Contains(text, needle) {
			return true
		}
	}
	return false
}
