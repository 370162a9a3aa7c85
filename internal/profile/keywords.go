package profile

import "strings"

const (
	maxKeywordTitles = 3
	maxKeywordSkills = 5
	maxKeywordTypes  = 2
	maxKeywordLength = 120

	defaultKeywords = "software developer"
)

// BuildKeywords turns a profile into a compact keyword string used to query
// job providers: up to 3 titles, 5 skills and 2 job types, deduplicated
// case-insensitively with first-seen order preserved, space joined and capped
// at 120 characters. An empty result falls back to "software developer".
func BuildKeywords(p Profile) string {
	parts := make([]string, 0, maxKeywordTitles+maxKeywordSkills+maxKeywordTypes)
	parts = append(parts, head(p.JobTitles, maxKeywordTitles)...)
	parts = append(parts, head(p.Skills, maxKeywordSkills)...)
	parts = append(parts, head(p.RecommendedJobTypes, maxKeywordTypes)...)

	seen := make(map[string]struct{}, len(parts))
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key := strings.ToLower(part)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, part)
	}

	keywords := strings.Join(out, " ")
	if len(keywords) > maxKeywordLength {
		keywords = keywords[:maxKeywordLength]
	}
	if keywords == "" {
		return defaultKeywords
	}
	return keywords
}

func head(values []string, n int) []string {
	if len(values) > n {
		return values[:n]
	}
	return values
}
