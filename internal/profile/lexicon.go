package profile

import "strings"

// Lexicon holds the reference sets of known skill and job-title phrases used
// for case-insensitive substring matching. It is built once at startup and
// never mutated afterwards.
type Lexicon struct {
	Skills []string
	Titles []string
}

var commonSkills = []string{
	// programming
	"python", "java", "javascript", "typescript", "c++", "c#", "php", "ruby", "go", "rust", "sql",
	// web / frameworks
	"react", "vue", "angular", "node.js", "django", "flask", "fastapi", "spring", "laravel",
	// data / ml
	"pandas", "numpy", "scikit-learn", "tensorflow", "pytorch", "nlp", "computer vision",
	// cloud / devops
	"docker", "kubernetes", "aws", "azure", "gcp", "ci/cd", "git",
	// other
	"excel", "power bi", "tableau", "linux", "bash",
}

var commonTitles = []string{
	"software engineer", "backend developer", "frontend developer", "full stack developer",
	"data analyst", "data scientist", "machine learning engineer", "devops engineer",
	"product manager", "project manager", "ui/ux designer", "qa engineer", "cybersecurity analyst",
}

// DefaultLexicon returns the built-in reference sets. The returned slices are
// copies, so extending them does not touch the package defaults.
func DefaultLexicon() *Lexicon {
	return &Lexicon{
		Skills: append([]string(nil), commonSkills...),
		Titles: append([]string(nil), commonTitles...),
	}
}

// Extend appends additional phrases in lowercase canonical form, skipping
// blanks and entries already present. Meant to be called during construction
// only.
func (l *Lexicon) Extend(skills, titles []string) {
	l.Skills = extend(l.Skills, skills)
	l.Titles = extend(l.Titles, titles)
}

func extend(existing, extra []string) []string {
	seen := make(map[string]struct{}, len(existing))
	for _, v := range existing {
		seen[v] = struct{}{}
	}
	for _, v := range extra {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		existing = append(existing, v)
	}
	return existing
}
