package profile

import (
	"fmt"
	"strings"
)

// Profile is a structured representation of a candidate derived from CV text.
// All fields are always present: slices are never nil after Normalize.
type Profile struct {
	JobTitles           []string `json:"job_titles" mapstructure:"job_titles"`
	Skills              []string `json:"skills" mapstructure:"skills"`
	ExperienceLevel     string   `json:"experience_level" mapstructure:"experience_level"`
	RecommendedJobTypes []string `json:"recommended_job_types" mapstructure:"recommended_job_types"`
	Summary             string   `json:"summary,omitempty" mapstructure:"summary"`
}

// MinTextLength is the minimum trimmed CV text length accepted at the calling
// boundary. The extractor itself tolerates shorter input.
const MinTextLength = 50

// ValidationError rejects caller-supplied CV text.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid cv text: %s", e.Reason)
}

// ValidateText checks caller-supplied CV text before it enters the pipeline.
func ValidateText(cvText string) error {
	if len(strings.TrimSpace(cvText)) < MinTextLength {
		return &ValidationError{Reason: "CV text is too short. Please upload a more detailed CV."}
	}
	return nil
}

// Normalize returns a copy with guaranteed invariants: no nil slices,
// case-insensitively deduplicated titles and skills with order preserved,
// lower-cased experience level defaulting to "unknown", and recommended job
// types defaulting to ["any"].
func (p Profile) Normalize() Profile {
	p.JobTitles = dedupeFold(p.JobTitles)
	p.Skills = dedupeFold(p.Skills)
	p.RecommendedJobTypes = dedupeFold(p.RecommendedJobTypes)

	p.ExperienceLevel = strings.ToLower(strings.TrimSpace(p.ExperienceLevel))
	if p.ExperienceLevel == "" {
		p.ExperienceLevel = "unknown"
	}

	if len(p.RecommendedJobTypes) == 0 {
		p.RecommendedJobTypes = []string{"any"}
	}

	p.Summary = strings.TrimSpace(p.Summary)

	return p
}

// PrimaryJobTitle returns the first job title or a generic default.
func (p Profile) PrimaryJobTitle() string {
	if len(p.JobTitles) > 0 && strings.TrimSpace(p.JobTitles[0]) != "" {
		return p.JobTitles[0]
	}
	return "Software Engineer"
}

// PrimaryJobType returns the first recommended job type, falling back to the
// primary job title when no type was derived.
func (p Profile) PrimaryJobType() string {
	if len(p.RecommendedJobTypes) > 0 && strings.TrimSpace(p.RecommendedJobTypes[0]) != "" {
		return p.RecommendedJobTypes[0]
	}
	return p.PrimaryJobTitle()
}

func dedupeFold(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		key := strings.ToLower(v)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}
