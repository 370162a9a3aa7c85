package profile

import (
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestExtractYearsSkillsAndJobTypes(t *testing.T) {
	e := NewExtractor(nil, zap.NewNop())

	p := e.Extract("I have 5 years of experience in Python and enjoy remote work")

	if p.ExperienceLevel != "mid" {
		t.Fatalf("expected mid experience level, got %q", p.ExperienceLevel)
	}

	if !contains(p.Skills, "python") {
		t.Fatalf("expected python in skills, got %v", p.Skills)
	}

	if !contains(p.RecommendedJobTypes, "remote") {
		t.Fatalf("expected remote in job types, got %v", p.RecommendedJobTypes)
	}
}

func TestExtractStudentOverridesYearCount(t *testing.T) {
	e := NewExtractor(nil, zap.NewNop())

	p := e.Extract("Former intern with 10 years of tinkering")

	if p.ExperienceLevel != "student" {
		t.Fatalf("expected student, got %q", p.ExperienceLevel)
	}
}

func TestExtractExperienceLadder(t *testing.T) {
	e := NewExtractor(nil, zap.NewNop())

	cases := []struct {
		text string
		want string
	}{
		{"worked for 12 years as a plumber", "senior"},
		{"3 years in support", "mid"},
		{"1 year... well, 2 yrs actually", "junior"},
		{"no numbers here", "unknown"},
		{"8+ years of Go", "senior"},
	}

	for _, tc := range cases {
		if got := e.Extract(tc.text).ExperienceLevel; got != tc.want {
			t.Fatalf("%q: expected %s, got %s", tc.text, tc.want, got)
		}
	}
}

func TestExtractDefaultsJobTypesToAny(t *testing.T) {
	e := NewExtractor(nil, zap.NewNop())

	p := e.Extract("A plain text without any work arrangement hints")

	if !reflect.DeepEqual(p.RecommendedJobTypes, []string{"any"}) {
		t.Fatalf("expected [any], got %v", p.RecommendedJobTypes)
	}
}

func TestExtractIsDeterministic(t *testing.T) {
	e := NewExtractor(nil, zap.NewNop())
	text := "Senior backend developer, 9 years, python, docker, kubernetes, remote"

	first := e.Extract(text)
	second := e.Extract(text)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical profiles, got %+v and %+v", first, second)
	}
}

func TestExtractSummaryTruncation(t *testing.T) {
	e := NewExtractor(nil, zap.NewNop())
	long := strings.Repeat("x", 500)

	p := e.Extract(long)

	if !strings.HasPrefix(p.Summary, offlineSummaryPrefix) {
		t.Fatalf("expected offline prefix, got %q", p.Summary)
	}
	if !strings.HasSuffix(p.Summary, "...") {
		t.Fatalf("expected ellipsis on truncated summary")
	}
	if got := len(p.Summary); got != len(offlineSummaryPrefix)+summaryMaxLength+3 {
		t.Fatalf("unexpected summary length %d", got)
	}
}

func TestExtractWithExtendedLexicon(t *testing.T) {
	lexicon := DefaultLexicon()
	lexicon.Extend([]string{"terraform"}, []string{"platform engineer"})

	e := NewExtractor(lexicon, zap.NewNop())
	p := e.Extract("Platform engineer automating infra with Terraform")

	if !contains(p.Skills, "terraform") {
		t.Fatalf("expected terraform in skills, got %v", p.Skills)
	}
	if !contains(p.JobTitles, "platform engineer") {
		t.Fatalf("expected platform engineer in titles, got %v", p.JobTitles)
	}
}

func TestValidateText(t *testing.T) {
	if err := ValidateText("too short"); err == nil {
		t.Fatal("expected validation error for short text")
	}

	long := strings.Repeat("experienced developer ", 10)
	if err := ValidateText(long); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
