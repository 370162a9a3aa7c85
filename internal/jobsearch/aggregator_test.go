package jobsearch

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/smartcv/jobfinder/internal/profile"
	"go.uber.org/zap"
)

type stubProvider struct {
	name     string
	postings []Posting
	delay    time.Duration
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Search(_ context.Context, _, _ string, limit int) []Posting {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	if len(s.postings) > limit {
		return s.postings[:limit]
	}
	return s.postings
}

func makePostings(source string, n int) []Posting {
	out := make([]Posting, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Posting{
			Title:     fmt.Sprintf("Role %d", i),
			Company:   source + " Co",
			ApplyLink: fmt.Sprintf("https://example.com/%s/%d", source, i),
			Source:    source,
		})
	}
	return out
}

func TestFindJobsRespectsLimit(t *testing.T) {
	finder := NewFinder([]Provider{
		&stubProvider{name: "a", postings: makePostings("a", 10)},
		&stubProvider{name: "b", postings: makePostings("b", 10)},
	}, "Remote", zap.NewNop())

	jobs := finder.FindJobs(context.Background(), profile.Profile{}, "", 5)

	if len(jobs) != 5 {
		t.Fatalf("expected 5 jobs, got %d", len(jobs))
	}
}

func TestFindJobsKeepsProviderOrder(t *testing.T) {
	// the slow provider comes first in config order and must stay first in
	// the merged output
	finder := NewFinder([]Provider{
		&stubProvider{name: "slow", postings: makePostings("slow", 2), delay: 50 * time.Millisecond},
		&stubProvider{name: "fast", postings: makePostings("fast", 2)},
	}, "Remote", zap.NewNop())

	jobs := finder.FindJobs(context.Background(), profile.Profile{}, "", 10)

	if len(jobs) != 4 {
		t.Fatalf("expected 4 jobs, got %d", len(jobs))
	}
	for i, want := range []string{"slow", "slow", "fast", "fast"} {
		if jobs[i].Source != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, jobs[i].Source)
		}
	}
}

func TestFindJobsDeduplicatesAcrossProviders(t *testing.T) {
	shared := Posting{Title: "Shared", Company: "Acme", ApplyLink: "https://example.com/shared"}

	first := shared
	first.Source = "first"
	second := shared
	second.Source = "second"

	finder := NewFinder([]Provider{
		&stubProvider{name: "first", postings: []Posting{first}},
		&stubProvider{name: "second", postings: []Posting{second}},
	}, "Remote", zap.NewNop())

	jobs := finder.FindJobs(context.Background(), profile.Profile{}, "", 10)

	if len(jobs) != 1 {
		t.Fatalf("expected 1 job, got %d", len(jobs))
	}
	if jobs[0].Source != "first" {
		t.Fatalf("expected first provider to win, got %q", jobs[0].Source)
	}
}

func TestFindJobsFallsBackToPlaceholders(t *testing.T) {
	finder := NewFinder([]Provider{
		&stubProvider{name: "empty"},
	}, "Berlin", zap.NewNop())

	p := profile.Profile{
		JobTitles:       []string{"backend developer"},
		ExperienceLevel: "mid",
	}.Normalize()

	jobs := finder.FindJobs(context.Background(), p, "", 10)

	if len(jobs) == 0 {
		t.Fatal("expected placeholder postings")
	}
	for _, job := range jobs {
		if job.Source != placeholderSource {
			t.Fatalf("expected placeholder source, got %q", job.Source)
		}
		if job.Location != "Berlin" {
			t.Fatalf("expected default location, got %q", job.Location)
		}
	}

	if !strings.Contains(jobs[0].Title, "backend developer") {
		t.Fatalf("expected primary title in placeholder, got %q", jobs[0].Title)
	}
	if !strings.Contains(jobs[0].Title, "Mid Level") {
		t.Fatalf("expected experience level in placeholder, got %q", jobs[0].Title)
	}
}

func TestFindJobsPlaceholdersBoundedByLimit(t *testing.T) {
	finder := NewFinder(nil, "Remote", zap.NewNop())

	jobs := finder.FindJobs(context.Background(), profile.Profile{}, "", 1)

	if len(jobs) != 1 {
		t.Fatalf("expected exactly 1 placeholder, got %d", len(jobs))
	}
}

func TestClampLimit(t *testing.T) {
	cases := []struct{ in, want int }{
		{0, 1},
		{-3, 1},
		{25, 25},
		{100, 50},
	}
	for _, tc := range cases {
		if got := clampLimit(tc.in); got != tc.want {
			t.Fatalf("clampLimit(%d): expected %d, got %d", tc.in, tc.want, got)
		}
	}
}
