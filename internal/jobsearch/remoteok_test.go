package jobsearch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func TestRemoteOKSearchSkipsMetadataAndFilters(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != remoteOKUserAgent {
			t.Fatalf("unexpected user agent: %q", got)
		}
		w.Write([]byte(`[
			{"legal": "API terms of service"},
			{"position": "Go Engineer", "company": "Acme", "location": "Worldwide", "tags": ["golang", "backend"], "description": "Build services in Go", "url": "https://remoteok.com/jobs/1"},
			{"position": "Chef", "company": "Bistro", "tags": "cooking", "description": "Cook things", "url": "https://remoteok.com/jobs/2"}
		]`))
	}))
	defer server.Close()

	provider := NewRemoteOK(zap.NewNop())
	provider.BaseURLs = []string{server.URL}

	postings := provider.Search(context.Background(), "golang", "", 10)

	if len(postings) != 1 {
		t.Fatalf("expected 1 posting, got %d", len(postings))
	}
	if postings[0].Title != "Go Engineer" {
		t.Fatalf("unexpected title: %q", postings[0].Title)
	}
	if postings[0].Source != "Remote OK" {
		t.Fatalf("unexpected source: %q", postings[0].Source)
	}
}

func TestRemoteOKSearchFallsBackToSecondBase(t *testing.T) {
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer bad.Close()

	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[
			{"legal": "meta"},
			{"position": "Go Engineer", "company": "Acme", "description": "Go work", "url": "https://remoteok.com/jobs/1"}
		]`))
	}))
	defer good.Close()

	provider := NewRemoteOK(zap.NewNop())
	provider.BaseURLs = []string{bad.URL, good.URL}

	if postings := provider.Search(context.Background(), "go", "", 10); len(postings) != 1 {
		t.Fatalf("expected fallback base to answer, got %d postings", len(postings))
	}
}

func TestRemoteOKSearchDecodesScalarTags(t *testing.T) {
	item := map[string]any{
		"position": "Chef",
		"tags":     "cooking",
	}

	job, err := decodeRemoteOKJob(item)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(job.Tags) != 1 || job.Tags[0] != "cooking" {
		t.Fatalf("expected scalar tag wrapped into list, got %v", job.Tags)
	}
}
