package jobsearch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func TestAdzunaSkipsWithoutCredentials(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		called = true
	}))
	defer server.Close()

	provider := NewAdzuna("", "", "gb", "Remote", zap.NewNop())
	provider.BaseURL = server.URL

	if postings := provider.Search(context.Background(), "python", "", 10); len(postings) != 0 {
		t.Fatalf("expected empty result, got %d", len(postings))
	}
	if called {
		t.Fatal("expected no request without credentials")
	}
}

func TestAdzunaSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("app_id") != "id" || q.Get("app_key") != "key" {
			t.Fatalf("missing credentials in query: %v", q)
		}
		if q.Get("what") != "python" {
			t.Fatalf("unexpected what: %q", q.Get("what"))
		}
		if q.Get("where") != "London" {
			t.Fatalf("unexpected where: %q", q.Get("where"))
		}
		w.Write([]byte(`{"results": [
			{"title": "Python Developer", "description": "Django work", "redirect_url": "https://adzuna.com/1",
			 "company": {"display_name": "Acme"}, "location": {"display_name": "London"}},
			{"description": "No title or company here", "redirect_url": "https://adzuna.com/2",
			 "company": {}, "location": {}}
		]}`))
	}))
	defer server.Close()

	provider := NewAdzuna("id", "key", "gb", "Remote", zap.NewNop())
	provider.BaseURL = server.URL

	postings := provider.Search(context.Background(), "python", "London", 10)

	if len(postings) != 2 {
		t.Fatalf("expected 2 postings, got %d", len(postings))
	}
	if postings[0].Company != "Acme" || postings[0].Source != "Adzuna" {
		t.Fatalf("unexpected posting: %+v", postings[0])
	}
	if postings[1].Title != unknownRole || postings[1].Company != unknownCompany {
		t.Fatalf("expected fallback title/company, got %+v", postings[1])
	}
	if postings[1].Location != "London" {
		t.Fatalf("expected requested location fallback, got %q", postings[1].Location)
	}
}

func TestAdzunaDefaultsLocation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("where"); got != "Remote" {
			t.Fatalf("expected default location, got %q", got)
		}
		w.Write([]byte(`{"results": []}`))
	}))
	defer server.Close()

	provider := NewAdzuna("id", "key", "gb", "Remote", zap.NewNop())
	provider.BaseURL = server.URL

	provider.Search(context.Background(), "python", "", 10)
}
