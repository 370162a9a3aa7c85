package jobsearch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Provider is a single job-listing source. Search never fails to the caller:
// transport errors, timeouts, non-2xx responses and malformed payloads all
// resolve to an empty result for that provider.
type Provider interface {
	Name() string
	Search(ctx context.Context, keywords, location string, limit int) []Posting
}

// matchesKeywords reports whether any whitespace-separated token of keywords
// occurs in the haystack, case-insensitively. A single token is enough to
// avoid over-filtering; empty keywords accept everything.
func matchesKeywords(keywords, haystack string) bool {
	if keywords == "" {
		return true
	}
	hay := strings.ToLower(haystack)
	for _, token := range strings.Fields(strings.ToLower(keywords)) {
		if strings.Contains(hay, token) {
			return true
		}
	}
	return false
}

// getJSON makes a GET request and decodes the JSON response into target.
func getJSON(ctx context.Context, client *http.Client, url, userAgent string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	req.Header.Set("Accept", "application/json")
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status: %s", resp.Status)
	}

	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}

	return nil
}
