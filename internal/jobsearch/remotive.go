package jobsearch

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
)

const (
	remotiveBaseURL = "https://remotive.com/api/remote-jobs"
	// Remotive rejects larger page sizes.
	remotiveMaxLimit = 50
)

// Remotive is a free provider (no key). Results keep Remotive as the source
// and link back to the Remotive job URL.
type Remotive struct {
	BaseURL    string
	HTTPClient *http.Client
	logger     *zap.Logger
}

func NewRemotive(logger *zap.Logger) *Remotive {
	return &Remotive{
		BaseURL: remotiveBaseURL,
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: logger,
	}
}

func (r *Remotive) Name() string { return "Remotive" }

func (r *Remotive) Search(ctx context.Context, keywords, _ string, limit int) []Posting {
	postings, err := r.search(ctx, keywords, limit)
	if err != nil {
		r.logger.Warn("remotive search failed", zap.Error(err))
		return nil
	}
	return postings
}

type remotiveResponse struct {
	Jobs []remotiveJob `json:"jobs"`
}

type remotiveJob struct {
	Title                     string `json:"title"`
	CompanyName               string `json:"company_name"`
	CandidateRequiredLocation string `json:"candidate_required_location"`
	Description               string `json:"description"`
	URL                       string `json:"url"`
}

func (r *Remotive) search(ctx context.Context, keywords string, limit int) ([]Posting, error) {
	q := url.Values{}
	q.Set("search", keywords)
	q.Set("limit", strconv.Itoa(min(limit, remotiveMaxLimit)))

	var payload remotiveResponse
	if err := getJSON(ctx, r.HTTPClient, r.BaseURL+"?"+q.Encode(), "", &payload); err != nil {
		return nil, err
	}

	results := make([]Posting, 0, len(payload.Jobs))
	for _, item := range payload.Jobs {
		title := item.Title
		if title == "" {
			title = unknownRole
		}
		company := item.CompanyName
		if company == "" {
			company = unknownCompany
		}
		location := item.CandidateRequiredLocation
		if location == "" {
			location = "Remote"
		}
		description := stripHTML(item.Description)

		if !matchesKeywords(keywords, title+" "+company+" "+description+" "+location) {
			continue
		}

		results = append(results, Posting{
			Title:       title,
			Company:     company,
			Location:    location,
			Description: sanitizeDescription(description),
			ApplyLink:   item.URL,
			Source:      r.Name(),
		})
		if len(results) >= limit {
			break
		}
	}

	return results, nil
}
