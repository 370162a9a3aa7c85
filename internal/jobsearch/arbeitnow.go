package jobsearch

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const arbeitnowBaseURL = "https://www.arbeitnow.com/api/job-board-api"

// Arbeitnow is a free job-board API (no key). It has no server-side keyword
// search, so the relevance filter runs locally.
type Arbeitnow struct {
	BaseURL         string
	DefaultLocation string
	HTTPClient      *http.Client
	logger          *zap.Logger
}

func NewArbeitnow(defaultLocation string, logger *zap.Logger) *Arbeitnow {
	return &Arbeitnow{
		BaseURL:         arbeitnowBaseURL,
		DefaultLocation: defaultLocation,
		HTTPClient: &http.Client{
			Timeout: 20 * time.Second,
		},
		logger: logger,
	}
}

func (a *Arbeitnow) Name() string { return "Arbeitnow" }

func (a *Arbeitnow) Search(ctx context.Context, keywords, _ string, limit int) []Posting {
	postings, err := a.search(ctx, keywords, limit)
	if err != nil {
		a.logger.Warn("arbeitnow search failed", zap.Error(err))
		return nil
	}
	return postings
}

type arbeitnowResponse struct {
	Data []arbeitnowJob `json:"data"`
}

type arbeitnowJob struct {
	Title       string   `json:"title"`
	CompanyName string   `json:"company_name"`
	Location    string   `json:"location"`
	Description string   `json:"description"`
	URL         string   `json:"url"`
	Tags        []string `json:"tags"`
}

func (a *Arbeitnow) search(ctx context.Context, keywords string, limit int) ([]Posting, error) {
	var payload arbeitnowResponse
	if err := getJSON(ctx, a.HTTPClient, a.BaseURL, "", &payload); err != nil {
		return nil, err
	}

	var results []Posting
	for _, item := range payload.Data {
		title := item.Title
		if title == "" {
			title = unknownRole
		}
		company := item.CompanyName
		if company == "" {
			company = unknownCompany
		}
		description := stripHTML(item.Description)

		haystack := title + " " + company + " " + item.Location + " " + strings.Join(item.Tags, " ") + " " + description
		if !matchesKeywords(keywords, haystack) {
			continue
		}

		location := item.Location
		if location == "" {
			location = a.DefaultLocation
		}

		results = append(results, Posting{
			Title:       title,
			Company:     company,
			Location:    location,
			Description: sanitizeDescription(description),
			ApplyLink:   item.URL,
			Source:      a.Name(),
		})
		if len(results) >= limit {
			break
		}
	}

	return results, nil
}
