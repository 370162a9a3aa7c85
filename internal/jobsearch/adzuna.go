package jobsearch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	adzunaBaseURL  = "https://api.adzuna.com/v1/api/jobs"
	adzunaMaxLimit = 50
)

// Adzuna is the keyed provider. Without both credentials it answers with an
// empty result and never attempts a call; keyword filtering happens
// server-side via the "what" parameter.
type Adzuna struct {
	AppID           string
	AppKey          string
	Country         string
	BaseURL         string
	DefaultLocation string
	HTTPClient      *http.Client
	logger          *zap.Logger
}

func NewAdzuna(appID, appKey, country, defaultLocation string, logger *zap.Logger) *Adzuna {
	return &Adzuna{
		AppID:           appID,
		AppKey:          appKey,
		Country:         country,
		BaseURL:         adzunaBaseURL,
		DefaultLocation: defaultLocation,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

func (a *Adzuna) Name() string { return "Adzuna" }

func (a *Adzuna) configured() bool {
	return a.AppID != "" && a.AppKey != ""
}

func (a *Adzuna) Search(ctx context.Context, keywords, location string, limit int) []Posting {
	if !a.configured() {
		a.logger.Debug("adzuna credentials not set, skipping")
		return nil
	}

	postings, err := a.search(ctx, keywords, location, limit)
	if err != nil {
		a.logger.Warn("adzuna search failed", zap.Error(err))
		return nil
	}
	return postings
}

type adzunaResponse struct {
	Results []adzunaResult `json:"results"`
}

type adzunaResult struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	RedirectURL string `json:"redirect_url"`
	Company     struct {
		DisplayName string `json:"display_name"`
	} `json:"company"`
	Location struct {
		DisplayName string `json:"display_name"`
	} `json:"location"`
}

func (a *Adzuna) search(ctx context.Context, keywords, location string, limit int) ([]Posting, error) {
	where := strings.TrimSpace(location)
	if where == "" {
		where = a.DefaultLocation
	}

	params := url.Values{}
	params.Set("app_id", a.AppID)
	params.Set("app_key", a.AppKey)
	params.Set("what", keywords)
	params.Set("where", where)
	params.Set("results_per_page", strconv.Itoa(min(limit, adzunaMaxLimit)))
	params.Set("content-type", "application/json")

	endpoint := fmt.Sprintf("%s/%s/search/1", a.BaseURL, a.Country)

	var payload adzunaResponse
	if err := getJSON(ctx, a.HTTPClient, endpoint+"?"+params.Encode(), "", &payload); err != nil {
		return nil, err
	}

	results := make([]Posting, 0, len(payload.Results))
	for _, item := range payload.Results {
		title := item.Title
		if title == "" {
			title = unknownRole
		}
		company := item.Company.DisplayName
		if company == "" {
			company = unknownCompany
		}
		loc := item.Location.DisplayName
		if loc == "" {
			loc = where
		}

		results = append(results, Posting{
			Title:       title,
			Company:     company,
			Location:    loc,
			Description: sanitizeDescription(item.Description),
			ApplyLink:   item.RedirectURL,
			Source:      a.Name(),
		})
		if len(results) >= limit {
			break
		}
	}

	return results, nil
}
