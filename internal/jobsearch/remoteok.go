package jobsearch

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

const remoteOKUserAgent = "SmartCVJobFinder/1.0"

// RemoteOK consumes the free Remote OK feed. The feed has no server-side
// search, so the relevance filter runs locally; the first feed element is
// legal metadata, not a job.
type RemoteOK struct {
	// BaseURLs are tried in order until one answers.
	BaseURLs   []string
	HTTPClient *http.Client
	logger     *zap.Logger
}

func NewRemoteOK(logger *zap.Logger) *RemoteOK {
	return &RemoteOK{
		BaseURLs: []string{"https://remoteok.com/api", "https://remoteok.io/api"},
		HTTPClient: &http.Client{
			Timeout: 20 * time.Second,
		},
		logger: logger,
	}
}

func (r *RemoteOK) Name() string { return "Remote OK" }

func (r *RemoteOK) Search(ctx context.Context, keywords, _ string, limit int) []Posting {
	postings, err := r.search(ctx, keywords, limit)
	if err != nil {
		r.logger.Warn("remote ok search failed", zap.Error(err))
		return nil
	}
	return postings
}

// remoteOKJob is decoded weakly: tags arrive as a list or a single string
// depending on the listing.
type remoteOKJob struct {
	Position    string   `mapstructure:"position"`
	Title       string   `mapstructure:"title"`
	Company     string   `mapstructure:"company"`
	Location    string   `mapstructure:"location"`
	Description string   `mapstructure:"description"`
	URL         string   `mapstructure:"url"`
	Tags        []string `mapstructure:"tags"`
}

func (r *RemoteOK) search(ctx context.Context, keywords string, limit int) ([]Posting, error) {
	var payload []any
	var lastErr error
	fetched := false
	for _, base := range r.BaseURLs {
		if err := getJSON(ctx, r.HTTPClient, base, remoteOKUserAgent, &payload); err != nil {
			lastErr = err
			continue
		}
		fetched = true
		break
	}
	if !fetched {
		if lastErr == nil {
			lastErr = errors.New("no base url configured")
		}
		return nil, lastErr
	}

	var results []Posting
	for i, raw := range payload {
		// first element is usually metadata
		if i == 0 {
			continue
		}
		item, ok := raw.(map[string]any)
		if !ok {
			continue
		}

		job, err := decodeRemoteOKJob(item)
		if err != nil {
			r.logger.Debug("skipping undecodable feed item", zap.Error(err))
			continue
		}

		title := job.Position
		if title == "" {
			title = job.Title
		}
		if title == "" {
			title = unknownRole
		}
		company := job.Company
		if company == "" {
			company = unknownCompany
		}
		location := job.Location
		if location == "" {
			location = "Remote"
		}
		description := stripHTML(job.Description)

		haystack := title + " " + company + " " + location + " " + strings.Join(job.Tags, " ") + " " + description
		if !matchesKeywords(keywords, haystack) {
			continue
		}

		results = append(results, Posting{
			Title:       title,
			Company:     company,
			Location:    location,
			Description: sanitizeDescription(description),
			ApplyLink:   job.URL,
			Source:      r.Name(),
		})
		if len(results) >= limit {
			break
		}
	}

	return results, nil
}

func decodeRemoteOKJob(item map[string]any) (remoteOKJob, error) {
	var job remoteOKJob
	cfg := &mapstructure.DecoderConfig{
		Result:           &job,
		WeaklyTypedInput: true,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return job, err
	}
	if err := decoder.Decode(item); err != nil {
		return job, err
	}
	return job, nil
}
