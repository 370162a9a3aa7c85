package jobsearch

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/smartcv/jobfinder/internal/profile"
	"go.uber.org/zap"
)

const (
	// MinLimit and MaxLimit bound the caller-supplied result limit.
	MinLimit = 1
	MaxLimit = 50

	placeholderSource = "Mocked"
)

// Finder fans a profile-driven search out to all configured providers and
// merges their results into a single bounded, deduplicated list. Providers
// are queried concurrently but concatenated in their fixed configuration
// order (free providers first, the keyed provider last), so dedup is
// deterministic regardless of completion order.
type Finder struct {
	providers       []Provider
	defaultLocation string
	logger          *zap.Logger
}

func NewFinder(providers []Provider, defaultLocation string, logger *zap.Logger) *Finder {
	return &Finder{
		providers:       providers,
		defaultLocation: defaultLocation,
		logger:          logger,
	}
}

type ProviderConfig struct {
	AdzunaAppID     string
	AdzunaAppKey    string
	AdzunaCountry   string
	DefaultLocation string
}

// DefaultProviders returns the provider set in aggregation order.
func DefaultProviders(cfg ProviderConfig, logger *zap.Logger) []Provider {
	return []Provider{
		NewRemotive(logger),
		NewRemoteOK(logger),
		NewArbeitnow(cfg.DefaultLocation, logger),
		NewAdzuna(cfg.AdzunaAppID, cfg.AdzunaAppKey, cfg.AdzunaCountry, cfg.DefaultLocation, logger),
	}
}

// FindJobs runs the full aggregation: clamp the limit, build keywords, query
// every provider, dedupe first-wins, truncate, and synthesize placeholder
// postings when nothing real came back.
func (f *Finder) FindJobs(ctx context.Context, p profile.Profile, location string, limit int) []Posting {
	limit = clampLimit(limit)
	if strings.TrimSpace(location) == "" {
		location = f.defaultLocation
	}

	keywords := profile.BuildKeywords(p)

	f.logger.Info("starting job search",
		zap.String("keywords", keywords),
		zap.String("location", location),
		zap.Int("limit", limit),
	)

	results := make([][]Posting, len(f.providers))
	var wg sync.WaitGroup
	for i, provider := range f.providers {
		wg.Add(1)
		go func(i int, provider Provider) {
			defer wg.Done()
			results[i] = provider.Search(ctx, keywords, location, limit)
		}(i, provider)
	}
	wg.Wait()

	var collected []Posting
	for i, batch := range results {
		f.logger.Debug("provider results",
			zap.String("provider", f.providers[i].Name()),
			zap.Int("count", len(batch)),
		)
		collected = append(collected, batch...)
	}

	jobs := Dedupe(collected, limit)

	f.logger.Info("aggregation finished",
		zap.Int("initial", len(collected)),
		zap.Int("dropped", len(collected)-len(jobs)),
		zap.Int("left", len(jobs)),
	)

	if len(jobs) == 0 {
		jobs = placeholderPostings(p, location, limit)
		f.logger.Info("no provider results, returning placeholders", zap.Int("count", len(jobs)))
	}

	return jobs
}

func clampLimit(limit int) int {
	if limit < MinLimit {
		return MinLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// placeholderPostings synthesizes listings from the profile's primary job
// title and type so the caller always receives a non-empty response.
func placeholderPostings(p profile.Profile, location string, limit int) []Posting {
	primaryTitle := p.PrimaryJobTitle()
	primaryType := p.PrimaryJobType()

	base := []Posting{
		{
			Title:       fmt.Sprintf("%s (%s Level)", primaryTitle, titleCase(p.ExperienceLevel)),
			Company:     "SmartCV Labs",
			Location:    location,
			Description: "Leverage your skills in a modern engineering environment.",
			ApplyLink:   "https://example.com/jobs/smartcv-labs",
			Source:      placeholderSource,
		},
		{
			Title:       fmt.Sprintf("%s - Remote Friendly", primaryType),
			Company:     "FutureWork Global",
			Location:    location,
			Description: "Join a distributed team solving real-world problems.",
			ApplyLink:   "https://example.com/jobs/futurework-global",
			Source:      placeholderSource,
		},
	}

	if limit < 1 {
		limit = 1
	}
	if limit > len(base) {
		limit = len(base)
	}
	return base[:limit]
}

func titleCase(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	runes := []rune(s)
	return string(unicode.ToUpper(runes[0])) + string(runes[1:])
}
