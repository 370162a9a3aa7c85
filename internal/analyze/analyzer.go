package analyze

import (
	"context"

	"github.com/smartcv/jobfinder/internal/profile"
)

// Analyzer turns raw CV text into a Profile. Implementations never fail:
// integration problems degrade the profile instead of surfacing errors.
type Analyzer interface {
	Analyze(ctx context.Context, cvText string) profile.Profile
}

// Offline analyzes CV text with the rule-based extractor. It is the default
// path when no external analysis credential is configured.
type Offline struct {
	extractor *profile.Extractor
}

func NewOffline(extractor *profile.Extractor) *Offline {
	return &Offline{extractor: extractor}
}

func (o *Offline) Analyze(_ context.Context, cvText string) profile.Profile {
	return o.extractor.Extract(cvText)
}
