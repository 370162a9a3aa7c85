package analyze

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/smartcv/jobfinder/internal/logger"
	"github.com/smartcv/jobfinder/internal/profile"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	defaultModel        = "gemini-2.5-flash"
	defaultMaxLogLength = 200
)

//go:embed prompt.md
var promptTemplate string

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Generator wraps the Google GenAI client to provide simple prompt-based interactions.
type Generator struct {
	client    *genai.Client
	modelName string
}

// NewGenerator creates a new Generator configured for the Gemini API backend.
func NewGenerator(ctx context.Context, apiKey, model string) (*Generator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}

	return &Generator{client: client, modelName: model}, nil
}

// GenerateContent sends the prompt to Gemini and returns the concatenated textual response.
func (g *Generator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if g == nil || g.client == nil {
		return "", errors.New("gemini generator is not initialized")
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", errors.New("gemini api returned empty response")
	}

	return output, nil
}

func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.modelName
}

// External analyzes CV text through the Gemini API. The response is untrusted
// and goes through the profile normalizer; any call or parsing failure
// degrades to an empty/unknown profile with a best-effort summary. It never
// falls back to the offline heuristics: that path is a configuration choice,
// not a runtime fallback.
type External struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewExternal(generator contentGenerator, log *zap.Logger, maxLogLength int) *External {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &External{
		generator: generator,
		logger:    log,
		maxLogLen: maxLogLength,
	}
}

func (a *External) Analyze(ctx context.Context, cvText string) profile.Profile {
	prompt := buildPrompt(cvText)

	a.logger.Debug("gemini analysis request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, a.maxLogLen)),
	)

	raw, err := a.generator.GenerateContent(ctx, prompt)
	if err != nil {
		a.logger.Warn("external analysis failed, degrading to empty profile", zap.Error(err))
		return degradedProfile("")
	}

	a.logger.Debug("gemini analysis response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, a.maxLogLen)),
	)

	p, err := ParseProfile(raw)
	if err != nil {
		a.logger.Warn("external analysis returned unparsable payload", zap.Error(err))
		return degradedProfile(raw)
	}

	return p
}

func buildPrompt(cvText string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Extract job_titles, skills, experience_level, recommended_job_types and summary as JSON.\n\nCV TEXT:\n{{CV_TEXT}}"
	}
	return strings.ReplaceAll(template, "{{CV_TEXT}}", cvText)
}

// degradedProfile is what callers receive when the external service is
// unreachable or unintelligible: empty sequences, unknown level, and whatever
// raw text came back as the summary.
func degradedProfile(raw string) profile.Profile {
	return profile.Profile{
		ExperienceLevel: "unknown",
		Summary:         strings.TrimSpace(raw),
	}.Normalize()
}
