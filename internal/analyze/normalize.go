package analyze

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/smartcv/jobfinder/internal/profile"
)

// ParseProfile turns a raw model response into a Profile. The payload is
// untrusted: fields may be missing, scalars may appear where lists are
// expected, and the JSON may be wrapped in a markdown code fence. Weak
// decoding wraps scalar values into single-element slices; Normalize fills
// the remaining defaults.
func ParseProfile(raw string) (profile.Profile, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return profile.Profile{}, fmt.Errorf("parse analysis response: %w", err)
	}

	return decodeProfile(data)
}

func decodeProfile(data map[string]any) (profile.Profile, error) {
	var p profile.Profile

	cfg := &mapstructure.DecoderConfig{
		Result:           &p,
		WeaklyTypedInput: true,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return p, fmt.Errorf("build profile decoder: %w", err)
	}

	if err := decoder.Decode(data); err != nil {
		return p, fmt.Errorf("decode analysis payload: %w", err)
	}

	return p.Normalize(), nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
