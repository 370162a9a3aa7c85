package jobsearch

import "strings"

// Posting is the canonical, provider-agnostic job listing. Adapters map their
// native payloads into this shape; descriptions are HTML-free and capped at
// maxDescriptionLength.
type Posting struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Description string `json:"description"`
	ApplyLink   string `json:"apply_link"`
	Source      string `json:"source,omitempty"`
}

const (
	unknownRole    = "Unknown Role"
	unknownCompany = "Unknown Company"
)

// identityKey determines whether two postings are the same listing regardless
// of provider: the normalized apply link when present, title|company otherwise.
func (p Posting) identityKey() string {
	if link := strings.ToLower(strings.TrimSpace(p.ApplyLink)); link != "" {
		return link
	}
	return strings.ToLower(p.Title + "|" + p.Company)
}

// Dedupe keeps the first occurrence of every identity key and stops once the
// output reaches limit.
func Dedupe(postings []Posting, limit int) []Posting {
	seen := make(map[string]struct{}, len(postings))
	out := make([]Posting, 0, min(len(postings), limit))
	for _, p := range postings {
		key := p.identityKey()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, p)
		if len(out) >= limit {
			break
		}
	}
	return out
}
