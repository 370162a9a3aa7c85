package jobsearch

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestStripHTML(t *testing.T) {
	in := "<p>First line<br/>Second line</p>\n\n\n\n<div>Third</div>"

	out := stripHTML(in)

	if strings.Contains(out, "<") {
		t.Fatalf("expected tags removed, got %q", out)
	}
	if !strings.Contains(out, "First line\nSecond line") {
		t.Fatalf("expected <br> converted to newline, got %q", out)
	}
	if strings.Contains(out, "\n\n\n") {
		t.Fatalf("expected newline runs collapsed, got %q", out)
	}
}

func TestStripHTMLEmpty(t *testing.T) {
	if got := stripHTML(""); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}

func TestSanitizeDescriptionTruncates(t *testing.T) {
	long := "<b>" + strings.Repeat("x", 600) + "</b>"

	out := sanitizeDescription(long)

	if got := utf8.RuneCountInString(out); got != maxDescriptionLength {
		t.Fatalf("expected exactly %d characters, got %d", maxDescriptionLength, got)
	}
	if strings.Contains(out, "<b>") {
		t.Fatal("expected tags stripped before truncation")
	}
}

func TestMatchesKeywords(t *testing.T) {
	if !matchesKeywords("", "anything at all") {
		t.Fatal("empty keywords must accept everything")
	}
	if !matchesKeywords("python golang", "Senior Python Engineer at Acme") {
		t.Fatal("expected any-token match")
	}
	if matchesKeywords("rust", "Senior Python Engineer at Acme") {
		t.Fatal("expected no match")
	}
}
