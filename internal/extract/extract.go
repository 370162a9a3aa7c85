package extract

import (
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/cloudwego/eino-ext/components/document/parser/pdf"
	einoparser "github.com/cloudwego/eino/components/document/parser"
	"go.uber.org/zap"
)

// FormatError indicates a document could not be decoded into text.
type FormatError struct {
	Format string
	Err    error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Format, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// Service extracts UTF-8 text from uploaded CV documents, dispatching on the
// filename hint: .pdf and .docx get dedicated parsers, anything else is read
// as plain text with a latin-1 salvage pass.
type Service struct {
	pdf    *pdf.PDFParser
	logger *zap.Logger
}

func NewService(ctx context.Context, logger *zap.Logger) (*Service, error) {
	// ToPages false: we want the whole document as one continuous string
	p, err := pdf.NewPDFParser(ctx, &pdf.Config{ToPages: false})
	if err != nil {
		return nil, fmt.Errorf("create pdf parser: %w", err)
	}

	return &Service{pdf: p, logger: logger}, nil
}

func (s *Service) ExtractText(ctx context.Context, r io.Reader, filename string) (string, error) {
	name := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(name, ".pdf"):
		return s.extractPDF(ctx, r, filename)
	case strings.HasSuffix(name, ".docx"):
		return extractDOCX(r)
	default:
		return extractPlain(r)
	}
}

func (s *Service) extractPDF(ctx context.Context, r io.Reader, filename string) (string, error) {
	docs, err := s.pdf.Parse(ctx, r, einoparser.WithURI(filename))
	if err != nil {
		return "", &FormatError{Format: "PDF", Err: err}
	}

	var builder strings.Builder
	for _, doc := range docs {
		if doc == nil || doc.Content == "" {
			continue
		}
		if builder.Len() > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString(doc.Content)
	}

	text := strings.TrimSpace(builder.String())
	if s.logger != nil {
		s.logger.Debug("extracted pdf text",
			zap.String("filename", filename),
			zap.Int("length", len(text)),
		)
	}

	return text, nil
}

func extractPlain(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", &FormatError{Format: "file", Err: err}
	}

	if utf8.Valid(data) {
		return strings.TrimSpace(string(data)), nil
	}

	// latin-1 salvage: every byte maps directly to the code point of the
	// same value, so nothing can fail
	runes := make([]rune, 0, len(data))
	for _, b := range data {
		runes = append(runes, rune(b))
	}
	return strings.TrimSpace(string(runes)), nil
}
