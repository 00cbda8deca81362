package document

import (
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// TextExtractor passes UTF-8 text through unchanged.
type TextExtractor struct{}

// Extract implements Extractor.
func (TextExtractor) Extract(ctx context.Context, r io.ReaderAt, size int64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var b strings.Builder
	if _, err := io.Copy(&b, io.NewSectionReader(r, 0, size)); err != nil {
		return "", fmt.Errorf("failed to read text: %w", err)
	}

	text := b.String()
	if !utf8.ValidString(text) {
		return "", fmt.Errorf("%w: text is not valid UTF-8", ErrUnsupportedType)
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrNoText
	}
	return text, nil
}
