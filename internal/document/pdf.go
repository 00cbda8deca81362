package document

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFExtractor extracts the plain text of every page of a PDF.
type PDFExtractor struct{}

// Extract implements Extractor. Malformed files make the PDF reader panic
// on some inputs, so panics are reported as ErrUnreadableDocument.
func (PDFExtractor) Extract(ctx context.Context, r io.ReaderAt, size int64) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = fmt.Errorf("%w: %v", ErrUnreadableDocument, rec)
		}
	}()

	if err := ctx.Err(); err != nil {
		return "", err
	}

	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadableDocument, err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoText, err)
	}

	var b strings.Builder
	if _, err := io.Copy(&b, plain); err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoText, err)
	}

	if strings.TrimSpace(b.String()) == "" {
		return "", ErrNoText
	}
	return b.String(), nil
}
