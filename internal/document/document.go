package document

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Content types accepted for upload.
const (
	ContentTypePDF  = "application/pdf"
	ContentTypeText = "text/plain"
)

var (
	// ErrUnreadableDocument is returned when the file cannot be opened as a PDF.
	ErrUnreadableDocument = errors.New("could not load PDF")

	// ErrNoText is returned when a document opened but yielded no text.
	ErrNoText = errors.New("could not extract text from PDF")

	// ErrUnsupportedType is returned for uploads that are neither PDF nor text.
	ErrUnsupportedType = errors.New("unsupported document type")
)

// Extractor reads the text content of a document.
type Extractor interface {
	Extract(ctx context.Context, r io.ReaderAt, size int64) (string, error)
}

// Document is an uploaded file reduced to its text.
type Document struct {
	Name        string
	ContentType string
	Text        string
}

// Characters returns the length of the extracted text in runes.
func (d *Document) Characters() int {
	return utf8.RuneCountInString(d.Text)
}

// Loader picks an extractor by content type and produces Documents.
type Loader struct {
	extractors map[string]Extractor
}

// NewLoader creates a Loader with the PDF and plain-text extractors.
func NewLoader() *Loader {
	return &Loader{
		extractors: map[string]Extractor{
			ContentTypePDF:  PDFExtractor{},
			ContentTypeText: TextExtractor{},
		},
	}
}

// Load extracts the text of data. contentType may be empty or generic, in
// which case the type is inferred from the file name and then the content.
func (l *Loader) Load(ctx context.Context, name, contentType string, data []byte) (*Document, error) {
	ct := ResolveContentType(name, contentType, data)
	extractor, ok := l.extractors[ct]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, ct)
	}

	text, err := extractor.Extract(ctx, bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	return &Document{Name: name, ContentType: ct, Text: text}, nil
}

// ResolveContentType returns the media type of an upload without parameters.
func ResolveContentType(name, contentType string, data []byte) string {
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil &&
		mediaType != "" && mediaType != "application/octet-stream" {
		return mediaType
	}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return ContentTypePDF
	case ".txt", ".md":
		return ContentTypeText
	}

	if bytes.HasPrefix(data, []byte("%PDF-")) {
		return ContentTypePDF
	}
	mediaType, _, _ := mime.ParseMediaType(http.DetectContentType(data))
	return mediaType
}
