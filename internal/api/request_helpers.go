package api

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// getPathUUID extracts and parses a UUID path parameter.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, fmt.Errorf("%w: %s is required", ErrInvalidID, paramName)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s has invalid format", ErrInvalidID, paramName)
	}
	return id, nil
}

// upload is a document received from a client.
type upload struct {
	Name        string
	ContentType string
	Data        []byte
}

// readUpload reads a document from a multipart form field named "file" or
// from the raw request body, enforcing maxBytes either way.
func readUpload(w http.ResponseWriter, r *http.Request, maxBytes int64) (*upload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		return readMultipartUpload(r, maxBytes)
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, uploadError(err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyUpload
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		name = "document"
	}
	return &upload{Name: name, ContentType: r.Header.Get("Content-Type"), Data: data}, nil
}

func readMultipartUpload(r *http.Request, maxBytes int64) (*upload, error) {
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		return nil, uploadError(err)
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, ErrEmptyUpload
		}
		return nil, uploadError(err)
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, uploadError(err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyUpload
	}

	return &upload{Name: header.Filename, ContentType: header.Header.Get("Content-Type"), Data: data}, nil
}

// uploadError classifies body read failures; the multipart reader does not
// always preserve *http.MaxBytesError in its chain.
func uploadError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large") {
		return fmt.Errorf("%w: %v", ErrUploadTooLarge, err)
	}
	return fmt.Errorf("%w: %v", ErrMalformedUpload, err)
}
