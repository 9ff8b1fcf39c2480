package model

import (
	"errors"
	"net/http"
	"strings"

	"gpevim-backend/internal/infrastructure/storage"
)

var (
	ErrNoFile        = errors.New("no image file provided")
	ErrNotImage      = errors.New("only image files are allowed")
	ErrTooLarge      = errors.New("image exceeds the maximum upload size")
	ErrInvalidBucket = errors.New("invalid bucket")
)

// UploadInput is one image as received from the client.
type UploadInput struct {
	Bucket      string
	Filename    string
	ContentType string
	Data        []byte
}

// Normalize applies the default bucket.
func (in *UploadInput) Normalize() {
	in.Bucket = strings.TrimSpace(in.Bucket)
	if in.Bucket == "" {
		in.Bucket = storage.BucketPublications
	}
}

// IsImage reports whether the declared media type is image/*.
func IsImage(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "image/")
}

type UploadResponse struct {
	Success  bool   `json:"success"`
	ImageURL string `json:"imageUrl"`
	Filename string `json:"filename"`
}

func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNoFile),
		errors.Is(err, ErrNotImage),
		errors.Is(err, ErrTooLarge),
		errors.Is(err, ErrInvalidBucket):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrNoFile):
		return "NO_FILE"
	case errors.Is(err, ErrNotImage):
		return "NOT_AN_IMAGE"
	case errors.Is(err, ErrTooLarge):
		return "FILE_TOO_LARGE"
	case errors.Is(err, ErrInvalidBucket):
		return "INVALID_BUCKET"
	case errors.Is(err, storage.ErrProcessing):
		return "IMAGE_PROCESSING_FAILED"
	default:
		return "UPLOAD_FAILED"
	}
}
