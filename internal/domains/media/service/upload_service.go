package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"gpevim-backend/internal/domains/media/model"
	"gpevim-backend/internal/infrastructure/metrics"
	"gpevim-backend/internal/infrastructure/storage"
)

// maxKeyAttempts bounds retries when a generated key is already taken.
const maxKeyAttempts = 3

type ServiceInterface interface {
	Upload(ctx context.Context, in *model.UploadInput) (*model.UploadResponse, error)
}

type uploadService struct {
	objects   storage.ObjectStore
	processor *storage.ImageProcessor
	maxBytes  int64
	now       func() time.Time
}

func NewUploadService(objects storage.ObjectStore, processor *storage.ImageProcessor, maxBytes int64) ServiceInterface {
	return &uploadService{
		objects:   objects,
		processor: processor,
		maxBytes:  maxBytes,
		now:       time.Now,
	}
}

// Upload validates, resizes and stores one image. Nothing is written unless
// every check passes.
func (s *uploadService) Upload(ctx context.Context, in *model.UploadInput) (*model.UploadResponse, error) {
	in.Normalize()
	if !storage.IsAllowedBucket(in.Bucket) {
		return nil, model.ErrInvalidBucket
	}
	if len(in.Data) == 0 {
		return nil, model.ErrNoFile
	}
	if !model.IsImage(in.ContentType) {
		return nil, model.ErrNotImage
	}
	if s.maxBytes > 0 && int64(len(in.Data)) > s.maxBytes {
		return nil, model.ErrTooLarge
	}

	out, err := s.processor.Process(in.Data)
	if err != nil {
		metrics.ImageUploaded(in.Bucket, false)
		return nil, err
	}

	url, key, err := s.put(ctx, in.Bucket, in.Filename, out)
	if err != nil {
		metrics.ImageUploaded(in.Bucket, false)
		return nil, err
	}
	metrics.ImageUploaded(in.Bucket, true)

	log.Info().
		Str("bucket", in.Bucket).
		Str("key", key).
		Int("original_bytes", len(in.Data)).
		Int("stored_bytes", len(out)).
		Msg("Image uploaded")

	return &model.UploadResponse{Success: true, ImageURL: url, Filename: key}, nil
}

func (s *uploadService) put(ctx context.Context, bucket, filename string, data []byte) (string, string, error) {
	now := s.now()
	for attempt := 0; attempt < maxKeyAttempts; attempt++ {
		key := storage.ObjectKey(filename, now.Add(time.Duration(attempt)*time.Millisecond))
		url, err := s.objects.PutNew(ctx, bucket, key, data, storage.OutputContentType)
		if err == nil {
			return url, key, nil
		}
		if !errors.Is(err, storage.ErrObjectExists) {
			return "", "", fmt.Errorf("store image: %w", err)
		}
	}
	return "", "", fmt.Errorf("store image: %w", storage.ErrObjectExists)
}
