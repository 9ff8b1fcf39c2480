package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog/log"

	"gpevim-backend/internal/config"
)

const publicReadPolicy = `{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},"Action":["s3:GetObject"],"Resource":["arn:aws:s3:::%s/*"]}]}`

// MinIOStorage writes objects to a MinIO server. Buckets are created with a
// public-read policy the first time they are used.
type MinIOStorage struct {
	client    *minio.Client
	publicURL string

	mu      sync.Mutex
	ensured map[string]bool
}

func NewMinIOStorage(cfg config.MinIOConfig) (*MinIOStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	publicURL := strings.TrimRight(cfg.PublicURL, "/")
	if publicURL == "" {
		publicURL = client.EndpointURL().String()
	}

	return &MinIOStorage{
		client:    client,
		publicURL: publicURL,
		ensured:   make(map[string]bool),
	}, nil
}

func (s *MinIOStorage) ensureBucket(ctx context.Context, bucket string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ensured[bucket] {
		return nil
	}

	exists, err := s.client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
		if err := s.client.SetBucketPolicy(ctx, bucket, fmt.Sprintf(publicReadPolicy, bucket)); err != nil {
			log.Warn().Err(err).Str("bucket", bucket).Msg("[STORAGE] could not set public-read policy")
		}
		log.Info().Str("bucket", bucket).Msg("[STORAGE] bucket created")
	}

	s.ensured[bucket] = true
	return nil
}

// PutNew checks for an existing key with StatObject before writing.
func (s *MinIOStorage) PutNew(ctx context.Context, bucket, key string, data []byte, contentType string) (string, error) {
	if err := s.ensureBucket(ctx, bucket); err != nil {
		return "", err
	}

	_, err := s.client.StatObject(ctx, bucket, key, minio.StatObjectOptions{})
	switch {
	case err == nil:
		return "", ErrObjectExists
	case minio.ToErrorResponse(err).Code != "NoSuchKey":
		return "", fmt.Errorf("failed to stat object: %w", err)
	}

	_, err = s.client.PutObject(ctx, bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("failed to upload to minio: %w", err)
	}

	return fmt.Sprintf("%s/%s/%s", s.publicURL, bucket, key), nil
}
