package storage

import (
	"context"
	"errors"
)

var (
	// ErrObjectExists is returned instead of overwriting an existing key.
	ErrObjectExists = errors.New("object already exists")
)

// Buckets accepted by the upload endpoint.
const (
	BucketPublications = "publications-images"
	BucketMembers      = "members-images"
)

var allowedBuckets = map[string]bool{
	BucketPublications: true,
	BucketMembers:      true,
}

// IsAllowedBucket reports whether uploads may target bucket.
func IsAllowedBucket(bucket string) bool {
	return allowedBuckets[bucket]
}

// ObjectStore writes new objects and returns their public URL.
// PutNew never overwrites: an existing key yields ErrObjectExists.
type ObjectStore interface {
	PutNew(ctx context.Context, bucket, key string, data []byte, contentType string) (string, error)
}
