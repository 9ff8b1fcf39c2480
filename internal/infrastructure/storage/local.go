package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// LocalStorage keeps objects under <root>/<bucket>/<key> and serves them
// from <urlPrefix>/<bucket>/<key>.
type LocalStorage struct {
	root      string
	urlPrefix string
}

func NewLocalStorage(root, urlPrefix string) (*LocalStorage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	log.Info().Str("root", root).Msg("[STORAGE] local object store ready")
	return &LocalStorage{root: root, urlPrefix: strings.TrimRight(urlPrefix, "/")}, nil
}

func (s *LocalStorage) Root() string { return s.root }

func (s *LocalStorage) PutNew(_ context.Context, bucket, key string, data []byte, _ string) (string, error) {
	rel := path.Clean(path.Join(bucket, key))
	if strings.HasPrefix(rel, "..") || path.IsAbs(rel) {
		return "", fmt.Errorf("invalid object key %q", key)
	}

	full := filepath.Join(s.root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("failed to create object dir: %w", err)
	}

	f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return "", ErrObjectExists
		}
		return "", fmt.Errorf("failed to create object: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(full)
		return "", fmt.Errorf("failed to write object: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close object: %w", err)
	}

	return s.urlPrefix + "/" + rel, nil
}
