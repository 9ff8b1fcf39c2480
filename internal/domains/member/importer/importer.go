// Package importer bulk-loads members into the durable store, uploading
// local portrait files on the way.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"gpevim-backend/internal/domains/member/model"
	"gpevim-backend/internal/infrastructure/storage"
	"gpevim-backend/internal/shared/store"
)

// Result counts what a run did. Failed rows never stop the run.
type Result struct {
	Total          int `json:"total"`
	Inserted       int `json:"inserted"`
	Failed         int `json:"failed"`
	ImagesUploaded int `json:"images_uploaded"`
	ImagesMissing  int `json:"images_missing"`
}

type Importer struct {
	repo      store.Store[model.Member]
	objects   storage.ObjectStore
	processor *storage.ImageProcessor
	imagesDir string
	now       func() time.Time
}

// New wires an importer. repo must be a durable store: imports never fall
// back to process memory.
func New(repo store.Store[model.Member], objects storage.ObjectStore, processor *storage.ImageProcessor, imagesDir string) *Importer {
	return &Importer{
		repo:      repo,
		objects:   objects,
		processor: processor,
		imagesDir: imagesDir,
		now:       time.Now,
	}
}

func (im *Importer) Run(ctx context.Context, rows []Row) Result {
	res := Result{Total: len(rows)}

	for i, row := range rows {
		logger := log.With().Int("row", i+1).Str("name", row.Name).Logger()

		if err := ctx.Err(); err != nil {
			logger.Warn().Err(err).Msg("import cancelled")
			res.Failed += len(rows) - i
			break
		}

		imageURL := row.ImageURL
		if row.LocalImagePath != "" {
			url, err := im.uploadLocalImage(ctx, row.LocalImagePath)
			switch {
			case errors.Is(err, fs.ErrNotExist):
				res.ImagesMissing++
				logger.Warn().Str("path", row.LocalImagePath).Msg("local image not found, keeping image_url")
			case err != nil:
				res.Failed++
				logger.Error().Err(err).Msg("image upload failed")
				continue
			default:
				res.ImagesUploaded++
				imageURL = url
				logger.Info().Str("url", url).Msg("image uploaded")
			}
		}

		req := &model.MemberRequest{
			Name:          row.Name,
			Role:          row.Role,
			ImageURL:      imageURL,
			LattesURL:     &row.LattesURL,
			ResearchTopic: &row.ResearchTopic,
			Category:      row.Category,
		}
		req.Normalize()
		if err := req.Validate(); err != nil {
			res.Failed++
			logger.Error().Err(err).Msg("invalid member row")
			continue
		}

		if _, err := im.repo.Create(ctx, req.ToEntity()); err != nil {
			res.Failed++
			logger.Error().Err(err).Msg("insert failed")
			continue
		}
		res.Inserted++
		logger.Info().Msg("member inserted")
	}

	return res
}

func (im *Importer) uploadLocalImage(ctx context.Context, localPath string) (string, error) {
	path := localPath
	if !filepath.IsAbs(path) {
		path = filepath.Join(im.imagesDir, path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	processed, err := im.processor.Process(raw)
	if err != nil {
		return "", fmt.Errorf("process %s: %w", localPath, err)
	}

	key := storage.ObjectKey(localPath, im.now())
	return im.objects.PutNew(ctx, storage.BucketMembers, key, processed, storage.OutputContentType)
}
