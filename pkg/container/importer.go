package container

import (
	"context"
	"fmt"

	"gpevim-backend/internal/config"
	"gpevim-backend/internal/domains/member/importer"
	memberModel "gpevim-backend/internal/domains/member/model"
	memberRepo "gpevim-backend/internal/domains/member/repository"
	"gpevim-backend/internal/infrastructure/storage"
	"gpevim-backend/internal/infrastructure/supabase"
	"gpevim-backend/internal/shared/store"
)

// NewMemberImporter wires the bulk importer against the durable member store
// only. The returned cleanup must be called when done.
func NewMemberImporter(ctx context.Context, cfg *config.Config, imagesDir string) (*importer.Importer, func(), error) {
	var (
		repo    store.Store[memberModel.Member]
		cleanup = func() {}
	)

	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		db, err := OpenPostgres(ctx, cfg, false)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		repo = memberRepo.NewPostgresRepository(db.Pool)
		cleanup = func() { _ = db.Close() }
	case config.StoreDriverSupabase:
		repo = memberRepo.NewSupabaseRepository(supabase.NewClient(cfg.Supabase))
	default:
		return nil, nil, fmt.Errorf("store driver %q is not durable; use postgres or supabase", cfg.StoreDriver)
	}

	objects, err := NewObjectStore(ctx, cfg)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to init object storage: %w", err)
	}

	processor := storage.NewImageProcessor(cfg.Image.MaxDimension, cfg.Image.Quality)
	return importer.New(repo, objects, processor, imagesDir), cleanup, nil
}
