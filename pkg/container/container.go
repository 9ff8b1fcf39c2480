package container

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"gpevim-backend/internal/config"
	infraCache "gpevim-backend/internal/infrastructure/cache"
	"gpevim-backend/internal/infrastructure/database"
	"gpevim-backend/internal/infrastructure/scheduler"
	"gpevim-backend/internal/infrastructure/storage"
	"gpevim-backend/internal/infrastructure/supabase"
	"gpevim-backend/internal/shared/fallback"
	"gpevim-backend/internal/shared/store"
	"gpevim-backend/pkg/cache"
	"gpevim-backend/pkg/jwt"

	authHandler "gpevim-backend/internal/domains/auth/handler"
	authRepo "gpevim-backend/internal/domains/auth/repository"
	authService "gpevim-backend/internal/domains/auth/service"

	mediaHandler "gpevim-backend/internal/domains/media/handler"
	mediaService "gpevim-backend/internal/domains/media/service"

	memberHandler "gpevim-backend/internal/domains/member/handler"
	memberModel "gpevim-backend/internal/domains/member/model"
	memberRepo "gpevim-backend/internal/domains/member/repository"
	memberService "gpevim-backend/internal/domains/member/service"

	publicationHandler "gpevim-backend/internal/domains/publication/handler"
	publicationModel "gpevim-backend/internal/domains/publication/model"
	publicationRepo "gpevim-backend/internal/domains/publication/repository"
	publicationService "gpevim-backend/internal/domains/publication/service"
)

const (
	jwtIssuer       = "gpevim-cms"
	defaultCacheTTL = 5 * time.Minute
	uploadsRoute    = "/uploads"

	KindPublication = "publication"
	KindMember      = "member"
)

// ErrNoDurableBackend is returned by Ping in memory-only mode.
var ErrNoDurableBackend = errors.New("no durable backend configured")

// Container holds every long-lived dependency of the API process.
// Build order: config, infrastructure, stores, services, handlers.
type Container struct {
	Config *config.Config

	// Durable backends. At most one of DB and Supabase is set.
	DB         *database.PostgresDB
	Supabase   *supabase.Client
	Cache      cache.Cache
	redis      *infraCache.RedisClient
	JWTManager *jwt.Manager

	Objects   storage.ObjectStore
	Processor *storage.ImageProcessor
	Scheduler *scheduler.Scheduler

	// Stores as seen by the services: durable, cached and fallback layers
	// already composed.
	PublicationStore store.Store[publicationModel.Publication]
	MemberStore      store.Store[memberModel.Member]
	AdminRepo        authRepo.RepositoryInterface

	// Process-local stores. Nil when a durable backend runs without fallback.
	localPublications *store.Memory[publicationModel.Publication, *publicationModel.Publication]
	localMembers      *store.Memory[memberModel.Member, *memberModel.Member]

	PublicationService publicationService.ServiceInterface
	MemberService      memberService.ServiceInterface
	AuthService        authService.ServiceInterface
	UploadService      mediaService.ServiceInterface

	PublicationHandler *publicationHandler.PublicationHandler
	MemberHandler      *memberHandler.MemberHandler
	AuthHandler        *authHandler.AuthHandler
	UploadHandler      *mediaHandler.UploadHandler
}

// NewContainer builds the dependency graph. A durable backend that is down
// at boot is tolerated when fallback is enabled.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	log.Info().Str("store", cfg.StoreDriver).Str("storage", cfg.StorageDriver).Msg("Initializing DI container")

	c := &Container{
		Config:     cfg,
		JWTManager: jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Expiry, jwtIssuer),
		Processor:  storage.NewImageProcessor(cfg.Image.MaxDimension, cfg.Image.Quality),
	}

	if err := c.initDurable(ctx); err != nil {
		c.Cleanup()
		return nil, fmt.Errorf("failed to init durable backend: %w", err)
	}

	c.initCache(ctx)

	objects, err := NewObjectStore(ctx, cfg)
	if err != nil {
		c.Cleanup()
		return nil, fmt.Errorf("failed to init object storage: %w", err)
	}
	c.Objects = objects

	c.initStores()
	c.initServices()
	c.seedAdmin(ctx)
	c.initHandlers()

	if cfg.Scheduler.Enabled {
		if err := c.initScheduler(); err != nil {
			c.Cleanup()
			return nil, err
		}
	}

	log.Info().Msg("DI container initialized")
	return c, nil
}

func (c *Container) initDurable(ctx context.Context) error {
	switch c.Config.StoreDriver {
	case config.StoreDriverPostgres:
		db, err := OpenPostgres(ctx, c.Config, c.Config.FallbackEnabled)
		if err != nil {
			return err
		}
		c.DB = db

	case config.StoreDriverSupabase:
		c.Supabase = supabase.NewClient(c.Config.Supabase)
		if err := c.Supabase.Ping(ctx, "publications"); err != nil {
			log.Warn().Err(err).Msg("Supabase not reachable at startup")
		}
	}
	return nil
}

// OpenPostgres connects and migrates. With tolerateDown, a failed connect
// falls back to a lazily dialed pool and migrations are skipped.
func OpenPostgres(ctx context.Context, cfg *config.Config, tolerateDown bool) (*database.PostgresDB, error) {
	settings := cfg.DatabaseSettings()
	db := database.NewPostgresDB(settings)

	if err := db.Connect(ctx); err != nil {
		if !tolerateDown {
			return nil, err
		}
		log.Warn().Err(err).Msg("PostgreSQL unreachable, continuing with local fallback")
		if err := db.OpenLazy(ctx); err != nil {
			return nil, err
		}
		return db, nil
	}

	if cfg.Database.AutoMigrate {
		if err := database.MigrateUp(settings.DSN()); err != nil {
			if !tolerateDown {
				_ = db.Close()
				return nil, err
			}
			log.Error().Err(err).Msg("Migrations failed")
		}
	}
	return db, nil
}

func (c *Container) initCache(ctx context.Context) {
	if !c.Config.Redis.Enabled || !c.hasDurable() {
		return
	}

	rc := infraCache.NewRedisClient(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)
	if err := rc.Connect(ctx); err != nil {
		log.Warn().Err(err).Msg("Redis connection failed (non-critical), caching disabled")
		_ = rc.Close()
		return
	}
	c.redis = rc
	c.Cache = rc
}

// NewObjectStore selects the image backend by STORAGE_DRIVER.
func NewObjectStore(ctx context.Context, cfg *config.Config) (storage.ObjectStore, error) {
	switch cfg.StorageDriver {
	case config.StorageDriverMinIO:
		return storage.NewMinIOStorage(cfg.MinIO)
	case config.StorageDriverS3:
		return storage.NewS3Storage(ctx, cfg.S3)
	default:
		return storage.NewLocalStorage(cfg.Upload.Dir, uploadsRoute)
	}
}

func (c *Container) initStores() {
	ids := store.NewIDGenerator()

	durablePubs, durableMembers := c.durableStores()
	if durablePubs == nil {
		// memory-only mode
		c.localPublications = store.NewMemory[publicationModel.Publication](ids)
		c.localMembers = store.NewMemory[memberModel.Member](ids)
		c.PublicationStore = c.localPublications
		c.MemberStore = c.localMembers
		return
	}

	if c.Cache != nil {
		durablePubs = store.NewCached(durablePubs, c.Cache, "publications", c.cacheTTL())
		durableMembers = store.NewCached(durableMembers, c.Cache, "members", c.cacheTTL())
	}

	if !c.Config.FallbackEnabled {
		c.PublicationStore = durablePubs
		c.MemberStore = durableMembers
		return
	}

	c.localPublications = store.NewMemory[publicationModel.Publication](ids)
	c.localMembers = store.NewMemory[memberModel.Member](ids)
	c.PublicationStore = fallback.NewCoordinator[publicationModel.Publication](KindPublication, durablePubs, c.localPublications)
	c.MemberStore = fallback.NewCoordinator[memberModel.Member](KindMember, durableMembers, c.localMembers)
}

func (c *Container) durableStores() (store.Store[publicationModel.Publication], store.Store[memberModel.Member]) {
	switch {
	case c.DB != nil:
		c.AdminRepo = authRepo.NewPostgresRepository(c.DB.Pool)
		return publicationRepo.NewPostgresRepository(c.DB.Pool), memberRepo.NewPostgresRepository(c.DB.Pool)
	case c.Supabase != nil:
		c.AdminRepo = authRepo.NewSupabaseRepository(c.Supabase)
		return publicationRepo.NewSupabaseRepository(c.Supabase), memberRepo.NewSupabaseRepository(c.Supabase)
	default:
		return nil, nil
	}
}

func (c *Container) cacheTTL() time.Duration {
	if c.Config.Redis.TTL > 0 {
		return c.Config.Redis.TTL
	}
	return defaultCacheTTL
}

func (c *Container) initServices() {
	c.PublicationService = publicationService.NewPublicationService(c.PublicationStore)
	c.MemberService = memberService.NewMemberService(c.MemberStore)
	c.UploadService = mediaService.NewUploadService(c.Objects, c.Processor, c.Config.Upload.MaxBytes)
	c.AuthService = authService.NewAuthService(c.AdminRepo, c.JWTManager, authService.Credentials{
		Username: c.Config.Admin.BypassUsername,
		Password: c.Config.Admin.BypassPassword,
	})
}

func (c *Container) seedAdmin(ctx context.Context) {
	if c.AdminRepo == nil {
		return
	}
	if err := c.AuthService.SeedAdmin(ctx, c.Config.Admin.SeedUsername, c.Config.Admin.SeedPassword); err != nil {
		log.Warn().Err(err).Msg("Admin seed skipped")
	}
}

func (c *Container) initHandlers() {
	c.PublicationHandler = publicationHandler.NewPublicationHandler(c.PublicationService)
	c.MemberHandler = memberHandler.NewMemberHandler(c.MemberService)
	c.AuthHandler = authHandler.NewAuthHandler(c.AuthService)
	c.UploadHandler = mediaHandler.NewUploadHandler(c.UploadService, c.Config.Upload.MaxBytes)
}

func (c *Container) initScheduler() error {
	locals := map[string]scheduler.Counter{}
	if c.hasDurable() && c.localPublications != nil {
		locals[KindPublication] = c.localPublications
		locals[KindMember] = c.localMembers
	}

	var ping scheduler.PingFunc
	if c.hasDurable() {
		ping = c.Ping
	}

	s, err := scheduler.New(c.Config.Scheduler.HealthSpec, ping, locals)
	if err != nil {
		return fmt.Errorf("failed to init scheduler: %w", err)
	}
	c.Scheduler = s
	return nil
}

func (c *Container) hasDurable() bool {
	return c.DB != nil || c.Supabase != nil
}

// Ping probes the configured durable backend.
func (c *Container) Ping(ctx context.Context) error {
	switch {
	case c.DB != nil:
		return c.DB.Ping(ctx)
	case c.Supabase != nil:
		return c.Supabase.Ping(ctx, "publications")
	default:
		return ErrNoDurableBackend
	}
}

// Cleanup releases connections. Safe on a partially built container.
func (c *Container) Cleanup() {
	log.Info().Msg("Cleaning up container resources")

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close database")
		}
	}

	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Redis")
		}
	}
}
