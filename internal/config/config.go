package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Store drivers
const (
	StoreDriverPostgres = "postgres"
	StoreDriverSupabase = "supabase"
	StoreDriverMemory   = "memory"
)

// Storage drivers
const (
	StorageDriverLocal = "local"
	StorageDriverMinIO = "minio"
	StorageDriverS3    = "s3"
)

const defaultJWTSecret = "change-me-in-production"

// Config holds the whole application configuration.
// Every field is populated from environment variables; nested sections are
// prefixed with their envconfig tag and split on word boundaries
// (APP_ENV, DB_HOST, DB_SSL_MODE, MINIO_ENDPOINT, ...).
type Config struct {
	Port            string `envconfig:"PORT" default:"3000"`
	DatabaseURL     string `envconfig:"DATABASE_URL"`
	StoreDriver     string `envconfig:"STORE_DRIVER" default:"postgres"`
	StorageDriver   string `envconfig:"STORAGE_DRIVER" default:"local"`
	FallbackEnabled bool   `envconfig:"FALLBACK_ENABLED" default:"true"`
	StaticDir       string `envconfig:"STATIC_DIR" default:"./public"`

	App       AppConfig       `envconfig:"APP"`
	Database  DatabaseConfig  `envconfig:"DB"`
	Supabase  SupabaseConfig  `envconfig:"SUPABASE"`
	MinIO     MinIOConfig     `envconfig:"MINIO"`
	S3        S3Config        `envconfig:"S3"`
	Redis     RedisConfig     `envconfig:"REDIS"`
	JWT       JWTConfig       `envconfig:"JWT"`
	Admin     AdminConfig     `envconfig:"ADMIN"`
	Image     ImageConfig     `envconfig:"IMAGE"`
	Upload    UploadConfig    `envconfig:"UPLOAD"`
	Scheduler SchedulerConfig `envconfig:"SCHEDULER"`
}

type AppConfig struct {
	Name     string `split_words:"true" default:"GPEVIM CMS"`
	Env      string `split_words:"true" default:"development"` // development, test, production
	Version  string `split_words:"true" default:"1.0.0"`
	LogLevel string `split_words:"true" default:"info"`
}

type DatabaseConfig struct {
	Host              string        `split_words:"true" default:"localhost"`
	Port              int           `split_words:"true" default:"5432"`
	User              string        `split_words:"true" default:"postgres"`
	Password          string        `split_words:"true"`
	Name              string        `split_words:"true" default:"gpevim_db"`
	SSLMode           string        `split_words:"true" default:"disable"`
	MaxConns          int32         `split_words:"true" default:"10"`
	MinConns          int32         `split_words:"true" default:"0"`
	MaxConnLifetime   time.Duration `split_words:"true" default:"5m"`
	MaxConnIdleTime   time.Duration `split_words:"true" default:"1m"`
	HealthCheckPeriod time.Duration `split_words:"true" default:"1m"`
	MaxRetries        int           `split_words:"true" default:"3"`
	RetryDelay        time.Duration `split_words:"true" default:"1s"`
	ConnectTimeout    time.Duration `split_words:"true" default:"5s"`
	AutoMigrate       bool          `split_words:"true" default:"true"`
}

type SupabaseConfig struct {
	URL     string        `split_words:"true"`
	Key     string        `split_words:"true"`
	Schema  string        `split_words:"true" default:"public"`
	Timeout time.Duration `split_words:"true" default:"10s"`
}

type MinIOConfig struct {
	Endpoint  string `split_words:"true" default:"localhost:9000"`
	AccessKey string `split_words:"true" default:"minioadmin"`
	SecretKey string `split_words:"true" default:"minioadmin"`
	UseSSL    bool   `split_words:"true" default:"false"`
	PublicURL string `split_words:"true"` // overrides <scheme>://<endpoint>
}

// S3Config targets any S3-compatible endpoint, Supabase storage included
// (https://<project>.supabase.co/storage/v1/s3).
type S3Config struct {
	Endpoint      string `split_words:"true"`
	Region        string `split_words:"true" default:"us-east-1"`
	AccessKey     string `split_words:"true"`
	SecretKey     string `split_words:"true"`
	PublicBaseURL string `split_words:"true"` // e.g. https://<project>.supabase.co/storage/v1/object/public
	PathStyle     bool   `split_words:"true" default:"true"`
}

type RedisConfig struct {
	Enabled  bool          `split_words:"true" default:"false"`
	Host     string        `split_words:"true" default:"localhost:6379"`
	Password string        `split_words:"true"`
	DB       int           `split_words:"true" default:"0"`
	TTL      time.Duration `split_words:"true" default:"5m"`
}

type JWTConfig struct {
	Secret string        `split_words:"true" default:"change-me-in-production"`
	Expiry time.Duration `split_words:"true" default:"12h"`
}

type AdminConfig struct {
	BypassUsername string `split_words:"true" default:"ADM"`
	BypassPassword string `split_words:"true" default:"fisica"`
	SeedUsername   string `split_words:"true" default:"admin"`
	SeedPassword   string `split_words:"true" default:"gpevim2025"`
	AuthRequired   bool   `split_words:"true" default:"false"`
}

type ImageConfig struct {
	MaxDimension int `split_words:"true" default:"800"`
	Quality      int `split_words:"true" default:"80"`
}

type UploadConfig struct {
	Dir      string `split_words:"true" default:"./uploads"`
	MaxBytes int64  `split_words:"true" default:"5242880"` // 5MB
}

type SchedulerConfig struct {
	Enabled    bool   `split_words:"true" default:"true"`
	HealthSpec string `split_words:"true" default:"@every 1m"`
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))
	cfg.StorageDriver = strings.ToLower(strings.TrimSpace(cfg.StorageDriver))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate checks driver names and production requirements.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case StoreDriverPostgres, StoreDriverMemory:
	case StoreDriverSupabase:
		if c.Supabase.URL == "" || c.Supabase.Key == "" {
			return fmt.Errorf("SUPABASE_URL and SUPABASE_KEY are required for store driver %q", c.StoreDriver)
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	switch c.StorageDriver {
	case StorageDriverLocal, StorageDriverMinIO:
	case StorageDriverS3:
		if c.S3.Endpoint == "" || c.S3.PublicBaseURL == "" {
			return fmt.Errorf("S3_ENDPOINT and S3_PUBLIC_BASE_URL are required for storage driver %q", c.StorageDriver)
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}

	if c.Image.MaxDimension <= 0 {
		return fmt.Errorf("IMAGE_MAX_DIMENSION must be positive")
	}
	if c.Image.Quality < 1 || c.Image.Quality > 100 {
		return fmt.Errorf("IMAGE_QUALITY must be between 1 and 100")
	}
	if c.Upload.MaxBytes <= 0 {
		return fmt.Errorf("UPLOAD_MAX_BYTES must be positive")
	}

	if c.IsProduction() {
		if c.JWT.Secret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
	}

	return nil
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
