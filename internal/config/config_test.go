package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, StoreDriverPostgres, cfg.StoreDriver)
	assert.Equal(t, StorageDriverLocal, cfg.StorageDriver)
	assert.True(t, cfg.FallbackEnabled)
	assert.Equal(t, 800, cfg.Image.MaxDimension)
	assert.Equal(t, 80, cfg.Image.Quality)
	assert.Equal(t, int64(5*1024*1024), cfg.Upload.MaxBytes)
	assert.Equal(t, "ADM", cfg.Admin.BypassUsername)
	assert.Equal(t, "fisica", cfg.Admin.BypassPassword)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 12*time.Hour, cfg.JWT.Expiry)
}

func TestLoad_NestedPrefixes(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("PORT", "8081")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_SSL_MODE", "verify-full")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("REDIS_TTL", "30s")
	t.Setenv("STORE_DRIVER", " Memory ")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Port)
	// PORT must not leak into the database section.
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "verify-full", cfg.Database.SSLMode)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, 30*time.Second, cfg.Redis.TTL)
	assert.Equal(t, StoreDriverMemory, cfg.StoreDriver)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			StoreDriver:   StoreDriverMemory,
			StorageDriver: StorageDriverLocal,
			App:           AppConfig{Env: "development"},
			JWT:           JWTConfig{Secret: defaultJWTSecret},
			Image:         ImageConfig{MaxDimension: 800, Quality: 80},
			Upload:        UploadConfig{MaxBytes: 1024},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "unknown store driver", mutate: func(c *Config) { c.StoreDriver = "mongo" }, wantErr: true},
		{name: "supabase without credentials", mutate: func(c *Config) { c.StoreDriver = StoreDriverSupabase }, wantErr: true},
		{
			name: "supabase with credentials",
			mutate: func(c *Config) {
				c.StoreDriver = StoreDriverSupabase
				c.Supabase = SupabaseConfig{URL: "https://x.supabase.co", Key: "anon"}
			},
		},
		{name: "unknown storage driver", mutate: func(c *Config) { c.StorageDriver = "ftp" }, wantErr: true},
		{name: "s3 without endpoint", mutate: func(c *Config) { c.StorageDriver = StorageDriverS3 }, wantErr: true},
		{name: "quality out of range", mutate: func(c *Config) { c.Image.Quality = 0 }, wantErr: true},
		{name: "production with default secret", mutate: func(c *Config) { c.App.Env = "production" }, wantErr: true},
		{
			name: "production with secret",
			mutate: func(c *Config) {
				c.App.Env = "production"
				c.JWT.Secret = "s3cr3t"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDatabaseSettings_ProductionForcesTLS(t *testing.T) {
	c := &Config{
		App:      AppConfig{Env: "production"},
		Database: DatabaseConfig{Host: "db", Port: 5432, SSLMode: "disable"},
	}
	assert.Equal(t, "require", c.DatabaseSettings().SSLMode)

	c.App.Env = "development"
	assert.Equal(t, "disable", c.DatabaseSettings().SSLMode)
}
