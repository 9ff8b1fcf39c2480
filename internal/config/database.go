package config

import (
	"gpevim-backend/internal/infrastructure/database"
)

// DatabaseSettings maps the DB section onto the connection settings used by
// the postgres infrastructure. DATABASE_URL, when set, wins over the discrete
// DB_* fields; production forces TLS.
func (c *Config) DatabaseSettings() *database.DBConfig {
	sslMode := c.Database.SSLMode
	if c.IsProduction() && sslMode == "disable" {
		sslMode = "require"
	}

	return &database.DBConfig{
		URL:               c.DatabaseURL,
		Host:              c.Database.Host,
		Port:              c.Database.Port,
		Username:          c.Database.User,
		Password:          c.Database.Password,
		DBName:            c.Database.Name,
		SSLMode:           sslMode,
		MaxConns:          c.Database.MaxConns,
		MinConns:          c.Database.MinConns,
		MaxConnLifetime:   c.Database.MaxConnLifetime,
		MaxConnIdleTime:   c.Database.MaxConnIdleTime,
		HealthCheckPeriod: c.Database.HealthCheckPeriod,
		MaxRetries:        c.Database.MaxRetries,
		RetryDelay:        c.Database.RetryDelay,
		ConnectTimeout:    c.Database.ConnectTimeout,
	}
}
