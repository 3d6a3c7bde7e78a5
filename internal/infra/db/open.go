// Package db opens the relational storage engine, applies the schema and runs transactions.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"

	pkgconfig "databreach-registry/internal/pkg/config"
	"databreach-registry/internal/resilience/retry"
)

// Supported database/sql driver names.
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite3"
)

// ConnectionConfig holds database connection pool configuration.
type ConnectionConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultConnectionConfig returns the default connection pool configuration.
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		MaxOpenConns:    25,
		MaxIdleConns:    10,
		ConnMaxLifetime: 1 * time.Hour,
		ConnMaxIdleTime: 30 * time.Minute,
	}
}

// Config selects the driver and data source.
type Config struct {
	Driver string
	DSN    string
	Pool   ConnectionConfig
}

// ConfigFromEnv reads DATABASE_DRIVER, DATABASE_URL and the DB_* pool variables.
func ConfigFromEnv() (Config, error) {
	driver := os.Getenv("DATABASE_DRIVER")
	if driver == "" {
		driver = DriverPostgres
	}
	if driver != DriverPostgres && driver != DriverSQLite {
		return Config{}, fmt.Errorf("unsupported DATABASE_DRIVER %q", driver)
	}
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return Config{}, fmt.Errorf("DATABASE_URL not set")
	}
	return Config{Driver: driver, DSN: dsn, Pool: getConnectionConfigFromEnv()}, nil
}

// Open creates and configures a new database connection pool and verifies it with a ping.
// Transient connection failures during the ping are retried with backoff.
func Open(ctx context.Context, cfg Config) (*sql.DB, error) {
	dsn := cfg.DSN
	pool := cfg.Pool
	if cfg.Driver == DriverSQLite {
		dsn = SQLiteDSN(dsn)
		// SQLite serializes writers; one connection keeps transactions from tripping over each other.
		pool.MaxOpenConns = 1
		pool.MaxIdleConns = 1
		pool.ConnMaxLifetime = 0
		pool.ConnMaxIdleTime = 0
	}

	db, err := sql.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(pool.MaxOpenConns)
	db.SetMaxIdleConns(pool.MaxIdleConns)
	db.SetConnMaxLifetime(pool.ConnMaxLifetime)
	db.SetConnMaxIdleTime(pool.ConnMaxIdleTime)

	slog.Info("database connection pool configured",
		slog.String("driver", cfg.Driver),
		slog.Int("max_open_conns", pool.MaxOpenConns),
		slog.Int("max_idle_conns", pool.MaxIdleConns),
		slog.Duration("conn_max_lifetime", pool.ConnMaxLifetime),
		slog.Duration("conn_max_idle_time", pool.ConnMaxIdleTime))

	err = retry.Do(ctx, retry.DBConfig(), "database ping", func(ctx context.Context) error {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return db.PingContext(pingCtx)
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	slog.Info("database connection established successfully")
	return db, nil
}

// SQLiteDSN makes sure foreign key enforcement is switched on for every connection;
// restrict-on-delete depends on it.
func SQLiteDSN(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys=") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_foreign_keys=on"
}

var poolConfigMetrics = pkgconfig.NewConfigMetrics("database")

// getConnectionConfigFromEnv reads connection pool configuration from environment variables.
// Malformed or out-of-range values fall back to the defaults with a warning.
func getConnectionConfigFromEnv() ConnectionConfig {
	cfg := DefaultConnectionConfig()
	connRange := func(v int) error { return pkgconfig.ValidateIntRange(v, 1, 1000) }
	connAge := func(d time.Duration) error { return pkgconfig.ValidateDuration(d, time.Second, 24*time.Hour) }

	var fallbacks []string
	note := func(field, warning string) {
		fallbacks = append(fallbacks, field)
		slog.Warn("database pool configuration fallback", slog.String("warning", warning))
	}

	if res := pkgconfig.LoadEnvInt("DB_MAX_OPEN_CONNS", cfg.MaxOpenConns, connRange); res.FallbackApplied {
		note("max_open_conns", res.Warning)
	} else {
		cfg.MaxOpenConns = res.Value
	}
	if res := pkgconfig.LoadEnvInt("DB_MAX_IDLE_CONNS", cfg.MaxIdleConns, connRange); res.FallbackApplied {
		note("max_idle_conns", res.Warning)
	} else {
		cfg.MaxIdleConns = res.Value
	}
	if res := pkgconfig.LoadEnvDuration("DB_CONN_MAX_LIFETIME", cfg.ConnMaxLifetime, connAge); res.FallbackApplied {
		note("conn_max_lifetime", res.Warning)
	} else {
		cfg.ConnMaxLifetime = res.Value
	}
	if res := pkgconfig.LoadEnvDuration("DB_CONN_MAX_IDLE_TIME", cfg.ConnMaxIdleTime, connAge); res.FallbackApplied {
		note("conn_max_idle_time", res.Warning)
	} else {
		cfg.ConnMaxIdleTime = res.Value
	}

	poolConfigMetrics.Observe(fallbacks)
	return cfg
}
