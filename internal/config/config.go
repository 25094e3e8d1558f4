// Package config reads opsdesk settings from OPSDESK_* environment variables,
// optionally primed from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"

	"opsdesk/internal/seed"
)

// Storage drivers accepted in OPSDESK_STORAGE_DRIVER.
const (
	StorageMemory   = "memory"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
	StorageMySQL    = "mysql"
	StorageBlob     = "blob"
)

// Metrics exporters accepted in OPSDESK_METRICS.
const (
	MetricsNone       = "none"
	MetricsExpvar     = "expvar"
	MetricsPrometheus = "prometheus"
)

// Config is the full runtime configuration.
type Config struct {
	App struct {
		Desk     seed.App `env:"OPSDESK_APP" envDefault:"hotel"`
		Timezone string   `env:"OPSDESK_TIMEZONE" envDefault:"UTC"`
	}

	Log struct {
		Level  string `env:"OPSDESK_LOG_LEVEL" envDefault:"info"`
		Format string `env:"OPSDESK_LOG_FORMAT" envDefault:"text"`
	}

	Latency struct {
		Min time.Duration `env:"OPSDESK_LATENCY_MIN" envDefault:"0s"`
		Max time.Duration `env:"OPSDESK_LATENCY_MAX" envDefault:"0s"`
	}

	Storage struct {
		Driver      string `env:"OPSDESK_STORAGE_DRIVER" envDefault:"memory"`
		SnapshotKey string `env:"OPSDESK_SNAPSHOT_KEY"`
		SQLitePath  string `env:"OPSDESK_SQLITE_PATH" envDefault:"opsdesk.db"`
		PostgresDSN string `env:"OPSDESK_POSTGRES_DSN"`
		MySQLDSN    string `env:"OPSDESK_MYSQL_DSN"`
	}

	Blob struct {
		Driver string `env:"OPSDESK_BLOB_DRIVER" envDefault:"fs"`
		FSRoot string `env:"OPSDESK_BLOB_FS_ROOT" envDefault:"./snapshots"`
		Keep   int    `env:"OPSDESK_BLOB_KEEP" envDefault:"5"`
		S3     struct {
			Bucket          string `env:"OPSDESK_S3_BUCKET"`
			Region          string `env:"OPSDESK_S3_REGION" envDefault:"us-east-1"`
			Endpoint        string `env:"OPSDESK_S3_ENDPOINT"`
			AccessKeyID     string `env:"OPSDESK_S3_ACCESS_KEY_ID"`
			SecretAccessKey string `env:"OPSDESK_S3_SECRET_ACCESS_KEY"`
			SessionToken    string `env:"OPSDESK_S3_SESSION_TOKEN"`
			PathStyle       bool   `env:"OPSDESK_S3_PATH_STYLE"`
		}
	}

	Metrics struct {
		Exporter string `env:"OPSDESK_METRICS" envDefault:"none"`
	}

	location *time.Location
}

// Load reads the given .env files (default ".env") into the process
// environment without overriding variables that are already set, then parses
// the environment. Missing .env files are not an error.
func Load(dotenv ...string) (*Config, error) {
	if len(dotenv) == 0 {
		dotenv = []string{".env"}
	}
	for _, file := range dotenv {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", file, err)
		}
	}
	return parse(env.Options{})
}

// FromMap parses configuration from environ only, ignoring the process environment.
func FromMap(environ map[string]string) (*Config, error) {
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg, opts); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.App.Desk = seed.App(strings.ToLower(string(cfg.App.Desk)))
	cfg.Storage.Driver = strings.ToLower(cfg.Storage.Driver)
	cfg.Blob.Driver = strings.ToLower(cfg.Blob.Driver)
	cfg.Metrics.Exporter = strings.ToLower(cfg.Metrics.Exporter)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if !c.App.Desk.Valid() {
		return fmt.Errorf("unknown app %q (want hotel or hospital)", c.App.Desk)
	}
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return fmt.Errorf("timezone %q: %w", c.App.Timezone, err)
	}
	c.location = loc
	if c.Latency.Min < 0 || c.Latency.Max < c.Latency.Min {
		return fmt.Errorf("invalid latency window [%s, %s]", c.Latency.Min, c.Latency.Max)
	}
	switch c.Storage.Driver {
	case StorageMemory, StorageSQLite, StoragePostgres, StorageMySQL, StorageBlob:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	switch c.Metrics.Exporter {
	case MetricsNone, MetricsExpvar, MetricsPrometheus:
	default:
		return fmt.Errorf("unknown metrics exporter %q", c.Metrics.Exporter)
	}
	return nil
}

// Location is the parsed OPSDESK_TIMEZONE.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

// SnapshotKey returns the configured key or the desk default.
func (c *Config) SnapshotKey() string {
	if c.Storage.SnapshotKey != "" {
		return c.Storage.SnapshotKey
	}
	return c.App.Desk.SnapshotKey()
}
