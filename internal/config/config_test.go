package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"opsdesk/internal/seed"
)

func TestDefaults(t *testing.T) {
	cfg, err := FromMap(map[string]string{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.App.Desk != seed.AppHotel || cfg.Storage.Driver != StorageMemory || cfg.Blob.Driver != "fs" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.SnapshotKey() != "hotel-admin-data" {
		t.Fatalf("unexpected snapshot key %s", cfg.SnapshotKey())
	}
	if cfg.Location() != time.UTC {
		t.Fatalf("expected UTC location")
	}
	if cfg.Blob.Keep != 5 || cfg.Latency.Max != 0 || cfg.Metrics.Exporter != MetricsNone {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestOverrides(t *testing.T) {
	cfg, err := FromMap(map[string]string{
		"OPSDESK_APP":            "Hospital",
		"OPSDESK_TIMEZONE":       "Europe/Berlin",
		"OPSDESK_LATENCY_MIN":    "100ms",
		"OPSDESK_LATENCY_MAX":    "300ms",
		"OPSDESK_STORAGE_DRIVER": "BLOB",
		"OPSDESK_BLOB_DRIVER":    "s3",
		"OPSDESK_S3_BUCKET":      "desk-snapshots",
		"OPSDESK_S3_PATH_STYLE":  "true",
		"OPSDESK_SNAPSHOT_KEY":   "ward-7",
		"OPSDESK_METRICS":        "prometheus",
	})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.App.Desk != seed.AppHospital || cfg.Storage.Driver != StorageBlob {
		t.Fatalf("expected normalised values, got %+v", cfg.App)
	}
	if cfg.Latency.Min != 100*time.Millisecond || cfg.Latency.Max != 300*time.Millisecond {
		t.Fatalf("unexpected latency %+v", cfg.Latency)
	}
	if cfg.Location().String() != "Europe/Berlin" {
		t.Fatalf("unexpected location %s", cfg.Location())
	}
	if cfg.Blob.S3.Bucket != "desk-snapshots" || !cfg.Blob.S3.PathStyle {
		t.Fatalf("unexpected s3 config %+v", cfg.Blob.S3)
	}
	if cfg.SnapshotKey() != "ward-7" {
		t.Fatalf("expected explicit snapshot key, got %s", cfg.SnapshotKey())
	}
}

func TestValidation(t *testing.T) {
	cases := map[string]map[string]string{
		"desk":     {"OPSDESK_APP": "spa"},
		"timezone": {"OPSDESK_TIMEZONE": "Mars/Olympus"},
		"latency":  {"OPSDESK_LATENCY_MIN": "2s", "OPSDESK_LATENCY_MAX": "1s"},
		"storage":  {"OPSDESK_STORAGE_DRIVER": "redis"},
		"metrics":  {"OPSDESK_METRICS": "statsd"},
		"duration": {"OPSDESK_LATENCY_MAX": "soon"},
	}
	for name, environ := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := FromMap(environ); err == nil {
				t.Fatalf("expected error for %v", environ)
			}
		})
	}
}

func TestLoadReadsDotenvWithoutOverriding(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "opsdesk.env")
	if err := os.WriteFile(file, []byte("OPSDESK_APP=hospital\nOPSDESK_SQLITE_PATH=/tmp/from-dotenv.db\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("OPSDESK_SQLITE_PATH", "/tmp/from-env.db")
	t.Setenv("OPSDESK_APP", "")
	if err := os.Unsetenv("OPSDESK_APP"); err != nil {
		t.Fatalf("unset: %v", err)
	}

	cfg, err := Load(file, filepath.Join(dir, "missing.env"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Desk != seed.AppHospital {
		t.Fatalf("expected desk from dotenv, got %s", cfg.App.Desk)
	}
	if cfg.Storage.SQLitePath != "/tmp/from-env.db" {
		t.Fatalf("process env should win over dotenv, got %s", cfg.Storage.SQLitePath)
	}
}
