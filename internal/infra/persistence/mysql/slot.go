// Package mysql stores snapshot payloads in a MySQL JSON column through gorm.
package mysql

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	gomysql "github.com/go-sql-driver/mysql"
	"gorm.io/datatypes"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"opsdesk/pkg/domain"
)

// DefaultDSN is used when no DSN is configured.
const DefaultDSN = "root@tcp(127.0.0.1:3306)/opsdesk"

type snapshotRow struct {
	SnapshotKey string         `gorm:"column:snapshot_key;primaryKey;size:191"`
	Payload     datatypes.JSON `gorm:"column:payload;not null"`
	UpdatedAt   time.Time      `gorm:"column:updated_at"`
}

func (snapshotRow) TableName() string { return "snapshots" }

// Slot is one row of the snapshots table.
type Slot struct {
	db  *gorm.DB
	key string
}

var _ domain.SnapshotSlot = (*Slot)(nil)

// NormalizeDSN accepts either a go-sql-driver DSN or a mysql:// URL and
// returns a DSN with parseTime enabled, UTC location and utf8mb4.
func NormalizeDSN(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = DefaultDSN
	}
	if strings.HasPrefix(raw, "mysql://") {
		converted, err := dsnFromURL(raw)
		if err != nil {
			return "", err
		}
		raw = converted
	}
	cfg, err := gomysql.ParseDSN(raw)
	if err != nil {
		return "", fmt.Errorf("parse mysql dsn: %w", err)
	}
	if cfg.DBName == "" {
		return "", fmt.Errorf("mysql dsn missing database name")
	}
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	if cfg.Params == nil {
		cfg.Params = map[string]string{}
	}
	if _, ok := cfg.Params["charset"]; !ok {
		cfg.Params["charset"] = "utf8mb4"
	}
	return cfg.FormatDSN(), nil
}

func dsnFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse mysql url: %w", err)
	}
	cfg := gomysql.NewConfig()
	cfg.User = u.User.Username()
	cfg.Passwd, _ = u.User.Password()
	cfg.Net = "tcp"
	port := u.Port()
	if port == "" {
		port = "3306"
	}
	cfg.Addr = u.Hostname() + ":" + port
	cfg.DBName = strings.TrimPrefix(u.Path, "/")
	for k, v := range u.Query() {
		if len(v) > 0 {
			if cfg.Params == nil {
				cfg.Params = map[string]string{}
			}
			cfg.Params[k] = v[0]
		}
	}
	return cfg.FormatDSN(), nil
}

// Open connects with dsn, migrates the snapshots table and returns a slot for key.
func Open(ctx context.Context, dsn, key string) (*Slot, error) {
	normalized, err := NormalizeDSN(dsn)
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(gormmysql.Open(normalized), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", describe(err))
	}
	if err := db.WithContext(ctx).AutoMigrate(&snapshotRow{}); err != nil {
		return nil, fmt.Errorf("migrate snapshots: %w", describe(err))
	}
	return &Slot{db: db, key: key}, nil
}

// Key is the snapshot key.
func (s *Slot) Key() string { return s.key }

// Load reads the payload stored under Key.
func (s *Slot) Load(ctx context.Context) ([]byte, error) {
	var row snapshotRow
	err := s.db.WithContext(ctx).Where("snapshot_key = ?", s.key).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("select snapshot: %w", describe(err))
	}
	return []byte(row.Payload), nil
}

// Save upserts payload under Key.
func (s *Slot) Save(ctx context.Context, payload []byte) error {
	row := snapshotRow{SnapshotKey: s.key, Payload: datatypes.JSON(payload), UpdatedAt: time.Now().UTC()}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "snapshot_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("upsert %s: %w", s.key, describe(err))
	}
	return nil
}

// Close closes the underlying connection pool.
func (s *Slot) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// describe prefixes server errors with their MySQL error number.
func describe(err error) error {
	var merr *gomysql.MySQLError
	if errors.As(err, &merr) {
		return fmt.Errorf("mysql error %d: %w", merr.Number, err)
	}
	return err
}
