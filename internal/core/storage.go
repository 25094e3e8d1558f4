package core

import (
	"context"
	"fmt"

	"opsdesk/internal/blob"
	"opsdesk/internal/config"
	memslot "opsdesk/internal/infra/persistence/memory"
	"opsdesk/internal/infra/persistence/mysql"
	"opsdesk/internal/infra/persistence/postgres"
	"opsdesk/internal/infra/persistence/sqlite"
	"opsdesk/pkg/domain"
)

// OpenSlot builds the snapshot slot selected by cfg.Storage.Driver under the
// configured snapshot key.
func OpenSlot(ctx context.Context, cfg *config.Config) (domain.SnapshotSlot, error) {
	key := cfg.SnapshotKey()
	switch cfg.Storage.Driver {
	case config.StorageMemory, "":
		return memslot.NewSlot(key), nil
	case config.StorageSQLite:
		path := cfg.Storage.SQLitePath
		if path == "" {
			path = sqlite.DefaultPath
		}
		slot, err := sqlite.Open(ctx, path, key)
		if err != nil {
			return nil, err
		}
		return slot, nil
	case config.StoragePostgres:
		dsn := cfg.Storage.PostgresDSN
		if dsn == "" {
			dsn = postgres.DefaultDSN
		}
		slot, err := postgres.Open(ctx, dsn, key)
		if err != nil {
			return nil, err
		}
		return slot, nil
	case config.StorageMySQL:
		if cfg.Storage.MySQLDSN == "" {
			return nil, fmt.Errorf("mysql storage requires OPSDESK_MYSQL_DSN")
		}
		slot, err := mysql.Open(ctx, cfg.Storage.MySQLDSN, key)
		if err != nil {
			return nil, err
		}
		return slot, nil
	case config.StorageBlob:
		s3 := cfg.Blob.S3
		store, err := blob.Open(ctx, blob.Config{
			Driver: blob.Driver(cfg.Blob.Driver),
			FSRoot: cfg.Blob.FSRoot,
			S3: blob.S3Config{
				Region:          s3.Region,
				Bucket:          s3.Bucket,
				Endpoint:        s3.Endpoint,
				AccessKeyID:     s3.AccessKeyID,
				SecretAccessKey: s3.SecretAccessKey,
				SessionToken:    s3.SessionToken,
				PathStyle:       s3.PathStyle,
			},
		})
		if err != nil {
			return nil, fmt.Errorf("open blob store: %w", err)
		}
		keep := cfg.Blob.Keep
		if keep <= 0 {
			keep = blob.DefaultKeep
		}
		return blob.NewSlot(store, key, keep), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
