package storage

import (
	"context"
	"fmt"

	"github.com/ignatzorin/kerjaku-backend/internal/config"
	"github.com/ignatzorin/kerjaku-backend/internal/db"
)

// Opened хранилище вместе с функцией освобождения ресурсов.
type Opened struct {
	KV    KV
	Close func() error
	// Ping проверяет доступность подложки для health check.
	Ping func(ctx context.Context) error
}

func noop() error                    { return nil }
func noopPing(context.Context) error { return nil }

// Open выбирает подложку по cfg.StorageDriver и готовит её к работе.
func Open(ctx context.Context, cfg *config.Config) (*Opened, error) {
	switch cfg.StorageDriver {
	case config.StorageMemory:
		return &Opened{KV: NewMemoryStore(), Close: noop, Ping: noopPing}, nil

	case config.StorageFile:
		fs, err := NewFileStore(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		return &Opened{KV: fs, Close: noop, Ping: noopPing}, nil

	case config.StorageSQLite, config.StoragePostgres:
		driver, dsn := db.DriverSQLite, cfg.SQLitePath
		if cfg.StorageDriver == config.StoragePostgres {
			driver, dsn = db.DriverPostgres, cfg.DatabaseURL
		}

		conn, err := db.Open(ctx, driver, dsn)
		if err != nil {
			return nil, err
		}
		if err := db.RunMigrations(ctx, conn, db.Migrations()); err != nil {
			_ = conn.Close()
			return nil, err
		}
		return &Opened{KV: NewSQLStore(conn), Close: conn.Close, Ping: conn.PingContext}, nil
	}

	return nil, fmt.Errorf("storage: неизвестный драйвер %q", cfg.StorageDriver)
}
