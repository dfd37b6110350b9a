// Package storage opens the backend of the client's local state store.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/agrilink/internal/client/config"
	"github.com/dmitrijs2005/agrilink/internal/client/migrations"
	"github.com/dmitrijs2005/agrilink/internal/client/repositories/kv"
	"github.com/dmitrijs2005/agrilink/internal/dbx"
	"github.com/dmitrijs2005/agrilink/internal/filex"
)

// RedisKeyPrefix namespaces the client's keys in a shared Redis database.
const RedisKeyPrefix = "agrilink:"

// InitDatabase opens the SQLite file at path, creating its directory, and
// applies the embedded migrations.
func InitDatabase(ctx context.Context, path string) (*sql.DB, error) {
	if err := filex.EnsureParentDir(path); err != nil {
		return nil, err
	}
	return dbx.OpenSQLite(ctx, path, migrations.FS)
}

// Open returns the repository selected by cfg.Backend and a function that
// releases it.
func Open(ctx context.Context, cfg *config.Config) (kv.Repository, func() error, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		db, err := InitDatabase(ctx, cfg.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("init database: %w", err)
		}
		return kv.NewSQLiteRepository(db), db.Close, nil

	case config.BackendMemory:
		return kv.NewMemoryRepository(), func() error { return nil }, nil

	case config.BackendRedis:
		client, err := kv.NewRedisClient(ctx, cfg.RedisAddr, "", 0)
		if err != nil {
			return nil, nil, err
		}
		return kv.NewRedisRepository(client, RedisKeyPrefix), client.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
