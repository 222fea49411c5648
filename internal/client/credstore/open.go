package credstore

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gymbacteria/internal/client/client"
	"github.com/dmitrijs2005/gymbacteria/internal/client/config"
	"github.com/dmitrijs2005/gymbacteria/internal/filex"
	"github.com/dmitrijs2005/gymbacteria/internal/logging"
	"github.com/redis/go-redis/v9"
)

// Open builds the Store selected by cfg.StorageDriver. If the medium cannot
// be opened it logs ErrStorageUnavailable and returns an in-memory store, so
// Open never fails. The returned func releases the medium.
func Open(ctx context.Context, cfg *config.Config, logger logging.Logger) (Store, func() error) {
	noop := func() error { return nil }

	var (
		s       Store
		closeFn func() error
		err     error
	)
	switch cfg.StorageDriver {
	case config.StorageSQLite:
		s, closeFn, err = openSQLite(ctx, cfg.DatabasePath, logger)
	case config.StorageRedis:
		s, closeFn, err = openRedis(ctx, cfg.RedisAddr, cfg.RedisPrefix, logger)
	case config.StorageMemory:
		return NewMemoryStore(logger), noop
	default:
		err = fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}

	if err != nil {
		logger.Warn(ctx, "credential store degraded to memory, session will not survive restart",
			"module", "credstore", "driver", cfg.StorageDriver, "error", fmt.Errorf("%w: %w", ErrStorageUnavailable, err))
		return NewMemoryStore(logger), noop
	}
	return s, closeFn
}

func openSQLite(ctx context.Context, path string, logger logging.Logger) (Store, func() error, error) {
	path, err := filex.ExpandHome(path)
	if err != nil {
		return nil, nil, err
	}
	if path, err = filex.EnsureParentDir(path); err != nil {
		return nil, nil, err
	}

	db, err := client.InitDatabase(ctx, path)
	if err != nil {
		return nil, nil, fmt.Errorf("init database: %w", err)
	}
	return NewSQLiteStore(db, logger), db.Close, nil
}

func openRedis(ctx context.Context, addr, prefix string, logger logging.Logger) (Store, func() error, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("redis ping: %w", err)
	}
	return NewRedisStore(rdb, prefix, logger), rdb.Close, nil
}
