package credstore

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/gymbacteria/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gymbacteria/internal/dbx"
	"github.com/dmitrijs2005/gymbacteria/internal/logging"
)

// sqliteBackend keeps entries in the local metadata table.
type sqliteBackend struct {
	db *sql.DB
}

// NewSQLiteStore returns a Store over the metadata table of db. The schema
// must already be migrated (see client.InitDatabase).
func NewSQLiteStore(db *sql.DB, logger logging.Logger) Store {
	return newStore(&sqliteBackend{db: db}, logger, "sqlite")
}

func (b *sqliteBackend) repo(tx dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(tx)
}

func (b *sqliteBackend) get(ctx context.Context, key string) ([]byte, error) {
	return b.repo(b.db).Get(ctx, key)
}

func (b *sqliteBackend) put(ctx context.Context, kv map[string][]byte) error {
	return dbx.WithTx(ctx, b.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := b.repo(tx)
		for k, v := range kv {
			if err := repo.Set(ctx, k, v); err != nil {
				return err
			}
		}
		return nil
	})
}

func (b *sqliteBackend) remove(ctx context.Context, keys ...string) error {
	return dbx.WithTx(ctx, b.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return b.repo(tx).Delete(ctx, keys...)
	})
}
