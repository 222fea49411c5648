// Package metadata is a small key/value repository over the local SQLite
// database. The credential store keeps the persisted session in it.
package metadata

import (
	"context"
)

// Repository stores opaque values by string key.
//
// Get returns common.ErrorNotFound for a missing key. Delete is idempotent.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
}
