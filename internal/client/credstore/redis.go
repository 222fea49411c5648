package credstore

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gymbacteria/internal/common"
	"github.com/dmitrijs2005/gymbacteria/internal/logging"
	"github.com/redis/go-redis/v9"
)

// redisBackend namespaces every key with prefix + ":".
type redisBackend struct {
	rdb    redis.UniversalClient
	prefix string
}

// NewRedisStore returns a Store backed by Redis. Keys are written as
// "<prefix>:gym_bacteria_access_key" and "<prefix>:gym_bacteria_user".
func NewRedisStore(rdb redis.UniversalClient, prefix string, logger logging.Logger) Store {
	return newStore(&redisBackend{rdb: rdb, prefix: prefix}, logger, "redis")
}

func (b *redisBackend) key(k string) string {
	if b.prefix == "" {
		return k
	}
	return b.prefix + ":" + k
}

func (b *redisBackend) get(ctx context.Context, key string) ([]byte, error) {
	v, err := b.rdb.Get(ctx, b.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, common.ErrorNotFound
	}
	return v, err
}

func (b *redisBackend) put(ctx context.Context, kv map[string][]byte) error {
	_, err := b.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		for k, v := range kv {
			p.Set(ctx, b.key(k), v, 0)
		}
		return nil
	})
	return err
}

func (b *redisBackend) remove(ctx context.Context, keys ...string) error {
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = b.key(k)
	}
	return b.rdb.Del(ctx, full...).Err()
}
