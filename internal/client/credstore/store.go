// Package credstore persists the session credential and the last-known user
// record across client restarts.
//
// Storage problems never reach callers: every failure is logged and treated
// as a cache miss, so a broken medium degrades to "please log in again"
// rather than a crash.
package credstore

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/dmitrijs2005/gymbacteria/internal/client/models"
	"github.com/dmitrijs2005/gymbacteria/internal/common"
	"github.com/dmitrijs2005/gymbacteria/internal/logging"
)

// ErrStorageUnavailable is logged when the configured medium cannot be used
// and the client falls back to an in-memory store.
var ErrStorageUnavailable = errors.New("storage unavailable")

// Store is the credential store contract.
type Store interface {
	// Save persists the opaque credential without inspecting it.
	Save(ctx context.Context, credential string)
	// Load returns the saved credential, or false when there is none.
	Load(ctx context.Context) (string, bool)
	// SaveUser persists the cached identity record.
	SaveUser(ctx context.Context, user *models.User)
	// LoadUser returns the cached identity record, or false when there is
	// none or it cannot be decoded.
	LoadUser(ctx context.Context) (*models.User, bool)
	// SaveSession persists credential and user together, so readers never
	// see one without the other from a different login.
	SaveSession(ctx context.Context, credential string, user *models.User)
	// Clear removes both entries. It is idempotent.
	Clear(ctx context.Context)
}

// backend is a raw key/value medium. get reports a missing key with
// common.ErrorNotFound; put writes all pairs atomically.
type backend interface {
	get(ctx context.Context, key string) ([]byte, error)
	put(ctx context.Context, kv map[string][]byte) error
	remove(ctx context.Context, keys ...string) error
}

// store implements Store on top of a backend.
type store struct {
	b      backend
	logger logging.Logger
}

func newStore(b backend, logger logging.Logger, medium string) *store {
	return &store{b: b, logger: logger.With("module", "credstore", "medium", medium)}
}

func (s *store) Save(ctx context.Context, credential string) {
	s.write(ctx, map[string][]byte{common.AccessKeyStorageKey: []byte(credential)})
}

func (s *store) Load(ctx context.Context) (string, bool) {
	v, ok := s.read(ctx, common.AccessKeyStorageKey)
	if !ok || len(v) == 0 {
		return "", false
	}
	return string(v), true
}

func (s *store) SaveUser(ctx context.Context, user *models.User) {
	b, ok := s.encodeUser(ctx, user)
	if !ok {
		return
	}
	s.write(ctx, map[string][]byte{common.UserStorageKey: b})
}

func (s *store) LoadUser(ctx context.Context) (*models.User, bool) {
	v, ok := s.read(ctx, common.UserStorageKey)
	if !ok {
		return nil, false
	}

	var u *models.User
	if err := json.Unmarshal(v, &u); err != nil || u == nil {
		s.logger.Warn(ctx, "discarding unreadable cached user", "error", err)
		return nil, false
	}
	return u, true
}

func (s *store) SaveSession(ctx context.Context, credential string, user *models.User) {
	b, ok := s.encodeUser(ctx, user)
	if !ok {
		return
	}
	s.write(ctx, map[string][]byte{
		common.AccessKeyStorageKey: []byte(credential),
		common.UserStorageKey:      b,
	})
}

func (s *store) Clear(ctx context.Context) {
	if err := s.b.remove(ctx, common.AccessKeyStorageKey, common.UserStorageKey); err != nil {
		s.logger.Warn(ctx, "clear failed", "error", err)
	}
}

func (s *store) encodeUser(ctx context.Context, user *models.User) ([]byte, bool) {
	if user == nil {
		s.logger.Warn(ctx, "refusing to cache empty user")
		return nil, false
	}
	b, err := json.Marshal(user)
	if err != nil {
		s.logger.Warn(ctx, "encode user failed", "error", err)
		return nil, false
	}
	return b, true
}

func (s *store) read(ctx context.Context, key string) ([]byte, bool) {
	v, err := s.b.get(ctx, key)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			s.logger.Warn(ctx, "read failed, treating as cache miss", "key", key, "error", err)
		}
		return nil, false
	}
	return v, true
}

func (s *store) write(ctx context.Context, kv map[string][]byte) {
	if err := s.b.put(ctx, kv); err != nil {
		keys := make([]string, 0, len(kv))
		for k := range kv {
			keys = append(keys, k)
		}
		s.logger.Warn(ctx, "write failed", "keys", keys, "error", err)
	}
}
