package credstore

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/gymbacteria/internal/client/models"
	"github.com/dmitrijs2005/gymbacteria/internal/common"
	"github.com/dmitrijs2005/gymbacteria/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storeContract runs the behaviour every medium must share.
func storeContract(t *testing.T, newStore func(t *testing.T) Store) {
	t.Helper()
	alice := &models.User{ID: 7, Nickname: "alice", AccessKey: "k-alice"}

	t.Run("empty store misses", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		_, ok := s.Load(ctx)
		assert.False(t, ok)
		u, ok := s.LoadUser(ctx)
		assert.False(t, ok)
		assert.Nil(t, u)
	})

	t.Run("save then load round trips", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		s.Save(ctx, "k-alice")
		s.SaveUser(ctx, alice)

		c, ok := s.Load(ctx)
		require.True(t, ok)
		assert.Equal(t, "k-alice", c)

		u, ok := s.LoadUser(ctx)
		require.True(t, ok)
		assert.True(t, alice.Equal(u))
	})

	t.Run("save session writes both", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		s.SaveSession(ctx, "k-alice", alice)

		c, ok := s.Load(ctx)
		require.True(t, ok)
		assert.Equal(t, "k-alice", c)
		u, ok := s.LoadUser(ctx)
		require.True(t, ok)
		assert.Equal(t, "alice", u.Nickname)
	})

	t.Run("credential is stored verbatim", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		odd := "  not/a:jwt?=  "
		s.Save(ctx, odd)
		c, ok := s.Load(ctx)
		require.True(t, ok)
		assert.Equal(t, odd, c)
	})

	t.Run("clear removes both and is idempotent", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		s.SaveSession(ctx, "k-alice", alice)
		s.Clear(ctx)
		s.Clear(ctx)

		_, ok := s.Load(ctx)
		assert.False(t, ok)
		_, ok = s.LoadUser(ctx)
		assert.False(t, ok)
	})

	t.Run("nil user is not cached", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		s.SaveUser(ctx, nil)
		_, ok := s.LoadUser(ctx)
		assert.False(t, ok)
	})
}

func TestMemoryStore(t *testing.T) {
	storeContract(t, func(t *testing.T) Store {
		return NewMemoryStore(logging.NewNopLogger())
	})
}

func TestLoadUser_CorruptRecordIsMiss(t *testing.T) {
	b := &memoryBackend{data: map[string][]byte{
		common.UserStorageKey: []byte("{not json"),
	}}
	s := newStore(b, logging.NewNopLogger(), "memory")

	u, ok := s.LoadUser(context.Background())
	assert.False(t, ok)
	assert.Nil(t, u)
}

func TestLoadUser_JSONNullIsMiss(t *testing.T) {
	b := &memoryBackend{data: map[string][]byte{
		common.UserStorageKey: []byte("null"),
	}}
	s := newStore(b, logging.NewNopLogger(), "memory")

	_, ok := s.LoadUser(context.Background())
	assert.False(t, ok)
}

func TestLoad_EmptyCredentialIsMiss(t *testing.T) {
	s := NewMemoryStore(logging.NewNopLogger())
	ctx := context.Background()

	s.Save(ctx, "")
	_, ok := s.Load(ctx)
	assert.False(t, ok)
}

func TestUserRecordUsesWireFieldNames(t *testing.T) {
	b := &memoryBackend{data: map[string][]byte{}}
	s := newStore(b, logging.NewNopLogger(), "memory")

	s.SaveUser(context.Background(), &models.User{ID: 1, Nickname: "bob", AccessKey: "kb"})
	assert.JSONEq(t, `{"id":1,"nickname":"bob","access_key":"kb"}`, string(b.data[common.UserStorageKey]))
}
