package credstore

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/gymbacteria/internal/common"
	"github.com/dmitrijs2005/gymbacteria/internal/logging"
)

type memoryBackend struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore returns a Store that lives only as long as the process.
func NewMemoryStore(logger logging.Logger) Store {
	return newStore(&memoryBackend{data: make(map[string][]byte)}, logger, "memory")
}

func (m *memoryBackend) get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[key]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *memoryBackend) put(_ context.Context, kv map[string][]byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for k, v := range kv {
		m.data[k] = append([]byte(nil), v...)
	}
	return nil
}

func (m *memoryBackend) remove(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}
