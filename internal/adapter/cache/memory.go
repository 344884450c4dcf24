package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"taskapp/internal/core/port"
)

type memoryRepository struct {
	cache *gocache.Cache
}

// NewMemoryRepository is the default cache backend, an in-process
// store with the same contract as the redis adapter.
func NewMemoryRepository() port.CacheRepository {
	return &memoryRepository{
		cache: gocache.New(5*time.Minute, 10*time.Minute),
	}
}

func (m *memoryRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.cache.Set(key, value, ttl)
	return nil
}

func (m *memoryRepository) Get(ctx context.Context, key string) ([]byte, error) {
	value, found := m.cache.Get(key)

	if !found {
		return nil, nil
	}

	data, ok := value.([]byte)

	if !ok {
		return nil, fmt.Errorf("unexpected cache value type for key %s", key)
	}

	return data, nil
}

func (m *memoryRepository) Delete(ctx context.Context, key string) error {
	m.cache.Delete(key)
	return nil
}

func (m *memoryRepository) DeleteByPrefix(ctx context.Context, prefix string) error {
	for key := range m.cache.Items() {
		if strings.HasPrefix(key, prefix) {
			m.cache.Delete(key)
		}
	}

	return nil
}

func (m *memoryRepository) Close() error {
	m.cache.Flush()
	return nil
}
