package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/bradfitz/gomemcache/memcache"

	perrors "product-extractor/pkg/errors"
)

// MemcacheStore keeps values in memcached without expiry. Memcached may
// evict them under memory pressure, so it suits throwaway deployments.
type MemcacheStore struct {
	client *memcache.Client
}

var _ Store = (*MemcacheStore)(nil)

func NewMemcacheStore(serverAddr string) (*MemcacheStore, error) {
	const op = "store.memcache.New"

	client := memcache.New(serverAddr)
	if err := client.Ping(); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, perrors.ErrStoreUnavailable, err)
	}
	return &MemcacheStore{client: client}, nil
}

// memcache has no context support; ctx is only checked up front
func (m *MemcacheStore) Get(ctx context.Context, key string) ([]byte, error) {
	const op = "store.memcache.Get"

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	item, err := m.client.Get(key)
	if err != nil {
		if errors.Is(err, memcache.ErrCacheMiss) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return item.Value, nil
}

func (m *MemcacheStore) Set(ctx context.Context, key string, value []byte) error {
	const op = "store.memcache.Set"

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := m.client.Set(&memcache.Item{Key: key, Value: value}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Close is a no-op
func (m *MemcacheStore) Close() error {
	return nil
}
