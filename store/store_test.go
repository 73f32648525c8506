package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseStore checks the contract every backend has to honour
func exerciseStore(t *testing.T, s Store, key string) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx, key+":missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, key, []byte(`[{"url":"a"}]`)))
	value, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, `[{"url":"a"}]`, string(value))

	// overwrite
	require.NoError(t, s.Set(ctx, key, []byte(`[]`)))
	value, err = s.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(value))
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()

	exerciseStore(t, s, "stockWatchList")
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	s := NewMemoryStore()
	value := []byte("abc")
	require.NoError(t, s.Set(context.Background(), "k", value))
	value[0] = 'x'

	got, err := s.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.db")

	s, err := NewSQLiteStore(context.Background(), path)
	require.NoError(t, err)
	exerciseStore(t, s, "stockWatchList")
	require.NoError(t, s.Close())

	// persisted across reopen
	s, err = NewSQLiteStore(context.Background(), path)
	require.NoError(t, err)
	defer s.Close()
	value, err := s.Get(context.Background(), "stockWatchList")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(value))
}

func TestSQLiteStore_EmptyPath(t *testing.T) {
	_, err := NewSQLiteStore(context.Background(), "")
	assert.Error(t, err)
}

// These tests require running services
// If they are not available, the tests will be skipped
func TestRedisStore(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	s, err := NewRedisStore(ctx, "localhost:6379", 15)
	if err != nil {
		t.Skip("Redis is not available, skipping test")
	}
	defer s.Close()

	exerciseStore(t, s, "product-extractor:test:"+time.Now().Format("150405.000"))
}

func TestMemcacheStore(t *testing.T) {
	s, err := NewMemcacheStore("localhost:11211")
	if err != nil {
		t.Skip("Memcached is not available, skipping test")
	}
	defer s.Close()

	exerciseStore(t, s, "product-extractor-test-"+time.Now().Format("150405000"))
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, Config{})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	s, err = Open(ctx, Config{Backend: "SQLite", SQLitePath: filepath.Join(t.TempDir(), "kv.db")})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, s)
	s.Close()

	s, err = Open(ctx, Config{Backend: BackendNone})
	require.NoError(t, err)
	assert.Nil(t, s)

	_, err = Open(ctx, Config{Backend: "cassandra"})
	assert.Error(t, err)
}
