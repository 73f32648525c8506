// Package store persists small JSON documents under string keys. The
// watch-list of the stock monitor is the main tenant.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by Get when the key was never set
var ErrNotFound = errors.New("key not found")

// Store is a persistent key-value store
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// Backend names accepted by Open
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendMemcache = "memcache"
	BackendNone     = "none"
)

// Config selects and addresses a backend
type Config struct {
	Backend string
	// SQLitePath is the database file of the sqlite backend
	SQLitePath string
	// Addr is host:port for redis and memcache
	Addr    string
	RedisDB int
	// DSN is the connection string of the postgres backend
	DSN string
}

// Open creates the configured backend. The "none" backend returns a nil
// Store, which disables monitoring.
func Open(ctx context.Context, cfg Config) (Store, error) {
	const op = "store.Open"

	var (
		st  Store
		err error
	)
	switch strings.ToLower(cfg.Backend) {
	case "", BackendMemory:
		return NewMemoryStore(), nil
	case BackendSQLite:
		st, err = NewSQLiteStore(ctx, cfg.SQLitePath)
	case BackendRedis:
		st, err = NewRedisStore(ctx, cfg.Addr, cfg.RedisDB)
	case BackendPostgres:
		st, err = NewPostgresStore(ctx, cfg.DSN)
	case BackendMemcache:
		st, err = NewMemcacheStore(cfg.Addr)
	case BackendNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("%s: unknown backend %q", op, cfg.Backend)
	}
	// keep a typed nil pointer out of the interface
	if err != nil {
		return nil, err
	}
	return st, nil
}
