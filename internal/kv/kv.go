// Package kv is the key/value port behind cart and preference state.
package kv

import (
	"context"
	"errors"
	"strings"
	"sync"
)

var ErrKeyNotFound = errors.New("key not found")

// Store reads and writes opaque string values. Get returns ErrKeyNotFound for absent keys.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

var _ Store = (*MemoryStore)(nil)

func (m *MemoryStore) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.data[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return value, nil
}

func (m *MemoryStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = value
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, key)
	return nil
}

type prefixed struct {
	store  Store
	prefix string
}

// WithPrefix scopes every key of store under prefix.
func WithPrefix(store Store, prefix string) Store {
	return &prefixed{store: store, prefix: prefix}
}

func (p *prefixed) key(key string) string {
	var builder strings.Builder
	builder.Grow(len(p.prefix) + len(key))
	builder.WriteString(p.prefix)
	builder.WriteString(key)
	return builder.String()
}

func (p *prefixed) Get(ctx context.Context, key string) (string, error) {
	return p.store.Get(ctx, p.key(key))
}

func (p *prefixed) Set(ctx context.Context, key, value string) error {
	return p.store.Set(ctx, p.key(key), value)
}

func (p *prefixed) Delete(ctx context.Context, key string) error {
	return p.store.Delete(ctx, p.key(key))
}

// SessionPrefix is the key prefix for one client session.
func SessionPrefix(sessionID string) string {
	return "session:" + sessionID + ":"
}
