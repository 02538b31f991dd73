package cart

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/safar/artisan-market/internal/kv"
)

// Sessions hands out the cart of one client session at a time.
type Sessions struct {
	store  kv.Store
	logger zerolog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewSessions(store kv.Store, logger zerolog.Logger) *Sessions {
	return &Sessions{store: store, logger: logger, locks: make(map[string]*sync.Mutex)}
}

// Store returns the session-scoped view of the underlying kv store.
func (s *Sessions) Store(sessionID string) kv.Store {
	return kv.WithPrefix(s.store, kv.SessionPrefix(sessionID))
}

// With loads the session's cart and runs fn while holding the session lock, so
// concurrent requests of one session never overwrite each other's changes.
func (s *Sessions) With(ctx context.Context, sessionID string, fn func(*Cart) error, opts ...Option) error {
	lock := s.lock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	c, err := Load(ctx, s.Store(sessionID), s.logger, opts...)
	if err != nil {
		return err
	}
	return fn(c)
}

func (s *Sessions) lock(sessionID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[sessionID] = lock
	}
	return lock
}
