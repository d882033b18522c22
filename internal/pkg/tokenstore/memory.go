package tokenstore

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is a process-local Store used when Redis is not configured.
// Revocations do not survive a restart and are not shared between replicas.
type MemoryStore struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		revoked: make(map[string]time.Time),
		now:     time.Now,
	}
}

// Revoke marks jti as revoked until expiresAt
func (s *MemoryStore) Revoke(_ context.Context, jti string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if !expiresAt.After(now) {
		return nil
	}
	s.sweepLocked(now)
	s.revoked[jti] = expiresAt
	return nil
}

// IsRevoked reports whether jti is revoked and not yet expired
func (s *MemoryStore) IsRevoked(_ context.Context, jti string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	exp, ok := s.revoked[jti]
	if !ok {
		return false, nil
	}
	if !exp.After(s.now()) {
		delete(s.revoked, jti)
		return false, nil
	}
	return true, nil
}

// sweepLocked drops expired entries; callers hold mu
func (s *MemoryStore) sweepLocked(now time.Time) {
	for jti, exp := range s.revoked {
		if !exp.After(now) {
			delete(s.revoked, jti)
		}
	}
}
