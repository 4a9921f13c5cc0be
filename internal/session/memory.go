package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps sessions in-process. Suitable for development and tests;
// entries do not survive a restart.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	role      Role
	expiresAt time.Time
}

// NewMemoryStore creates an in-memory store. A non-positive ttl falls back to
// DefaultTTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// Create implements Store.
func (s *MemoryStore) Create(_ context.Context) (string, error) {
	id := uuid.NewString()

	s.mu.Lock()
	s.entries[id] = memoryEntry{role: RoleAdmin, expiresAt: s.now().Add(s.ttl)}
	s.mu.Unlock()

	return id, nil
}

// Resolve implements Store. Expired entries are pruned lazily.
func (s *MemoryStore) Resolve(_ context.Context, id string) Role {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[id]
	if !ok {
		return RoleNone
	}
	if s.now().After(entry.expiresAt) {
		delete(s.entries, id)
		return RoleNone
	}
	return entry.role
}

// Revoke implements Store.
func (s *MemoryStore) Revoke(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.entries, id)
	s.mu.Unlock()
	return nil
}
