package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/pollbooth/internal/core/ports"
)

type sessionEntry struct {
	pollID    uuid.UUID
	expiresAt time.Time
}

// SessionStore keeps each session's current poll in a map. Entries expire
// ttl after their last write and are swept on writes; a non-positive ttl
// keeps them forever.
type SessionStore struct {
	mu        sync.RWMutex
	current   map[string]sessionEntry
	ttl       time.Duration
	nextSweep time.Time
	now       func() time.Time
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		current: make(map[string]sessionEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

var _ ports.SessionStore = (*SessionStore)(nil)

func (s *SessionStore) SetCurrentPoll(ctx context.Context, sessionID string, pollID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if s.ttl > 0 && !now.Before(s.nextSweep) {
		for id, e := range s.current {
			if !now.Before(e.expiresAt) {
				delete(s.current, id)
			}
		}
		s.nextSweep = now.Add(s.ttl)
	}

	entry := sessionEntry{pollID: pollID}
	if s.ttl > 0 {
		entry.expiresAt = now.Add(s.ttl)
	}
	s.current[sessionID] = entry
	return nil
}

func (s *SessionStore) GetCurrentPoll(ctx context.Context, sessionID string) (uuid.UUID, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.current[sessionID]
	if !ok || (s.ttl > 0 && !s.now().Before(e.expiresAt)) {
		return uuid.Nil, false, nil
	}
	return e.pollID, true, nil
}

// Len reports how many sessions are held, expired or not.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.current)
}
