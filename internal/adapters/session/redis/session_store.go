package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/vncsmyrnk/pollbooth/internal/core/ports"
)

// Connect returns a client for addr once the server answers a ping.
func Connect(ctx context.Context, addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("could not connect to redis at %s: %w", addr, err)
	}
	return rdb, nil
}

// SessionStore keeps the current poll of each session under
// session:{id}:current_poll. Every write refreshes the key's TTL, and every
// call is bounded by timeout.
type SessionStore struct {
	client  *redis.Client
	ttl     time.Duration
	timeout time.Duration
}

func NewSessionStore(client *redis.Client, ttl, timeout time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl, timeout: timeout}
}

func (s *SessionStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

var _ ports.SessionStore = (*SessionStore)(nil)

func currentPollKey(sessionID string) string {
	return "session:" + sessionID + ":current_poll"
}

func (s *SessionStore) SetCurrentPoll(ctx context.Context, sessionID string, pollID uuid.UUID) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.client.Set(ctx, currentPollKey(sessionID), pollID.String(), s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set current poll: %w", err)
	}
	return nil
}

func (s *SessionStore) GetCurrentPoll(ctx context.Context, sessionID string) (uuid.UUID, bool, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	val, err := s.client.Get(ctx, currentPollKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("failed to get current poll: %w", err)
	}

	id, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, false, nil
	}
	return id, true, nil
}
