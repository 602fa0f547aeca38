package ports

import (
	"context"

	"github.com/google/uuid"
)

// SessionStore keeps the poll a visitor session viewed last. A vote submitted
// from that session targets this poll.
type SessionStore interface {
	SetCurrentPoll(ctx context.Context, sessionID string, pollID uuid.UUID) error
	GetCurrentPoll(ctx context.Context, sessionID string) (uuid.UUID, bool, error)
}
