package domain

import (
	"time"

	"github.com/google/uuid"
)

// VoteEvent is emitted after a vote has been durably applied to a poll.
type VoteEvent struct {
	PollID uuid.UUID `json:"poll_id"`
	Label  string    `json:"label"`
	CastAt time.Time `json:"cast_at"`
}
