package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/pollbooth/internal/core/domain"
)

type VoteEventPublisher interface {
	PublishVote(ctx context.Context, event domain.VoteEvent) error
}

type VoteInput struct {
	SessionID string
	Selection int
}

type VoteService interface {
	// Vote casts a vote on the poll bound to the session and returns that
	// poll's id, also when the selection was rejected.
	Vote(ctx context.Context, input VoteInput) (uuid.UUID, error)
}
