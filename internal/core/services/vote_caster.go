package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vncsmyrnk/pollbooth/internal/core/domain"
	"github.com/vncsmyrnk/pollbooth/internal/core/ports"
)

// VoteCaster turns a positional selection, as submitted by the voting form,
// into a single label-keyed increment in the store.
type VoteCaster struct {
	store  ports.PollStore
	events ports.VoteEventPublisher
	now    func() time.Time
}

func NewVoteCaster(store ports.PollStore, events ports.VoteEventPublisher) *VoteCaster {
	return &VoteCaster{
		store:  store,
		events: events,
		now:    time.Now,
	}
}

// CastVote adds one vote to the choice at position selection of poll, using the
// choice order of the snapshot it was given. It returns the voted label.
//
// An out-of-range selection returns ErrInvalidSelection and touches nothing.
// Store errors (ErrNotFound when the poll or label is gone, StoreError) are
// returned unchanged.
func (c *VoteCaster) CastVote(ctx context.Context, poll *domain.Poll, selection int) (string, error) {
	choice, ok := poll.ChoiceAt(selection)
	if !ok {
		return "", fmt.Errorf("%w: index %d", domain.ErrInvalidSelection, selection)
	}

	if err := c.store.ApplyIncrement(ctx, poll.ID, choice.Label); err != nil {
		return "", err
	}

	if c.events != nil {
		event := domain.VoteEvent{PollID: poll.ID, Label: choice.Label, CastAt: c.now()}
		if err := c.events.PublishVote(ctx, event); err != nil {
			slog.WarnContext(ctx, "failed to publish vote event", "poll_id", poll.ID, "error", err)
		}
	}

	return choice.Label, nil
}
