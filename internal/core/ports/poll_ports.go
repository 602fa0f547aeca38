package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/pollbooth/internal/core/domain"
)

// PollFilter narrows PollStore.List. The zero value selects every poll.
type PollFilter struct {
	Owner *uuid.UUID
}

// PollStore persists polls. ApplyIncrement must be a single atomic per-label
// operation in the backend; implementations never read-modify-write a whole
// poll to apply a vote.
type PollStore interface {
	List(ctx context.Context, filter PollFilter) ([]*domain.Poll, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Poll, error)
	Create(ctx context.Context, title string, owner uuid.UUID, labels []string) (uuid.UUID, error)
	ApplyIncrement(ctx context.Context, id uuid.UUID, label string) error
	Remove(ctx context.Context, id uuid.UUID) error
}

type CreatePollInput struct {
	Title   string
	Owner   uuid.UUID
	Choices string // raw text, one choice per line
}

type PollService interface {
	Create(ctx context.Context, input CreatePollInput) (uuid.UUID, error)
	View(ctx context.Context, sessionID string, id uuid.UUID) (*domain.Poll, error)
	List(ctx context.Context, filter PollFilter) ([]domain.PollSummary, error)
	Remove(ctx context.Context, id uuid.UUID, owner uuid.UUID) error
}
