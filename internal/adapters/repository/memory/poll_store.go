// Package memory holds process-local implementations of the store ports,
// used by tests and by the server when no database is configured.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/pollbooth/internal/core/domain"
	"github.com/vncsmyrnk/pollbooth/internal/core/ports"
)

type PollStore struct {
	mu    sync.Mutex
	polls map[uuid.UUID]*domain.Poll
	order []uuid.UUID
	now   func() time.Time
}

func NewPollStore() *PollStore {
	return &PollStore{
		polls: make(map[uuid.UUID]*domain.Poll),
		now:   time.Now,
	}
}

var _ ports.PollStore = (*PollStore)(nil)

// List returns copies of the stored polls, newest first.
func (s *PollStore) List(ctx context.Context, filter ports.PollFilter) ([]*domain.Poll, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	polls := make([]*domain.Poll, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		p := s.polls[s.order[i]]
		if filter.Owner != nil && p.Owner != *filter.Owner {
			continue
		}
		polls = append(polls, clonePoll(p))
	}
	return polls, nil
}

func (s *PollStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Poll, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.polls[id]
	if !ok {
		return nil, domain.ErrPollNotFound
	}
	return clonePoll(p), nil
}

func (s *PollStore) Create(ctx context.Context, title string, owner uuid.UUID, labels []string) (uuid.UUID, error) {
	if err := domain.ValidateNewPoll(title, labels); err != nil {
		return uuid.Nil, err
	}

	p := &domain.Poll{
		ID:        uuid.New(),
		Title:     title,
		Owner:     owner,
		Choices:   domain.NewChoices(labels),
		CreatedAt: s.now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.polls[p.ID] = p
	s.order = append(s.order, p.ID)
	return p.ID, nil
}

// ApplyIncrement adds one to the count of label under the store lock, so
// concurrent increments are never lost.
func (s *PollStore) ApplyIncrement(ctx context.Context, id uuid.UUID, label string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.polls[id]
	if !ok {
		return domain.ErrPollNotFound
	}
	for i := range p.Choices {
		if p.Choices[i].Label == label {
			p.Choices[i].Count++
			return nil
		}
	}
	return domain.ErrChoiceNotFound
}

func (s *PollStore) Remove(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.polls[id]; !ok {
		return nil
	}
	delete(s.polls, id)
	for i, pid := range s.order {
		if pid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func clonePoll(p *domain.Poll) *domain.Poll {
	c := *p
	c.Choices = append([]domain.Choice(nil), p.Choices...)
	return &c
}
