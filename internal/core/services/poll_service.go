package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/pollbooth/internal/core/domain"
	"github.com/vncsmyrnk/pollbooth/internal/core/ports"
)

type pollService struct {
	store    ports.PollStore
	sessions ports.SessionStore
}

func NewPollService(store ports.PollStore, sessions ports.SessionStore) ports.PollService {
	return &pollService{
		store:    store,
		sessions: sessions,
	}
}

func (s *pollService) Create(ctx context.Context, input ports.CreatePollInput) (uuid.UUID, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return uuid.Nil, domain.ErrEmptyTitle
	}

	labels, err := domain.ParseChoices(input.Choices)
	if err != nil {
		return uuid.Nil, err
	}

	id, err := s.store.Create(ctx, title, input.Owner, labels)
	if err != nil {
		return uuid.Nil, err
	}

	slog.InfoContext(ctx, "poll created", "poll_id", id, "owner", input.Owner, "choices", len(labels))
	return id, nil
}

// View loads a poll for display and binds it as the session's current poll,
// so that the session's next vote lands on it.
func (s *pollService) View(ctx context.Context, sessionID string, id uuid.UUID) (*domain.Poll, error) {
	poll, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if sessionID != "" {
		if err := s.sessions.SetCurrentPoll(ctx, sessionID, poll.ID); err != nil {
			return nil, domain.NewStoreError("set current poll", err)
		}
	}

	return poll, nil
}

func (s *pollService) List(ctx context.Context, filter ports.PollFilter) ([]domain.PollSummary, error) {
	polls, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	summaries := make([]domain.PollSummary, 0, len(polls))
	for _, p := range polls {
		summaries = append(summaries, domain.NewPollSummary(p))
	}
	return summaries, nil
}

// Remove deletes a poll owned by owner. Removing a poll that no longer exists
// succeeds.
func (s *pollService) Remove(ctx context.Context, id uuid.UUID, owner uuid.UUID) error {
	poll, err := s.store.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if poll.Owner != owner {
		return domain.ErrNotOwner
	}

	if err := s.store.Remove(ctx, id); err != nil {
		return err
	}

	slog.InfoContext(ctx, "poll removed", "poll_id", id, "owner", owner)
	return nil
}
