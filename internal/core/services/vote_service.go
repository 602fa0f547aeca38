package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/pollbooth/internal/core/domain"
	"github.com/vncsmyrnk/pollbooth/internal/core/ports"
)

type voteService struct {
	pollStore ports.PollStore
	sessions  ports.SessionStore
	caster    *VoteCaster
}

func NewVoteService(pollStore ports.PollStore, sessions ports.SessionStore, caster *VoteCaster) ports.VoteService {
	return &voteService{
		pollStore: pollStore,
		sessions:  sessions,
		caster:    caster,
	}
}

func (s *voteService) Vote(ctx context.Context, input ports.VoteInput) (uuid.UUID, error) {
	if input.SessionID == "" {
		return uuid.Nil, domain.ErrNoCurrentPoll
	}

	pollID, ok, err := s.sessions.GetCurrentPoll(ctx, input.SessionID)
	if err != nil {
		return uuid.Nil, domain.NewStoreError("get current poll", err)
	}
	if !ok {
		return uuid.Nil, domain.ErrNoCurrentPoll
	}

	poll, err := s.pollStore.GetByID(ctx, pollID)
	if err != nil {
		return pollID, err
	}

	if _, err := s.caster.CastVote(ctx, poll, input.Selection); err != nil {
		return pollID, err
	}

	return pollID, nil
}
