package services

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/vncsmyrnk/pollbooth/internal/core/domain"
	"github.com/vncsmyrnk/pollbooth/internal/core/ports"
)

type reportService struct {
	pollStore ports.PollStore
}

func NewReportService(pollStore ports.PollStore) ports.ReportService {
	return &reportService{
		pollStore: pollStore,
	}
}

// Leaderboard returns the tally of every poll matching filter, most voted
// first and newest first among equals.
func (s *reportService) Leaderboard(ctx context.Context, filter ports.PollFilter) ([]domain.PollSummary, error) {
	polls, err := s.pollStore.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch polls: %w", err)
	}

	summaries := make([]domain.PollSummary, 0, len(polls))
	for _, p := range polls {
		summaries = append(summaries, domain.NewPollSummary(p))
	}

	slices.SortStableFunc(summaries, func(a, b domain.PollSummary) int {
		if c := cmp.Compare(b.Votes, a.Votes); c != 0 {
			return c
		}
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return summaries, nil
}
