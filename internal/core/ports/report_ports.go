package ports

import (
	"context"

	"github.com/vncsmyrnk/pollbooth/internal/core/domain"
)

type ReportService interface {
	Leaderboard(ctx context.Context, filter PollFilter) ([]domain.PollSummary, error)
}
