// Package metrics exposes the Prometheus counters of the service on the
// default registry.
package metrics

import (
	"errors"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/vncsmyrnk/pollbooth/internal/core/domain"
)

var (
	httpRequestsTotal *prometheus.CounterVec
	votesTotal        *prometheus.CounterVec
	registerOnce      sync.Once
)

// Register initializes the counters. Calls after the first are no-ops.
func Register() {
	registerOnce.Do(func() {
		httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pollbooth",
			Name:      "http_requests_total",
			Help:      "Total HTTP requests processed by the poll API.",
		}, []string{"method", "path", "status"})

		votesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pollbooth",
			Name:      "votes_total",
			Help:      "Vote submissions by outcome.",
		}, []string{"outcome"})
	})
}

func IncRequest(method, path string, status int) {
	if httpRequestsTotal == nil {
		return
	}
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
}

// VoteOutcome names the result of a vote submission for the votes counter.
func VoteOutcome(err error) string {
	switch {
	case err == nil:
		return "applied"
	case errors.Is(err, domain.ErrInvalidSelection):
		return "invalid_selection"
	case errors.Is(err, domain.ErrNoCurrentPoll):
		return "no_current_poll"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}

// ObserveVote counts a vote submission under the outcome of err.
func ObserveVote(err error) {
	if votesTotal == nil {
		return
	}
	votesTotal.WithLabelValues(VoteOutcome(err)).Inc()
}
