// Package events holds VoteEventPublisher implementations.
package events

import (
	"context"

	"github.com/vncsmyrnk/pollbooth/internal/core/domain"
)

// Nop drops every event. It is used when no broker is configured.
type Nop struct{}

func (Nop) PublishVote(context.Context, domain.VoteEvent) error { return nil }
