package amqp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/vncsmyrnk/pollbooth/internal/core/domain"
)

// Dial connects to url, retrying a few times while the broker starts.
func Dial(url string, attempts int, backoff time.Duration) (*amqp.Connection, error) {
	var conn *amqp.Connection
	var err error
	for i := 0; i < attempts; i++ {
		if conn, err = amqp.Dial(url); err == nil {
			return conn, nil
		}
		slog.Warn("failed to connect to rabbitmq, retrying", "attempt", i+1, "error", err)
		time.Sleep(backoff)
	}
	return nil, fmt.Errorf("could not connect to rabbitmq after %d attempts: %w", attempts, err)
}

// Channel is the subset of *amqp.Channel the publisher needs.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Publisher sends each vote as a JSON message to a durable queue on the
// default exchange.
type Publisher struct {
	channel Channel
	queue   string
	mu      sync.Mutex
}

func NewPublisher(ch Channel, queue string) *Publisher {
	return &Publisher{
		channel: ch,
		queue:   queue,
	}
}

// DeclareQueue declares queue as durable on ch.
func DeclareQueue(ch *amqp.Channel, queue string) error {
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", queue, err)
	}
	return nil
}

func (p *Publisher) PublishVote(ctx context.Context, event domain.VoteEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode vote event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.PublishWithContext(ctx,
		"",
		p.queue,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    event.CastAt,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish vote event: %w", err)
	}
	return nil
}
