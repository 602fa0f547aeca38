package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/vncsmyrnk/pollbooth/internal/core/domain"
	"github.com/vncsmyrnk/pollbooth/internal/core/ports"
)

type pollStore struct {
	db      *sql.DB
	timeout time.Duration
}

// NewPollStore returns a PollStore backed by the polls and poll_choices
// tables. Every operation runs under timeout.
func NewPollStore(db *sql.DB, timeout time.Duration) ports.PollStore {
	return &pollStore{
		db:      db,
		timeout: timeout,
	}
}

func (s *pollStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *pollStore) List(ctx context.Context, filter ports.PollFilter) ([]*domain.Poll, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, title, owner, created_at
		FROM polls
		WHERE ($1::uuid IS NULL OR owner = $1)
		ORDER BY created_at DESC, id
	`
	var owner any
	if filter.Owner != nil {
		owner = *filter.Owner
	}

	rows, err := s.db.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, domain.NewStoreError("list polls", err)
	}
	defer rows.Close()

	var polls []*domain.Poll
	byID := make(map[uuid.UUID]*domain.Poll)
	for rows.Next() {
		var p domain.Poll
		if err := rows.Scan(&p.ID, &p.Title, &p.Owner, &p.CreatedAt); err != nil {
			return nil, domain.NewStoreError("scan poll", err)
		}
		polls = append(polls, &p)
		byID[p.ID] = &p
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStoreError("iterate polls", err)
	}
	if len(polls) == 0 {
		return polls, nil
	}

	ids := make([]string, 0, len(polls))
	for _, p := range polls {
		ids = append(ids, p.ID.String())
	}

	choiceRows, err := s.db.QueryContext(ctx, `
		SELECT poll_id, label, count
		FROM poll_choices
		WHERE poll_id = ANY($1::uuid[])
		ORDER BY poll_id, position
	`, pq.Array(ids))
	if err != nil {
		return nil, domain.NewStoreError("list choices", err)
	}
	defer choiceRows.Close()

	for choiceRows.Next() {
		var pollID uuid.UUID
		var c domain.Choice
		if err := choiceRows.Scan(&pollID, &c.Label, &c.Count); err != nil {
			return nil, domain.NewStoreError("scan choice", err)
		}
		if p, ok := byID[pollID]; ok {
			p.Choices = append(p.Choices, c)
		}
	}
	if err := choiceRows.Err(); err != nil {
		return nil, domain.NewStoreError("iterate choices", err)
	}

	return polls, nil
}

func (s *pollStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Poll, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var p domain.Poll
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, owner, created_at
		FROM polls
		WHERE id = $1
	`, id).Scan(&p.ID, &p.Title, &p.Owner, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrPollNotFound
	}
	if err != nil {
		return nil, domain.NewStoreError("get poll", err)
	}

	choices, err := s.fetchChoices(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Choices = choices

	return &p, nil
}

func (s *pollStore) fetchChoices(ctx context.Context, pollID uuid.UUID) ([]domain.Choice, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT label, count
		FROM poll_choices
		WHERE poll_id = $1
		ORDER BY position
	`, pollID)
	if err != nil {
		return nil, domain.NewStoreError("get choices", err)
	}
	defer rows.Close()

	var choices []domain.Choice
	for rows.Next() {
		var c domain.Choice
		if err := rows.Scan(&c.Label, &c.Count); err != nil {
			return nil, domain.NewStoreError("scan choice", err)
		}
		choices = append(choices, c)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStoreError("iterate choices", err)
	}
	return choices, nil
}

func (s *pollStore) Create(ctx context.Context, title string, owner uuid.UUID, labels []string) (uuid.UUID, error) {
	if err := domain.ValidateNewPoll(title, labels); err != nil {
		return uuid.Nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, domain.NewStoreError("begin transaction", err)
	}
	defer tx.Rollback()

	id := uuid.New()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO polls (id, title, owner, created_at)
		VALUES ($1, $2, $3, $4)
	`, id, title, owner, time.Now().UTC())
	if err != nil {
		return uuid.Nil, domain.NewStoreError("insert poll", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO poll_choices (poll_id, position, label, count)
		VALUES ($1, $2, $3, 0)
	`)
	if err != nil {
		return uuid.Nil, domain.NewStoreError("prepare choice statement", err)
	}
	defer stmt.Close()

	for i, label := range labels {
		if _, err := stmt.ExecContext(ctx, id, i, label); err != nil {
			return uuid.Nil, domain.NewStoreError("insert choice", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, domain.NewStoreError("commit transaction", err)
	}

	return id, nil
}

// ApplyIncrement relies on a single UPDATE row lock, so concurrent increments
// of the same label serialize in the database and none is lost.
func (s *pollStore) ApplyIncrement(ctx context.Context, id uuid.UUID, label string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	res, err := s.db.ExecContext(ctx, `
		UPDATE poll_choices
		SET count = count + 1
		WHERE poll_id = $1 AND label = $2
	`, id, label)
	if err != nil {
		return domain.NewStoreError("increment choice", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return domain.NewStoreError("increment choice", err)
	}
	if n > 0 {
		return nil
	}

	var exists bool
	if err := s.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM polls WHERE id = $1)`, id).Scan(&exists); err != nil {
		return domain.NewStoreError("check poll", err)
	}
	if !exists {
		return domain.ErrPollNotFound
	}
	return fmt.Errorf("%w: %q", domain.ErrChoiceNotFound, label)
}

func (s *pollStore) Remove(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM polls WHERE id = $1`, id); err != nil {
		return domain.NewStoreError("delete poll", err)
	}
	return nil
}
