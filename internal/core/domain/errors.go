package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrPollNotFound   = fmt.Errorf("poll %w", ErrNotFound)
	ErrChoiceNotFound = fmt.Errorf("choice %w", ErrNotFound)

	ErrInvalidInput    = errors.New("invalid input")
	ErrEmptyTitle      = fmt.Errorf("%w: title is required", ErrInvalidInput)
	ErrNoChoices       = fmt.Errorf("%w: at least one choice is required", ErrInvalidInput)
	ErrDuplicateChoice = fmt.Errorf("%w: choice labels must be unique", ErrInvalidInput)

	ErrInvalidSelection = errors.New("invalid selection")
	ErrNoCurrentPoll    = errors.New("no poll bound to this session")
	ErrNotOwner         = errors.New("poll belongs to another owner")

	ErrStore = errors.New("poll store failure")
)

// StoreError reports a backend failure (connection, timeout, driver error)
// from a store operation. It matches ErrStore through errors.Is.
type StoreError struct {
	Op  string
	Err error
}

func NewStoreError(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrStore, e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func (e *StoreError) Is(target error) bool {
	return target == ErrStore
}
