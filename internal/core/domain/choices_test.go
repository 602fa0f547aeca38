package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChoices(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"windows line endings", "Red\r\nBlue\r\nGreen", []string{"Red", "Blue", "Green"}},
		{"unix line endings", "Red\nBlue", []string{"Red", "Blue"}},
		{"blank lines dropped", "\r\nRed\r\n\r\n  \r\nBlue\r\n", []string{"Red", "Blue"}},
		{"surrounding spaces trimmed", "  Red  \n\tBlue", []string{"Red", "Blue"}},
		{"duplicates keep first position", "Red\nBlue\nRed\nGreen", []string{"Red", "Blue", "Green"}},
		{"single choice", "Yes", []string{"Yes"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseChoices(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseChoices_Empty(t *testing.T) {
	for _, raw := range []string{"", "\r\n", "   \n\t\n"} {
		labels, err := ParseChoices(raw)
		assert.Nil(t, labels)
		assert.ErrorIs(t, err, ErrNoChoices)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestValidateNewPoll(t *testing.T) {
	assert.NoError(t, ValidateNewPoll("Color?", []string{"Red", "Blue"}))

	assert.ErrorIs(t, ValidateNewPoll("", []string{"Red"}), ErrEmptyTitle)
	assert.ErrorIs(t, ValidateNewPoll("   ", []string{"Red"}), ErrEmptyTitle)
	assert.ErrorIs(t, ValidateNewPoll("Color?", nil), ErrNoChoices)
	assert.ErrorIs(t, ValidateNewPoll("Color?", []string{"Red", ""}), ErrNoChoices)
	assert.ErrorIs(t, ValidateNewPoll("Color?", []string{"Red", "Red"}), ErrDuplicateChoice)

	err := ValidateNewPoll("", nil)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestChoiceAt(t *testing.T) {
	p := &Poll{Choices: NewChoices([]string{"Red", "Blue"})}

	c, ok := p.ChoiceAt(1)
	require.True(t, ok)
	assert.Equal(t, Choice{Label: "Blue"}, c)

	for _, i := range []int{-1, 2, 5} {
		_, ok := p.ChoiceAt(i)
		assert.False(t, ok, "index %d", i)
	}

	var nilPoll *Poll
	_, ok = nilPoll.ChoiceAt(0)
	assert.False(t, ok)
}
