package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/pollbooth/internal/core/domain"
	"github.com/vncsmyrnk/pollbooth/internal/core/ports"
)

func TestPollStore_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	store := NewPollStore()
	owner := uuid.New()

	id, err := store.Create(ctx, "Color?", owner, []string{"Red", "Blue"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)

	p, err := store.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Color?", p.Title)
	assert.Equal(t, owner, p.Owner)
	assert.Equal(t, []domain.Choice{{Label: "Red"}, {Label: "Blue"}}, p.Choices)
	assert.False(t, p.CreatedAt.IsZero())
}

func TestPollStore_CreateRejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	store := NewPollStore()

	_, err := store.Create(ctx, "", uuid.New(), []string{"A"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = store.Create(ctx, "Q", uuid.New(), nil)
	assert.ErrorIs(t, err, domain.ErrNoChoices)

	_, err = store.Create(ctx, "Q", uuid.New(), []string{"A", "A"})
	assert.ErrorIs(t, err, domain.ErrDuplicateChoice)

	polls, err := store.List(ctx, ports.PollFilter{})
	require.NoError(t, err)
	assert.Empty(t, polls)
}

func TestPollStore_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewPollStore()
	id, err := store.Create(ctx, "Q", uuid.New(), []string{"A"})
	require.NoError(t, err)

	p, err := store.GetByID(ctx, id)
	require.NoError(t, err)
	p.Choices[0].Count = 99
	p.Title = "changed"

	again, err := store.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(0), again.Choices[0].Count)
	assert.Equal(t, "Q", again.Title)
}

func TestPollStore_ListNewestFirstWithOwnerFilter(t *testing.T) {
	ctx := context.Background()
	store := NewPollStore()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	store.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	alice, bob := uuid.New(), uuid.New()
	first, _ := store.Create(ctx, "first", alice, []string{"A"})
	second, _ := store.Create(ctx, "second", bob, []string{"A"})
	third, _ := store.Create(ctx, "third", alice, []string{"A"})

	all, err := store.List(ctx, ports.PollFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []uuid.UUID{third, second, first}, []uuid.UUID{all[0].ID, all[1].ID, all[2].ID})

	mine, err := store.List(ctx, ports.PollFilter{Owner: &alice})
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, third, mine[0].ID)
	assert.Equal(t, first, mine[1].ID)
}

func TestPollStore_ApplyIncrement(t *testing.T) {
	ctx := context.Background()
	store := NewPollStore()
	id, err := store.Create(ctx, "Color?", uuid.New(), []string{"Red", "Blue"})
	require.NoError(t, err)

	require.NoError(t, store.ApplyIncrement(ctx, id, "Blue"))
	require.NoError(t, store.ApplyIncrement(ctx, id, "Blue"))

	p, err := store.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(0), p.Choices[0].Count)
	assert.Equal(t, int64(2), p.Choices[1].Count)

	assert.ErrorIs(t, store.ApplyIncrement(ctx, id, "Green"), domain.ErrChoiceNotFound)
	assert.ErrorIs(t, store.ApplyIncrement(ctx, uuid.New(), "Red"), domain.ErrPollNotFound)
	assert.ErrorIs(t, store.ApplyIncrement(ctx, uuid.New(), "Red"), domain.ErrNotFound)
}

func TestPollStore_ConcurrentIncrements(t *testing.T) {
	ctx := context.Background()
	store := NewPollStore()
	labels := []string{"A", "B", "C", "D"}
	id, err := store.Create(ctx, "Q", uuid.New(), labels)
	require.NoError(t, err)

	const perLabel = 250
	var wg sync.WaitGroup
	for _, label := range labels {
		for i := 0; i < perLabel; i++ {
			wg.Add(1)
			go func(label string) {
				defer wg.Done()
				assert.NoError(t, store.ApplyIncrement(ctx, id, label))
			}(label)
		}
	}
	wg.Wait()

	p, err := store.GetByID(ctx, id)
	require.NoError(t, err)
	for _, c := range p.Choices {
		assert.Equal(t, int64(perLabel), c.Count, c.Label)
	}
	assert.Equal(t, int64(perLabel*len(labels)), domain.Tally(p))
}

func TestPollStore_Remove(t *testing.T) {
	ctx := context.Background()
	store := NewPollStore()
	id, err := store.Create(ctx, "Q", uuid.New(), []string{"A"})
	require.NoError(t, err)

	require.NoError(t, store.Remove(ctx, id))
	_, err = store.GetByID(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.NoError(t, store.Remove(ctx, id))
	assert.NoError(t, store.Remove(ctx, uuid.New()))

	polls, err := store.List(ctx, ports.PollFilter{})
	require.NoError(t, err)
	assert.Empty(t, polls)
}

func TestSessionStore(t *testing.T) {
	ctx := context.Background()
	sessions := NewSessionStore(time.Hour)

	_, ok, err := sessions.GetCurrentPoll(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, ok)

	first, second := uuid.New(), uuid.New()
	require.NoError(t, sessions.SetCurrentPoll(ctx, "s1", first))
	require.NoError(t, sessions.SetCurrentPoll(ctx, "s1", second))
	require.NoError(t, sessions.SetCurrentPoll(ctx, "s2", first))

	got, ok, err := sessions.GetCurrentPoll(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, second, got)

	got, _, _ = sessions.GetCurrentPoll(ctx, "s2")
	assert.Equal(t, first, got)
}

func TestSessionStore_Expiry(t *testing.T) {
	ctx := context.Background()
	sessions := NewSessionStore(time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	sessions.now = func() time.Time { return now }

	pollID := uuid.New()
	require.NoError(t, sessions.SetCurrentPoll(ctx, "old", pollID))

	now = now.Add(30 * time.Second)
	got, ok, err := sessions.GetCurrentPoll(ctx, "old")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, pollID, got)

	now = now.Add(31 * time.Second)
	_, ok, err = sessions.GetCurrentPoll(ctx, "old")
	require.NoError(t, err)
	assert.False(t, ok)

	for i := 0; i < 100; i++ {
		require.NoError(t, sessions.SetCurrentPoll(ctx, uuid.NewString(), pollID))
	}
	now = now.Add(2 * time.Minute)
	require.NoError(t, sessions.SetCurrentPoll(ctx, "fresh", pollID))
	assert.Equal(t, 1, sessions.Len())
}

func TestSessionStore_NoTTLKeepsEntries(t *testing.T) {
	ctx := context.Background()
	sessions := NewSessionStore(0)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	sessions.now = func() time.Time { return now }

	require.NoError(t, sessions.SetCurrentPoll(ctx, "s", uuid.New()))
	now = now.Add(24 * 365 * time.Hour)
	require.NoError(t, sessions.SetCurrentPoll(ctx, "t", uuid.New()))

	_, ok, err := sessions.GetCurrentPoll(ctx, "s")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2, sessions.Len())
}
