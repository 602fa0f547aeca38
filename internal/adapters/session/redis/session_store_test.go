package redis

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func setupRedis(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping redis container test in short mode")
	}

	ctx := context.Background()
	container, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)
	return endpoint
}

func TestSessionStore_Redis(t *testing.T) {
	addr := setupRedis(t)
	ctx := context.Background()

	client, err := Connect(ctx, addr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	sessions := NewSessionStore(client, time.Minute, 5*time.Second)

	_, ok, err := sessions.GetCurrentPoll(ctx, "unknown")
	require.NoError(t, err)
	assert.False(t, ok)

	first, second := uuid.New(), uuid.New()
	require.NoError(t, sessions.SetCurrentPoll(ctx, "s1", first))
	require.NoError(t, sessions.SetCurrentPoll(ctx, "s1", second))

	got, ok, err := sessions.GetCurrentPoll(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, second, got)

	ttl, err := client.TTL(ctx, currentPollKey("s1")).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)
}

func TestSessionStore_Expiry(t *testing.T) {
	addr := setupRedis(t)
	ctx := context.Background()

	client, err := Connect(ctx, addr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	sessions := NewSessionStore(client, time.Second, 5*time.Second)
	require.NoError(t, sessions.SetCurrentPoll(ctx, "short", uuid.New()))

	assert.Eventually(t, func() bool {
		_, ok, err := sessions.GetCurrentPoll(ctx, "short")
		return err == nil && !ok
	}, 5*time.Second, 100*time.Millisecond)
}

func TestConnect_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := Connect(ctx, "127.0.0.1:1")
	assert.Error(t, err)
}

func TestSessionStore_CallsAreBounded(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "10.255.255.1:6379",
		DialTimeout: time.Minute,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	sessions := NewSessionStore(client, time.Minute, 200*time.Millisecond)

	start := time.Now()
	_, _, err := sessions.GetCurrentPoll(context.Background(), "s")
	assert.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)

	start = time.Now()
	err = sessions.SetCurrentPoll(context.Background(), "s", uuid.New())
	assert.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestCurrentPollKey(t *testing.T) {
	assert.Equal(t, "session:abc:current_poll", currentPollKey("abc"))
}
