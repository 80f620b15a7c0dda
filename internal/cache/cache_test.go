package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemorySetGet(t *testing.T) {
	ctx := context.Background()
	c := New()

	require.NoError(t, c.Set(ctx, "k", "안녕하세요", time.Minute))
	v, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "안녕하세요", v)

	_, ok, err = c.Get(ctx, "missing")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryExpiresLazily(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 14, 6, 0, 0, 0, time.UTC)
	c := New()
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))
	require.Equal(t, 1, c.Len())

	now = now.Add(2 * time.Minute)
	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok)
	require.Zero(t, c.Len())
}

func TestMemoryCleanup(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 14, 6, 0, 0, 0, time.UTC)
	c := New()
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "short", "v", time.Second))
	require.NoError(t, c.Set(ctx, "long", "v", time.Hour))

	now = now.Add(time.Minute)
	require.Equal(t, 1, c.Cleanup())
	_, ok, _ := c.Get(ctx, "long")
	require.True(t, ok)
}

func TestKeyIsStable(t *testing.T) {
	require.Equal(t, Key("gtx", "hello"), Key("gtx", "hello"))
	require.NotEqual(t, Key("gtx", "hello"), Key("gemini", "hello"))
	// separator keeps part boundaries distinct
	require.NotEqual(t, Key("ab", "c"), Key("a", "bc"))
	require.Len(t, Key("x"), 64)
}

func TestNewRedisUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_, err := NewRedis(ctx, "127.0.0.1:1")
	require.Error(t, err)
}
