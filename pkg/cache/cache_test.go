package cache

import (
	"context"
	"testing"
	"time"

	"github.com/Ujjwal3492/Fitness/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMemory_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	c, err := NewMemory(4, time.Minute)
	require.NoError(t, err)

	_, ok := c.Get(ctx, KeyTrainers)
	assert.False(t, ok)

	c.Set(ctx, KeyTrainers, []byte(`[]`))
	c.Set(ctx, KeyTestimonials, []byte(`[{"id":"1"}]`))

	value, ok := c.Get(ctx, KeyTrainers)
	require.True(t, ok)
	assert.Equal(t, `[]`, string(value))

	c.Delete(ctx, KeyTrainers, KeyTestimonials)
	_, ok = c.Get(ctx, KeyTrainers)
	assert.False(t, ok)
	_, ok = c.Get(ctx, KeyTestimonials)
	assert.False(t, ok)
}

func TestMemory_Expires(t *testing.T) {
	ctx := context.Background()
	c, err := NewMemory(4, time.Minute)
	require.NoError(t, err)

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.Set(ctx, KeyTrainers, []byte(`[]`))
	now = now.Add(59 * time.Second)
	_, ok := c.Get(ctx, KeyTrainers)
	assert.True(t, ok)

	now = now.Add(time.Second)
	_, ok = c.Get(ctx, KeyTrainers)
	assert.False(t, ok)
}

func TestMemory_EvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	c, err := NewMemory(1, time.Minute)
	require.NoError(t, err)

	c.Set(ctx, "a", []byte("1"))
	c.Set(ctx, "b", []byte("2"))

	_, ok := c.Get(ctx, "a")
	assert.False(t, ok)
	_, ok = c.Get(ctx, "b")
	assert.True(t, ok)
}

func TestNew(t *testing.T) {
	c, err := New(config.CacheConfig{Backend: "none"}, zap.NewNop())
	require.NoError(t, err)
	c.Set(context.Background(), "a", []byte("1"))
	_, ok := c.Get(context.Background(), "a")
	assert.False(t, ok)

	c, err = New(config.CacheConfig{Backend: "memory"}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, c)

	_, err = New(config.CacheConfig{Backend: "memcached"}, zap.NewNop())
	assert.Error(t, err)
}

func TestNewRedisFailsWithoutServer(t *testing.T) {
	_, err := NewRedis(config.CacheConfig{RedisAddr: "127.0.0.1:1"}, zap.NewNop())
	assert.Error(t, err)
}
