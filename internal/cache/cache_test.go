package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestCache(t *testing.T, prefix string) (*Cache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return New(client, prefix, time.Minute), mr
}

type entry struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestCache_GetMiss(t *testing.T) {
	c, _ := setupTestCache(t, "test:")

	var got entry
	found, err := c.Get(context.Background(), "missing", &got)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, uint64(1), c.Stats().Misses)
}

func TestCache_SetThenGet(t *testing.T) {
	c, mr := setupTestCache(t, "test:")
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", entry{Name: "a", Count: 2}))
	assert.True(t, mr.Exists("test:k"), "key should be stored with the prefix")

	var got entry
	found, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, entry{Name: "a", Count: 2}, got)

	stats := c.Stats()
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, uint64(1), stats.Sets)
	assert.Equal(t, float64(100), stats.HitRate)
}

func TestCache_TTLExpires(t *testing.T) {
	c, mr := setupTestCache(t, "test:")
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", entry{Name: "a"}))
	mr.FastForward(2 * time.Minute)

	var got entry
	found, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCache_Delete(t *testing.T) {
	c, mr := setupTestCache(t, "test:")
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", entry{}))
	require.NoError(t, c.Set(ctx, "b", entry{}))
	require.NoError(t, c.Delete(ctx, "a", "b"))

	assert.False(t, mr.Exists("test:a"))
	assert.False(t, mr.Exists("test:b"))
	assert.Equal(t, uint64(2), c.Stats().Deletes)
	assert.NoError(t, c.Delete(ctx))
}

func TestCache_CorruptValue(t *testing.T) {
	c, mr := setupTestCache(t, "test:")
	require.NoError(t, mr.Set("test:k", "not json"))

	var got entry
	found, err := c.Get(context.Background(), "k", &got)
	assert.Error(t, err)
	assert.False(t, found)
	assert.Equal(t, uint64(1), c.Stats().Errors)
}

func TestNewClient_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewClient(context.Background(), addr)
	assert.Error(t, err)
}

func TestCache_GenerationAndBump(t *testing.T) {
	c, mr := setupTestCache(t, "test:")
	ctx := context.Background()

	gen, err := c.Generation(ctx, "gen")
	require.NoError(t, err)
	assert.Equal(t, int64(0), gen, "an unset counter reads as zero")

	for want := int64(1); want <= 2; want++ {
		got, err := c.Bump(ctx, "gen")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	gen, err = c.Generation(ctx, "gen")
	require.NoError(t, err)
	assert.Equal(t, int64(2), gen)
	assert.Equal(t, time.Duration(0), mr.TTL("test:gen"), "the counter never expires")

	mr.SetError("server down")
	_, err = c.Generation(ctx, "gen")
	assert.Error(t, err)
	_, err = c.Bump(ctx, "gen")
	assert.Error(t, err)
}
