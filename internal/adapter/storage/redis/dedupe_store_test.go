package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDedupeStore_MarkIfFirst_NewDigest(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	store := NewDedupeStore(client)
	ctx := context.Background()

	first, err := store.MarkIfFirst(ctx, "digest-abc", 48*time.Hour)
	require.NoError(t, err)
	assert.True(t, first, "unseen digest should return true")
}

func TestDedupeStore_MarkIfFirst_Redelivery(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	store := NewDedupeStore(client)
	ctx := context.Background()

	first, err := store.MarkIfFirst(ctx, "digest-xyz", 48*time.Hour)
	require.NoError(t, err)
	assert.True(t, first)

	first, err = store.MarkIfFirst(ctx, "digest-xyz", 48*time.Hour)
	require.NoError(t, err)
	assert.False(t, first, "redelivered digest should return false")
}

func TestDedupeStore_MarkIfFirst_ExpiryReopensWindow(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	store := NewDedupeStore(client)
	ctx := context.Background()

	first, err := store.MarkIfFirst(ctx, "digest-ttl", time.Minute)
	require.NoError(t, err)
	assert.True(t, first)

	s.FastForward(2 * time.Minute)

	first, err = store.MarkIfFirst(ctx, "digest-ttl", time.Minute)
	require.NoError(t, err)
	assert.True(t, first, "expired digest counts as unseen again")
}

func TestDedupeStore_MarkIfFirst_DistinctDigests(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	store := NewDedupeStore(client)
	ctx := context.Background()

	a, err := store.MarkIfFirst(ctx, "digest-a", time.Hour)
	require.NoError(t, err)
	b, err := store.MarkIfFirst(ctx, "digest-b", time.Hour)
	require.NoError(t, err)
	assert.True(t, a)
	assert.True(t, b)
}
