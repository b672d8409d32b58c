package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBalanceCache_SetAndGet(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	cache := NewBalanceCache(client)
	ctx := context.Background()

	walletID := uuid.New()
	snapshot := []byte(`{"id":"` + walletID.String() + `","balance":"10.5000"}`)

	// Get before set => nil
	result, err := cache.Get(ctx, walletID)
	assert.NoError(t, err)
	assert.Nil(t, result)

	// Set
	err = cache.Set(ctx, walletID, snapshot, 5*time.Second)
	require.NoError(t, err)

	// Get after set
	result, err = cache.Get(ctx, walletID)
	require.NoError(t, err)
	assert.Equal(t, snapshot, result)
}

func TestBalanceCache_TTLExpiry(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	cache := NewBalanceCache(client)
	ctx := context.Background()

	walletID := uuid.New()

	err := cache.Set(ctx, walletID, []byte(`{"balance":"1.00"}`), 1*time.Second)
	require.NoError(t, err)

	// Fast-forward time in miniredis
	s.FastForward(2 * time.Second)

	result, err := cache.Get(ctx, walletID)
	assert.NoError(t, err)
	assert.Nil(t, result, "expired key should return nil")
}

func TestBalanceCache_Invalidate(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	cache := NewBalanceCache(client)
	ctx := context.Background()

	walletID := uuid.New()

	err := cache.Set(ctx, walletID, []byte(`{"balance":"42.0000"}`), time.Minute)
	require.NoError(t, err)

	err = cache.Invalidate(ctx, walletID)
	require.NoError(t, err)

	result, err := cache.Get(ctx, walletID)
	assert.NoError(t, err)
	assert.Nil(t, result)
}

func TestBalanceCache_InvalidateMissingKey(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	cache := NewBalanceCache(client)

	// DEL on a missing key is not an error
	err := cache.Invalidate(context.Background(), uuid.New())
	assert.NoError(t, err)
}

func TestBalanceCache_KeysAreScoped(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	cache := NewBalanceCache(client)
	ctx := context.Background()

	a := uuid.New()
	b := uuid.New()

	require.NoError(t, cache.Set(ctx, a, []byte("A"), time.Minute))
	require.NoError(t, cache.Set(ctx, b, []byte("B"), time.Minute))

	got, err := cache.Get(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, []byte("A"), got)

	require.NoError(t, cache.Invalidate(ctx, a))

	got, err = cache.Get(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, []byte("B"), got, "invalidating one wallet must not touch another")
}
