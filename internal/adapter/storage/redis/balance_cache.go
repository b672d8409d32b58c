package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// BalanceCache implements ports.BalanceCache using Redis. Cached snapshots
// are advisory only; the database row remains the source of truth and every
// balance mutation invalidates the corresponding key.
type BalanceCache struct {
	client *goredis.Client
	prefix string
}

// NewBalanceCache creates a new Redis-backed balance cache.
func NewBalanceCache(client *goredis.Client) *BalanceCache {
	return &BalanceCache{
		client: client,
		prefix: "wallet:",
	}
}

// Get retrieves a cached wallet snapshot.
// Returns nil, nil if the key does not exist.
func (c *BalanceCache) Get(ctx context.Context, walletID uuid.UUID) ([]byte, error) {
	val, err := c.client.Get(ctx, c.prefix+walletID.String()).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis balance get: %w", err)
	}
	return val, nil
}

// Set stores a wallet snapshot with TTL.
func (c *BalanceCache) Set(ctx context.Context, walletID uuid.UUID, snapshot []byte, ttl time.Duration) error {
	err := c.client.Set(ctx, c.prefix+walletID.String(), snapshot, ttl).Err()
	if err != nil {
		return fmt.Errorf("redis balance set: %w", err)
	}
	return nil
}

// Invalidate removes a cached wallet snapshot after a balance mutation.
func (c *BalanceCache) Invalidate(ctx context.Context, walletID uuid.UUID) error {
	err := c.client.Del(ctx, c.prefix+walletID.String()).Err()
	if err != nil {
		return fmt.Errorf("redis balance invalidate: %w", err)
	}
	return nil
}
