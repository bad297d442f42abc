package redis

import (
	"context"
	"fmt"
	"strings"

	goredis "github.com/redis/go-redis/v9"
)

// PayerCounter implements ports.PayerCounter using Redis INCR. The
// per-payer payment counts feed reporting only; losing them never
// blocks a settlement.
type PayerCounter struct {
	client *goredis.Client
	prefix string
}

// NewPayerCounter creates a new Redis-backed payer counter.
func NewPayerCounter(client *goredis.Client) *PayerCounter {
	return &PayerCounter{
		client: client,
		prefix: "payer:count:",
	}
}

// Increment bumps the payer's settled-payment count and returns the
// new value.
func (c *PayerCounter) Increment(ctx context.Context, payer string) (int64, error) {
	key := c.prefix + strings.ToLower(payer)
	count, err := c.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("redis payer incr: %w", err)
	}
	return count, nil
}
