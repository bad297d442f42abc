package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// opLockTTL bounds how long a crashed process can leave the busy flag
// behind. Normal operations release well inside this window.
const opLockTTL = 30 * time.Second

// OperationLock implements ports.OperationLock using Redis SET NX.
// It is the busy flag that rejects externally-calling operations while
// another one is still in flight, including re-entrant calls made from
// inside a bridge transfer.
type OperationLock struct {
	client *goredis.Client
	key    string
}

// NewOperationLock creates a new Redis-backed operation lock.
func NewOperationLock(client *goredis.Client) *OperationLock {
	return &OperationLock{
		client: client,
		key:    "oplock:settlement",
	}
}

// Acquire attempts to take the busy flag. Returns false when another
// operation holds it.
func (l *OperationLock) Acquire(ctx context.Context) (bool, error) {
	result, err := l.client.SetArgs(ctx, l.key, 1, goredis.SetArgs{
		Mode: "NX",
		TTL:  opLockTTL,
	}).Result()
	if err != nil {
		if err == goredis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("redis oplock acquire: %w", err)
	}
	return result == "OK", nil
}

// Release clears the busy flag. Safe to call when the flag is absent.
func (l *OperationLock) Release(ctx context.Context) error {
	if err := l.client.Del(ctx, l.key).Err(); err != nil {
		return fmt.Errorf("redis oplock release: %w", err)
	}
	return nil
}
