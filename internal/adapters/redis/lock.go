package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	backend "github.com/redis/go-redis/v9"

	"github.com/aretw0/parley/pkg/ports"
)

// unlockScript deletes the lock key only if it still holds our token, so a
// lock that expired and was re-acquired by someone else is never released
// by the previous holder.
const unlockScript = `
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`

// Locker implements ports.DistributedLocker with SET NX + TTL.
type Locker struct {
	client *backend.Client
	prefix string
}

// NewLocker creates a distributed locker on an existing client.
func NewLocker(client *backend.Client, prefix string) *Locker {
	if prefix == "" {
		prefix = "parley:"
	}
	return &Locker{
		client: client,
		prefix: prefix,
	}
}

func (l *Locker) key(name string) string {
	return l.prefix + "lock:" + name
}

// Lock blocks until the lock is acquired or ctx is canceled, polling with
// a short backoff. The token guards against releasing someone else's lock.
func (l *Locker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	token := uuid.NewString()
	lockKey := l.key(key)

	for {
		ok, err := l.client.SetNX(ctx, lockKey, token, ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire lock: %w", err)
		}
		if ok {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(50 * time.Millisecond):
		}
	}

	unlock := func(ctx context.Context) error {
		if err := l.client.Eval(ctx, unlockScript, []string{lockKey}, token).Err(); err != nil && err != backend.Nil {
			return fmt.Errorf("failed to release lock: %w", err)
		}
		return nil
	}
	return unlock, nil
}
