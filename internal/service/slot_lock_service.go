package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrLockNotAcquired is returned when another booking for the same
// practitioner currently holds the critical section.
var ErrLockNotAcquired = errors.New("practitioner booking lock not acquired")

// SlotLocker guards the conflict-check-then-insert critical section of a
// booking. Without it two concurrent creates can both pass the conflict
// check before either row is written.
type SlotLocker interface {
	WithPractitionerLock(ctx context.Context, practitionerID uuid.UUID, fn func(ctx context.Context) error) error
}

type redisSlotLocker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSlotLocker creates a locker that uses a per-practitioner Redis key
func NewRedisSlotLocker(client *redis.Client, ttl time.Duration) SlotLocker {
	return &redisSlotLocker{
		client: client,
		ttl:    ttl,
	}
}

func (l *redisSlotLocker) WithPractitionerLock(ctx context.Context, practitionerID uuid.UUID, fn func(ctx context.Context) error) error {
	key := fmt.Sprintf("lock:practitioner:%s", practitionerID.String())
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return fmt.Errorf("acquire practitioner lock: %w", err)
	}
	if !ok {
		return ErrLockNotAcquired
	}

	defer func() {
		_ = l.release(ctx, key, token)
	}()

	ctxWithTimeout, cancel := context.WithTimeout(ctx, l.ttl)
	defer cancel()

	return fn(ctxWithTimeout)
}

// unlockScript deletes the key only when we still own it, so an expired
// lock taken over by another request is never released from here.
var unlockScript = redis.NewScript(`
local val = redis.call("GET", KEYS[1])
if val == ARGV[1] then
  return redis.call("DEL", KEYS[1])
else
  return 0
end
`)

func (l *redisSlotLocker) release(ctx context.Context, key, token string) error {
	_, err := unlockScript.Run(ctx, l.client, []string{key}, token).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("release practitioner lock: %w", err)
	}
	return nil
}
