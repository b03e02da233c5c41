package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"

	errs "github.com/amirhossein-jamali/sms-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/sms-ledger/internal/domain/port/core"
)

// KeyPrefix namespaces lock keys in a shared Redis
const KeyPrefix = "sms-ledger:lock:"

// Key returns the Redis key guarding name
func Key(name string) string {
	return KeyPrefix + name
}

// RedisLocker hands out leases backed by redislock, so a lock holds across instances
type RedisLocker struct {
	client *redislock.Client
	logger coreport.Logger
}

// NewRedisLocker creates a locker on top of a go-redis client
func NewRedisLocker(client redislock.RedisClient, logger coreport.Logger) *RedisLocker {
	return &RedisLocker{
		client: redislock.New(client),
		logger: logger,
	}
}

// Obtain tries once to take the lease. A held key yields errs.ErrLockNotObtained.
func (l *RedisLocker) Obtain(ctx context.Context, key string, ttl time.Duration) (coreport.Lock, error) {
	lock, err := l.client.Obtain(ctx, Key(key), ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, fmt.Errorf("%w: %s", errs.ErrLockNotObtained, key)
	}
	if err != nil {
		l.logger.Error("Failed to obtain redis lock", map[string]any{
			"key":   key,
			"error": err.Error(),
		})
		return nil, fmt.Errorf("obtain lock %s: %w", key, err)
	}

	l.logger.Debug("Redis lock obtained", map[string]any{
		"key": key,
		"ttl": ttl.String(),
	})
	return &redisLease{lock: lock, key: key}, nil
}

type redisLease struct {
	lock *redislock.Lock
	key  string
}

func (r *redisLease) Release(ctx context.Context) error {
	if err := r.lock.Release(ctx); err != nil {
		return fmt.Errorf("release lock %s: %w", r.key, err)
	}
	return nil
}

var _ coreport.Locker = (*RedisLocker)(nil)
