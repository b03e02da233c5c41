package core

import (
	"context"
	"time"
)

// Lock is a held mutual-exclusion lease
type Lock interface {
	Release(ctx context.Context) error
}

// Locker hands out named leases that expire after ttl.
// Implementations return errs.ErrLockNotObtained when the key is already held.
type Locker interface {
	Obtain(ctx context.Context, key string, ttl time.Duration) (Lock, error)
}
