package ports

import (
	"context"
	"time"
)

// UnlockFunc is a function that releases a distributed lock.
type UnlockFunc func(ctx context.Context) error

// DistributedLocker claims a key for a bounded time across instances.
type DistributedLocker interface {
	// TryLock claims key for ttl. It returns ok=false without error when the
	// key is already held. The returned UnlockFunc releases the claim early.
	TryLock(ctx context.Context, key string, ttl time.Duration) (unlock UnlockFunc, ok bool, err error)
}
