// Package locker provides distributed locking for coordinating work
// across multiple service instances.
package locker

import (
	"context"
	"time"
)

// DistributedLocker coordinates mutually exclusive work across instances.
// Implementations must be safe for concurrent use.
//
// Typical usage:
//
//	acquired, err := locker.Acquire(ctx, "catalog-sync", 10*time.Minute)
//	if err != nil {
//	    return err
//	}
//	if !acquired {
//	    // Another instance holds the lock
//	    return nil
//	}
//	defer locker.Release(ctx, "catalog-sync")
type DistributedLocker interface {
	// Acquire attempts to acquire the lock identified by key.
	// Returns true if acquired, false if another instance holds it.
	// The lock expires after ttl if not released. For cooldown-style
	// locks (e.g. sync rate limiting), set ttl to the cooldown period
	// and never release.
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Release releases the lock identified by key.
	// Safe to call when this instance does not own the lock (no-op).
	Release(ctx context.Context, key string) error
}
