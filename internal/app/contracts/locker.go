package contracts

import (
	"context"
	"time"
)

// LockerService is a redis-backed keyed mutex. TryLock returns a token that
// must be presented back to Unlock so a lock lost to TTL expiry cannot release
// a successor's lock.
type LockerService interface {
	TryLock(ctx context.Context, key string, expiration time.Duration) (acquired bool, token string, err error)
	Unlock(ctx context.Context, key, token string) error
	Refresh(ctx context.Context, key, token string, expiration time.Duration) error
}
