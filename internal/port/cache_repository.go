package port

import "context"

type CacheRepository interface {
	// SetIdempotency claims key, returns false if it is already claimed
	SetIdempotency(ctx context.Context, key string) (bool, error)

	// ReleaseIdempotency drops a claim (for rollback on failure)
	ReleaseIdempotency(ctx context.Context, key string) error
}
