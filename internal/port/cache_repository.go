package port

import "context"

type CacheRepository interface {
	// SetIdempotency claims an idempotency key, returns false if already taken
	SetIdempotency(ctx context.Context, key string) (bool, error)

	// ReleaseIdempotency frees a claimed key (for rollback on failure)
	ReleaseIdempotency(ctx context.Context, key string) error
}
