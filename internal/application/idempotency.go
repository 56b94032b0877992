package application

import "context"

// IdempotencyStore deduplicates customer submissions for a limited time.
type IdempotencyStore interface {
	// TryReserve claims key. It reports false when the key was already claimed.
	TryReserve(ctx context.Context, key string) (bool, error)
}

// NoopIdempotency accepts every key. Used when no Redis is configured.
type NoopIdempotency struct{}

func (NoopIdempotency) TryReserve(context.Context, string) (bool, error) { return true, nil }
