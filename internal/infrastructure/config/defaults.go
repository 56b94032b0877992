package config

import "time"

const (
	DefaultHTTPPort        = "8080"
	DefaultShutdownTimeout = 10 * time.Second
	DefaultReadTimeout     = 10 * time.Second
	DefaultWorkerPoll      = 5 * time.Second
	DefaultPGMaxConns      = 5
	DefaultPGMinConns      = 1
	// DefaultMaxBodyBytes caps JSON request bodies.
	DefaultMaxBodyBytes = 1 << 20
	// DefaultPlansRetryElapsed bounds retries when fetching a lender rate sheet.
	DefaultPlansRetryElapsed = 5 * time.Second
	DefaultPlansCacheTTL     = 10 * time.Minute
	DefaultLimiterSweep      = time.Minute
	DefaultLimiterIdleTTL    = 5 * time.Minute
	// Redis keys
	IdempotencyKeyPrefix = "idem:"
	ViewBufferKey        = "vehicle_views"
)
