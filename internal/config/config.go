package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Common
	Env      string
	LogLevel string
	// API
	Port        string
	Storage     string
	DatabaseURL string
	AdminAPIKey string
	// Public submission rate limit, per client address
	RateLimitRPS   float64
	RateLimitBurst int
	// TrustProxy keys the limiter on the proxy-appended X-Forwarded-For hop
	TrustProxy bool
	// Finance plans
	PlansSource    string
	PlansFile      string
	PlansURL       string
	PlansToken     string
	RequestTimeout time.Duration
	// Worker
	WorkerPoll time.Duration
	// Redis (idempotency, view buffer)
	IdempotencyBackend string
	ViewCounter        string
	RedisAddr          string
	RedisPassword      string
	RedisDB            int
	RedisTTL           time.Duration
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoiDef(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func atofDef(s string, def float64) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return f
}

func boolDef(s string, def bool) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return def
	}
	return b
}

func millis(key string, def int) time.Duration {
	return time.Duration(atoiDef(getEnv(key, ""), def)) * time.Millisecond
}

// Load reads environment variables and applies defaults.
func Load() Config {
	return Config{
		Env:                getEnv("ENV", "local"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		Port:               getEnv("PORT", "8080"),
		Storage:            getEnv("STORAGE", "memory"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		AdminAPIKey:        getEnv("ADMIN_API_KEY", ""),
		RateLimitRPS:       atofDef(getEnv("RATE_LIMIT_RPS", ""), 2),
		RateLimitBurst:     atoiDef(getEnv("RATE_LIMIT_BURST", ""), 5),
		TrustProxy:         boolDef(getEnv("TRUST_PROXY", ""), false),
		PlansSource:        getEnv("PLANS_SOURCE", "static"),
		PlansFile:          getEnv("PLANS_FILE", "plans.yaml"),
		PlansURL:           getEnv("PLANS_URL", ""),
		PlansToken:         getEnv("PLANS_TOKEN", ""),
		RequestTimeout:     millis("REQUEST_TIMEOUT_MS", 3000),
		WorkerPoll:         millis("WORKER_POLL_MS", 5000),
		IdempotencyBackend: getEnv("IDEMPOTENCY_BACKEND", "redis"),
		ViewCounter:        getEnv("VIEW_COUNTER", "direct"),
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		RedisDB:            atoiDef(getEnv("REDIS_DB", "0"), 0),
		RedisTTL:           millis("IDEMPOTENCY_TTL_MS", 86400000),
	}
}
