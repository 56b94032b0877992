package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"autoelite/internal/application"
	"autoelite/internal/config"
	infraconfig "autoelite/internal/infrastructure/config"
	"autoelite/internal/infrastructure/httpx"
	"autoelite/internal/infrastructure/logx"
	"autoelite/internal/infrastructure/memstore"
	"autoelite/internal/infrastructure/pg"
	"autoelite/internal/infrastructure/provider"
	redisstore "autoelite/internal/infrastructure/redis"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var ErrMissingDBURL = errors.New("DATABASE_URL is required for STORAGE=pg")

// Stores are the repositories of one storage backend.
type Stores struct {
	Vehicles  application.VehicleRepo
	Bookings  application.BookingRepo
	Financing application.FinancingRepo
	Settings  application.SettingsRepo
	UoW       application.UnitOfWork
	// Ping is nil for backends without a remote dependency.
	Ping func(context.Context) error
}

func ProvideLogger() *zap.Logger { return logx.L() }

func ProvideConfig() config.Config { return config.Load() }

func ProvideDB(ctx context.Context, log *zap.Logger, cfg config.Config) (*pg.DB, func(), error) {
	if cfg.DatabaseURL == "" {
		return nil, func() {}, ErrMissingDBURL
	}
	db, err := pg.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, func() {}, err
	}
	if err := pg.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, func() {}, err
	}
	cleanup := func() {
		log.Info("closing pg")
		db.Close()
	}
	return db, cleanup, nil
}

// ProvideStores builds the repositories selected by STORAGE (pg or memory).
func ProvideStores(ctx context.Context, log *zap.Logger, cfg config.Config) (Stores, func(), error) {
	switch cfg.Storage {
	case "pg":
		db, cleanup, err := ProvideDB(ctx, log, cfg)
		if err != nil {
			return Stores{}, func() {}, err
		}
		return Stores{
			Vehicles:  pg.NewVehicleRepo(db),
			Bookings:  pg.NewBookingRepo(db),
			Financing: pg.NewFinancingRepo(db),
			Settings:  pg.NewSettingsRepo(db),
			UoW:       pg.NewUnitOfWork(db),
			Ping:      db.Ping,
		}, cleanup, nil
	case "memory":
		log.Warn("using in-memory storage; data is lost on restart")
		return Stores{
			Vehicles:  memstore.NewVehicleRepo(),
			Bookings:  memstore.NewBookingRepo(),
			Financing: memstore.NewFinancingRepo(),
			Settings:  memstore.NewSettingsRepo(),
			UoW:       application.NoopUoW{},
		}, func() {}, nil
	default:
		return Stores{}, func() {}, fmt.Errorf("unsupported STORAGE=%q", cfg.Storage)
	}
}

func needsRedis(cfg config.Config) bool {
	return cfg.IdempotencyBackend == "redis" || cfg.ViewCounter == "redis"
}

// ProvideRedisClient returns a nil client when no component is configured for Redis.
func ProvideRedisClient(ctx context.Context, cfg config.Config) (*redis.Client, func(), error) {
	if !needsRedis(cfg) {
		return nil, func() {}, nil
	}
	client, err := redisstore.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return nil, func() {}, err
	}
	return client, func() { _ = client.Close() }, nil
}

func ProvideIdempotency(client *redis.Client, cfg config.Config) application.IdempotencyStore {
	if cfg.IdempotencyBackend != "redis" || client == nil {
		return application.NoopIdempotency{}
	}
	return redisstore.New(client, cfg.RedisTTL)
}

// ProvideViewCounter returns nil for VIEW_COUNTER=direct, where each view
// is written straight to the store.
func ProvideViewCounter(client *redis.Client, cfg config.Config) (application.ViewCounter, error) {
	switch cfg.ViewCounter {
	case "", "direct":
		return nil, nil
	case "memory":
		return memstore.NewViewCounter(), nil
	case "redis":
		if client == nil {
			return nil, errors.New("VIEW_COUNTER=redis needs a redis client")
		}
		return redisstore.NewViewCounter(client), nil
	default:
		return nil, fmt.Errorf("unsupported VIEW_COUNTER=%q", cfg.ViewCounter)
	}
}

// ProvidePlanProvider selects the rate sheet source from PLANS_SOURCE.
func ProvidePlanProvider(cfg config.Config, log *zap.Logger) (application.PlanProvider, error) {
	switch cfg.PlansSource {
	case "", "static":
		return provider.Static{}, nil
	case "file":
		return provider.File{Path: cfg.PlansFile}, nil
	case "http":
		lender := &provider.Lender{
			BaseURL: cfg.PlansURL,
			Client: &httpx.Client{
				HTTP:       &http.Client{Timeout: cfg.RequestTimeout},
				Token:      cfg.PlansToken,
				MaxElapsed: infraconfig.DefaultPlansRetryElapsed,
			},
			Log: log,
		}
		return &provider.Cached{
			Source: &provider.Fallback{Primary: lender, Secondary: provider.Static{}, Log: log},
			TTL:    infraconfig.DefaultPlansCacheTTL,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported PLANS_SOURCE=%q", cfg.PlansSource)
	}
}

func ProvideDealershipService(
	st Stores,
	plans application.PlanProvider,
	idem application.IdempotencyStore,
	views application.ViewCounter,
	log *zap.Logger,
) *application.DealershipService {
	opts := []application.Option{application.WithLogger(log)}
	if views != nil {
		opts = append(opts, application.WithViewCounter(views))
	}
	return application.NewDealershipService(st.Vehicles, st.Bookings, st.Financing, st.Settings, plans, idem, opts...)
}
