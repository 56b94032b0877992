package bootstrap

import (
	"context"
	"errors"
	"net/http"

	"autoelite/internal/application"
	"autoelite/internal/config"
	httpserver "autoelite/internal/infrastructure/http"
	"autoelite/internal/infrastructure/worker"

	"go.uber.org/zap"
)

var ErrNoViewBuffer = errors.New("worker needs VIEW_COUNTER=redis")

// API is the assembled HTTP process. Flusher is set only when page views
// are buffered in process memory and must be drained by the API itself.
type API struct {
	Config  config.Config
	Handler http.Handler
	Flusher application.Worker
}

type cleanups []func()

func (c cleanups) run() {
	for i := len(c) - 1; i >= 0; i-- {
		c[i]()
	}
}

// InitAPI wires the HTTP handler from configuration.
func InitAPI(ctx context.Context) (*API, func(), error) {
	log := ProvideLogger()
	cfg := ProvideConfig()
	return BuildAPI(ctx, cfg, log)
}

func BuildAPI(ctx context.Context, cfg config.Config, log *zap.Logger) (*API, func(), error) {
	var cl cleanups
	fail := func(err error) (*API, func(), error) {
		cl.run()
		return nil, func() {}, err
	}

	stores, closeStores, err := ProvideStores(ctx, log, cfg)
	if err != nil {
		return fail(err)
	}
	cl = append(cl, closeStores)

	client, closeRedis, err := ProvideRedisClient(ctx, cfg)
	if err != nil {
		return fail(err)
	}
	cl = append(cl, closeRedis)

	views, err := ProvideViewCounter(client, cfg)
	if err != nil {
		return fail(err)
	}
	plans, err := ProvidePlanProvider(cfg, log)
	if err != nil {
		return fail(err)
	}
	idem := ProvideIdempotency(client, cfg)
	svc := ProvideDealershipService(stores, plans, idem, views, log)

	srv := httpserver.NewServer(svc)
	if stores.Ping != nil {
		srv.SetReadyCheck(stores.Ping)
	}
	router := httpserver.NewRouter(srv, httpserver.RouterConfig{
		AdminKey:   cfg.AdminAPIKey,
		RateRPS:    cfg.RateLimitRPS,
		RateBurst:  cfg.RateLimitBurst,
		TrustProxy: cfg.TrustProxy,
	})
	cl = append(cl, router.Stop)
	app := &API{Config: cfg, Handler: router}
	if cfg.ViewCounter == "memory" {
		app.Flusher = &worker.ViewFlusher{
			Views:     views,
			Vehicles:  stores.Vehicles,
			UoW:       stores.UoW,
			PollEvery: cfg.WorkerPoll,
			Log:       log,
		}
	}
	return app, cl.run, nil
}

// InitWorker wires the standalone view flusher.
func InitWorker(ctx context.Context) (application.Worker, func(), error) {
	log := ProvideLogger()
	cfg := ProvideConfig()
	return BuildWorker(ctx, cfg, log)
}

func BuildWorker(ctx context.Context, cfg config.Config, log *zap.Logger) (application.Worker, func(), error) {
	if cfg.ViewCounter != "redis" {
		return nil, func() {}, ErrNoViewBuffer
	}
	if cfg.Storage == "memory" {
		log.Warn("worker is using in-memory storage; flushed views are not visible to the API")
	}
	var cl cleanups
	stores, closeStores, err := ProvideStores(ctx, log, cfg)
	if err != nil {
		return nil, func() {}, err
	}
	cl = append(cl, closeStores)

	client, closeRedis, err := ProvideRedisClient(ctx, cfg)
	if err != nil {
		cl.run()
		return nil, func() {}, err
	}
	cl = append(cl, closeRedis)

	views, err := ProvideViewCounter(client, cfg)
	if err != nil {
		cl.run()
		return nil, func() {}, err
	}
	return &worker.ViewFlusher{
		Views:     views,
		Vehicles:  stores.Vehicles,
		UoW:       stores.UoW,
		PollEvery: cfg.WorkerPoll,
		Log:       log,
	}, cl.run, nil
}
