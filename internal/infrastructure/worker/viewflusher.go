package worker

import (
	"context"
	"time"

	"autoelite/internal/application"
	infraconfig "autoelite/internal/infrastructure/config"

	"go.uber.org/zap"
)

var _ application.Worker = (*ViewFlusher)(nil)

// ViewFlusher periodically moves buffered page views into the vehicle
// store. On shutdown it flushes once more so buffered views survive a
// clean stop.
type ViewFlusher struct {
	Views    application.ViewCounter
	Vehicles application.VehicleRepo
	UoW      application.UnitOfWork

	PollEvery    time.Duration
	FinalTimeout time.Duration
	Log          *zap.Logger
}

func (w *ViewFlusher) Start(ctx context.Context) {
	log := w.Log
	if log == nil {
		log = zap.NewNop()
	}
	if w.PollEvery <= 0 {
		w.PollEvery = infraconfig.DefaultWorkerPoll
	}
	if w.FinalTimeout <= 0 {
		w.FinalTimeout = 5 * time.Second
	}
	if w.UoW == nil {
		w.UoW = application.NoopUoW{}
	}

	t := time.NewTicker(w.PollEvery)
	defer t.Stop()

	log.Info("view_flusher_started", zap.Duration("poll_every", w.PollEvery))
	for {
		select {
		case <-ctx.Done():
			final, cancel := context.WithTimeout(context.WithoutCancel(ctx), w.FinalTimeout)
			w.tick(final, log)
			cancel()
			log.Info("view_flusher_stopped")
			return
		case <-t.C:
			w.tick(ctx, log)
		}
	}
}

func (w *ViewFlusher) tick(ctx context.Context, log *zap.Logger) {
	n, err := application.FlushViews(ctx, w.Views, w.Vehicles, w.UoW, log)
	if err != nil {
		log.Warn("flush_failed", zap.Error(err))
		return
	}
	if n > 0 {
		log.Info("flush_done", zap.Int("vehicles", n))
	}
}
