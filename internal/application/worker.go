package application

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Worker is a background loop that runs until ctx is canceled.
type Worker interface {
	Start(ctx context.Context)
}

// FlushViews moves buffered page views into the vehicle store in one unit of
// work. It returns the number of vehicles updated. Views for vehicles that no
// longer exist are dropped.
func FlushViews(ctx context.Context, counter ViewCounter, vehicles VehicleRepo, uow UnitOfWork, log *zap.Logger) (int, error) {
	if log == nil {
		log = zap.NewNop()
	}
	counts, err := counter.Drain(ctx)
	if err != nil {
		return 0, fmt.Errorf("drain views: %w", err)
	}
	if len(counts) == 0 {
		return 0, nil
	}
	updated := 0
	err = uow.Do(ctx, func(ctx context.Context) error {
		for id, n := range counts {
			if err := vehicles.IncrementViews(ctx, id, n); err != nil {
				if errors.Is(err, ErrNotFound) {
					log.Debug("views.vehicle_gone", zap.String("id", id), zap.Int64("views", n))
					continue
				}
				return fmt.Errorf("increment views for %s: %w", id, err)
			}
			updated++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return updated, nil
}
