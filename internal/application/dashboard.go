package application

import (
	"context"

	"autoelite/internal/domain"

	"golang.org/x/sync/errgroup"
)

// Dashboard gathers the back-office read-out.
func (s *DealershipService) Dashboard(ctx context.Context) (domain.InventoryStats, error) {
	var (
		vehicles []domain.Vehicle
		reqs     []domain.FinancingRequest
		bookings []domain.Booking
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { vehicles, err = s.vehicles.List(gctx); return })
	g.Go(func() (err error) { reqs, err = s.financing.List(gctx); return })
	g.Go(func() (err error) { bookings, err = s.bookings.List(gctx); return })
	if err := g.Wait(); err != nil {
		return domain.InventoryStats{}, err
	}
	return domain.ComputeInventoryStats(vehicles, reqs, bookings), nil
}
