package application

import (
	"context"
	"fmt"

	"autoelite/internal/domain"

	"go.uber.org/zap"
)

// Showroom is a filtered inventory page with the facet values to filter by.
type Showroom struct {
	Vehicles  []domain.Vehicle
	Brands    []string
	Locations []string
}

type AdminInventory struct {
	Vehicles     []domain.Vehicle
	StatusCounts map[string]int
}

func (s *DealershipService) BrowseVehicles(ctx context.Context, f domain.VehicleFilter) (Showroom, error) {
	all, err := s.vehicles.List(ctx)
	if err != nil {
		return Showroom{}, err
	}
	return Showroom{
		Vehicles:  domain.FilterVehicles(all, f),
		Brands:    domain.Brands(all),
		Locations: domain.Locations(all),
	}, nil
}

func (s *DealershipService) FeaturedVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	all, err := s.vehicles.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.Featured(all, domain.FeaturedLimit), nil
}

func (s *DealershipService) CategoryCounts(ctx context.Context) (map[domain.VehicleCategory]int, error) {
	all, err := s.vehicles.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.CategoryCounts(all), nil
}

// GetVehicle returns a vehicle and records one page view. A failed view
// write is logged, not returned.
func (s *DealershipService) GetVehicle(ctx context.Context, id string) (domain.Vehicle, error) {
	v, err := s.vehicles.Get(ctx, id)
	if err != nil {
		return domain.Vehicle{}, err
	}
	if err := s.recordView(ctx, id); err != nil {
		s.log.Warn("vehicle.view_failed", zap.String("id", id), zap.Error(err))
	}
	return v, nil
}

func (s *DealershipService) recordView(ctx context.Context, id string) error {
	if s.views != nil {
		return s.views.Incr(ctx, id)
	}
	return s.vehicles.IncrementViews(ctx, id, 1)
}

func (s *DealershipService) SimilarVehicles(ctx context.Context, id string) ([]domain.Vehicle, error) {
	v, err := s.vehicles.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	all, err := s.vehicles.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.Similar(all, v, domain.SimilarLimit), nil
}

func (s *DealershipService) AdminVehicles(ctx context.Context, q domain.AdminSearch) (AdminInventory, error) {
	all, err := s.vehicles.List(ctx)
	if err != nil {
		return AdminInventory{}, err
	}
	return AdminInventory{
		Vehicles:     domain.SearchVehicles(all, q),
		StatusCounts: domain.StatusCounts(all),
	}, nil
}

// SaveVehicle creates a vehicle when id is empty, otherwise replaces the
// editable fields of an existing one. Views, reviews and the creation time
// of an existing vehicle are kept.
func (s *DealershipService) SaveVehicle(ctx context.Context, id string, in domain.Vehicle) (domain.Vehicle, error) {
	if in.Status != "" {
		if _, err := domain.ParseVehicleStatus(string(in.Status)); err != nil {
			return domain.Vehicle{}, fmt.Errorf("%w: %w", ErrBadRequest, err)
		}
	}
	now := s.clock.Now()
	if id == "" {
		in.ID = s.idgen.NewID()
		in.Views = 0
		in.Reviews = nil
		in.CreatedAt = now
		v := in.Sanitize(now)
		if err := s.vehicles.Create(ctx, v); err != nil {
			return domain.Vehicle{}, err
		}
		s.log.Info("vehicle.created", zap.String("id", v.ID), zap.String("name", v.Name))
		return v, nil
	}

	existing, err := s.vehicles.Get(ctx, id)
	if err != nil {
		return domain.Vehicle{}, err
	}
	in.ID = id
	in.Views = existing.Views
	in.Reviews = existing.Reviews
	in.CreatedAt = existing.CreatedAt
	v := in.Sanitize(now)
	if err := s.vehicles.Update(ctx, v); err != nil {
		return domain.Vehicle{}, err
	}
	s.log.Info("vehicle.updated", zap.String("id", v.ID))
	return v, nil
}

func (s *DealershipService) DeleteVehicle(ctx context.Context, id string) error {
	if err := s.vehicles.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("vehicle.deleted", zap.String("id", id))
	return nil
}
