package application

import (
	"context"

	"autoelite/internal/domain"
)

// VehicleRepo stores inventory. List returns newest first.
type VehicleRepo interface {
	List(ctx context.Context) ([]domain.Vehicle, error)
	Get(ctx context.Context, id string) (domain.Vehicle, error)
	Create(ctx context.Context, v domain.Vehicle) error
	Update(ctx context.Context, v domain.Vehicle) error
	Delete(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string, n int64) error
}

type BookingRepo interface {
	Create(ctx context.Context, b domain.Booking) error
	List(ctx context.Context) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error
}

type FinancingRepo interface {
	Create(ctx context.Context, r domain.FinancingRequest) error
	List(ctx context.Context) ([]domain.FinancingRequest, error)
	UpdateStatus(ctx context.Context, id string, status domain.FinancingStatus) error
}

type SettingsRepo interface {
	Get(ctx context.Context) (domain.SiteSettings, error)
	Save(ctx context.Context, s domain.SiteSettings) error
}

// PlanProvider supplies the current financing rate sheet.
type PlanProvider interface {
	Plans(ctx context.Context) ([]domain.FinancePlan, error)
}

// ViewCounter buffers vehicle page views outside the document store.
type ViewCounter interface {
	Incr(ctx context.Context, vehicleID string) error
	// Drain returns and clears the buffered counts.
	Drain(ctx context.Context) (map[string]int64, error)
}
