package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"autoelite/internal/domain"

	"go.uber.org/zap"
)

type BookingSubmission struct {
	VehicleID      string
	CustomerName   string
	Email          string
	Phone          string
	DriversLicense string
	Date           string
	Time           string
	Location       string
	Notes          string
}

// SubmitBooking stores a pending test-drive request. The vehicle name is
// taken from inventory when the vehicle exists.
func (s *DealershipService) SubmitBooking(ctx context.Context, in BookingSubmission, idem *string) (string, error) {
	if strings.TrimSpace(in.VehicleID) == "" {
		return "", badRequest("vehicle id is required")
	}
	if strings.TrimSpace(in.CustomerName) == "" || strings.TrimSpace(in.Email) == "" {
		return "", badRequest("customer name and email are required")
	}
	var vehicleName string
	v, err := s.vehicles.Get(ctx, in.VehicleID)
	switch {
	case err == nil:
		vehicleName = v.Name
	case errors.Is(err, ErrNotFound):
	default:
		return "", err
	}
	if err := s.reserve(ctx, "booking", idem); err != nil {
		return "", err
	}
	location := in.Location
	if location == "" {
		location = domain.DefaultLocation
	}
	b := domain.Booking{
		ID:             s.idgen.NewID(),
		VehicleID:      in.VehicleID,
		VehicleName:    vehicleName,
		CustomerName:   strings.TrimSpace(in.CustomerName),
		Email:          strings.TrimSpace(in.Email),
		Phone:          in.Phone,
		DriversLicense: in.DriversLicense,
		Date:           in.Date,
		Time:           in.Time,
		Location:       location,
		Notes:          in.Notes,
		Status:         domain.BookingStatusPending,
		CreatedAt:      s.clock.Now(),
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		return "", err
	}
	s.log.Info("booking.created", zap.String("id", b.ID), zap.String("vehicle_id", b.VehicleID))
	return b.ID, nil
}

func (s *DealershipService) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	return s.bookings.List(ctx)
}

func (s *DealershipService) UpdateBookingStatus(ctx context.Context, id, status string) error {
	st, err := domain.ParseBookingStatus(status)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	return s.bookings.UpdateStatus(ctx, id, st)
}
