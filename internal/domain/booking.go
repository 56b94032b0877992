package domain

import (
	"fmt"
	"time"
)

type BookingStatus string

const (
	BookingStatusPending     BookingStatus = "pending"
	BookingStatusApproved    BookingStatus = "approved"
	BookingStatusRescheduled BookingStatus = "rescheduled"
	BookingStatusRejected    BookingStatus = "rejected"
)

// Booking is a test-drive appointment request.
type Booking struct {
	ID             string
	VehicleID      string
	VehicleName    string
	CustomerName   string
	Email          string
	Phone          string
	DriversLicense string
	Date           string
	Time           string
	Location       string
	Notes          string
	Status         BookingStatus
	CreatedAt      time.Time
}

func ParseBookingStatus(s string) (BookingStatus, error) {
	switch st := BookingStatus(s); st {
	case BookingStatusPending, BookingStatusApproved, BookingStatusRescheduled, BookingStatusRejected:
		return st, nil
	}
	return "", fmt.Errorf("%w: booking status %q", ErrInvalidStatus, s)
}
