package domain

import (
	"fmt"
	"strings"
	"time"
)

type VehicleCategory string

const (
	CategoryCar   VehicleCategory = "CAR"
	CategoryBike  VehicleCategory = "BIKE"
	CategoryTruck VehicleCategory = "TRUCK"
	CategoryBus   VehicleCategory = "BUS"
)

// Categories lists vehicle categories in display order.
var Categories = []VehicleCategory{CategoryCar, CategoryBike, CategoryTruck, CategoryBus}

type VehicleCondition string

const (
	ConditionNew       VehicleCondition = "NEW"
	ConditionUsed      VehicleCondition = "USED"
	ConditionCertified VehicleCondition = "CERTIFIED"
)

type VehicleStatus string

const (
	VehicleStatusAvailable VehicleStatus = "available"
	VehicleStatusSold      VehicleStatus = "sold"
	VehicleStatusPending   VehicleStatus = "pending"
)

const (
	DefaultFuelType     = "Gasoline"
	DefaultTransmission = "Automatic"
	DefaultLocation     = "Main Showroom"
)

type VehicleSpecs struct {
	Engine        string
	Transmission  string
	Drivetrain    string
	ExteriorColor string
	InteriorColor string
}

type Review struct {
	ID       string
	UserName string
	Rating   float64
	Comment  string
	Date     string
}

type Vehicle struct {
	ID           string
	Name         string
	Brand        string
	Model        string
	Year         int
	Price        float64
	Category     VehicleCategory
	Condition    VehicleCondition
	FuelType     string
	Transmission string
	BodyType     string
	Location     string
	Mileage      float64
	Description  string
	Images       []string
	Specs        VehicleSpecs
	Status       VehicleStatus
	IsFeatured   bool
	IsVerified   bool
	Views        int64
	Reviews      []Review
	CreatedAt    time.Time
}

// VehicleName is the display name stored with every vehicle.
func VehicleName(year int, brand, model string) string {
	return strings.TrimSpace(fmt.Sprintf("%d %s %s", year, brand, model))
}

// Sanitize fills every empty field with its default and recomputes the name.
func (v Vehicle) Sanitize(now time.Time) Vehicle {
	if v.Year == 0 {
		v.Year = now.Year()
	}
	if v.Category == "" {
		v.Category = CategoryCar
	}
	if v.Condition == "" {
		v.Condition = ConditionNew
	}
	if v.FuelType == "" {
		v.FuelType = DefaultFuelType
	}
	if v.Transmission == "" {
		v.Transmission = DefaultTransmission
	}
	if v.Location == "" {
		v.Location = DefaultLocation
	}
	if v.Status == "" {
		v.Status = VehicleStatusAvailable
	}
	if v.Images == nil {
		v.Images = []string{}
	}
	if v.Reviews == nil {
		v.Reviews = []Review{}
	}
	v.Name = VehicleName(v.Year, v.Brand, v.Model)
	return v
}

func ParseVehicleStatus(s string) (VehicleStatus, error) {
	switch st := VehicleStatus(s); st {
	case VehicleStatusAvailable, VehicleStatusSold, VehicleStatusPending:
		return st, nil
	}
	return "", fmt.Errorf("%w: vehicle status %q", ErrInvalidStatus, s)
}
