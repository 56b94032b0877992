package httpserver

import (
	"time"

	"autoelite/internal/application"
	"autoelite/internal/domain"
)

type loanQuoteDTO struct {
	Principal             float64 `json:"principal"`
	AnnualRatePercent     float64 `json:"annualRatePercent"`
	TermMonths            int     `json:"termMonths"`
	MonthlyPayment        float64 `json:"monthlyPayment"`
	MonthlyPaymentRounded int64   `json:"monthlyPaymentRounded"`
	TotalPayment          float64 `json:"totalPayment"`
	TotalInterest         float64 `json:"totalInterest"`
}

func toLoanQuote(q domain.LoanQuote) loanQuoteDTO {
	return loanQuoteDTO{
		Principal:             q.Principal,
		AnnualRatePercent:     q.AnnualRatePercent,
		TermMonths:            q.TermMonths,
		MonthlyPayment:        q.MonthlyPayment,
		MonthlyPaymentRounded: q.RoundedMonthly(),
		TotalPayment:          q.TotalPayment,
		TotalInterest:         q.TotalInterest,
	}
}

type planQuoteDTO struct {
	Plan  domain.FinancePlan `json:"plan"`
	Quote loanQuoteDTO       `json:"quote"`
}

func toPlanQuote(pq domain.PlanQuote) planQuoteDTO {
	return planQuoteDTO{Plan: pq.Plan, Quote: toLoanQuote(pq.Quote)}
}

type planComparisonDTO struct {
	Price          float64        `json:"price"`
	DownPayment    float64        `json:"downPayment"`
	LoanAmount     float64        `json:"loanAmount"`
	DownPaymentPct *float64       `json:"downPaymentPct"`
	Selected       planQuoteDTO   `json:"selected"`
	Plans          []planQuoteDTO `json:"plans"`
}

func toPlanComparison(c application.PlanComparison) planComparisonDTO {
	out := planComparisonDTO{
		Price:          c.Price,
		DownPayment:    c.DownPayment,
		LoanAmount:     c.LoanAmount,
		DownPaymentPct: c.DownPaymentPct,
		Selected:       toPlanQuote(c.Selected),
		Plans:          make([]planQuoteDTO, 0, len(c.Plans)),
	}
	for _, p := range c.Plans {
		out.Plans = append(out.Plans, toPlanQuote(p))
	}
	return out
}

type vehicleSpecsDTO struct {
	Engine        string `json:"engine"`
	Transmission  string `json:"transmission"`
	Drivetrain    string `json:"drivetrain"`
	ExteriorColor string `json:"exteriorColor"`
	InteriorColor string `json:"interiorColor"`
}

type reviewDTO struct {
	ID       string  `json:"id"`
	UserName string  `json:"userName"`
	Rating   float64 `json:"rating"`
	Comment  string  `json:"comment"`
	Date     string  `json:"date"`
}

type vehicleDTO struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Brand        string          `json:"brand"`
	Model        string          `json:"model"`
	Year         int             `json:"year"`
	Price        float64         `json:"price"`
	Category     string          `json:"category"`
	Condition    string          `json:"condition"`
	FuelType     string          `json:"fuelType"`
	Transmission string          `json:"transmission"`
	BodyType     string          `json:"bodyType"`
	Location     string          `json:"location"`
	Mileage      float64         `json:"mileage"`
	Description  string          `json:"description"`
	Images       []string        `json:"images"`
	Specs        vehicleSpecsDTO `json:"specs"`
	Status       string          `json:"status"`
	IsFeatured   bool            `json:"isFeatured"`
	IsVerified   bool            `json:"isVerified"`
	Views        int64           `json:"views"`
	Reviews      []reviewDTO     `json:"reviews"`
	CreatedAt    time.Time       `json:"createdAt"`
}

func toVehicle(v domain.Vehicle) vehicleDTO {
	out := vehicleDTO{
		ID: v.ID, Name: v.Name, Brand: v.Brand, Model: v.Model, Year: v.Year, Price: v.Price,
		Category: string(v.Category), Condition: string(v.Condition), FuelType: v.FuelType,
		Transmission: v.Transmission, BodyType: v.BodyType, Location: v.Location, Mileage: v.Mileage,
		Description: v.Description, Images: v.Images, Status: string(v.Status),
		IsFeatured: v.IsFeatured, IsVerified: v.IsVerified, Views: v.Views, CreatedAt: v.CreatedAt,
		Specs:   vehicleSpecsDTO(v.Specs),
		Reviews: make([]reviewDTO, 0, len(v.Reviews)),
	}
	if out.Images == nil {
		out.Images = []string{}
	}
	for _, r := range v.Reviews {
		out.Reviews = append(out.Reviews, reviewDTO(r))
	}
	return out
}

func toVehicles(vs []domain.Vehicle) []vehicleDTO {
	out := make([]vehicleDTO, 0, len(vs))
	for _, v := range vs {
		out = append(out, toVehicle(v))
	}
	return out
}

// vehicleInput is the admin form. Server-managed fields (id, name, views,
// reviews, createdAt) are ignored.
type vehicleInput struct {
	Brand        string          `json:"brand"`
	Model        string          `json:"model"`
	Year         int             `json:"year"`
	Price        float64         `json:"price"`
	Category     string          `json:"category"`
	Condition    string          `json:"condition"`
	FuelType     string          `json:"fuelType"`
	Transmission string          `json:"transmission"`
	BodyType     string          `json:"bodyType"`
	Location     string          `json:"location"`
	Mileage      float64         `json:"mileage"`
	Description  string          `json:"description"`
	Images       []string        `json:"images"`
	Specs        vehicleSpecsDTO `json:"specs"`
	Status       string          `json:"status"`
	IsFeatured   bool            `json:"isFeatured"`
	IsVerified   bool            `json:"isVerified"`
}

func (in vehicleInput) toDomain() domain.Vehicle {
	return domain.Vehicle{
		Brand: in.Brand, Model: in.Model, Year: in.Year, Price: in.Price,
		Category: domain.VehicleCategory(in.Category), Condition: domain.VehicleCondition(in.Condition),
		FuelType: in.FuelType, Transmission: in.Transmission, BodyType: in.BodyType, Location: in.Location,
		Mileage: in.Mileage, Description: in.Description, Images: in.Images,
		Specs:  domain.VehicleSpecs(in.Specs),
		Status: domain.VehicleStatus(in.Status), IsFeatured: in.IsFeatured, IsVerified: in.IsVerified,
	}
}

type vehicleEstimateDTO struct {
	VehicleID      string       `json:"vehicleId"`
	Price          float64      `json:"price"`
	DownPayment    float64      `json:"downPayment"`
	DownPaymentPct *float64     `json:"downPaymentPct"`
	Quote          loanQuoteDTO `json:"quote"`
}

type bookingDTO struct {
	ID             string    `json:"id"`
	VehicleID      string    `json:"vehicleId"`
	VehicleName    string    `json:"vehicleName"`
	CustomerName   string    `json:"customerName"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	DriversLicense string    `json:"driversLicense"`
	Date           string    `json:"date"`
	Time           string    `json:"time"`
	Location       string    `json:"location"`
	Notes          string    `json:"notes"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
}

func toBooking(b domain.Booking) bookingDTO {
	return bookingDTO{
		ID: b.ID, VehicleID: b.VehicleID, VehicleName: b.VehicleName, CustomerName: b.CustomerName,
		Email: b.Email, Phone: b.Phone, DriversLicense: b.DriversLicense, Date: b.Date, Time: b.Time,
		Location: b.Location, Notes: b.Notes, Status: string(b.Status), CreatedAt: b.CreatedAt,
	}
}

type bookingInput struct {
	VehicleID      string `json:"vehicleId"`
	CustomerName   string `json:"customerName"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	DriversLicense string `json:"driversLicense"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	Location       string `json:"location"`
	Notes          string `json:"notes"`
}

type financingInput struct {
	CustomerName string  `json:"customerName"`
	Email        string  `json:"email"`
	Price        float64 `json:"price"`
	DownPayment  float64 `json:"downPayment"`
	Term         int     `json:"term"`
}

type financingReviewDTO struct {
	ID           string             `json:"id"`
	CustomerName string             `json:"customerName"`
	Email        string             `json:"email"`
	LoanAmount   float64            `json:"loanAmount"`
	DownPayment  float64            `json:"downPayment"`
	Term         int                `json:"term"`
	Status       string             `json:"status"`
	CreatedAt    time.Time          `json:"createdAt"`
	Plan         domain.FinancePlan `json:"plan"`
	Estimate     loanQuoteDTO       `json:"estimate"`
}

func toFinancingReview(fr application.FinancingReview) financingReviewDTO {
	r := fr.Request
	return financingReviewDTO{
		ID: r.ID, CustomerName: r.CustomerName, Email: r.Email, LoanAmount: r.LoanAmount,
		DownPayment: r.DownPayment, Term: r.Term, Status: string(r.Status), CreatedAt: r.CreatedAt,
		Plan: fr.Plan, Estimate: toLoanQuote(fr.Estimate),
	}
}

type statusInput struct {
	Status string `json:"status"`
}

type createdResponse struct {
	ID string `json:"id"`
}

type settingsDTO struct {
	SiteName     string `json:"siteName"`
	HeroBadge    string `json:"heroBadge"`
	HeroTitle    string `json:"heroTitle"`
	HeroSubtitle string `json:"heroSubtitle"`
	HeroImageURL string `json:"heroImageUrl"`
}

type dashboardDTO struct {
	VehicleCount int            `json:"vehicleCount"`
	TotalViews   int64          `json:"totalViews"`
	TopViewed    []vehicleDTO   `json:"topViewed"`
	Financing    map[string]int `json:"financing"`
	Bookings     map[string]int `json:"bookings"`
}

func toDashboard(st domain.InventoryStats) dashboardDTO {
	out := dashboardDTO{
		VehicleCount: st.VehicleCount,
		TotalViews:   st.TotalViews,
		TopViewed:    toVehicles(st.TopViewed),
		Financing:    map[string]int{},
		Bookings:     map[string]int{},
	}
	for k, v := range st.Financing {
		out.Financing[string(k)] = v
	}
	for k, v := range st.Bookings {
		out.Bookings[string(k)] = v
	}
	return out
}
