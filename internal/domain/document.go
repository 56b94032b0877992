package domain

import (
	"encoding/json"
	"strconv"
	"time"
)

// Document is a loosely-typed record as stored in the document store.
// Keys follow the storefront's camelCase field names.
type Document map[string]any

func (d Document) str(key, def string) string {
	if s, ok := d[key].(string); ok {
		return s
	}
	return def
}

func (d Document) num(key string, def float64) float64 {
	switch v := d[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case int32:
		return float64(v)
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return f
		}
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func (d Document) boolean(key string) bool {
	switch v := d[key].(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(v)
		return b
	case float64:
		return v != 0
	}
	return false
}

func (d Document) sub(key string) Document {
	switch v := d[key].(type) {
	case Document:
		return v
	case map[string]any:
		return Document(v)
	}
	return Document{}
}

func (d Document) list(key string) []any {
	if v, ok := d[key].([]any); ok {
		return v
	}
	return nil
}

func (d Document) date(key string, now time.Time) time.Time {
	switch v := d[key].(type) {
	case time.Time:
		return v
	case string:
		if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
			return t
		}
	}
	return now
}

// VehicleFromDocument maps a stored vehicle, applying a default for every
// missing or mistyped field.
func VehicleFromDocument(id string, d Document, now time.Time) Vehicle {
	specs := d.sub("specs")
	v := Vehicle{
		ID:           id,
		Name:         d.str("name", ""),
		Brand:        d.str("brand", ""),
		Model:        d.str("model", ""),
		Year:         int(d.num("year", float64(now.Year()))),
		Price:        d.num("price", 0),
		Category:     VehicleCategory(d.str("category", string(CategoryCar))),
		Condition:    VehicleCondition(d.str("condition", string(ConditionNew))),
		FuelType:     d.str("fuelType", DefaultFuelType),
		Transmission: d.str("transmission", DefaultTransmission),
		BodyType:     d.str("bodyType", ""),
		Location:     d.str("location", DefaultLocation),
		Mileage:      d.num("mileage", 0),
		Description:  d.str("description", ""),
		Images:       []string{},
		Specs: VehicleSpecs{
			Engine:        specs.str("engine", ""),
			Transmission:  specs.str("transmission", ""),
			Drivetrain:    specs.str("drivetrain", ""),
			ExteriorColor: specs.str("exteriorColor", ""),
			InteriorColor: specs.str("interiorColor", ""),
		},
		Status:     VehicleStatus(d.str("status", string(VehicleStatusAvailable))),
		IsFeatured: d.boolean("isFeatured"),
		IsVerified: d.boolean("isVerified"),
		Views:      int64(d.num("views", 0)),
		Reviews:    []Review{},
		CreatedAt:  d.date("createdAt", now),
	}
	for _, img := range d.list("images") {
		if s, ok := img.(string); ok && s != "" {
			v.Images = append(v.Images, s)
		}
	}
	for _, raw := range d.list("reviews") {
		var rd Document
		switch m := raw.(type) {
		case map[string]any:
			rd = Document(m)
		case Document:
			rd = m
		default:
			continue
		}
		v.Reviews = append(v.Reviews, Review{
			ID:       rd.str("id", ""),
			UserName: rd.str("userName", ""),
			Rating:   rd.num("rating", 0),
			Comment:  rd.str("comment", ""),
			Date:     rd.str("date", ""),
		})
	}
	return v
}

// ToDocument is the stored form of v. The id is kept outside the document.
func (v Vehicle) ToDocument() Document {
	images := make([]any, 0, len(v.Images))
	for _, img := range v.Images {
		images = append(images, img)
	}
	reviews := make([]any, 0, len(v.Reviews))
	for _, r := range v.Reviews {
		reviews = append(reviews, map[string]any{
			"id":       r.ID,
			"userName": r.UserName,
			"rating":   r.Rating,
			"comment":  r.Comment,
			"date":     r.Date,
		})
	}
	return Document{
		"name":         v.Name,
		"brand":        v.Brand,
		"model":        v.Model,
		"year":         v.Year,
		"price":        v.Price,
		"category":     string(v.Category),
		"condition":    string(v.Condition),
		"fuelType":     v.FuelType,
		"transmission": v.Transmission,
		"bodyType":     v.BodyType,
		"location":     v.Location,
		"mileage":      v.Mileage,
		"description":  v.Description,
		"images":       images,
		"specs": map[string]any{
			"engine":        v.Specs.Engine,
			"transmission":  v.Specs.Transmission,
			"drivetrain":    v.Specs.Drivetrain,
			"exteriorColor": v.Specs.ExteriorColor,
			"interiorColor": v.Specs.InteriorColor,
		},
		"status":     string(v.Status),
		"isFeatured": v.IsFeatured,
		"isVerified": v.IsVerified,
		"views":      v.Views,
		"reviews":    reviews,
		"createdAt":  v.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func BookingFromDocument(id string, d Document, now time.Time) Booking {
	return Booking{
		ID:             id,
		VehicleID:      d.str("vehicleId", ""),
		VehicleName:    d.str("vehicleName", ""),
		CustomerName:   d.str("customerName", ""),
		Email:          d.str("email", ""),
		Phone:          d.str("phone", ""),
		DriversLicense: d.str("driversLicense", ""),
		Date:           d.str("date", ""),
		Time:           d.str("time", ""),
		Location:       d.str("location", ""),
		Notes:          d.str("notes", ""),
		Status:         BookingStatus(d.str("status", string(BookingStatusPending))),
		CreatedAt:      d.date("createdAt", now),
	}
}

func (b Booking) ToDocument() Document {
	return Document{
		"vehicleId":      b.VehicleID,
		"vehicleName":    b.VehicleName,
		"customerName":   b.CustomerName,
		"email":          b.Email,
		"phone":          b.Phone,
		"driversLicense": b.DriversLicense,
		"date":           b.Date,
		"time":           b.Time,
		"location":       b.Location,
		"notes":          b.Notes,
		"status":         string(b.Status),
		"createdAt":      b.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func FinancingRequestFromDocument(id string, d Document, now time.Time) FinancingRequest {
	return FinancingRequest{
		ID:           id,
		CustomerName: d.str("customerName", ""),
		Email:        d.str("email", ""),
		LoanAmount:   d.num("loanAmount", 0),
		DownPayment:  d.num("downPayment", 0),
		Term:         int(d.num("term", 0)),
		Status:       FinancingStatus(d.str("status", string(FinancingStatusPending))),
		CreatedAt:    d.date("createdAt", now),
	}
}

func (r FinancingRequest) ToDocument() Document {
	return Document{
		"customerName": r.CustomerName,
		"email":        r.Email,
		"loanAmount":   r.LoanAmount,
		"downPayment":  r.DownPayment,
		"term":         r.Term,
		"status":       string(r.Status),
		"createdAt":    r.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

// SiteSettingsFromDocument accepts a nil document, which yields the defaults.
func SiteSettingsFromDocument(d Document) SiteSettings {
	def := DefaultSiteSettings()
	return SiteSettings{
		SiteName:     d.str("siteName", def.SiteName),
		HeroBadge:    d.str("heroBadge", def.HeroBadge),
		HeroTitle:    d.str("heroTitle", def.HeroTitle),
		HeroSubtitle: d.str("heroSubtitle", def.HeroSubtitle),
		HeroImageURL: d.str("heroImageUrl", def.HeroImageURL),
	}
}

func (s SiteSettings) ToDocument() Document {
	return Document{
		"siteName":     s.SiteName,
		"heroBadge":    s.HeroBadge,
		"heroTitle":    s.HeroTitle,
		"heroSubtitle": s.HeroSubtitle,
		"heroImageUrl": s.HeroImageURL,
	}
}
