package domain

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// FilterAll matches every value of a browse facet.
const FilterAll = "ALL"

// VehicleFilter holds the showroom browse facets. Empty and "ALL" values match everything.
type VehicleFilter struct {
	Category     string
	Brand        string
	PriceRange   string
	Condition    string
	Transmission string
	Location     string
}

func facetMatch(want, got string) bool {
	return want == "" || want == FilterAll || want == got
}

// PriceRange is an inclusive price band. A zero Max means no upper bound.
type PriceRange struct {
	Min float64
	Max float64
	// none marks a range whose lower bound could not be read; it matches
	// no price.
	none bool
}

// ParsePriceRange reads "min-max", "min-", "-max" or "min". ok is false for "ALL" or
// empty input, which apply no price constraint. An unreadable min yields a
// range that matches nothing; an unreadable max is treated as no upper bound.
func ParsePriceRange(s string) (PriceRange, bool) {
	if s == "" || s == FilterAll {
		return PriceRange{}, false
	}
	lo, hi, _ := strings.Cut(s, "-")
	var min float64
	if lo = strings.TrimSpace(lo); lo != "" {
		var err error
		if min, err = strconv.ParseFloat(lo, 64); err != nil || math.IsNaN(min) {
			return PriceRange{none: true}, true
		}
	}
	max, err := strconv.ParseFloat(strings.TrimSpace(hi), 64)
	if err != nil || math.IsNaN(max) {
		max = 0
	}
	return PriceRange{Min: min, Max: max}, true
}

func (r PriceRange) Contains(price float64) bool {
	if r.none {
		return false
	}
	if r.Max != 0 {
		return price >= r.Min && price <= r.Max
	}
	return price >= r.Min
}

func (f VehicleFilter) Matches(v Vehicle) bool {
	if !facetMatch(f.Category, string(v.Category)) ||
		!facetMatch(f.Brand, v.Brand) ||
		!facetMatch(f.Condition, string(v.Condition)) ||
		!facetMatch(f.Transmission, v.Transmission) ||
		!facetMatch(f.Location, v.Location) {
		return false
	}
	if r, ok := ParsePriceRange(f.PriceRange); ok {
		return r.Contains(v.Price)
	}
	return true
}

func FilterVehicles(vs []Vehicle, f VehicleFilter) []Vehicle {
	out := make([]Vehicle, 0, len(vs))
	for _, v := range vs {
		if f.Matches(v) {
			out = append(out, v)
		}
	}
	return out
}

// Brands returns the distinct brands, sorted.
func Brands(vs []Vehicle) []string {
	return distinct(vs, func(v Vehicle) string { return v.Brand })
}

// Locations returns the distinct locations, sorted.
func Locations(vs []Vehicle) []string {
	return distinct(vs, func(v Vehicle) string { return v.Location })
}

func distinct(vs []Vehicle, key func(Vehicle) string) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, v := range vs {
		k := key(v)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// AdminSearch is the back-office inventory search.
type AdminSearch struct {
	Query  string
	Status string // "all" or a VehicleStatus
}

func (s AdminSearch) Matches(v Vehicle) bool {
	if s.Status != "" && s.Status != "all" && string(v.Status) != s.Status {
		return false
	}
	q := strings.ToLower(s.Query)
	return strings.Contains(strings.ToLower(v.Name), q) ||
		strings.Contains(strings.ToLower(v.Brand), q) ||
		strings.Contains(strings.ToLower(v.Model), q)
}

func SearchVehicles(vs []Vehicle, s AdminSearch) []Vehicle {
	out := make([]Vehicle, 0, len(vs))
	for _, v := range vs {
		if s.Matches(v) {
			out = append(out, v)
		}
	}
	return out
}
