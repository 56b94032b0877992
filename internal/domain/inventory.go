package domain

import (
	"sort"
)

const (
	FeaturedLimit = 3
	SimilarLimit  = 3
	TopViewLimit  = 5
)

// SortNewestFirst orders vehicles by CreatedAt descending, in place.
func SortNewestFirst(vs []Vehicle) {
	sort.SliceStable(vs, func(i, j int) bool { return vs[i].CreatedAt.After(vs[j].CreatedAt) })
}

// Featured returns up to limit vehicles that are featured or still available.
func Featured(vs []Vehicle, limit int) []Vehicle {
	out := []Vehicle{}
	for _, v := range vs {
		if len(out) == limit {
			break
		}
		if v.IsFeatured || v.Status == VehicleStatusAvailable {
			out = append(out, v)
		}
	}
	return out
}

// Similar returns up to limit other vehicles of the same category.
func Similar(vs []Vehicle, of Vehicle, limit int) []Vehicle {
	out := []Vehicle{}
	for _, v := range vs {
		if len(out) == limit {
			break
		}
		if v.Category == of.Category && v.ID != of.ID {
			out = append(out, v)
		}
	}
	return out
}

func CategoryCounts(vs []Vehicle) map[VehicleCategory]int {
	out := make(map[VehicleCategory]int, len(Categories))
	for _, c := range Categories {
		out[c] = 0
	}
	for _, v := range vs {
		out[v.Category]++
	}
	return out
}

// StatusCounts keys counts by vehicle status plus "all".
func StatusCounts(vs []Vehicle) map[string]int {
	out := map[string]int{"all": len(vs)}
	for _, st := range []VehicleStatus{VehicleStatusAvailable, VehicleStatusPending, VehicleStatusSold} {
		out[string(st)] = 0
	}
	for _, v := range vs {
		out[string(v.Status)]++
	}
	return out
}

// InventoryStats is the admin dashboard read-out.
type InventoryStats struct {
	VehicleCount int
	TotalViews   int64
	TopViewed    []Vehicle
	Financing    map[FinancingStatus]int
	Bookings     map[BookingStatus]int
}

func ComputeInventoryStats(vs []Vehicle, reqs []FinancingRequest, bookings []Booking) InventoryStats {
	st := InventoryStats{
		VehicleCount: len(vs),
		Financing:    map[FinancingStatus]int{},
		Bookings:     map[BookingStatus]int{},
	}
	for _, v := range vs {
		st.TotalViews += v.Views
	}
	top := append([]Vehicle(nil), vs...)
	sort.SliceStable(top, func(i, j int) bool { return top[i].Views > top[j].Views })
	if len(top) > TopViewLimit {
		top = top[:TopViewLimit]
	}
	st.TopViewed = top
	for _, r := range reqs {
		st.Financing[r.Status]++
	}
	for _, b := range bookings {
		st.Bookings[b.Status]++
	}
	return st
}
