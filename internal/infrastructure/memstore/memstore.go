// Package memstore keeps dealership records in process memory. It backs
// STORAGE=memory and tests that need a working store without Postgres.
package memstore

import (
	"context"
	"sort"
	"sync"

	"autoelite/internal/application"
	"autoelite/internal/domain"
)

var (
	_ application.VehicleRepo   = (*VehicleRepo)(nil)
	_ application.BookingRepo   = (*BookingRepo)(nil)
	_ application.FinancingRepo = (*FinancingRepo)(nil)
	_ application.SettingsRepo  = (*SettingsRepo)(nil)
	_ application.ViewCounter   = (*ViewCounter)(nil)
)

type VehicleRepo struct {
	mu    sync.RWMutex
	items map[string]domain.Vehicle
}

func NewVehicleRepo(seed ...domain.Vehicle) *VehicleRepo {
	r := &VehicleRepo{items: map[string]domain.Vehicle{}}
	for _, v := range seed {
		r.items[v.ID] = cloneVehicle(v)
	}
	return r
}

// cloneVehicle detaches the slices so stored records never share backing
// arrays with callers.
func cloneVehicle(v domain.Vehicle) domain.Vehicle {
	if v.Images != nil {
		v.Images = append([]string(nil), v.Images...)
	}
	if v.Reviews != nil {
		v.Reviews = append([]domain.Review(nil), v.Reviews...)
	}
	return v
}

func (r *VehicleRepo) List(context.Context) ([]domain.Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Vehicle, 0, len(r.items))
	for _, v := range r.items {
		out = append(out, cloneVehicle(v))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	domain.SortNewestFirst(out)
	return out, nil
}

func (r *VehicleRepo) Get(_ context.Context, id string) (domain.Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.items[id]
	if !ok {
		return domain.Vehicle{}, application.ErrNotFound
	}
	return cloneVehicle(v), nil
}

func (r *VehicleRepo) Create(_ context.Context, v domain.Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[v.ID]; ok {
		return application.ErrConflict
	}
	r.items[v.ID] = cloneVehicle(v)
	return nil
}

func (r *VehicleRepo) Update(_ context.Context, v domain.Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[v.ID]; !ok {
		return application.ErrNotFound
	}
	r.items[v.ID] = cloneVehicle(v)
	return nil
}

func (r *VehicleRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return application.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *VehicleRepo) IncrementViews(_ context.Context, id string, n int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.items[id]
	if !ok {
		return application.ErrNotFound
	}
	v.Views += n
	r.items[id] = v
	return nil
}

type BookingRepo struct {
	mu    sync.RWMutex
	items []domain.Booking
}

func NewBookingRepo() *BookingRepo { return &BookingRepo{} }

func (r *BookingRepo) Create(_ context.Context, b domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, b)
	return nil
}

// List returns bookings newest first.
func (r *BookingRepo) List(context.Context) ([]domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := append([]domain.Booking(nil), r.items...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *BookingRepo) UpdateStatus(_ context.Context, id string, st domain.BookingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == id {
			r.items[i].Status = st
			return nil
		}
	}
	return application.ErrNotFound
}

type FinancingRepo struct {
	mu    sync.RWMutex
	items []domain.FinancingRequest
}

func NewFinancingRepo() *FinancingRepo { return &FinancingRepo{} }

func (r *FinancingRepo) Create(_ context.Context, f domain.FinancingRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, f)
	return nil
}

func (r *FinancingRepo) List(context.Context) ([]domain.FinancingRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := append([]domain.FinancingRequest(nil), r.items...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *FinancingRepo) UpdateStatus(_ context.Context, id string, st domain.FinancingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == id {
			r.items[i].Status = st
			return nil
		}
	}
	return application.ErrNotFound
}

type SettingsRepo struct {
	mu  sync.RWMutex
	cur *domain.SiteSettings
}

func NewSettingsRepo() *SettingsRepo { return &SettingsRepo{} }

func (r *SettingsRepo) Get(context.Context) (domain.SiteSettings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.cur == nil {
		return domain.DefaultSiteSettings(), nil
	}
	return *r.cur, nil
}

func (r *SettingsRepo) Save(_ context.Context, s domain.SiteSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cur = &s
	return nil
}

// ViewCounter buffers views in memory for an in-process flusher.
type ViewCounter struct {
	mu     sync.Mutex
	counts map[string]int64
}

func NewViewCounter() *ViewCounter { return &ViewCounter{counts: map[string]int64{}} }

func (c *ViewCounter) Incr(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[id]++
	return nil
}

func (c *ViewCounter) Drain(context.Context) (map[string]int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.counts
	c.counts = map[string]int64{}
	return out, nil
}
