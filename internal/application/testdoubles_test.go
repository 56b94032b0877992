package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"autoelite/internal/domain"
)

var ErrRepo = errors.New("repo error")

type fakeVehicleRepo struct {
	store map[string]domain.Vehicle
	views map[string]int64
	err   error
}

func (f *fakeVehicleRepo) List(context.Context) ([]domain.Vehicle, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]domain.Vehicle, 0, len(f.store))
	for _, v := range f.store {
		out = append(out, v)
	}
	domain.SortNewestFirst(out)
	return out, nil
}

func (f *fakeVehicleRepo) Get(_ context.Context, id string) (domain.Vehicle, error) {
	if f.err != nil {
		return domain.Vehicle{}, f.err
	}
	v, ok := f.store[id]
	if !ok {
		return domain.Vehicle{}, ErrNotFound
	}
	return v, nil
}

func (f *fakeVehicleRepo) Create(_ context.Context, v domain.Vehicle) error {
	if f.err != nil {
		return f.err
	}
	if f.store == nil {
		f.store = map[string]domain.Vehicle{}
	}
	f.store[v.ID] = v
	return nil
}

func (f *fakeVehicleRepo) Update(_ context.Context, v domain.Vehicle) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.store[v.ID]; !ok {
		return ErrNotFound
	}
	f.store[v.ID] = v
	return nil
}

func (f *fakeVehicleRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.store[id]; !ok {
		return ErrNotFound
	}
	delete(f.store, id)
	return nil
}

func (f *fakeVehicleRepo) IncrementViews(_ context.Context, id string, n int64) error {
	v, ok := f.store[id]
	if !ok {
		return ErrNotFound
	}
	v.Views += n
	f.store[id] = v
	return nil
}

type fakeBookingRepo struct {
	items []domain.Booking
}

func (f *fakeBookingRepo) Create(_ context.Context, b domain.Booking) error {
	f.items = append(f.items, b)
	return nil
}

func (f *fakeBookingRepo) List(context.Context) ([]domain.Booking, error) {
	return f.items, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id string, st domain.BookingStatus) error {
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].Status = st
			return nil
		}
	}
	return ErrNotFound
}

type fakeFinancingRepo struct {
	items []domain.FinancingRequest
}

func (f *fakeFinancingRepo) Create(_ context.Context, r domain.FinancingRequest) error {
	f.items = append(f.items, r)
	return nil
}

func (f *fakeFinancingRepo) List(context.Context) ([]domain.FinancingRequest, error) {
	return f.items, nil
}

func (f *fakeFinancingRepo) UpdateStatus(_ context.Context, id string, st domain.FinancingStatus) error {
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].Status = st
			return nil
		}
	}
	return ErrNotFound
}

type fakeSettingsRepo struct {
	cur *domain.SiteSettings
}

func (f *fakeSettingsRepo) Get(context.Context) (domain.SiteSettings, error) {
	if f.cur == nil {
		return domain.DefaultSiteSettings(), nil
	}
	return *f.cur, nil
}

func (f *fakeSettingsRepo) Save(_ context.Context, s domain.SiteSettings) error {
	f.cur = &s
	return nil
}

type fakePlans struct {
	plans []domain.FinancePlan
	err   error
}

func (f fakePlans) Plans(context.Context) ([]domain.FinancePlan, error) {
	return f.plans, f.err
}

type fakeIdem struct{ seen map[string]bool }

func (f *fakeIdem) TryReserve(_ context.Context, k string) (bool, error) {
	if f.seen == nil {
		f.seen = map[string]bool{}
	}
	if f.seen[k] {
		return false, nil
	}
	f.seen[k] = true
	return true, nil
}

type fakeViews struct {
	counts map[string]int64
}

func (f *fakeViews) Incr(_ context.Context, id string) error {
	if f.counts == nil {
		f.counts = map[string]int64{}
	}
	f.counts[id]++
	return nil
}

func (f *fakeViews) Drain(context.Context) (map[string]int64, error) {
	out := f.counts
	f.counts = nil
	return out, nil
}

type fakeClock struct{ t time.Time }

func (f fakeClock) Now() time.Time { return f.t }

type seqIDs struct{ n int }

func (g *seqIDs) NewID() string {
	g.n++
	return fmt.Sprintf("id-%d", g.n)
}

type recordingUoW struct{ calls int }

func (u *recordingUoW) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	u.calls++
	return fn(ctx)
}

func strPtr(s string) *string { return &s }
