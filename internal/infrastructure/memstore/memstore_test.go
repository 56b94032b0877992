package memstore

import (
	"context"
	"sync"
	"testing"
	"time"

	"autoelite/internal/application"
	"autoelite/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestVehicleRepo_NewestFirstAndErrors(t *testing.T) {
	t.Parallel()
	now := time.Now().UTC()
	r := NewVehicleRepo(
		domain.Vehicle{ID: "old", CreatedAt: now.Add(-time.Hour)},
		domain.Vehicle{ID: "new", CreatedAt: now},
	)
	ctx := context.Background()

	all, err := r.List(ctx)
	require.NoError(t, err)
	require.Equal(t, "new", all[0].ID)
	require.Equal(t, "old", all[1].ID)

	require.ErrorIs(t, r.Create(ctx, domain.Vehicle{ID: "new"}), application.ErrConflict)
	require.ErrorIs(t, r.Update(ctx, domain.Vehicle{ID: "x"}), application.ErrNotFound)
	require.ErrorIs(t, r.Delete(ctx, "x"), application.ErrNotFound)
	_, err = r.Get(ctx, "x")
	require.ErrorIs(t, err, application.ErrNotFound)
}

func TestVehicleRepo_DoesNotShareSlices(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	in := domain.Vehicle{
		ID:      "v",
		Images:  []string{"a.jpg"},
		Reviews: []domain.Review{{ID: "r1", Rating: 5}},
	}
	r := NewVehicleRepo()
	require.NoError(t, r.Create(ctx, in))
	in.Images[0] = "mutated.jpg"

	got, err := r.Get(ctx, "v")
	require.NoError(t, err)
	require.Equal(t, "a.jpg", got.Images[0])

	got.Images[0] = "changed.jpg"
	got.Reviews[0].Rating = 1
	all, err := r.List(ctx)
	require.NoError(t, err)
	all[0].Images[0] = "listed.jpg"

	again, err := r.Get(ctx, "v")
	require.NoError(t, err)
	require.Equal(t, []string{"a.jpg"}, again.Images)
	require.Equal(t, 5.0, again.Reviews[0].Rating)

	upd := again
	require.NoError(t, r.Update(ctx, upd))
	upd.Images[0] = "after-update.jpg"
	again, err = r.Get(ctx, "v")
	require.NoError(t, err)
	require.Equal(t, "a.jpg", again.Images[0])
}

func TestVehicleRepo_ConcurrentViews(t *testing.T) {
	t.Parallel()
	r := NewVehicleRepo(domain.Vehicle{ID: "v"})
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = r.IncrementViews(ctx, "v", 1)
		}()
	}
	wg.Wait()

	v, err := r.Get(ctx, "v")
	require.NoError(t, err)
	require.Equal(t, int64(50), v.Views)
}

func TestStatusRepos(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	b := NewBookingRepo()
	require.NoError(t, b.Create(ctx, domain.Booking{ID: "b1", Status: domain.BookingStatusPending}))
	require.NoError(t, b.UpdateStatus(ctx, "b1", domain.BookingStatusApproved))
	require.ErrorIs(t, b.UpdateStatus(ctx, "b2", domain.BookingStatusApproved), application.ErrNotFound)
	bs, _ := b.List(ctx)
	require.Equal(t, domain.BookingStatusApproved, bs[0].Status)

	f := NewFinancingRepo()
	require.NoError(t, f.Create(ctx, domain.FinancingRequest{ID: "f1"}))
	require.NoError(t, f.UpdateStatus(ctx, "f1", domain.FinancingStatusRejected))
	fs, _ := f.List(ctx)
	require.Equal(t, domain.FinancingStatusRejected, fs[0].Status)
}

func TestSettingsAndViews(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s := NewSettingsRepo()
	got, err := s.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.DefaultSiteSettings(), got)

	vc := NewViewCounter()
	require.NoError(t, vc.Incr(ctx, "a"))
	require.NoError(t, vc.Incr(ctx, "a"))
	counts, err := vc.Drain(ctx)
	require.NoError(t, err)
	require.Equal(t, map[string]int64{"a": 2}, counts)
	counts, err = vc.Drain(ctx)
	require.NoError(t, err)
	require.Empty(t, counts)
}
