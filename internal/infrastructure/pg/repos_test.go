package pg_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"autoelite/internal/application"
	"autoelite/internal/domain"
	"autoelite/internal/infrastructure/pg"

	"github.com/stretchr/testify/require"
)

func TestVehicleRepo_Lifecycle(t *testing.T) {
	db := withPostgres(t)
	ctx := context.Background()
	repo := pg.NewVehicleRepo(db)
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	older := domain.Vehicle{ID: "a", Brand: "BMW", Model: "M3", Year: 2022, Price: 62000, CreatedAt: now.Add(-time.Hour)}.Sanitize(now)
	newer := domain.Vehicle{ID: "b", Brand: "Audi", Model: "RS6", Year: 2025, Price: 120000, CreatedAt: now}.Sanitize(now)
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "b", all[0].ID)

	got, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, "2022 BMW M3", got.Name)
	require.InDelta(t, 62000, got.Price, 1e-9)
	require.True(t, got.CreatedAt.Equal(older.CreatedAt))

	require.NoError(t, repo.IncrementViews(ctx, "a", 3))
	require.NoError(t, repo.IncrementViews(ctx, "a", 2))
	got, err = repo.Get(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, int64(5), got.Views)

	got.Price = 59000
	require.NoError(t, repo.Update(ctx, got))
	got, err = repo.Get(ctx, "a")
	require.NoError(t, err)
	require.InDelta(t, 59000, got.Price, 1e-9)
	require.Equal(t, int64(5), got.Views)

	require.NoError(t, repo.Delete(ctx, "a"))
	_, err = repo.Get(ctx, "a")
	require.ErrorIs(t, err, application.ErrNotFound)
	require.ErrorIs(t, repo.Delete(ctx, "a"), application.ErrNotFound)
	require.ErrorIs(t, repo.IncrementViews(ctx, "a", 1), application.ErrNotFound)
}

func TestStatusUpdatesAndSettings(t *testing.T) {
	db := withPostgres(t)
	ctx := context.Background()

	bookings := pg.NewBookingRepo(db)
	require.NoError(t, bookings.Create(ctx, domain.Booking{ID: "b1", VehicleID: "a", Status: domain.BookingStatusPending, CreatedAt: time.Now().UTC()}))
	require.NoError(t, bookings.UpdateStatus(ctx, "b1", domain.BookingStatusApproved))
	require.ErrorIs(t, bookings.UpdateStatus(ctx, "zz", domain.BookingStatusApproved), application.ErrNotFound)
	bs, err := bookings.List(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.BookingStatusApproved, bs[0].Status)

	fin := pg.NewFinancingRepo(db)
	require.NoError(t, fin.Create(ctx, domain.FinancingRequest{ID: "f1", LoanAmount: 28000, Term: 36, Status: domain.FinancingStatusPending, CreatedAt: time.Now().UTC()}))
	require.NoError(t, fin.UpdateStatus(ctx, "f1", domain.FinancingStatusReviewed))
	fs, err := fin.List(ctx)
	require.NoError(t, err)
	require.Equal(t, 36, fs[0].Term)
	require.Equal(t, domain.FinancingStatusReviewed, fs[0].Status)

	settings := pg.NewSettingsRepo(db)
	s, err := settings.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.DefaultSiteSettings(), s)
	s.SiteName = "Elite Motors"
	require.NoError(t, settings.Save(ctx, s))
	require.NoError(t, settings.Save(ctx, s))
	got, err := settings.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, "Elite Motors", got.SiteName)
}

func TestUnitOfWork_RollsBack(t *testing.T) {
	db := withPostgres(t)
	ctx := context.Background()
	repo := pg.NewVehicleRepo(db)
	uow := pg.NewUnitOfWork(db)
	require.NoError(t, repo.Create(ctx, domain.Vehicle{ID: "a", CreatedAt: time.Now().UTC()}.Sanitize(time.Now())))

	boom := errors.New("boom")
	err := uow.Do(ctx, func(ctx context.Context) error {
		require.NoError(t, repo.IncrementViews(ctx, "a", 10))
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	require.Zero(t, got.Views)

	require.NoError(t, uow.Do(ctx, func(ctx context.Context) error {
		return repo.IncrementViews(ctx, "a", 10)
	}))
	got, err = repo.Get(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, int64(10), got.Views)
}
