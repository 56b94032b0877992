package pg

import (
	"context"
	"errors"
	"sort"

	"autoelite/internal/application"
	"autoelite/internal/domain"
)

type VehicleRepo struct{ docs *Docs }

func NewVehicleRepo(db *DB) *VehicleRepo { return &VehicleRepo{docs: NewDocs(db, CollectionVehicles)} }

func (r *VehicleRepo) List(ctx context.Context) ([]domain.Vehicle, error) {
	docs, err := r.docs.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Vehicle, 0, len(docs))
	for _, d := range docs {
		out = append(out, domain.VehicleFromDocument(d.ID, d.Data, d.CreatedAt))
	}
	domain.SortNewestFirst(out)
	return out, nil
}

func (r *VehicleRepo) Get(ctx context.Context, id string) (domain.Vehicle, error) {
	d, err := r.docs.Get(ctx, id)
	if err != nil {
		return domain.Vehicle{}, err
	}
	return domain.VehicleFromDocument(d.ID, d.Data, d.CreatedAt), nil
}

func (r *VehicleRepo) Create(ctx context.Context, v domain.Vehicle) error {
	return r.docs.Insert(ctx, v.ID, v.ToDocument(), v.CreatedAt)
}

func (r *VehicleRepo) Update(ctx context.Context, v domain.Vehicle) error {
	return r.docs.Replace(ctx, v.ID, v.ToDocument())
}

func (r *VehicleRepo) Delete(ctx context.Context, id string) error { return r.docs.Delete(ctx, id) }

func (r *VehicleRepo) IncrementViews(ctx context.Context, id string, n int64) error {
	return r.docs.AddToNumber(ctx, id, "views", n)
}

type BookingRepo struct{ docs *Docs }

func NewBookingRepo(db *DB) *BookingRepo { return &BookingRepo{docs: NewDocs(db, CollectionBookings)} }

func (r *BookingRepo) Create(ctx context.Context, b domain.Booking) error {
	return r.docs.Insert(ctx, b.ID, b.ToDocument(), b.CreatedAt)
}

func (r *BookingRepo) List(ctx context.Context) ([]domain.Booking, error) {
	docs, err := r.docs.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Booking, 0, len(docs))
	for _, d := range docs {
		out = append(out, domain.BookingFromDocument(d.ID, d.Data, d.CreatedAt))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *BookingRepo) UpdateStatus(ctx context.Context, id string, st domain.BookingStatus) error {
	return r.docs.SetField(ctx, id, "status", string(st))
}

type FinancingRepo struct{ docs *Docs }

func NewFinancingRepo(db *DB) *FinancingRepo {
	return &FinancingRepo{docs: NewDocs(db, CollectionFinancing)}
}

func (r *FinancingRepo) Create(ctx context.Context, f domain.FinancingRequest) error {
	return r.docs.Insert(ctx, f.ID, f.ToDocument(), f.CreatedAt)
}

func (r *FinancingRepo) List(ctx context.Context) ([]domain.FinancingRequest, error) {
	docs, err := r.docs.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.FinancingRequest, 0, len(docs))
	for _, d := range docs {
		out = append(out, domain.FinancingRequestFromDocument(d.ID, d.Data, d.CreatedAt))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *FinancingRepo) UpdateStatus(ctx context.Context, id string, st domain.FinancingStatus) error {
	return r.docs.SetField(ctx, id, "status", string(st))
}

// settingsID is the single document holding the storefront settings.
const settingsID = "global"

type SettingsRepo struct{ docs *Docs }

func NewSettingsRepo(db *DB) *SettingsRepo { return &SettingsRepo{docs: NewDocs(db, CollectionSettings)} }

// Get returns the stored settings, or the defaults when none were saved.
func (r *SettingsRepo) Get(ctx context.Context) (domain.SiteSettings, error) {
	d, err := r.docs.Get(ctx, settingsID)
	if errors.Is(err, application.ErrNotFound) {
		return domain.DefaultSiteSettings(), nil
	}
	if err != nil {
		return domain.SiteSettings{}, err
	}
	return domain.SiteSettingsFromDocument(d.Data), nil
}

func (r *SettingsRepo) Save(ctx context.Context, s domain.SiteSettings) error {
	return r.docs.Upsert(ctx, settingsID, s.ToDocument())
}
