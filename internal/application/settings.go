package application

import (
	"context"

	"autoelite/internal/domain"
)

func (s *DealershipService) SiteSettings(ctx context.Context) (domain.SiteSettings, error) {
	return s.settings.Get(ctx)
}

// SaveSiteSettings merges the non-empty fields of patch over the stored settings.
func (s *DealershipService) SaveSiteSettings(ctx context.Context, patch domain.SiteSettings) (domain.SiteSettings, error) {
	cur, err := s.settings.Get(ctx)
	if err != nil {
		return domain.SiteSettings{}, err
	}
	next := cur.Merge(patch)
	if err := s.settings.Save(ctx, next); err != nil {
		return domain.SiteSettings{}, err
	}
	return next, nil
}
