// Package provider supplies the financing rate sheet from the built-in
// defaults, a YAML file or a lender's JSON endpoint.
package provider

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"autoelite/internal/application"
	"autoelite/internal/domain"

	"go.uber.org/zap"
)

var (
	_ application.PlanProvider = Static{}
	_ application.PlanProvider = (*Fallback)(nil)
	_ application.PlanProvider = (*Cached)(nil)
)

var ErrEmptySheet = errors.New("rate sheet has no plans")

// Static serves a fixed sheet; a nil sheet serves the defaults.
type Static struct{ Sheet []domain.FinancePlan }

func (s Static) Plans(context.Context) ([]domain.FinancePlan, error) {
	if len(s.Sheet) == 0 {
		return domain.DefaultPlans(), nil
	}
	return append([]domain.FinancePlan(nil), s.Sheet...), nil
}

// normalize rejects unusable plans and orders the sheet by term.
func normalize(plans []domain.FinancePlan) ([]domain.FinancePlan, error) {
	if len(plans) == 0 {
		return nil, ErrEmptySheet
	}
	seen := map[int]bool{}
	for _, p := range plans {
		if p.Months <= 0 {
			return nil, fmt.Errorf("plan %q: term must be positive, got %d", p.Label, p.Months)
		}
		if p.APR < 0 || math.IsNaN(p.APR) || math.IsInf(p.APR, 0) {
			return nil, fmt.Errorf("plan %q: apr must be finite and not negative, got %v", p.Label, p.APR)
		}
		if seen[p.Months] {
			return nil, fmt.Errorf("duplicate %d month plan", p.Months)
		}
		seen[p.Months] = true
	}
	out := append([]domain.FinancePlan(nil), plans...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Months < out[j].Months })
	return out, nil
}

// Fallback serves Secondary whenever Primary fails.
type Fallback struct {
	Primary   application.PlanProvider
	Secondary application.PlanProvider
	Log       *zap.Logger
}

func (f *Fallback) Plans(ctx context.Context) ([]domain.FinancePlan, error) {
	plans, err := f.Primary.Plans(ctx)
	if err == nil {
		return plans, nil
	}
	if f.Log != nil {
		f.Log.Warn("plans.fallback", zap.Error(err))
	}
	return f.Secondary.Plans(ctx)
}

// Cached keeps the last good sheet for TTL.
type Cached struct {
	Source application.PlanProvider
	TTL    time.Duration
	Now    func() time.Time

	mu      sync.Mutex
	sheet   []domain.FinancePlan
	fetched time.Time
}

func (c *Cached) Plans(ctx context.Context) ([]domain.FinancePlan, error) {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sheet != nil && now().Sub(c.fetched) < c.TTL {
		return append([]domain.FinancePlan(nil), c.sheet...), nil
	}
	plans, err := c.Source.Plans(ctx)
	if err != nil {
		return nil, err
	}
	c.sheet, c.fetched = plans, now()
	return append([]domain.FinancePlan(nil), plans...), nil
}
