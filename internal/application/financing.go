package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"autoelite/internal/domain"

	"go.uber.org/zap"
)

// PlanComparison is the financing page grid for one price and down payment.
type PlanComparison struct {
	Price       float64
	DownPayment float64
	LoanAmount  float64
	// DownPaymentPct is nil when the price is 0.
	DownPaymentPct *float64
	Plans          []domain.PlanQuote
	Selected       domain.PlanQuote
}

// VehicleEstimate is the quick financing add-on shown on a vehicle page.
type VehicleEstimate struct {
	Vehicle        domain.Vehicle
	DownPayment    float64
	DownPaymentPct *float64
	Quote          domain.LoanQuote
}

// EstimateParams overrides the vehicle page defaults; nil fields keep them.
type EstimateParams struct {
	DownPayment *float64
	TermMonths  *int
	APR         *float64
}

type FinancingSubmission struct {
	CustomerName string
	Email        string
	Price        float64
	DownPayment  float64
	TermMonths   int
}

// FinancingReview is a stored request with the back-office estimate attached.
type FinancingReview struct {
	Request  domain.FinancingRequest
	Plan     domain.FinancePlan
	Estimate domain.LoanQuote
}

// QuoteLoan is the calculator itself; it never fails.
func (s *DealershipService) QuoteLoan(price, downPayment float64, termMonths int, apr float64) domain.LoanQuote {
	return domain.NewLoanQuote(price, downPayment, termMonths, apr)
}

func (s *DealershipService) currentPlans(ctx context.Context) ([]domain.FinancePlan, error) {
	plans, err := s.plans.Plans(ctx)
	if err != nil {
		return nil, fmt.Errorf("load finance plans: %w", err)
	}
	if len(plans) == 0 {
		return domain.DefaultPlans(), nil
	}
	return plans, nil
}

func downPct(down, price float64) *float64 {
	if pct, ok := domain.DownPaymentPercent(down, price); ok {
		return &pct
	}
	return nil
}

// ComparePlans quotes every plan on the rate sheet. selectedTerm picks the
// highlighted plan; an unknown term selects the first one.
func (s *DealershipService) ComparePlans(ctx context.Context, price, downPayment float64, selectedTerm int) (PlanComparison, error) {
	plans, err := s.currentPlans(ctx)
	if err != nil {
		return PlanComparison{}, err
	}
	quotes := domain.ComparePlans(price, downPayment, plans)
	out := PlanComparison{
		Price:          price,
		DownPayment:    downPayment,
		LoanAmount:     price - downPayment,
		DownPaymentPct: downPct(downPayment, price),
		Plans:          quotes,
		Selected:       quotes[0],
	}
	for _, q := range quotes {
		if q.Plan.Months == selectedTerm {
			out.Selected = q
			break
		}
	}
	return out, nil
}

func (s *DealershipService) EstimateForVehicle(ctx context.Context, vehicleID string, p EstimateParams) (VehicleEstimate, error) {
	v, err := s.vehicles.Get(ctx, vehicleID)
	if err != nil {
		return VehicleEstimate{}, err
	}
	down := domain.EstimateDownPayment(v.Price)
	if p.DownPayment != nil {
		down = *p.DownPayment
	}
	term := domain.EstimateTermMonths
	if p.TermMonths != nil {
		term = *p.TermMonths
	}
	apr := domain.EstimateAPR
	if p.APR != nil {
		apr = *p.APR
	}
	return VehicleEstimate{
		Vehicle:        v,
		DownPayment:    down,
		DownPaymentPct: downPct(down, v.Price),
		Quote:          domain.NewLoanQuote(v.Price, down, term, apr),
	}, nil
}

// SubmitFinancingRequest stores a pending request for the selected plan.
// A repeated idempotency key yields ErrConflict.
func (s *DealershipService) SubmitFinancingRequest(ctx context.Context, in FinancingSubmission, idem *string) (string, error) {
	in.CustomerName = strings.TrimSpace(in.CustomerName)
	in.Email = strings.TrimSpace(in.Email)
	if in.CustomerName == "" || in.Email == "" {
		return "", badRequest("customer name and email are required")
	}
	plans, err := s.currentPlans(ctx)
	if err != nil {
		return "", err
	}
	plan, _ := domain.SelectPlan(plans, in.TermMonths)
	if err := s.reserve(ctx, "financing", idem); err != nil {
		return "", err
	}
	req := domain.FinancingRequest{
		ID:           s.idgen.NewID(),
		CustomerName: in.CustomerName,
		Email:        in.Email,
		LoanAmount:   in.Price - in.DownPayment,
		DownPayment:  in.DownPayment,
		Term:         plan.Months,
		Status:       domain.FinancingStatusPending,
		CreatedAt:    s.clock.Now(),
	}
	if err := s.financing.Create(ctx, req); err != nil {
		return "", err
	}
	s.log.Info("financing_request.created", zap.String("id", req.ID), zap.Int("term", req.Term))
	return req.ID, nil
}

// ListFinancingRequests returns requests newest first, each with an estimate.
func (s *DealershipService) ListFinancingRequests(ctx context.Context) ([]FinancingReview, error) {
	reqs, err := s.financing.List(ctx)
	if err != nil {
		return nil, err
	}
	plans, err := s.currentPlans(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]FinancingReview, 0, len(reqs))
	for _, r := range reqs {
		q, plan, _ := r.Estimate(plans)
		out = append(out, FinancingReview{Request: r, Plan: plan, Estimate: q})
	}
	return out, nil
}

func (s *DealershipService) UpdateFinancingStatus(ctx context.Context, id, status string) error {
	st, err := domain.ParseFinancingStatus(status)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	if err := s.financing.UpdateStatus(ctx, id, st); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("update financing status: %w", err)
	}
	return nil
}
