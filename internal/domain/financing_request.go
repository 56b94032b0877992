package domain

import (
	"fmt"
	"time"
)

type FinancingStatus string

const (
	FinancingStatusPending  FinancingStatus = "pending"
	FinancingStatusReviewed FinancingStatus = "reviewed"
	FinancingStatusApproved FinancingStatus = "approved"
	FinancingStatusRejected FinancingStatus = "rejected"
)

// FinancingRequest is a customer's request to be contacted about a plan.
// LoanAmount is already net of DownPayment.
type FinancingRequest struct {
	ID           string
	CustomerName string
	Email        string
	LoanAmount   float64
	DownPayment  float64
	Term         int
	Status       FinancingStatus
	CreatedAt    time.Time
}

// Estimate quotes the request against the plan sheet APR for its term.
func (r FinancingRequest) Estimate(plans []FinancePlan) (LoanQuote, FinancePlan, bool) {
	plan, ok := SelectPlan(plans, r.Term)
	if !ok {
		return LoanQuote{}, FinancePlan{}, false
	}
	return NewLoanQuote(r.LoanAmount, 0, r.Term, plan.APR), plan, true
}

func ParseFinancingStatus(s string) (FinancingStatus, error) {
	switch st := FinancingStatus(s); st {
	case FinancingStatusPending, FinancingStatusReviewed, FinancingStatusApproved, FinancingStatusRejected:
		return st, nil
	}
	return "", fmt.Errorf("%w: financing status %q", ErrInvalidStatus, s)
}
