package domain

import "math"

// FinancePlan is one row of the dealership's rate sheet.
type FinancePlan struct {
	Months  int     `yaml:"months" json:"months"`
	APR     float64 `yaml:"apr" json:"apr"`
	Label   string  `yaml:"label,omitempty" json:"label,omitempty"`
	Popular bool    `yaml:"popular,omitempty" json:"popular,omitempty"`
}

// PlanQuote pairs a plan with the loan it produces for a given price and down payment.
type PlanQuote struct {
	Plan  FinancePlan
	Quote LoanQuote
}

// Financing page starting values.
const (
	DefaultQuotePrice       = 35000.0
	DefaultQuoteDownPayment = 7000.0
)

const (
	EstimateTermMonths    = 60
	EstimateAPR           = 4.5
	EstimateDownPaymentPc = 0.2
)

// DefaultPlans is the built-in rate sheet.
func DefaultPlans() []FinancePlan {
	return []FinancePlan{
		{Months: 36, APR: 7.9, Label: "Popular", Popular: true},
		{Months: 48, APR: 9.9},
		{Months: 60, APR: 11.9},
		{Months: 72, APR: 13.9, Label: "Lowest Monthly"},
	}
}

// ComparePlans quotes every plan against the same price and down payment.
func ComparePlans(price, downPayment float64, plans []FinancePlan) []PlanQuote {
	out := make([]PlanQuote, 0, len(plans))
	for _, p := range plans {
		out = append(out, PlanQuote{Plan: p, Quote: NewLoanQuote(price, downPayment, p.Months, p.APR)})
	}
	return out
}

// SelectPlan returns the plan for the given term, or the first plan when none matches.
// ok is false only for an empty sheet.
func SelectPlan(plans []FinancePlan, months int) (FinancePlan, bool) {
	if len(plans) == 0 {
		return FinancePlan{}, false
	}
	for _, p := range plans {
		if p.Months == months {
			return p, true
		}
	}
	return plans[0], true
}

// EstimateDownPayment is the default down payment offered on a vehicle page.
func EstimateDownPayment(price float64) float64 {
	return math.Round(price * EstimateDownPaymentPc)
}
