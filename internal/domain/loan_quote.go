package domain

import "math"

// LoanQuote is a fixed-rate amortizing loan and the figures derived from it.
// It is a value: callers build one per input change and never share it.
type LoanQuote struct {
	Principal         float64
	AnnualRatePercent float64
	TermMonths        int
	MonthlyPayment    float64
	TotalPayment      float64
	TotalInterest     float64
}

// ComputeMonthlyPayment returns the fixed monthly installment for financing
// price-downPayment over termMonths at annualRatePercent (7.9 means 7.9%).
//
// A zero rate falls back to linear division of the principal. Any result that
// is not finite is reported as 0. A down payment above the price yields a
// negative installment, which is returned as is.
func ComputeMonthlyPayment(price, downPayment float64, termMonths int, annualRatePercent float64) float64 {
	principal := price - downPayment
	r := annualRatePercent / 100 / 12
	n := float64(termMonths)

	var payment float64
	switch {
	case r == 0:
		payment = principal / n
	case r > -1:
		// P*r*g/(g-1) with g = (1+r)^n, rewritten as P*r/(1-g^-n) so that
		// neither a tiny rate nor a huge one loses the result.
		payment = principal * r / -math.Expm1(-n*math.Log1p(r))
	default:
		growth := math.Pow(1+r, n)
		payment = principal * r * growth / (growth - 1)
	}
	return finiteOrZero(payment)
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// NewLoanQuote computes the monthly payment once and derives the totals from
// the unrounded figure. Totals that overflow are reported as 0, like the
// payment itself.
func NewLoanQuote(price, downPayment float64, termMonths int, annualRatePercent float64) LoanQuote {
	monthly := ComputeMonthlyPayment(price, downPayment, termMonths, annualRatePercent)
	principal := finiteOrZero(price - downPayment)
	var total, interest float64
	if t := monthly * float64(termMonths); !math.IsInf(t, 0) {
		total = t
		interest = finiteOrZero(total - principal)
	}
	return LoanQuote{
		Principal:         principal,
		AnnualRatePercent: annualRatePercent,
		TermMonths:        termMonths,
		MonthlyPayment:    monthly,
		TotalPayment:      total,
		TotalInterest:     interest,
	}
}

// RoundedMonthly is the monthly payment as displayed: nearest whole unit.
func (q LoanQuote) RoundedMonthly() int64 { return int64(math.Round(q.MonthlyPayment)) }

// DownPaymentPercent returns the down payment as a whole percentage of price.
// ok is false when price is 0, where the ratio is undefined, or when the
// ratio overflows.
func DownPaymentPercent(downPayment, price float64) (pct float64, ok bool) {
	if price == 0 {
		return 0, false
	}
	pct = math.Round(downPayment / price * 100)
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return 0, false
	}
	return pct, true
}
