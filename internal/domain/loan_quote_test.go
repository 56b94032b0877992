package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_ComputeMonthlyPayment_Standard(t *testing.T) {
	t.Parallel()
	got := ComputeMonthlyPayment(35000, 7000, 36, 7.9)

	r := 7.9 / 100 / 12
	g := math.Pow(1+r, 36)
	want := 28000 * r * g / (g - 1)
	require.InDelta(t, want, got, 1e-9)
	require.InDelta(t, 876.1, got, 0.5)
}

func Test_ComputeMonthlyPayment_ZeroRateIsLinear(t *testing.T) {
	t.Parallel()
	got := ComputeMonthlyPayment(30000, 5000, 60, 0)
	require.InDelta(t, 25000.0/60, got, 1e-9)
}

func Test_ComputeMonthlyPayment_ZeroPrincipal(t *testing.T) {
	t.Parallel()
	for _, apr := range []float64{0, 4.5, 7.9, 13.9} {
		require.Zero(t, ComputeMonthlyPayment(20000, 20000, 48, apr), "apr %v", apr)
	}
}

func Test_ComputeMonthlyPayment_NonFiniteIsZero(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name  string
		price float64
		down  float64
		term  int
		apr   float64
	}{
		{"zero term", 10000, 0, 0, 7.9},
		{"zero term zero rate", 10000, 0, 0, 0},
		{"zero everything", 0, 0, 0, 0},
		{"overflow", math.MaxFloat64, 0, 60, 1e6},
	}
	for _, c := range cases {
		got := ComputeMonthlyPayment(c.price, c.down, c.term, c.apr)
		require.False(t, math.IsNaN(got), c.name)
		require.False(t, math.IsInf(got, 0), c.name)
		require.Zero(t, got, c.name)
	}
}

func Test_ComputeMonthlyPayment_RateExtremes(t *testing.T) {
	t.Parallel()
	// a rate too small to move (1+r)^n still amortizes, close to linear
	require.InDelta(t, 28000.0/60, ComputeMonthlyPayment(28000, 0, 60, 1e-14), 1e-6)

	// a rate large enough to overflow (1+r)^n converges on principal*r
	r := 1e7 / 100 / 12
	require.InDelta(t, 28000*r, ComputeMonthlyPayment(28000, 0, 100, 1e7), 1e-3)
}

func Test_NewLoanQuote_OverflowingTotalsAreZero(t *testing.T) {
	t.Parallel()
	q := NewLoanQuote(1.7e308, 0, 60, 4.5)
	require.Greater(t, q.MonthlyPayment, 0.0)
	require.False(t, math.IsInf(q.MonthlyPayment, 0))
	require.Zero(t, q.TotalPayment)
	require.Zero(t, q.TotalInterest)

	q = NewLoanQuote(math.MaxFloat64, -math.MaxFloat64, 60, 4.5)
	require.Zero(t, q.Principal)
	require.Zero(t, q.MonthlyPayment)
}

func Test_ComputeMonthlyPayment_NegativePrincipalPassesThrough(t *testing.T) {
	t.Parallel()
	got := ComputeMonthlyPayment(10000, 12000, 36, 7.9)
	require.Less(t, got, 0.0)
	require.InDelta(t, -ComputeMonthlyPayment(12000, 10000, 36, 7.9), got, 1e-9)
}

func Test_ComputeMonthlyPayment_PositiveForPositiveRate(t *testing.T) {
	t.Parallel()
	for _, price := range []float64{1000, 35000, 250000} {
		for _, frac := range []float64{0, 0.1, 0.5, 0.99} {
			for _, term := range []int{36, 48, 60, 72} {
				for _, apr := range []float64{4.5, 7.9, 9.9, 11.9, 13.9} {
					q := NewLoanQuote(price, price*frac, term, apr)
					require.Greater(t, q.MonthlyPayment, 0.0)
					require.InDelta(t, q.MonthlyPayment*float64(term), q.TotalPayment, 1e-6)
					require.Greater(t, q.TotalInterest, 0.0)
				}
			}
		}
	}
}

func Test_ComputeMonthlyPayment_Deterministic(t *testing.T) {
	t.Parallel()
	a := ComputeMonthlyPayment(42000, 8400, 60, 4.5)
	b := ComputeMonthlyPayment(42000, 8400, 60, 4.5)
	require.Equal(t, math.Float64bits(a), math.Float64bits(b))
}

func Test_NewLoanQuote_Totals(t *testing.T) {
	t.Parallel()
	q := NewLoanQuote(35000, 7000, 36, 7.9)
	require.Equal(t, 28000.0, q.Principal)
	require.Equal(t, 36, q.TermMonths)
	require.Equal(t, q.MonthlyPayment*36, q.TotalPayment)
	require.Equal(t, q.TotalPayment-28000, q.TotalInterest)
	require.Equal(t, int64(math.Round(q.MonthlyPayment)), q.RoundedMonthly())
}

func Test_NewLoanQuote_ZeroRateHasNoInterest(t *testing.T) {
	t.Parallel()
	q := NewLoanQuote(30000, 5000, 60, 0)
	require.InDelta(t, 25000, q.TotalPayment, 1e-6)
	require.InDelta(t, 0, q.TotalInterest, 1e-6)
	require.Equal(t, int64(417), q.RoundedMonthly())
}

func Test_DownPaymentPercent(t *testing.T) {
	t.Parallel()
	pct, ok := DownPaymentPercent(7000, 35000)
	require.True(t, ok)
	require.Equal(t, 20.0, pct)

	_, ok = DownPaymentPercent(1000, 0)
	require.False(t, ok)

	_, ok = DownPaymentPercent(1e308, 1e-308)
	require.False(t, ok)
}
