package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"autoelite/internal/application"
	"autoelite/internal/domain"
	"autoelite/internal/infrastructure/provider"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	errBadTerm   = errors.New("--term must be positive")
	errNotFinite = errors.New("must be a finite number")
)

// requireFinite rejects NaN and infinite flag values, which pflag accepts.
func requireFinite(flags map[string]float64) error {
	for _, name := range []string{"price", "down", "apr"} {
		v, ok := flags[name]
		if ok && (math.IsNaN(v) || math.IsInf(v, 0)) {
			return fmt.Errorf("--%s %w", name, errNotFinite)
		}
	}
	return nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "autoquote",
		Short:         "Dealership loan calculator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newQuoteCmd(), newPlansCmd())
	return root
}

func newQuoteCmd() *cobra.Command {
	var (
		price, down, apr float64
		term             int
	)
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Quote a single loan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireFinite(map[string]float64{"price": price, "down": down, "apr": apr}); err != nil {
				return err
			}
			if term <= 0 {
				return errBadTerm
			}
			printQuote(cmd.OutOrStdout(), price, down, domain.NewLoanQuote(price, down, term, apr))
			return nil
		},
	}
	f := cmd.Flags()
	f.Float64Var(&price, "price", domain.DefaultQuotePrice, "vehicle price")
	f.Float64Var(&down, "down", domain.DefaultQuoteDownPayment, "down payment")
	f.IntVar(&term, "term", domain.EstimateTermMonths, "term in months")
	f.Float64Var(&apr, "apr", domain.EstimateAPR, "annual rate in percent")
	return cmd
}

func newPlansCmd() *cobra.Command {
	var (
		price, down float64
		plansFile   string
	)
	cmd := &cobra.Command{
		Use:   "plans",
		Short: "Compare every plan on the rate sheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireFinite(map[string]float64{"price": price, "down": down}); err != nil {
				return err
			}
			var src application.PlanProvider = provider.Static{}
			if plansFile != "" {
				src = provider.File{Path: plansFile}
			}
			plans, err := src.Plans(cmd.Context())
			if err != nil {
				return fmt.Errorf("load plans: %w", err)
			}
			printPlans(cmd.OutOrStdout(), domain.ComparePlans(price, down, plans))
			return nil
		},
	}
	f := cmd.Flags()
	f.Float64Var(&price, "price", domain.DefaultQuotePrice, "vehicle price")
	f.Float64Var(&down, "down", domain.DefaultQuoteDownPayment, "down payment")
	f.StringVar(&plansFile, "plans-file", "", "YAML rate sheet (built-in sheet when empty)")
	return cmd
}

func money(v float64) string { return decimal.NewFromFloat(v).StringFixed(2) }

func printQuote(w io.Writer, price, down float64, q domain.LoanQuote) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Principal\t%s\n", money(q.Principal))
	if pct, ok := domain.DownPaymentPercent(down, price); ok {
		fmt.Fprintf(tw, "Down payment\t%s (%s%%)\n", money(down), decimal.NewFromFloat(pct).String())
	}
	fmt.Fprintf(tw, "Term\t%d months @ %s%%\n", q.TermMonths, decimal.NewFromFloat(q.AnnualRatePercent).String())
	fmt.Fprintf(tw, "Monthly payment\t%s (%d rounded)\n", money(q.MonthlyPayment), q.RoundedMonthly())
	fmt.Fprintf(tw, "Total payment\t%s\n", money(q.TotalPayment))
	fmt.Fprintf(tw, "Total interest\t%s\n", money(q.TotalInterest))
	_ = tw.Flush()
}

func printPlans(w io.Writer, quotes []domain.PlanQuote) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "MONTHS\tAPR\tMONTHLY\tTOTAL\tINTEREST\tLABEL")
	for _, pq := range quotes {
		fmt.Fprintf(tw, "%d\t%s%%\t%s\t%s\t%s\t%s\n",
			pq.Plan.Months,
			decimal.NewFromFloat(pq.Plan.APR).String(),
			money(pq.Quote.MonthlyPayment),
			money(pq.Quote.TotalPayment),
			money(pq.Quote.TotalInterest),
			pq.Plan.Label,
		)
	}
	_ = tw.Flush()
}
