package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestQuote(t *testing.T) {
	out, err := run(t, "quote", "--price", "35000", "--down", "7000", "--term", "36", "--apr", "7.9")
	require.NoError(t, err)
	require.Contains(t, out, "28000.00")
	require.Contains(t, out, "7000.00 (20%)")
	require.Contains(t, out, "36 months @ 7.9%")
	require.Contains(t, out, "876.13 (876 rounded)")
	require.Contains(t, out, "31540.58")
	require.Contains(t, out, "3540.58")
}

func TestQuote_ZeroRateAndZeroPrice(t *testing.T) {
	out, err := run(t, "quote", "--price", "0", "--down", "0", "--term", "12", "--apr", "0")
	require.NoError(t, err)
	require.NotContains(t, out, "Down payment")
	require.Contains(t, out, "0.00 (0 rounded)")
}

func TestQuote_BadTerm(t *testing.T) {
	_, err := run(t, "quote", "--term", "0")
	require.ErrorIs(t, err, errBadTerm)
}

func TestQuote_NonFiniteFlags(t *testing.T) {
	for _, args := range [][]string{
		{"quote", "--price", "NaN"},
		{"quote", "--apr", "Inf"},
		{"quote", "--down", "-Inf"},
		{"plans", "--price", "NaN"},
	} {
		_, err := run(t, args...)
		require.ErrorIs(t, err, errNotFinite, "%v", args)
	}
}

func TestQuote_OverflowingTotals(t *testing.T) {
	out, err := run(t, "quote", "--price", "1.7e308", "--down", "0", "--term", "60", "--apr", "4.5")
	require.NoError(t, err)
	require.Contains(t, out, "Total payment")
	require.Regexp(t, `Total payment\s+0\.00\n`, out)
}

func TestPlans_BuiltIn(t *testing.T) {
	out, err := run(t, "plans")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	require.Contains(t, lines[1], "876.13")
	require.Contains(t, lines[1], "Popular")
	require.Contains(t, lines[2], "708.81")
	require.Contains(t, lines[4], "Lowest Monthly")
}

func TestPlans_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plans.yaml")
	require.NoError(t, os.WriteFile(path, []byte("plans:\n  - months: 24\n    apr: 0\n"), 0o600))
	out, err := run(t, "plans", "--price", "24000", "--down", "0", "--plans-file", path)
	require.NoError(t, err)
	require.Contains(t, out, "1000.00")
}

func TestPlans_MissingFile(t *testing.T) {
	_, err := run(t, "plans", "--plans-file", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
