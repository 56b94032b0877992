package provider_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"autoelite/internal/domain"
	"autoelite/internal/infrastructure/provider"

	"github.com/stretchr/testify/require"
)

type countingSource struct {
	calls int
	plans []domain.FinancePlan
	err   error
}

func (c *countingSource) Plans(context.Context) ([]domain.FinancePlan, error) {
	c.calls++
	return c.plans, c.err
}

func TestStatic_DefaultsAndCopy(t *testing.T) {
	plans, err := provider.Static{}.Plans(context.Background())
	require.NoError(t, err)
	require.Equal(t, domain.DefaultPlans(), plans)

	sheet := []domain.FinancePlan{{Months: 24, APR: 3}}
	s := provider.Static{Sheet: sheet}
	got, _ := s.Plans(context.Background())
	got[0].APR = 99
	require.InDelta(t, 3, sheet[0].APR, 1e-9)
}

const sheetYAML = `
plans:
  - months: 60
    apr: 5.5
  - months: 24
    apr: 2.9
    label: Short
    popular: true
`

func TestFile_ParsesAndSorts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plans.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sheetYAML), 0o600))

	plans, err := provider.File{Path: path}.Plans(context.Background())
	require.NoError(t, err)
	require.Equal(t, []domain.FinancePlan{
		{Months: 24, APR: 2.9, Label: "Short", Popular: true},
		{Months: 60, APR: 5.5},
	}, plans)
}

func TestParseYAML_Rejects(t *testing.T) {
	cases := map[string]string{
		"empty":     "plans: []",
		"zero term": "plans:\n  - months: 0\n    apr: 1",
		"negative":  "plans:\n  - months: 12\n    apr: -1",
		"nan apr":   "plans:\n  - months: 12\n    apr: .nan",
		"inf apr":   "plans:\n  - months: 12\n    apr: .inf",
		"duplicate": "plans:\n  - months: 12\n    apr: 1\n  - months: 12\n    apr: 2",
		"malformed": "plans: [",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := provider.ParseYAML([]byte(raw))
			require.Error(t, err)
		})
	}
	_, err := provider.ParseYAML([]byte("plans: []"))
	require.ErrorIs(t, err, provider.ErrEmptySheet)
}

func TestFile_Missing(t *testing.T) {
	_, err := provider.File{Path: filepath.Join(t.TempDir(), "nope.yaml")}.Plans(context.Background())
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestFallback(t *testing.T) {
	primary := &countingSource{err: errors.New("down")}
	f := &provider.Fallback{Primary: primary, Secondary: provider.Static{}}

	plans, err := f.Plans(context.Background())
	require.NoError(t, err)
	require.Len(t, plans, 4)
	require.Equal(t, 1, primary.calls)
}

func TestCached_RefreshesAfterTTL(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	src := &countingSource{plans: []domain.FinancePlan{{Months: 12, APR: 1}}}
	c := &provider.Cached{Source: src, TTL: time.Minute, Now: func() time.Time { return now }}
	ctx := context.Background()

	_, err := c.Plans(ctx)
	require.NoError(t, err)
	_, err = c.Plans(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, src.calls)

	now = now.Add(2 * time.Minute)
	_, err = c.Plans(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, src.calls)
}

func TestCached_DoesNotCacheErrors(t *testing.T) {
	src := &countingSource{err: errors.New("boom")}
	c := &provider.Cached{Source: src, TTL: time.Hour}

	_, err := c.Plans(context.Background())
	require.Error(t, err)
	_, err = c.Plans(context.Background())
	require.Error(t, err)
	require.Equal(t, 2, src.calls)
}
