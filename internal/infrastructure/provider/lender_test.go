package provider_test

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"autoelite/internal/infrastructure/httpx"
	"autoelite/internal/infrastructure/provider"

	"github.com/stretchr/testify/require"
)

type rtFunc func(*http.Request) *http.Response

func (f rtFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r), nil }

func httpClient(resBody string, code int, seen *http.Request) *http.Client {
	return &http.Client{
		Timeout: 2 * time.Second,
		Transport: rtFunc(func(r *http.Request) *http.Response {
			if seen != nil {
				*seen = *r
			}
			return &http.Response{
				StatusCode: code,
				Body:       io.NopCloser(strings.NewReader(resBody)),
				Header:     make(http.Header),
				Request:    r,
			}
		}),
	}
}

const lenderOK = `{
  "success": true,
  "plans": [
    {"months": 72, "apr": 12.5, "label": "Lowest Monthly"},
    {"months": 36, "apr": 6.9, "label": "Popular", "popular": true}
  ]
}`

func TestLender_Plans(t *testing.T) {
	var seen http.Request
	l := &provider.Lender{
		BaseURL: "https://lender.example.com",
		Client:  &httpx.Client{HTTP: httpClient(lenderOK, 200, &seen), Token: "k"},
	}
	plans, err := l.Plans(context.Background())
	require.NoError(t, err)
	require.Len(t, plans, 2)
	require.Equal(t, 36, plans[0].Months)
	require.True(t, plans[0].Popular)
	require.InDelta(t, 12.5, plans[1].APR, 1e-9)
	require.Equal(t, "/v1/plans", seen.URL.Path)
	require.Equal(t, "Bearer k", seen.Header.Get("Authorization"))
}

func TestLender_APIError(t *testing.T) {
	body := `{"success": false, "error": {"code": 429, "info": "quota exceeded"}}`
	l := &provider.Lender{BaseURL: "https://lender.example.com", Client: &httpx.Client{HTTP: httpClient(body, 200, nil)}}

	_, err := l.Plans(context.Background())
	require.ErrorContains(t, err, "quota exceeded")
}

func TestLender_BadSheetAndConfig(t *testing.T) {
	l := &provider.Lender{BaseURL: "https://lender.example.com", Client: &httpx.Client{HTTP: httpClient(`{"success": true, "plans": []}`, 200, nil)}}
	_, err := l.Plans(context.Background())
	require.ErrorIs(t, err, provider.ErrEmptySheet)

	_, err = (&provider.Lender{}).Plans(context.Background())
	require.Error(t, err)
}

func TestLender_FallbackOn404(t *testing.T) {
	l := &provider.Lender{BaseURL: "https://lender.example.com", Client: &httpx.Client{HTTP: httpClient("missing", 404, nil)}}
	f := &provider.Fallback{Primary: l, Secondary: provider.Static{}}

	plans, err := f.Plans(context.Background())
	require.NoError(t, err)
	require.Len(t, plans, 4)
}
