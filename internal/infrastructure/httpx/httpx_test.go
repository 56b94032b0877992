package httpx

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"
)

type rtFunc func(*http.Request) (*http.Response, error)

func (f rtFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func httpClientRT(rt http.RoundTripper) *http.Client {
	return &http.Client{Transport: rt, Timeout: 2 * time.Second}
}

func TestDoJSON_Retry500Then200(t *testing.T) {
	var calls int
	rt := httpClientRT(rtFunc(func(r *http.Request) (*http.Response, error) {
		calls++
		if calls == 1 {
			return &http.Response{StatusCode: 500, Body: io.NopCloser(strings.NewReader("err")), Header: make(http.Header), Request: r}, nil
		}
		body := `{"ok": true}`
		return &http.Response{StatusCode: 200, Body: io.NopCloser(strings.NewReader(body)), Header: make(http.Header), Request: r}, nil
	}))
	type resp struct {
		OK bool `json:"ok"`
	}
	var out resp
	req, _ := http.NewRequest(http.MethodGet, "http://example.com", nil)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	c := &Client{HTTP: rt}
	if err := c.DoJSON(ctx, req, &out, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.OK {
		t.Fatalf("expected ok=true")
	}
	if calls < 2 {
		t.Fatalf("expected at least 2 calls, got %d", calls)
	}
}

type tempTimeoutErr struct{}

func (tempTimeoutErr) Error() string   { return "timeout" }
func (tempTimeoutErr) Timeout() bool   { return true }
func (tempTimeoutErr) Temporary() bool { return true }

func TestDoJSON_RetryNetTimeoutThen200(t *testing.T) {
	var calls int
	rt := httpClientRT(rtFunc(func(r *http.Request) (*http.Response, error) {
		calls++
		if calls == 1 {
			var ne net.Error = tempTimeoutErr{}
			return nil, ne
		}
		body := `{"ok": true}`
		return &http.Response{StatusCode: 200, Body: io.NopCloser(strings.NewReader(body)), Header: make(http.Header), Request: r}, nil
	}))
	type resp struct {
		OK bool `json:"ok"`
	}
	var out resp
	req, _ := http.NewRequest(http.MethodGet, "http://example.com", nil)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	c := &Client{HTTP: rt}
	if err := c.DoJSON(ctx, req, &out, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDoJSON_NoRetryOn400(t *testing.T) {
	var calls int
	rt := httpClientRT(rtFunc(func(r *http.Request) (*http.Response, error) {
		calls++
		return &http.Response{StatusCode: 400, Body: io.NopCloser(strings.NewReader("bad")), Header: make(http.Header), Request: r}, nil
	}))
	var out any
	req, _ := http.NewRequest(http.MethodGet, "http://example.com", nil)
	c := &Client{HTTP: rt}
	err := c.DoJSON(context.Background(), req, &out, nil)
	if err == nil {
		t.Fatalf("expected error")
	}
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}

func TestDoJSON_DecodeError_NoRetry(t *testing.T) {
	var calls int
	rt := httpClientRT(rtFunc(func(r *http.Request) (*http.Response, error) {
		calls++
		return &http.Response{StatusCode: 200, Body: io.NopCloser(bytes.NewBufferString("{x")), Header: make(http.Header), Request: r}, nil
	}))
	var out map[string]any
	req, _ := http.NewRequest(http.MethodGet, "http://example.com", nil)
	c := &Client{HTTP: rt}
	err := c.DoJSON(context.Background(), req, &out, nil)
	if err == nil || !strings.Contains(err.Error(), "decode") {
		t.Fatalf("expected decode error, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}

func TestDoJSON_SetsBearerAndReturnsStatusError(t *testing.T) {
	var auth string
	rt := httpClientRT(rtFunc(func(r *http.Request) (*http.Response, error) {
		auth = r.Header.Get("Authorization")
		return &http.Response{StatusCode: 404, Body: io.NopCloser(strings.NewReader("no sheet")), Header: make(http.Header), Request: r}, nil
	}))
	req, _ := http.NewRequest(http.MethodGet, "http://example.com/plans", nil)
	c := &Client{HTTP: rt, Token: "t0k"}
	var out any
	err := c.DoJSON(context.Background(), req, &out, nil)

	var se *StatusError
	if !errors.As(err, &se) || se.Code != 404 || se.Body != "no sheet" {
		t.Fatalf("expected StatusError 404, got %v", err)
	}
	if auth != "Bearer t0k" {
		t.Fatalf("expected bearer header, got %q", auth)
	}
}

func TestDoJSON_GivesUpAfterMaxElapsed(t *testing.T) {
	rt := httpClientRT(rtFunc(func(r *http.Request) (*http.Response, error) {
		return &http.Response{StatusCode: 503, Body: io.NopCloser(strings.NewReader("")), Header: make(http.Header), Request: r}, nil
	}))
	req, _ := http.NewRequest(http.MethodGet, "http://example.com", nil)
	c := &Client{HTTP: rt, MaxElapsed: 300 * time.Millisecond}
	var out any
	start := time.Now()
	err := c.DoJSON(context.Background(), req, &out, nil)
	if err == nil || !strings.Contains(err.Error(), "503") {
		t.Fatalf("expected server error, got %v", err)
	}
	if time.Since(start) > 2*time.Second {
		t.Fatalf("retry loop ran too long")
	}
}
