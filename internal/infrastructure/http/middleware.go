package httpserver

import (
	"context"
	"crypto/subtle"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	infraconfig "autoelite/internal/infrastructure/config"
	"autoelite/internal/infrastructure/logx"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type contextKey string

const requestIDKey contextKey = "request_id"
const traceIDKey contextKey = "trace_id"

func requestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rid := r.Header.Get("X-Request-ID")
			if rid == "" {
				rid = uuid.NewString()
			}
			w.Header().Set("X-Request-ID", rid)
			ctx := context.WithValue(r.Context(), requestIDKey, rid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func traceID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tid := r.Header.Get("X-Trace-Id")
			if tid == "" {
				tid = uuid.NewString()
			}
			w.Header().Set("X-Trace-Id", tid)
			ctx := context.WithValue(r.Context(), traceIDKey, tid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// requestLogger puts a logger tagged with the request and trace ids into the context.
func requestLogger() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rid, _ := r.Context().Value(requestIDKey).(string)
			tid, _ := r.Context().Value(traceIDKey).(string)
			l := logx.L().With(zap.String("request_id", rid), zap.String("trace_id", tid))
			next.ServeHTTP(w, r.WithContext(logx.Into(r.Context(), l)))
		})
	}
}

func recoverer() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logx.From(r.Context()).Error("panic recovered", zap.Any("error", rec))
					writeError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	if sr.status == 0 {
		sr.status = http.StatusOK
	}
	n, err := sr.ResponseWriter.Write(b)
	sr.bytes += n
	return n, err
}

func accessLog() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sr := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(sr, r)
			logx.From(r.Context()).Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", sr.status),
				zap.Int("bytes", sr.bytes),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}

// compress gzips responses for clients that accept it.
func compress(next http.Handler) http.Handler {
	wrapper, err := gzhttp.NewWrapper(gzhttp.MinSize(512))
	if err != nil {
		return gzhttp.GzipHandler(next)
	}
	return wrapper(next)
}

// clientLimiter holds one token bucket per client address. Buckets idle for
// longer than idleTTL are evicted by a background sweep until Stop.
type clientLimiter struct {
	mu         sync.Mutex
	limiters   map[string]*clientBucket
	limit      rate.Limit
	burst      int
	trustProxy bool
	idleTTL    time.Duration
	now        func() time.Time

	stopOnce sync.Once
	done     chan struct{}
}

type clientBucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

func newClientLimiter(rps float64, burst int, trustProxy bool) *clientLimiter {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	if burst <= 0 {
		burst = 1
	}
	c := &clientLimiter{
		limiters:   map[string]*clientBucket{},
		limit:      limit,
		burst:      burst,
		trustProxy: trustProxy,
		idleTTL:    infraconfig.DefaultLimiterIdleTTL,
		now:        time.Now,
		done:       make(chan struct{}),
	}
	if limit != rate.Inf {
		go c.sweepEvery(infraconfig.DefaultLimiterSweep)
	}
	return c
}

func (c *clientLimiter) sweepEvery(every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-c.done:
			return
		case <-t.C:
			c.sweep()
		}
	}
}

// sweep drops buckets not used within idleTTL. Such a bucket has refilled,
// so recreating it later changes nothing for the client.
func (c *clientLimiter) sweep() int {
	cutoff := c.now().Add(-c.idleTTL)
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for k, b := range c.limiters {
		if b.lastSeen.Before(cutoff) {
			delete(c.limiters, k)
			n++
		}
	}
	return n
}

func (c *clientLimiter) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.limiters)
}

// Stop ends the background sweep. Safe to call more than once.
func (c *clientLimiter) Stop() { c.stopOnce.Do(func() { close(c.done) }) }

func (c *clientLimiter) get(key string) *rate.Limiter {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.limiters[key]
	if !ok {
		b = &clientBucket{lim: rate.NewLimiter(c.limit, c.burst)}
		c.limiters[key] = b
	}
	b.lastSeen = c.now()
	return b.lim
}

// clientKey is the peer address. Behind a trusted proxy it is the last
// X-Forwarded-For hop, the one the proxy itself appended.
func (c *clientLimiter) clientKey(r *http.Request) string {
	if c.trustProxy {
		if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
			hops := strings.Split(fwd, ",")
			if last := strings.TrimSpace(hops[len(hops)-1]); last != "" {
				return last
			}
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// Middleware rejects a client's requests beyond its rate with 429.
func (c *clientLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c.limit == rate.Inf {
			next.ServeHTTP(w, r)
			return
		}
		if !c.get(c.clientKey(r)).Allow() {
			retry := int(math.Ceil(1 / float64(c.limit)))
			w.Header().Set("Retry-After", strconv.Itoa(max(retry, 1)))
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(c.burst))
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// adminAuth requires the admin key in X-Admin-Key or a bearer token.
// An empty key locks the admin routes.
func adminAuth(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get("X-Admin-Key")
			if got == "" {
				got = strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			}
			if key == "" || subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
