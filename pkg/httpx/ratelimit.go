package httpx

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hypolab/workspace/pkg/slogx"
	"golang.org/x/time/rate"
)

// Limit is a token bucket refilled at Requests per Window. The env tags let
// a config struct override a preset under its own prefix.
type Limit struct {
	Requests int           `env:"REQUESTS"`
	Window   time.Duration `env:"WINDOW"`
	Burst    int           `env:"BURST"`
}

// Presets, tightest first.
var (
	// StrictLimit guards token redemption.
	StrictLimit = Limit{Requests: 10, Window: time.Minute, Burst: 5}

	// PublicLimit guards unauthenticated lookups.
	PublicLimit = Limit{Requests: 30, Window: time.Minute, Burst: 10}

	// APILimit is the ceiling for authenticated calls.
	APILimit = Limit{Requests: 300, Window: time.Minute, Burst: 60}
)

func (l Limit) every() rate.Limit {
	if l.Requests <= 0 || l.Window <= 0 {
		return rate.Inf
	}
	return rate.Limit(float64(l.Requests) / l.Window.Seconds())
}

// KeyFunc groups requests into buckets. An empty key skips limiting.
type KeyFunc func(*http.Request) string

// ClientIP prefers the first X-Forwarded-For hop, then X-Real-IP, then the
// socket peer.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// UserOrIP buckets authenticated callers by subject and everyone else by IP.
func UserOrIP(r *http.Request) string {
	if id, ok := IdentityFromContext(r.Context()); ok && id.Subject != "" {
		return "user:" + id.Subject
	}
	return "ip:" + ClientIP(r)
}

type limiterEntry struct {
	limiter *rate.Limiter
	seen    time.Time
}

// Limiter hands out one token bucket per key and forgets idle keys.
type Limiter struct {
	limit Limit
	idle  time.Duration

	mu        sync.Mutex
	buckets   map[string]*limiterEntry
	lastSweep time.Time
	now       func() time.Time
}

func NewLimiter(l Limit) *Limiter {
	return &Limiter{
		limit:   l,
		idle:    10 * time.Minute,
		buckets: make(map[string]*limiterEntry),
		now:     time.Now,
	}
}

// Allow consumes a token for key. When denied it also returns how long until
// the next token.
func (rl *Limiter) Allow(key string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.sweep(now)

	e, ok := rl.buckets[key]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(rl.limit.every(), max(rl.limit.Burst, 1))}
		rl.buckets[key] = e
	}
	e.seen = now

	if e.limiter.AllowN(now, 1) {
		return true, 0
	}

	res := e.limiter.ReserveN(now, 1)
	delay := res.DelayFrom(now)
	res.CancelAt(now)
	return false, delay
}

func (rl *Limiter) sweep(now time.Time) {
	if now.Sub(rl.lastSweep) < rl.idle {
		return
	}
	rl.lastSweep = now
	for k, e := range rl.buckets {
		if now.Sub(e.seen) > rl.idle {
			delete(rl.buckets, k)
		}
	}
}

// RateLimit rejects requests over l with 429 and a Retry-After header.
func RateLimit(l Limit, key KeyFunc) Middleware {
	rl := NewLimiter(l)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			k := key(r)
			if k == "" {
				next.ServeHTTP(w, r)
				return
			}

			ok, delay := rl.Allow(k)
			if ok {
				next.ServeHTTP(w, r)
				return
			}

			retryAfter := max(int(delay.Round(time.Second).Seconds()), 1)
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))

			slogx.FromContext(r.Context()).Warn("rate limit exceeded",
				slog.String("key", k),
				slog.Int("retry_after", retryAfter),
			)

			WriteError(w, http.StatusTooManyRequests, "rate_limited", "too many requests, try again later")
		})
	}
}
