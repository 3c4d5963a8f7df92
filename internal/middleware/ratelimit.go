// AngelaMos | 2026
// ratelimit.go

package middleware

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	redis_rate "github.com/go-redis/redis_rate/v10"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/carterperez-dev/recraft/internal/config"
	"github.com/carterperez-dev/recraft/internal/core"
)

const throttlePrefix = "recraft:throttle:"

// ThrottleConfig names a bucket family and how requests map onto it.
// Name prefixes every key, so two throttles never share a bucket.
type ThrottleConfig struct {
	Name  string
	Limit redis_rate.Limit
	Key   func(*http.Request) string
}

// Throttle counts requests in Redis so every replica sees the same buckets.
// While Redis is down each process keeps its own buckets instead.
type Throttle struct {
	redis *redis_rate.Limiter
	local *localBuckets
	cfg   ThrottleConfig
}

func NewThrottle(rdb *redis.Client, cfg ThrottleConfig) *Throttle {
	if cfg.Key == nil {
		cfg.Key = ClientKey
	}
	if cfg.Name == "" {
		cfg.Name = "default"
	}

	return &Throttle{
		redis: redis_rate.NewLimiter(rdb),
		local: newLocalBuckets(),
		cfg:   cfg,
	}
}

// GlobalThrottle caps every app route per client address.
func GlobalThrottle(rdb *redis.Client, cfg config.RateLimitConfig) *Throttle {
	return NewThrottle(rdb, ThrottleConfig{
		Name: "global",
		Limit: redis_rate.Limit{
			Rate:   cfg.Requests,
			Burst:  cfg.Burst,
			Period: cfg.Window,
		},
	})
}

// AuthThrottle caps register and login per client address and route, with
// no burst above the window allowance.
func AuthThrottle(rdb *redis.Client, cfg config.RateLimitConfig) *Throttle {
	return NewThrottle(rdb, ThrottleConfig{
		Name: "auth",
		Limit: redis_rate.Limit{
			Rate:   cfg.AuthRequests,
			Burst:  cfg.AuthRequests,
			Period: cfg.Window,
		},
		Key: RouteKey,
	})
}

func (t *Throttle) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := throttlePrefix + t.cfg.Name + ":" + t.cfg.Key(r)

		res, err := t.redis.Allow(r.Context(), key, t.cfg.Limit)
		if err != nil {
			slog.Warn("throttle using local buckets",
				"throttle", t.cfg.Name,
				"error", err,
			)
			res = t.local.allow(key, t.cfg.Limit)
		}

		writeLimitHeaders(w, t.cfg.Limit, res)

		if res.Allowed == 0 {
			core.RequestsThrottled.WithLabelValues(t.cfg.Name).Inc()
			rejectThrottled(w, res.RetryAfter)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// ClientKey identifies the caller by address. Behind a proxy the last
// X-Forwarded-For hop is the one the proxy itself appended.
func ClientKey(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		hops := strings.Split(xff, ",")
		return "ip:" + strings.TrimSpace(hops[len(hops)-1])
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return "ip:" + xri
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}

// RouteKey gives each client one bucket per route. The chi pattern is used
// when routing has resolved one; otherwise ids in the raw path collapse.
func RouteKey(r *http.Request) string {
	route := ""
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		route = rctx.RoutePattern()
	}
	if route == "" {
		route = routeTemplate(r.URL.Path)
	}
	return ClientKey(r) + ":route:" + route
}

func routeTemplate(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i, s := range segments {
		if isIDSegment(s) {
			segments[i] = "{id}"
		}
	}
	return "/" + strings.Join(segments, "/")
}

func isIDSegment(s string) bool {
	if _, err := uuid.Parse(s); err == nil {
		return true
	}
	_, err := strconv.ParseUint(s, 10, 64)
	return err == nil
}

func writeLimitHeaders(w http.ResponseWriter, limit redis_rate.Limit, res *redis_rate.Result) {
	reset := res.ResetAfter
	if reset < 0 {
		reset = 0
	}

	h := w.Header()
	h.Set("X-RateLimit-Limit", strconv.Itoa(limit.Rate))
	h.Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
	h.Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(reset).Unix(), 10))
}

func rejectThrottled(w http.ResponseWriter, retryAfter time.Duration) {
	secs := int(retryAfter.Round(time.Second) / time.Second)
	if secs < 1 {
		secs = 1
	}

	w.Header().Set("Retry-After", strconv.Itoa(secs))
	core.JSON(w, http.StatusTooManyRequests, core.ErrorResponse{
		Message: fmt.Sprintf("Too many requests. Try again in %d seconds.", secs),
		Code:    "RATE_LIMITED",
	})
}

const (
	bucketIdleTTL    = 10 * time.Minute
	bucketSweepEvery = 5 * time.Minute
)

type localBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// localBuckets is the per process stand-in for Redis. Idle buckets are
// swept on access instead of by a background goroutine.
type localBuckets struct {
	mu        sync.Mutex
	buckets   map[string]*localBucket
	lastSweep time.Time
}

func newLocalBuckets() *localBuckets {
	return &localBuckets{
		buckets:   make(map[string]*localBucket),
		lastSweep: time.Now(),
	}
}

func (l *localBuckets) allow(key string, limit redis_rate.Limit) *redis_rate.Result {
	perSec := float64(limit.Rate) / limit.Period.Seconds()
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) > bucketSweepEvery {
		for k, b := range l.buckets {
			if now.Sub(b.lastSeen) > bucketIdleTTL {
				delete(l.buckets, k)
			}
		}
		l.lastSweep = now
	}

	b, ok := l.buckets[key]
	if !ok {
		b = &localBucket{limiter: rate.NewLimiter(rate.Limit(perSec), limit.Burst)}
		l.buckets[key] = b
	}
	b.lastSeen = now

	res := &redis_rate.Result{Limit: limit, RetryAfter: -1}
	if b.limiter.AllowN(now, 1) {
		res.Allowed = 1
	}

	tokens := b.limiter.TokensAt(now)
	if tokens > 0 {
		res.Remaining = int(tokens)
	}

	refill := time.Duration((1 - tokens) / perSec * float64(time.Second))
	if res.Allowed == 0 {
		res.RetryAfter = refill
	}
	res.ResetAfter = time.Duration((float64(limit.Burst) - tokens) / perSec * float64(time.Second))
	return res
}

// PerMinute is a convenience for fixed one minute windows.
func PerMinute(rate, burst int) redis_rate.Limit {
	return redis_rate.Limit{Rate: rate, Burst: burst, Period: time.Minute}
}
