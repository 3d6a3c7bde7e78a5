package middleware

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/time/rate"

	"databreach-registry/internal/handler/http/respond"
)

var rateLimitRejections = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_rate_limit_rejections_total",
		Help: "Requests rejected by a rate limiter",
	},
	[]string{"limiter"},
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter is a token bucket per client IP.
type RateLimiter struct {
	name      string
	limit     rate.Limit
	burst     int
	extractor IPExtractor
	filter    func(*http.Request) bool
	now       func() time.Time

	mu      sync.Mutex
	clients map[string]*clientLimiter
}

// RateLimiterConfig configures NewRateLimiter.
type RateLimiterConfig struct {
	Name      string  // metrics label
	RPS       float64 // sustained requests per second per client
	Burst     int
	Extractor IPExtractor
	// Filter selects the requests that are limited; nil limits all of them.
	Filter func(*http.Request) bool
}

// NewRateLimiter creates a per-client limiter.
func NewRateLimiter(cfg RateLimiterConfig) *RateLimiter {
	ex := cfg.Extractor
	if ex == nil {
		ex = RemoteAddrExtractor{}
	}
	return &RateLimiter{
		name:      cfg.Name,
		limit:     rate.Limit(cfg.RPS),
		burst:     cfg.Burst,
		extractor: ex,
		filter:    cfg.Filter,
		now:       time.Now,
		clients:   make(map[string]*clientLimiter),
	}
}

// Middleware rejects over-limit requests with 429 and a Retry-After header.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.filter != nil && !rl.filter(r) {
			next.ServeHTTP(w, r)
			return
		}

		ip, err := rl.extractor.ExtractIP(r)
		if err != nil {
			// an unparseable peer still shares one bucket
			ip = "unknown"
		}

		if ok, retry := rl.allow(ip); !ok {
			rateLimitRejections.WithLabelValues(rl.name).Inc()
			w.Header().Set("Retry-After", strconv.Itoa(retry))
			respond.JSON(w, http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) allow(key string) (bool, int) {
	now := rl.now()

	rl.mu.Lock()
	c, ok := rl.clients[key]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[key] = c
	}
	c.lastSeen = now
	rl.mu.Unlock()

	res := c.limiter.ReserveN(now, 1)
	if !res.OK() {
		return false, 1
	}
	delay := res.DelayFrom(now)
	if delay == 0 {
		return true, 0
	}
	res.CancelAt(now)
	return false, int(math.Ceil(delay.Seconds()))
}

// Len returns the number of tracked clients.
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.clients)
}

// Evict drops clients idle for longer than idle and returns how many were removed.
func (rl *RateLimiter) Evict(idle time.Duration) int {
	cutoff := rl.now().Add(-idle)

	rl.mu.Lock()
	defer rl.mu.Unlock()
	removed := 0
	for k, c := range rl.clients {
		if c.lastSeen.Before(cutoff) {
			delete(rl.clients, k)
			removed++
		}
	}
	return removed
}

// RunCleanup evicts idle clients every interval until ctx is done.
func (rl *RateLimiter) RunCleanup(ctx context.Context, interval, idle time.Duration, logger *slog.Logger) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := rl.Evict(idle); n > 0 {
				logger.Debug("rate limiter cleanup",
					slog.String("limiter", rl.name),
					slog.Int("evicted", n),
					slog.Int("remaining", rl.Len()))
			}
		}
	}
}
