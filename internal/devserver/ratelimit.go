package devserver

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"phonebook/internal/logging"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// clientLimiter applies a token bucket per client IP and periodically evicts
// idle entries.
type clientLimiter struct {
	limit   rate.Limit
	burst   int
	mu      sync.Mutex
	byKey   map[string]*limiterEntry
	hits    uint64
	idleTTL time.Duration
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// newClientLimiter returns nil (no limiting) when rps or burst is not positive.
func newClientLimiter(rps float64, burst int) *clientLimiter {
	if rps <= 0 || burst <= 0 {
		return nil
	}
	return &clientLimiter{
		limit:   rate.Limit(rps),
		burst:   burst,
		byKey:   make(map[string]*limiterEntry),
		idleTTL: 10 * time.Minute,
	}
}

// Allow reports whether one token can be consumed for key at now.
func (l *clientLimiter) Allow(key string, now time.Time) bool {
	if l == nil {
		return true
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.byKey[key]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.byKey[key] = e
	}
	e.lastSeen = now
	allowed := e.limiter.AllowN(now, 1)

	l.hits++
	if l.hits%512 == 0 {
		cutoff := now.Add(-l.idleTTL)
		for k, v := range l.byKey {
			if v.lastSeen.Before(cutoff) {
				delete(l.byKey, k)
			}
		}
	}
	return allowed
}

// middleware rejects over-limit clients with a GraphQL-shaped 429 body so
// GraphQL clients surface the message like any other server error.
func (l *clientLimiter) middleware(m *metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			if !l.Allow(ip, time.Now()) {
				m.rateLimited.Inc()
				logging.ServerWarn("rate limit exceeded for %s", ip)
				return c.JSON(http.StatusTooManyRequests, map[string]interface{}{
					"errors": []map[string]string{{"message": "rate limit exceeded"}},
				})
			}
			return next(c)
		}
	}
}
