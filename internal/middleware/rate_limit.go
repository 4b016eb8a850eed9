package middleware

import (
	"net"
	"net/http"
	"sync"

	"golang.org/x/time/rate"

	"github.com/tutorialhub/backend/internal/api/httpx"
)

// limiterCache keeps one token bucket per client key. The map is cleared
// wholesale when it grows past maxEntries; losing bucket state under memory
// pressure is acceptable for a best-effort limiter.
type limiterCache struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
}

const maxEntries = 10000

func newLimiterCache(rps float64, burst int) *limiterCache {
	return &limiterCache{
		limiters: make(map[string]*rate.Limiter),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
}

func (lc *limiterCache) get(key string) *rate.Limiter {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	if len(lc.limiters) > maxEntries {
		lc.limiters = make(map[string]*rate.Limiter)
	}
	l, ok := lc.limiters[key]
	if !ok {
		l = rate.NewLimiter(lc.rps, lc.burst)
		lc.limiters[key] = l
	}
	return l
}

func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// RateLimitPerIP allows rps requests per second per client IP with the given
// burst, answering 429 beyond that.
func RateLimitPerIP(rps float64, burst int) func(http.Handler) http.Handler {
	if rps <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	cache := newLimiterCache(rps, burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cache.get(clientIP(r)).Allow() {
				httpx.WriteError(w, http.StatusTooManyRequests, "too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
