package middleware

import (
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"

	"mindscreen/internal/cache"
)

// RateLimitMiddleware enforces the per-IP request budget on submission
// routes and sets the X-RateLimit-* headers on every response it sees.
type RateLimitMiddleware struct {
	limiter cache.RateLimiter
}

// NewRateLimitMiddleware creates a new rate-limit middleware
func NewRateLimitMiddleware(limiter cache.RateLimiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{limiter: limiter}
}

// Limit wraps a handler with the per-IP limiter. Limiter backend errors
// fail open: scoring must stay available even when Redis is not.
func (m *RateLimitMiddleware) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		decision, err := m.limiter.Enforce(r.Context(), ClientIP(r))
		if err != nil {
			log.Printf("ratelimit: enforce failed, allowing request: %v", err)
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", decision.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", int(decision.ResetIn.Seconds())))

		if !decision.Allowed {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":"too many requests"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ClientIP resolves the caller's address, preferring the first
// X-Forwarded-For hop. Falls back to the limiter's sentinel when
// nothing usable is present.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first := strings.TrimSpace(strings.Split(fwd, ",")[0])
		if first != "" {
			return first
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil || host == "" {
		return cache.UnknownClient
	}
	return host
}
