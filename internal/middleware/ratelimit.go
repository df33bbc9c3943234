// Copyright (c) 2025-2026 Wind Space
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// limiterCache keeps one token-bucket limiter per client IP. The map is
// reset wholesale once it grows past maxEntries, trading a brief limit
// reset for bounded memory.
type limiterCache struct {
	mu         sync.Mutex
	limiters   map[string]*rate.Limiter
	rate       rate.Limit
	burst      int
	maxEntries int
}

func newLimiterCache(rps float64, burst int) *limiterCache {
	return &limiterCache{
		limiters:   make(map[string]*rate.Limiter),
		rate:       rate.Limit(rps),
		burst:      burst,
		maxEntries: 10000,
	}
}

func (lc *limiterCache) get(key string) *rate.Limiter {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	if limiter, ok := lc.limiters[key]; ok {
		return limiter
	}

	if len(lc.limiters) >= lc.maxEntries {
		lc.limiters = make(map[string]*rate.Limiter)
	}

	limiter := rate.NewLimiter(lc.rate, lc.burst)
	lc.limiters[key] = limiter
	return limiter
}

// GlobalRateLimiter applies a per-IP rate limit to unauthenticated API
// traffic.
type GlobalRateLimiter struct {
	cache *limiterCache
}

// NewGlobalRateLimiter creates a limiter allowing rps requests per second
// with the given burst per client IP.
func NewGlobalRateLimiter(rps float64, burst int) *GlobalRateLimiter {
	return &GlobalRateLimiter{cache: newLimiterCache(rps, burst)}
}

// Middleware returns the rate limiting middleware. Rejected requests get
// a JSON 429.
func (rl *GlobalRateLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.cache.get(clientIP(r)).Allow() {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", (time.Second).String())
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":"Rate limit exceeded"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP extracts the remote IP, relying on chi's RealIP middleware to
// have rewritten RemoteAddr from forwarding headers where applicable.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
