package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/swiftfreight/forwarding-backend/pkg/logging"
)

// RedisRateLimiter enforces a fixed-window per-IP limit backed by Redis so
// that the limit holds across replicas. When Redis is unreachable requests
// are allowed through; intake must not go down with the cache.
type RedisRateLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
	logger *logging.Logger
}

// NewRedisRateLimiter creates a limiter allowing limit requests per window
// for each client IP.
func NewRedisRateLimiter(client *redis.Client, limit int64, window time.Duration, logger *logging.Logger) *RedisRateLimiter {
	if logger == nil {
		logger = logging.Default()
	}
	return &RedisRateLimiter{client: client, limit: limit, window: window, logger: logger}
}

// Allow reports whether the request from ip fits in the current window.
func (rl *RedisRateLimiter) Allow(ctx context.Context, ip string) bool {
	key := fmt.Sprintf("ratelimit:intake:%s", ip)
	count, err := rl.client.Incr(ctx, key).Result()
	if err != nil {
		rl.logger.Warn("rate limiter redis unavailable, allowing request", "error", err)
		return true
	}
	if count == 1 {
		if err := rl.client.Expire(ctx, key, rl.window).Err(); err != nil {
			rl.logger.Warn("rate limiter expire failed", "key", key, "error", err)
		}
	}
	return count <= rl.limit
}

// Middleware rejects over-limit requests with 429 Too Many Requests.
func (rl *RedisRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := r.RemoteAddr
		if xri := r.Header.Get("X-Real-Ip"); xri != "" {
			ip = xri
		}
		if !rl.Allow(r.Context(), ip) {
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
