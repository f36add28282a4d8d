package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/GuranshBedi/Backendd/internal/config"
	"github.com/GuranshBedi/Backendd/internal/logging"
)

const redisTimeout = 2 * time.Second

// RateLimiter caps requests per client address on sensitive routes. With a
// redis client it counts in a shared fixed window so every instance sees the
// same budget; without one, or while redis is unreachable, it falls back to a
// token bucket per address in this process.
type RateLimiter struct {
	limit  int
	window time.Duration
	redis  redis.UniversalClient
	logger *slog.Logger

	mu      sync.Mutex
	buckets map[string]*ipLimiter
}

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewRateLimiter(cfg config.RateLimitConfig, client redis.UniversalClient, logger *slog.Logger) *RateLimiter {
	if logger == nil {
		logger = slog.Default()
	}
	window := cfg.AuthWindow
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{
		limit:   cfg.AuthLimit,
		window:  window,
		redis:   client,
		logger:  logging.WithComponent(logger, "ratelimit"),
		buckets: make(map[string]*ipLimiter),
	}
}

// Limit wraps a handler group under the named scope.
func (rl *RateLimiter) Limit(scope string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := scope + ":" + clientIP(r)
			allowed, retryAfter := rl.Allow(r.Context(), key)
			if !allowed {
				seconds := int(retryAfter.Round(time.Second) / time.Second)
				if seconds < 1 {
					seconds = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(seconds))
				writeJSONError(w, http.StatusTooManyRequests, "Too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (rl *RateLimiter) Allow(ctx context.Context, key string) (bool, time.Duration) {
	if rl == nil || rl.limit <= 0 {
		return true, 0
	}
	if rl.redis != nil {
		allowed, retryAfter, err := rl.allowRedis(ctx, key)
		if err == nil {
			return allowed, retryAfter
		}
		rl.logger.Warn("redis rate limit unavailable, using local buckets", "error", err)
	}
	return rl.allowLocal(key)
}

func (rl *RateLimiter) allowRedis(ctx context.Context, key string) (bool, time.Duration, error) {
	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()

	redisKey := fmt.Sprintf("backendd:ratelimit:%s", key)
	count, err := rl.redis.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, 0, err
	}
	if count == 1 {
		if err := rl.redis.Expire(ctx, redisKey, rl.window).Err(); err != nil {
			return false, 0, err
		}
	}
	if count <= int64(rl.limit) {
		return true, 0, nil
	}
	ttl, err := rl.redis.TTL(ctx, redisKey).Result()
	if err != nil {
		return false, 0, err
	}
	if ttl < 0 {
		// key lost its expiry; restore it so the window can close
		rl.redis.Expire(ctx, redisKey, rl.window)
		ttl = rl.window
	}
	return false, ttl, nil
}

func (rl *RateLimiter) allowLocal(key string) (bool, time.Duration) {
	rl.mu.Lock()
	entry, ok := rl.buckets[key]
	if !ok {
		every := rate.Limit(float64(rl.limit) / rl.window.Seconds())
		entry = &ipLimiter{limiter: rate.NewLimiter(every, rl.limit)}
		rl.buckets[key] = entry
	}
	entry.lastSeen = time.Now()
	rl.cleanupLocked()
	rl.mu.Unlock()

	reservation := entry.limiter.Reserve()
	if delay := reservation.Delay(); delay > 0 {
		reservation.Cancel()
		return false, delay
	}
	return true, 0
}

func (rl *RateLimiter) cleanupLocked() {
	cutoff := time.Now().Add(-2 * rl.window)
	for key, limiter := range rl.buckets {
		if limiter.lastSeen.Before(cutoff) {
			delete(rl.buckets, key)
		}
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
