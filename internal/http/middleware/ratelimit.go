package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"jobboard/internal/auth"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Counter is the subset of redis commands the limiter needs.
// *redis.Client satisfies it.
type Counter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	TTL(ctx context.Context, key string) *redis.DurationCmd
}

type RateLimitConfig struct {
	Counter   Counter
	Limit     int
	Window    time.Duration
	KeyPrefix string
	Log       *zap.Logger
}

// RateLimit is a fixed-window limiter keyed by the authenticated caller,
// falling back to the client address. It lets requests through when the
// counter is unavailable.
func RateLimit(cfg RateLimitConfig) func(http.Handler) http.Handler {
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "jobboard:rl:"
	}
	if cfg.Log == nil {
		cfg.Log = zap.NewNop()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			key := cfg.KeyPrefix + clientKey(r)

			count, err := cfg.Counter.Incr(ctx, key).Result()
			if err != nil {
				cfg.Log.Warn("rate limit counter unavailable", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}
			// A key without a TTL (first hit, or an earlier Expire that
			// failed) is re-armed so the window always ends.
			ttl, ttlErr := cfg.Counter.TTL(ctx, key).Result()
			if count == 1 || (ttlErr == nil && ttl < 0) {
				if err := cfg.Counter.Expire(ctx, key, cfg.Window).Err(); err != nil {
					cfg.Log.Warn("rate limit window not armed", zap.String("key", key), zap.Error(err))
					next.ServeHTTP(w, r)
					return
				}
				ttl = cfg.Window
			}

			reset := 0
			if ttl > 0 {
				reset = int(ttl.Seconds())
			}
			remaining := cfg.Limit - int(count)
			if remaining < 0 {
				remaining = 0
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.Itoa(reset))

			if count > int64(cfg.Limit) {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", strconv.Itoa(reset))
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"message":         "rate limit exceeded",
					"retry_after_sec": reset,
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	if c, ok := auth.CallerFromContext(r.Context()); ok && c.ID != "" {
		return "user:" + c.ID
	}
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return "ip:" + strings.TrimSpace(strings.Split(xff, ",")[0])
	}
	return "ip:" + r.RemoteAddr
}
