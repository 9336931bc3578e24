package security

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase/core"
	"github.com/redis/go-redis/v9"

	"institute-events/internal/i18n"
)

var suspiciousAgents = []string{"bot", "crawler", "spider", "scraper"}

type RateLimiter struct {
	redis  redis.Cmdable
	tr     *i18n.Translator
	limit  int64
	window time.Duration
}

func NewRateLimiter(redisClient redis.Cmdable, tr *i18n.Translator, limit int, window time.Duration) *RateLimiter {
	if limit <= 0 {
		limit = 10
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{redis: redisClient, tr: tr, limit: int64(limit), window: window}
}

func LoginKey(ip string) string {
	return fmt.Sprintf("ratelimit:login:%s", ip)
}

// Allow counts one attempt for key and reports whether it is within the
// limit. The window starts at the first attempt; a counter left without an
// expiry gets one on the next attempt. Redis errors fail open.
func (r *RateLimiter) Allow(ctx context.Context, key string) bool {
	pipe := r.redis.TxPipeline()
	incr := pipe.Incr(ctx, key)
	ttl := pipe.TTL(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		slog.Warn("rate limiter unavailable", "key", key, "error", err)
		return true
	}
	if ttl.Val() < 0 {
		if err := r.redis.Expire(ctx, key, r.window).Err(); err != nil {
			slog.Warn("rate limiter expire failed", "key", key, "error", err)
		}
	}
	return incr.Val() <= r.limit
}

// LoginRateLimit caps login and signup attempts per client IP.
func (r *RateLimiter) LoginRateLimit(e *core.RequestEvent) error {
	ip := e.RealIP()
	if !r.Allow(e.Request.Context(), LoginKey(ip)) {
		slog.Warn("login rate limit exceeded", "ip", ip)
		return e.JSON(http.StatusTooManyRequests, map[string]string{
			"error": r.tr.T(e.Request.Header.Get("Accept-Language"), "error.rate_limited", nil),
		})
	}
	return e.Next()
}

// AntiBotMiddleware rejects requests from crawler user agents.
func (r *RateLimiter) AntiBotMiddleware(e *core.RequestEvent) error {
	if IsSuspiciousUserAgent(e.Request.UserAgent()) {
		return e.JSON(http.StatusForbidden, map[string]string{
			"error": r.tr.T(e.Request.Header.Get("Accept-Language"), "error.bot", nil),
		})
	}
	return e.Next()
}

func IsSuspiciousUserAgent(ua string) bool {
	ua = strings.ToLower(ua)
	for _, pattern := range suspiciousAgents {
		if strings.Contains(ua, pattern) {
			return true
		}
	}
	return false
}
