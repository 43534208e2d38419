package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// RateLimitMiddleware: fixed window per route and caller, counted in Redis so
// every replica shares the budget. limit <= 0 disables it. If Redis is
// unreachable the request is let through.
func RateLimitMiddleware(rdb *redis.Client, limit int, window time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if limit <= 0 || rdb == nil {
			return next
		}
		return func(c echo.Context) error {
			req := c.Request()
			if req.Method == http.MethodOptions {
				return next(c)
			}

			now := nowUTC()
			start := windowStart(now, window)
			key := buildKey(c.Path(), rateSubject(c), start)

			ctx, cancel := context.WithTimeout(req.Context(), 500*time.Millisecond)
			defer cancel()
			n, err := incrWindow(ctx, rdb, key, window)
			if err != nil {
				slog.WarnContext(req.Context(), "ratelimit: store unavailable, allowing request", "error", err)
				return next(c)
			}

			remaining := int64(limit) - n
			if remaining < 0 {
				remaining = 0
			}
			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(limit))
			h.Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if n > int64(limit) {
				reset := time.Unix(start, 0).Add(window).Sub(now)
				h.Set("Retry-After", strconv.Itoa(int(reset.Seconds())+1))
				return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
			}
			return next(c)
		}
	}
}
