package middleware

import (
	"context"
	"strconv"
	"strings"
	"time"

	"loan-marketplace/internal/domain/identity"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

func nowUTC() time.Time { return time.Now().UTC() }

// bearerToken extracts the credential from an Authorization header value.
// The scheme is case-insensitive; anything other than Bearer yields "".
func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// rateSubject keys limits on the authenticated account, falling back to client IP.
func rateSubject(c echo.Context) string {
	if caller := identity.FromContext(c.Request().Context()); caller != nil && caller.UserID != "" {
		return "user:" + caller.UserID
	}
	return "ip:" + c.RealIP()
}

func windowStart(now time.Time, window time.Duration) int64 {
	return now.Truncate(window).Unix()
}

func buildKey(route, subject string, window int64) string {
	return "ratelimit:" + route + ":" + subject + ":" + strconv.FormatInt(window, 10)
}

// ---- Redis helpers ----

// incrWindow bumps the counter for a fixed window and makes sure it expires with it.
func incrWindow(ctx context.Context, rdb *redis.Client, key string, ttl time.Duration) (int64, error) {
	var incr *redis.IntCmd
	_, err := rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		incr = p.Incr(ctx, key)
		p.Expire(ctx, key, ttl)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return incr.Val(), nil
}
