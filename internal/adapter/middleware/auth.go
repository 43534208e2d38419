package middleware

import (
	"log/slog"
	"net/http"

	"loan-marketplace/internal/domain/identity"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware resolves the bearer token to a caller and stores it on the
// request context. Failures stop the chain with 401.
func AuthMiddleware(p identity.Provider) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			token := bearerToken(req.Header.Get(echo.HeaderAuthorization))
			if token == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
			}

			caller, err := p.Verify(req.Context(), token)
			if err != nil || caller == nil || caller.UserID == "" {
				slog.DebugContext(req.Context(), "auth: token rejected", "error", err, "path", c.Path())
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid or expired token"})
			}

			c.SetRequest(req.WithContext(identity.WithCaller(req.Context(), caller)))
			return next(c)
		}
	}
}
