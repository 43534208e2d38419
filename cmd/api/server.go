package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	httpadp "loan-marketplace/internal/adapter/http"
	mw "loan-marketplace/internal/adapter/middleware"
	"loan-marketplace/internal/domain/identity"
	"loan-marketplace/internal/infrastructure/metrics"
	"loan-marketplace/pkg/id"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
)

type serverDeps struct {
	matcher   httpadp.OfferMatcher
	provider  identity.Provider
	rdb       *redis.Client // nil disables rate limiting
	rateLimit int           // requests per caller per minute
	metrics   *metrics.Metrics
	checks    []httpadp.Check
}

func newServer(d serverDeps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = httpadp.NewValidator()

	e.Use(
		middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: id.New}),
		middleware.RequestLoggerWithConfig(requestLogConfig()),
		mw.MetricsMiddleware(d.metrics),
		middleware.Recover(),
		middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: []string{"*"},
			AllowHeaders: []string{"authorization", "x-client-info", "apikey", "content-type"},
			AllowMethods: []string{http.MethodPost, http.MethodOptions, http.MethodGet},
		}),
	)

	h := httpadp.NewHandler(d.checks...)
	oh := httpadp.NewOfferHandler(d.matcher, d.metrics)

	// routes
	e.GET("/health", h.Health)
	e.GET("/metrics", echo.WrapHandler(d.metrics.Handler()))

	// the first limiter runs before auth and keys on client IP, the second on the caller
	guard := []echo.MiddlewareFunc{
		mw.RateLimitMiddleware(d.rdb, d.rateLimit, time.Minute),
		mw.AuthMiddleware(d.provider),
		mw.RateLimitMiddleware(d.rdb, d.rateLimit, time.Minute),
	}
	e.POST("/offers/match", oh.MatchOffers, guard...)
	// path used by the browser client
	e.POST("/functions/v1/match-products", oh.MatchOffers, guard...)

	return e
}

func requestLogConfig() middleware.RequestLoggerConfig {
	return middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= http.StatusInternalServerError || v.Error != nil {
				level = slog.LevelError
			}
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
				slog.String("remote_ip", v.RemoteIP),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			slog.LogAttrs(context.Background(), level, "request", attrs...)
			return nil
		},
	}
}
