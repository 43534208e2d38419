package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadp "loan-marketplace/internal/adapter/http"
	identityadp "loan-marketplace/internal/adapter/identity"
	"loan-marketplace/internal/adapter/repository/mysql"
	"loan-marketplace/internal/config"
	"loan-marketplace/internal/infrastructure/cache"
	"loan-marketplace/internal/infrastructure/db"
	"loan-marketplace/internal/infrastructure/logging"
	"loan-marketplace/internal/infrastructure/metrics"
	"loan-marketplace/internal/usecase/matching"

	"github.com/redis/go-redis/v9"
)

func main() {
	config.LoadDotEnv()
	cfg := config.Load()
	logger := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid config", "error", err)
		os.Exit(1)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN(), db.ParseLogLevel(cfg.GormLogLevel))
	if err != nil {
		logger.Error("mysql unavailable", "error", err)
		os.Exit(1)
	}
	sqlDB, _ := gdb.DB()
	defer sqlDB.Close()

	checks := []httpadp.Check{{Name: "mysql", Ping: sqlDB.PingContext}}

	var rdb *redis.Client
	if cfg.RateLimitPerMinute > 0 {
		rdb, err = cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			logger.Warn("redis unavailable, rate limiting disabled", "addr", cfg.RedisAddr, "error", err)
			rdb = nil
		} else {
			defer rdb.Close()
			checks = append(checks, httpadp.Check{Name: "redis", Ping: cache.Pinger(rdb)})
		}
	}

	provider, err := identityadp.NewJWTProvider(identityadp.JWTConfig{Secret: cfg.JWTSecret, Issuer: cfg.JWTIssuer})
	if err != nil {
		logger.Error("identity provider", "error", err)
		os.Exit(1)
	}

	uc := matching.NewUsecase(mysql.NewGormUoW(gdb), matching.Config{
		TenureYears:  cfg.ComparisonTenureYears,
		MatchTimeout: cfg.MatchTimeout,
	})

	e := newServer(serverDeps{
		matcher:   uc,
		provider:  provider,
		rdb:       rdb,
		rateLimit: cfg.RateLimitPerMinute,
		metrics:   metrics.New(),
		checks:    checks,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := ":" + cfg.AppPort
	go func() {
		logger.Info("listening", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown", "error", err)
	}
}
