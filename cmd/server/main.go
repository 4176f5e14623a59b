package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fleettrack/fleettrack/application/port/outbound"
	"github.com/fleettrack/fleettrack/infrastructure/adapter/kafka"
	"github.com/fleettrack/fleettrack/infrastructure/adapter/postgres"
	"github.com/fleettrack/fleettrack/infrastructure/bootstrap"
	"github.com/fleettrack/fleettrack/infrastructure/config"
	apphttp "github.com/fleettrack/fleettrack/infrastructure/http"
	"github.com/fleettrack/fleettrack/infrastructure/http/handler"
	"github.com/fleettrack/fleettrack/infrastructure/http/middleware"
	"github.com/fleettrack/fleettrack/infrastructure/service/jwt"
	"github.com/fleettrack/fleettrack/infrastructure/service/password"
	"github.com/fleettrack/fleettrack/infrastructure/service/ratelimit"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	structuredLogger := bootstrap.NewLogger(cfg, "fleettrack-api")
	structuredLogger.Info(ctx, "Application starting", map[string]interface{}{
		"env": cfg.Environment,
	})

	db, err := bootstrap.OpenDB(ctx, cfg)
	if err != nil {
		structuredLogger.Error(ctx, "Failed to connect to database", err, nil)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer postgres.Close(db)
	structuredLogger.Info(ctx, "Database connection established", nil)

	// Audit fallback channel
	var fallback outbound.AuditFallbackSink
	if cfg.AuditFallbackEnabled {
		producer := kafka.NewAuditProducer(bootstrap.KafkaConfig(cfg))
		defer producer.Close()
		fallback = producer
		structuredLogger.Info(ctx, "Audit fallback enabled", map[string]interface{}{
			"brokers": cfg.KafkaBrokers,
			"topic":   cfg.KafkaAuditTopic,
		})
	}

	app := bootstrap.New(db, bootstrap.Options{
		Passwords: password.NewBcryptPasswordService(0),
		Fallback:  fallback,
		Logger:    structuredLogger,
	})

	tokenService, err := jwt.NewJWTService(jwt.Config{
		Secret:         cfg.JWTSecret,
		Algorithm:      cfg.JWTAlgorithm,
		AccessTokenTTL: cfg.AccessTokenTTL,
		Issuer:         cfg.JWTIssuer,
	})
	if err != nil {
		structuredLogger.Error(ctx, "Failed to initialize JWT service", err, nil)
		log.Fatalf("Failed to initialize JWT service: %v", err)
	}

	// Rate limiting (Redis-backed or noop based on config)
	var rateLimitMiddleware *middleware.RateLimitMiddleware
	rateLimitService, err := ratelimit.NewRateLimitService(ratelimit.RateLimitConfig{
		Enabled:       cfg.RateLimitEnabled,
		RedisURL:      cfg.RedisURL,
		IPAttempts:    cfg.RateLimitIPAttempts,
		IPWindow:      cfg.RateLimitIPWindow,
		BlockDuration: cfg.RateLimitBlockDuration,
	}, logrus.New())
	if err != nil {
		structuredLogger.Error(ctx, "Failed to initialize rate limit service, continuing without it", err, map[string]interface{}{
			"enabled": cfg.RateLimitEnabled,
		})
	} else if cfg.RateLimitEnabled {
		rateLimitMiddleware = middleware.NewRateLimitMiddleware(rateLimitService, middleware.RateLimitConfig{
			Limit:         cfg.RateLimitIPAttempts,
			Window:        cfg.RateLimitIPWindow,
			BlockDuration: cfg.RateLimitBlockDuration,
		}, structuredLogger)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database handle: %v", err)
	}

	serverCfg := apphttp.ServerConfig{
		Addr:                 cfg.Addr(),
		ReadTimeout:          cfg.ServerReadTimeout,
		WriteTimeout:         cfg.ServerWriteTimeout,
		IdleTimeout:          cfg.ServerIdleTimeout,
		CORSEnabled:          cfg.CORSEnabled && len(cfg.CORSAllowedOrigins) > 0,
		CORSAllowedOrigins:   cfg.CORSAllowedOrigins,
		CORSAllowCredentials: cfg.CORSAllowCredentials,
		CorrelationIDHeader:  cfg.LogCorrelationIDHeader,
		RequestLogging:       cfg.LogEnableRequestLog,
	}
	router := apphttp.NewRouter(
		serverCfg,
		app.UseCases(),
		middleware.NewAuthMiddleware(tokenService, structuredLogger),
		rateLimitMiddleware,
		handler.NewHealthHandler(sqlDB, app.Recorder),
		structuredLogger,
	)
	server := apphttp.NewServer(serverCfg, router, structuredLogger)

	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			structuredLogger.Error(ctx, "Server failed to start", err, map[string]interface{}{
				"addr": serverCfg.Addr,
			})
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	structuredLogger.Info(ctx, "Shutting down server...", nil)

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 30*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		structuredLogger.Error(ctx, "Server forced to shutdown", err, nil)
	}
	structuredLogger.Info(ctx, "Server exited", map[string]interface{}{
		"audit_failures": app.Recorder.Failures(),
	})
}
