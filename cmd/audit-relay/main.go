package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"github.com/fleettrack/fleettrack/application/usecase/audit"
	"github.com/fleettrack/fleettrack/infrastructure/adapter/kafka"
	"github.com/fleettrack/fleettrack/infrastructure/adapter/postgres"
	"github.com/fleettrack/fleettrack/infrastructure/bootstrap"
	"github.com/fleettrack/fleettrack/infrastructure/config"
)

// audit-relay drains the audit fallback topic into audit_logs.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if len(cfg.KafkaBrokers) == 0 {
		log.Fatal("KAFKA_BROKERS is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	structuredLogger := bootstrap.NewLogger(cfg, "fleettrack-audit-relay")

	db, err := bootstrap.OpenDB(ctx, cfg)
	if err != nil {
		structuredLogger.Error(ctx, "Failed to connect to database", err, nil)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer postgres.Close(db)

	relay := audit.NewRelayUseCase(postgres.NewAuditRepository(db), structuredLogger)
	consumer := kafka.NewAuditConsumer(bootstrap.KafkaConfig(cfg), relay, structuredLogger)
	defer consumer.Close()

	structuredLogger.Info(ctx, "Audit relay started", map[string]interface{}{
		"brokers":  cfg.KafkaBrokers,
		"topic":    cfg.KafkaAuditTopic,
		"group_id": cfg.KafkaGroupID,
	})

	if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		structuredLogger.Error(ctx, "Audit relay stopped", err, nil)
		log.Fatalf("Audit relay stopped: %v", err)
	}
	structuredLogger.Info(context.Background(), "Audit relay exited", nil)
}
