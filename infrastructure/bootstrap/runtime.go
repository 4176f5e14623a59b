package bootstrap

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/fleettrack/fleettrack/infrastructure/adapter/kafka"
	"github.com/fleettrack/fleettrack/infrastructure/adapter/postgres"
	"github.com/fleettrack/fleettrack/infrastructure/config"
	"github.com/fleettrack/fleettrack/infrastructure/service/logger"
)

// NewLogger builds the structured logger for one binary.
func NewLogger(cfg *config.Config, service string) logger.Logger {
	return logger.NewStructuredLogger(logger.LoggerConfig{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: service,
	})
}

// OpenDB connects with the configured pool settings and pings once.
func OpenDB(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	db, err := postgres.Open(cfg.DatabaseURL, postgres.Options{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
		LogLevel:        postgres.ParseLogLevel(cfg.DBLogLevel),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// KafkaConfig is the audit fallback topic setup.
func KafkaConfig(cfg *config.Config) kafka.Config {
	return kafka.Config{
		Brokers:  cfg.KafkaBrokers,
		Topic:    cfg.KafkaAuditTopic,
		GroupID:  cfg.KafkaGroupID,
		Username: cfg.KafkaUsername,
		Password: cfg.KafkaPassword,
		TLS:      cfg.KafkaTLS,
	}
}
