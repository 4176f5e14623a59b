package postgres

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/fleettrack/fleettrack/domain/entity"
)

// Options tunes the connection pool.
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	LogLevel        gormlogger.LogLevel
}

// Config returns the gorm settings every store handle uses, including test handles.
func Config(level gormlogger.LogLevel) *gorm.Config {
	if level == 0 {
		level = gormlogger.Warn
	}
	return &gorm.Config{
		Logger:         gormlogger.Default.LogMode(level),
		NowFunc:        func() time.Time { return time.Now().UTC() },
		TranslateError: true,
	}
}

// ParseLogLevel maps silent, error, warn and info to gorm levels. Anything else is warn.
func ParseLogLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}

// Open connects to PostgreSQL. The caller owns the returned handle.
func Open(dsn string, opts Options) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), Config(opts.LogLevel))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}
	return db, nil
}

// Close releases the underlying pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Migrate creates missing tables and indexes. Production schemas are managed by
// cmd/migrate; this is for development and tests.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.Owner{},
		&entity.Location{},
		&entity.Source{},
		&entity.Vehicle{},
		&entity.User{},
		&auditLogRecord{},
	)
}
