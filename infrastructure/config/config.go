package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL       string
	DBDriver          string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration
	DBLogLevel        string

	JWTSecret      string
	JWTAlgorithm   string
	JWTIssuer      string
	AccessTokenTTL time.Duration

	ServerPort         string
	ServerHost         string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration
	ServerIdleTimeout  time.Duration
	Environment        string

	RedisURL               string
	RateLimitEnabled       bool
	RateLimitIPAttempts    int
	RateLimitIPWindow      time.Duration
	RateLimitBlockDuration time.Duration

	LogLevel               string
	LogFormat              string
	LogCorrelationIDHeader string
	LogEnableRequestLog    bool

	// CORS configuration
	CORSEnabled          bool
	CORSAllowedOrigins   []string
	CORSAllowCredentials bool

	// Audit fallback channel
	AuditFallbackEnabled bool
	KafkaBrokers         []string
	KafkaAuditTopic      string
	KafkaGroupID         string
	KafkaUsername        string
	KafkaPassword        string
	KafkaTLS             bool
}

var (
	ErrMissingDatabaseURL  = errors.New("DATABASE_URL is required")
	ErrMissingJWTSecret    = errors.New("JWT_SECRET is required")
	ErrInvalidTokenTTL     = errors.New("invalid token TTL format")
	ErrInvalidJWTAlgorithm = errors.New("invalid JWT algorithm")
	ErrInvalidDBDriver     = errors.New("invalid DB_DRIVER")
	ErrMissingKafkaBrokers = errors.New("KAFKA_BROKERS is required when AUDIT_FALLBACK_ENABLED is set")
)

func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		DBDriver:          getEnvOrDefault("DB_DRIVER", "postgres"),
		DBMaxOpenConns:    getEnvOrDefaultInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:    getEnvOrDefaultInt("DB_MAX_IDLE_CONNS", 5),
		DBConnMaxLifetime: getEnvOrDefaultDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		DBLogLevel:        getEnvOrDefault("DB_LOG_LEVEL", "warn"),

		JWTSecret:    os.Getenv("JWT_SECRET"),
		JWTAlgorithm: getEnvOrDefault("JWT_ALG", "HS256"),
		JWTIssuer:    getEnvOrDefault("JWT_ISSUER", "fleettrack"),

		ServerPort:         getEnvOrDefault("SERVER_PORT", "8080"),
		ServerHost:         getEnvOrDefault("SERVER_HOST", "localhost"),
		ServerReadTimeout:  getEnvOrDefaultDuration("SERVER_READ_TIMEOUT", 15*time.Second),
		ServerWriteTimeout: getEnvOrDefaultDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
		ServerIdleTimeout:  getEnvOrDefaultDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		Environment:        getEnvOrDefault("ENV", "development"),

		RedisURL:            getEnvOrDefault("REDIS_URL", "redis://localhost:6379/0"),
		RateLimitEnabled:    getEnvOrDefaultBool("RATE_LIMIT_ENABLED", false),
		RateLimitIPAttempts: getEnvOrDefaultInt("RATE_LIMIT_IP_ATTEMPTS", 300),

		LogLevel:               getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:              getEnvOrDefault("LOG_FORMAT", "json"),
		LogCorrelationIDHeader: getEnvOrDefault("LOG_CORRELATION_ID_HEADER", "X-Correlation-ID"),
		LogEnableRequestLog:    getEnvOrDefaultBool("LOG_ENABLE_REQUEST_LOG", true),

		CORSEnabled:          getEnvOrDefaultBool("CORS_ENABLED", true),
		CORSAllowCredentials: getEnvOrDefaultBool("CORS_ALLOW_CREDENTIALS", true),
		CORSAllowedOrigins:   parseList(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "")),

		AuditFallbackEnabled: getEnvOrDefaultBool("AUDIT_FALLBACK_ENABLED", false),
		KafkaBrokers:         parseList(getEnvOrDefault("KAFKA_BROKERS", "")),
		KafkaAuditTopic:      getEnvOrDefault("KAFKA_AUDIT_TOPIC", "fleettrack.audit.fallback"),
		KafkaGroupID:         getEnvOrDefault("KAFKA_GROUP_ID", "fleettrack-audit-relay"),
		KafkaUsername:        os.Getenv("KAFKA_USERNAME"),
		KafkaPassword:        os.Getenv("KAFKA_PASSWORD"),
		KafkaTLS:             getEnvOrDefaultBool("KAFKA_TLS", false),
	}

	// Validate required fields
	if cfg.DatabaseURL == "" {
		return nil, ErrMissingDatabaseURL
	}
	if cfg.DBDriver != "postgres" {
		return nil, ErrInvalidDBDriver
	}

	// Validate JWT configuration
	if cfg.JWTAlgorithm != "HS256" {
		return nil, ErrInvalidJWTAlgorithm
	}
	if cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}

	accessTokenTTL, err := parseTokenTTL(getEnvOrDefault("JWT_ACCESS_TOKEN_TTL", "900"))
	if err != nil {
		return nil, ErrInvalidTokenTTL
	}
	cfg.AccessTokenTTL = accessTokenTTL

	ipWindow, err := parseTokenTTL(getEnvOrDefault("RATE_LIMIT_IP_WINDOW", "60"))
	if err != nil {
		return nil, ErrInvalidTokenTTL
	}
	cfg.RateLimitIPWindow = ipWindow

	blockDuration, err := parseTokenTTL(getEnvOrDefault("RATE_LIMIT_BLOCK_DURATION", "300"))
	if err != nil {
		return nil, ErrInvalidTokenTTL
	}
	cfg.RateLimitBlockDuration = blockDuration

	if cfg.AuditFallbackEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, ErrMissingKafkaBrokers
	}

	return cfg, nil
}

// Addr returns host:port for the HTTP listener.
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvOrDefaultBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return defaultValue
		}
		return parsed
	}
	return defaultValue
}

func getEnvOrDefaultInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return defaultValue
		}
		return parsed
	}
	return defaultValue
}

func getEnvOrDefaultDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		// bare numbers are seconds
		if n, err := strconv.Atoi(value); err == nil {
			return time.Duration(n) * time.Second
		}
		d, err := time.ParseDuration(value)
		if err != nil {
			return defaultValue
		}
		return d
	}
	return defaultValue
}

func parseTokenTTL(value string) (time.Duration, error) {
	seconds, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	return time.Duration(seconds) * time.Second, nil
}

func parseList(value string) []string {
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			res = append(res, trimmed)
		}
	}
	return res
}
