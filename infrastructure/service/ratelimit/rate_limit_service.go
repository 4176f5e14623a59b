package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/fleettrack/fleettrack/application/port/outbound"
)

const defaultKeyPrefix = "fleettrack:ratelimit"

type RateLimitConfig struct {
	Enabled       bool
	RedisURL      string
	KeyPrefix     string
	IPAttempts    int
	IPWindow      time.Duration
	BlockDuration time.Duration
}

// redisLimiter keeps one fixed-window counter and one block marker per key.
type redisLimiter struct {
	client *redis.Client
	logger *logrus.Logger
	prefix string
}

// NewRateLimitService returns a no-op limiter when disabled. Otherwise it connects to
// Redis and fails if the server does not answer a ping within five seconds.
func NewRateLimitService(config RateLimitConfig, logger *logrus.Logger) (outbound.RateLimitService, error) {
	if !config.Enabled {
		logger.Info("Rate limiting disabled")
		return NewNoop(), nil
	}

	opt, err := redis.ParseURL(config.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"ip_attempts":    config.IPAttempts,
		"ip_window":      config.IPWindow,
		"block_duration": config.BlockDuration,
	}).Info("Rate limiting service initialized")

	return newRedisLimiter(client, config.KeyPrefix, logger), nil
}

func newRedisLimiter(client *redis.Client, prefix string, logger *logrus.Logger) *redisLimiter {
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &redisLimiter{client: client, logger: logger, prefix: prefix}
}

func (s *redisLimiter) counterKey(k string) string { return s.prefix + ":" + k }
func (s *redisLimiter) blockKey(k string) string   { return s.prefix + ":blocked:" + k }

func (s *redisLimiter) CheckLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	count, err := s.GetAttempts(ctx, key)
	if err != nil {
		return false, err
	}
	under := count < limit

	s.logger.WithContext(ctx).WithFields(logrus.Fields{
		"key":         key,
		"current":     count,
		"limit":       limit,
		"under_limit": under,
	}).Debug("Rate limit check")
	return under, nil
}

// Increment starts the window on the first hit; later hits do not extend it.
func (s *redisLimiter) Increment(ctx context.Context, key string, window time.Duration) error {
	k := s.counterKey(key)
	count, err := s.client.Incr(ctx, k).Result()
	if err != nil {
		return fmt.Errorf("failed to increment rate limit: %w", err)
	}
	if count == 1 {
		if err := s.client.Expire(ctx, k, window).Err(); err != nil {
			return fmt.Errorf("failed to set rate limit window: %w", err)
		}
	}
	return nil
}

func (s *redisLimiter) Block(ctx context.Context, key string, duration time.Duration, reason string) error {
	k := s.blockKey(key)
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, k, map[string]interface{}{
		"reason":     reason,
		"blocked_at": time.Now().Unix(),
		"duration":   duration.Seconds(),
	})
	pipe.Expire(ctx, k, duration)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to block key: %w", err)
	}

	s.logger.WithContext(ctx).WithFields(logrus.Fields{
		"key":      key,
		"duration": duration,
		"reason":   reason,
	}).Warn("Key blocked")
	return nil
}

func (s *redisLimiter) IsBlocked(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Exists(ctx, s.blockKey(key)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check block status: %w", err)
	}
	return n > 0, nil
}

// GetAttempts is 0 for a key with no live window.
func (s *redisLimiter) GetAttempts(ctx context.Context, key string) (int, error) {
	count, err := s.client.Get(ctx, s.counterKey(key)).Int()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get attempts: %w", err)
	}
	return count, nil
}

var _ outbound.RateLimitService = (*redisLimiter)(nil)
