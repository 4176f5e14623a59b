package ratelimit

import (
	"context"
	"time"

	"github.com/fleettrack/fleettrack/application/port/outbound"
)

// noopLimiter allows everything. Used when RATE_LIMIT_ENABLED is false.
type noopLimiter struct{}

func NewNoop() outbound.RateLimitService {
	return noopLimiter{}
}

func (noopLimiter) CheckLimit(context.Context, string, int, time.Duration) (bool, error) {
	return true, nil
}

func (noopLimiter) Increment(context.Context, string, time.Duration) error { return nil }

func (noopLimiter) Block(context.Context, string, time.Duration, string) error { return nil }

func (noopLimiter) IsBlocked(context.Context, string) (bool, error) { return false, nil }

func (noopLimiter) GetAttempts(context.Context, string) (int, error) { return 0, nil }
