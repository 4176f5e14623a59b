package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/fleettrack/fleettrack/application/port/outbound"
	"github.com/fleettrack/fleettrack/infrastructure/http/response"
	"github.com/fleettrack/fleettrack/infrastructure/service/logger"
	pkgerr "github.com/fleettrack/fleettrack/pkg/error"
)

const rateLimitKeyPrefix = "api:ip:"

type RateLimitConfig struct {
	Limit         int
	Window        time.Duration
	BlockDuration time.Duration
}

type RateLimitMiddleware struct {
	limiter outbound.RateLimitService
	config  RateLimitConfig
	logger  logger.Logger
}

func NewRateLimitMiddleware(limiter outbound.RateLimitService, config RateLimitConfig, log logger.Logger) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter: limiter,
		config:  config,
		logger:  log,
	}
}

// RateLimit counts API requests per client IP in a fixed window and blocks the IP
// for BlockDuration once the limit is hit. Limiter errors fail open.
func (m *RateLimitMiddleware) RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.limiter == nil {
			next.ServeHTTP(w, r)
			return
		}
		ctx := r.Context()
		ip := clientIP(r)
		key := rateLimitKeyPrefix + ip
		fields := map[string]interface{}{"ip": ip, "key": key}

		blocked, err := m.limiter.IsBlocked(ctx, key)
		if err != nil {
			m.logger.Error(ctx, "Rate limiter block lookup failed", err, fields)
		}
		if blocked {
			m.reject(w, r, ip, "rate_limit_blocked", "MEDIUM")
			return
		}

		allowed, err := m.limiter.CheckLimit(ctx, key, m.config.Limit, m.config.Window)
		if err != nil {
			m.logger.Error(ctx, "Rate limiter check failed", err, fields)
			allowed = true
		}
		if !allowed {
			if err := m.limiter.Block(ctx, key, m.config.BlockDuration, "Rate limit exceeded"); err != nil {
				m.logger.Error(ctx, "Rate limiter block failed", err, fields)
			}
			m.reject(w, r, ip, "rate_limit_exceeded", "HIGH")
			return
		}

		if err := m.limiter.Increment(ctx, key, m.config.Window); err != nil {
			m.logger.Error(ctx, "Rate limiter increment failed", err, fields)
		}
		next.ServeHTTP(w, r)
	})
}

func (m *RateLimitMiddleware) reject(w http.ResponseWriter, r *http.Request, ip, event, severity string) {
	logger.LogSecurityEvent(r.Context(), m.logger, event, severity, map[string]interface{}{
		"ip":        ip,
		"method":    r.Method,
		"path":      r.URL.Path,
		"userAgent": r.UserAgent(),
	})
	w.Header().Set("Retry-After", strconv.Itoa(int(m.config.BlockDuration.Seconds())))
	response.FromError(w, pkgerr.ErrRateLimited)
}

// clientIP prefers the first X-Forwarded-For hop, then X-Real-IP, then the peer address.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
