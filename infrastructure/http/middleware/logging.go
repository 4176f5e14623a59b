package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/fleettrack/fleettrack/infrastructure/http/response"
	"github.com/fleettrack/fleettrack/infrastructure/service/logger"
	pkgerr "github.com/fleettrack/fleettrack/pkg/error"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// LoggingMiddleware logs one line per request with status and latency.
func LoggingMiddleware(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			logger.LogPerformance(r.Context(), log, "http_request", time.Since(start), map[string]interface{}{
				"method": r.Method,
				"path":   r.URL.Path,
				"status": rec.status,
				"ip":     clientIP(r),
			})
		})
	}
}

// RecoveryMiddleware turns a handler panic into a 500 envelope.
func RecoveryMiddleware(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.Error(r.Context(), "Panic recovered", fmt.Errorf("%v", rec), map[string]interface{}{
						"path":  r.URL.Path,
						"stack": string(debug.Stack()),
					})
					response.FromError(w, pkgerr.ErrInternal)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
