package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/fleettrack/fleettrack/infrastructure/service/logger"
)

const CorrelationIDHeader = "X-Correlation-ID"

// CorrelationIDMiddleware ensures every request/response carries a correlation ID
// and that loggers called with the request context include it.
func CorrelationIDMiddleware(header string) func(http.Handler) http.Handler {
	if header == "" {
		header = CorrelationIDHeader
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cid := r.Header.Get(header)
			if cid == "" {
				cid = uuid.NewString()
			}
			w.Header().Set(header, cid)
			next.ServeHTTP(w, r.WithContext(logger.WithCorrelationID(r.Context(), cid)))
		})
	}
}
