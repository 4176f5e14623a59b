package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/fleettrack/fleettrack/infrastructure/http/response"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// FailureCounter exposes the number of audit entries escalated to the fallback channel.
type FailureCounter interface {
	Failures() int64
}

type HealthHandler struct {
	db       Pinger
	failures FailureCounter
}

func NewHealthHandler(db Pinger, failures FailureCounter) *HealthHandler {
	return &HealthHandler{db: db, failures: failures}
}

func (h *HealthHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
}

type healthStatus struct {
	Status        string `json:"status"`
	Database      string `json:"database"`
	AuditFailures int64  `json:"auditFailures"`
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := healthStatus{Status: "ok", Database: "ok"}
	if h.failures != nil {
		status.AuditFailures = h.failures.Failures()
	}

	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			status.Status = "degraded"
			status.Database = "unreachable"
			response.WriteJSON(w, http.StatusServiceUnavailable, response.Envelope{
				Success: false,
				Data:    status,
				Error:   "database unreachable",
			})
			return
		}
	}
	response.OK(w, status)
}
