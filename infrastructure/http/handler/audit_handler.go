package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/fleettrack/fleettrack/application/port/inbound"
	"github.com/fleettrack/fleettrack/infrastructure/http/middleware"
	"github.com/fleettrack/fleettrack/infrastructure/http/response"
	"github.com/fleettrack/fleettrack/infrastructure/http/validator"
	"github.com/fleettrack/fleettrack/infrastructure/service/logger"
)

type AuditHandler struct {
	useCase inbound.AuditQueryUseCase
	logger  logger.Logger
}

func NewAuditHandler(useCase inbound.AuditQueryUseCase, log logger.Logger) *AuditHandler {
	return &AuditHandler{useCase: useCase, logger: log}
}

func (h *AuditHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/audit-logs", h.List).Methods(http.MethodGet)
	r.HandleFunc("/audit-logs/entity/{entityType}/{entityId}", h.GetByEntity).Methods(http.MethodGet)
	r.HandleFunc("/audit-logs/{id}", h.GetByID).Methods(http.MethodGet)
}

func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	req, err := validator.PageRequest(r.URL.Query())
	if err != nil {
		response.FromError(w, err)
		return
	}

	page, err := h.useCase.List(r.Context(), middleware.PrincipalFromContext(r.Context()), req)
	if err != nil {
		logFailure(r, h.logger, "audit-logs", "list", err)
		response.FromError(w, err)
		return
	}
	response.OK(w, page)
}

func (h *AuditHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	entry, err := h.useCase.GetByID(r.Context(), middleware.PrincipalFromContext(r.Context()), id)
	if err != nil {
		logFailure(r, h.logger, "audit-logs", "get", err)
		response.FromError(w, err)
		return
	}
	response.OK(w, entry)
}

func (h *AuditHandler) GetByEntity(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	pagination, err := validator.Pagination(r.URL.Query())
	if err != nil {
		response.FromError(w, err)
		return
	}

	page, err := h.useCase.GetByEntity(r.Context(), middleware.PrincipalFromContext(r.Context()), vars["entityType"], vars["entityId"], pagination)
	if err != nil {
		logFailure(r, h.logger, "audit-logs", "get-by-entity", err)
		response.FromError(w, err)
		return
	}
	response.OK(w, page)
}
