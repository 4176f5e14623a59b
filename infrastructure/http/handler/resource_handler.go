package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/fleettrack/fleettrack/application/port/inbound"
	"github.com/fleettrack/fleettrack/domain"
	domainerr "github.com/fleettrack/fleettrack/domain/error"
	"github.com/fleettrack/fleettrack/infrastructure/http/middleware"
	"github.com/fleettrack/fleettrack/infrastructure/http/response"
	"github.com/fleettrack/fleettrack/infrastructure/http/validator"
	"github.com/fleettrack/fleettrack/infrastructure/service/logger"
)

// ResourceHandler serves the CRUD and history routes of one fleet resource.
type ResourceHandler[T any, C any, U any] struct {
	path       string
	entityType domain.EntityType
	useCase    inbound.EntityUseCase[T, C, U]
	audit      inbound.AuditQueryUseCase
	logger     logger.Logger
}

func NewResourceHandler[T any, C any, U any](
	path string,
	entityType domain.EntityType,
	useCase inbound.EntityUseCase[T, C, U],
	audit inbound.AuditQueryUseCase,
	log logger.Logger,
) *ResourceHandler[T, C, U] {
	return &ResourceHandler[T, C, U]{
		path:       path,
		entityType: entityType,
		useCase:    useCase,
		audit:      audit,
		logger:     log,
	}
}

func (h *ResourceHandler[T, C, U]) RegisterRoutes(r *mux.Router) {
	base := "/" + h.path
	r.HandleFunc(base, h.List).Methods(http.MethodGet)
	r.HandleFunc(base, h.Create).Methods(http.MethodPost)
	r.HandleFunc(base+"/{id}", h.Get).Methods(http.MethodGet)
	r.HandleFunc(base+"/{id}", h.Update).Methods(http.MethodPut)
	r.HandleFunc(base+"/{id}", h.Delete).Methods(http.MethodDelete)
	r.HandleFunc(base+"/{id}/audit-logs", h.AuditLogs).Methods(http.MethodGet)
}

func (h *ResourceHandler[T, C, U]) List(w http.ResponseWriter, r *http.Request) {
	req, err := validator.PageRequest(r.URL.Query())
	if err != nil {
		response.FromError(w, err)
		return
	}

	page, err := h.useCase.List(r.Context(), middleware.PrincipalFromContext(r.Context()), req)
	if err != nil {
		h.fail(w, r, "list", err)
		return
	}
	response.OK(w, page)
}

func (h *ResourceHandler[T, C, U]) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	item, err := h.useCase.Get(r.Context(), middleware.PrincipalFromContext(r.Context()), id)
	if err != nil {
		h.fail(w, r, "get", err)
		return
	}
	response.OK(w, item)
}

func (h *ResourceHandler[T, C, U]) Create(w http.ResponseWriter, r *http.Request) {
	var req C
	if err := validator.DecodeJSON(r, &req); err != nil {
		response.FromError(w, err)
		return
	}

	item, err := h.useCase.Create(r.Context(), middleware.PrincipalFromContext(r.Context()), req)
	if err != nil {
		h.fail(w, r, "create", err)
		return
	}
	response.Created(w, item)
}

func (h *ResourceHandler[T, C, U]) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req U
	if err := validator.DecodeJSON(r, &req); err != nil {
		response.FromError(w, err)
		return
	}

	item, err := h.useCase.Update(r.Context(), middleware.PrincipalFromContext(r.Context()), id, req)
	if err != nil {
		h.fail(w, r, "update", err)
		return
	}
	response.OK(w, item)
}

func (h *ResourceHandler[T, C, U]) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.useCase.Delete(r.Context(), middleware.PrincipalFromContext(r.Context()), id); err != nil {
		h.fail(w, r, "delete", err)
		return
	}
	response.OK(w, map[string]string{"id": id})
}

// AuditLogs is the history of one record, newest first.
func (h *ResourceHandler[T, C, U]) AuditLogs(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	pagination, err := validator.Pagination(r.URL.Query())
	if err != nil {
		response.FromError(w, err)
		return
	}

	page, err := h.audit.GetByEntity(r.Context(), middleware.PrincipalFromContext(r.Context()), string(h.entityType), id, pagination)
	if err != nil {
		h.fail(w, r, "audit-logs", err)
		return
	}
	response.OK(w, page)
}

func (h *ResourceHandler[T, C, U]) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	logFailure(r, h.logger, h.path, op, err)
	response.FromError(w, err)
}

func pathID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := mux.Vars(r)["id"]
	if !validator.ValidateRequired(id) {
		response.FromError(w, domainerr.ErrMissingField("id"))
		return "", false
	}
	return id, true
}

// logFailure logs store and internal failures; client errors are not logged.
func logFailure(r *http.Request, log logger.Logger, resource, op string, err error) {
	switch domainerr.KindOf(err) {
	case domainerr.KindStore, domainerr.KindInternal:
		log.Error(r.Context(), "Request failed", err, map[string]interface{}{
			"resource":  resource,
			"operation": op,
			"path":      r.URL.Path,
		})
	}
}
