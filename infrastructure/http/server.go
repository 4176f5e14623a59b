package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/fleettrack/fleettrack/application/port/inbound"
	"github.com/fleettrack/fleettrack/domain"
	"github.com/fleettrack/fleettrack/domain/entity"
	"github.com/fleettrack/fleettrack/domain/valueobject"
	"github.com/fleettrack/fleettrack/infrastructure/http/handler"
	"github.com/fleettrack/fleettrack/infrastructure/http/middleware"
	"github.com/fleettrack/fleettrack/infrastructure/http/response"
	"github.com/fleettrack/fleettrack/infrastructure/service/logger"
	pkgerr "github.com/fleettrack/fleettrack/pkg/error"
)

// ServerConfig represents server configuration
type ServerConfig struct {
	Addr                 string
	ReadTimeout          time.Duration
	WriteTimeout         time.Duration
	IdleTimeout          time.Duration
	CORSEnabled          bool
	CORSAllowedOrigins   []string
	CORSAllowCredentials bool
	CorrelationIDHeader  string
	RequestLogging       bool
}

// UseCases are the services the API exposes.
type UseCases struct {
	Vehicles  inbound.EntityUseCase[entity.Vehicle, inbound.CreateVehicleRequest, inbound.UpdateVehicleRequest]
	Owners    inbound.EntityUseCase[entity.Owner, inbound.CreateOwnerRequest, inbound.UpdateOwnerRequest]
	Locations inbound.EntityUseCase[entity.Location, inbound.CreateLocationRequest, inbound.UpdateLocationRequest]
	Users     inbound.EntityUseCase[entity.User, inbound.CreateUserRequest, inbound.UpdateUserRequest]
	Sources   inbound.EntityUseCase[entity.Source, inbound.CreateSourceRequest, inbound.UpdateSourceRequest]
	Audit     inbound.AuditQueryUseCase
}

// Server represents the HTTP server
type Server struct {
	server *http.Server
	logger logger.Logger
}

// NewRouter builds the full route table. rateLimit and health may be nil.
// CORS wraps the router so preflight requests are answered before route matching.
func NewRouter(cfg ServerConfig, uc UseCases, auth *middleware.AuthMiddleware, rateLimit *middleware.RateLimitMiddleware, health *handler.HealthHandler, log logger.Logger) http.Handler {
	router := mux.NewRouter()

	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.CorrelationIDMiddleware(cfg.CorrelationIDHeader))
	if cfg.RequestLogging {
		router.Use(middleware.LoggingMiddleware(log))
	}

	if health != nil {
		health.RegisterRoutes(router)
	}

	api := router.PathPrefix("/api/v1").Subrouter()
	if rateLimit != nil {
		api.Use(rateLimit.RateLimit)
	}
	api.Use(auth.RequireAuth)

	handler.NewResourceHandler(valueobject.ResourceVehicles, domain.EntityVehicle, uc.Vehicles, uc.Audit, log).RegisterRoutes(api)
	handler.NewResourceHandler(valueobject.ResourceOwners, domain.EntityOwner, uc.Owners, uc.Audit, log).RegisterRoutes(api)
	handler.NewResourceHandler(valueobject.ResourceLocations, domain.EntityLocation, uc.Locations, uc.Audit, log).RegisterRoutes(api)
	handler.NewResourceHandler(valueobject.ResourceUsers, domain.EntityUser, uc.Users, uc.Audit, log).RegisterRoutes(api)
	handler.NewResourceHandler(valueobject.ResourceSources, domain.EntitySource, uc.Sources, uc.Audit, log).RegisterRoutes(api)
	handler.NewAuditHandler(uc.Audit, log).RegisterRoutes(api)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.FromError(w, pkgerr.ErrRouteNotFound)
	})

	if !cfg.CORSEnabled {
		return router
	}
	return middleware.CORSMiddleware(cfg.CORSAllowedOrigins, cfg.CORSAllowCredentials)(router)
}

// NewServer creates a new HTTP server
func NewServer(cfg ServerConfig, router http.Handler, log logger.Logger) *Server {
	return &Server{
		logger: log,
		server: &http.Server{
			Addr:         cfg.Addr,
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info(context.Background(), "Starting HTTP server", map[string]interface{}{"addr": s.server.Addr})
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info(ctx, "Shutting down HTTP server", nil)
	return s.server.Shutdown(ctx)
}
