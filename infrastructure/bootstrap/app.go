// Package bootstrap assembles repositories, the audit recorder and the fleet use cases
// around one store handle. Every binary and the API tests build their graph here.
package bootstrap

import (
	"gorm.io/gorm"

	"github.com/fleettrack/fleettrack/application/port/outbound"
	"github.com/fleettrack/fleettrack/application/usecase/audit"
	"github.com/fleettrack/fleettrack/application/usecase/fleet"
	"github.com/fleettrack/fleettrack/infrastructure/adapter/postgres"
	apphttp "github.com/fleettrack/fleettrack/infrastructure/http"
	"github.com/fleettrack/fleettrack/infrastructure/service/logger"
)

type Options struct {
	Passwords outbound.PasswordService
	// Fallback receives audit entries whose append failed. Nil disables the relay path.
	Fallback outbound.AuditFallbackSink
	Logger   logger.Logger
	NewID    func() string
}

type App struct {
	Vehicles  *fleet.VehicleUseCase
	Owners    *fleet.OwnerUseCase
	Locations *fleet.LocationUseCase
	Users     *fleet.UserUseCase
	Sources   *fleet.SourceUseCase

	Recorder   *audit.Recorder
	AuditQuery *audit.QueryUseCase
}

func New(db *gorm.DB, opts Options) *App {
	auditRepo := postgres.NewAuditRepository(db)
	recorder := audit.NewRecorder(auditRepo, opts.Fallback, opts.Logger)

	deps := fleet.Deps{
		Tx:       postgres.NewTxManager(db),
		Recorder: recorder,
		Logger:   opts.Logger,
		NewID:    opts.NewID,
	}

	owners := postgres.NewOwnerRepository(db)
	locations := postgres.NewLocationRepository(db)
	sources := postgres.NewSourceRepository(db)
	vehicles := postgres.NewVehicleRepository(db)
	users := postgres.NewUserRepository(db)

	return &App{
		Vehicles:   fleet.NewVehicleUseCase(vehicles, owners, locations, sources, deps),
		Owners:     fleet.NewOwnerUseCase(owners, deps),
		Locations:  fleet.NewLocationUseCase(locations, deps),
		Users:      fleet.NewUserUseCase(users, locations, opts.Passwords, deps),
		Sources:    fleet.NewSourceUseCase(sources, deps),
		Recorder:   recorder,
		AuditQuery: audit.NewQueryUseCase(auditRepo),
	}
}

// UseCases is the subset the HTTP router needs.
func (a *App) UseCases() apphttp.UseCases {
	return apphttp.UseCases{
		Vehicles:  a.Vehicles,
		Owners:    a.Owners,
		Locations: a.Locations,
		Users:     a.Users,
		Sources:   a.Sources,
		Audit:     a.AuditQuery,
	}
}
