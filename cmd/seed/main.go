package main

import (
	"context"
	"errors"
	"log"

	"github.com/fleettrack/fleettrack/application/port/inbound"
	domainerr "github.com/fleettrack/fleettrack/domain/error"
	"github.com/fleettrack/fleettrack/domain/valueobject"
	"github.com/fleettrack/fleettrack/infrastructure/adapter/postgres"
	"github.com/fleettrack/fleettrack/infrastructure/bootstrap"
	"github.com/fleettrack/fleettrack/infrastructure/config"
	"github.com/fleettrack/fleettrack/infrastructure/service/logger"
	"github.com/fleettrack/fleettrack/infrastructure/service/password"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	structuredLogger := bootstrap.NewLogger(cfg, "fleettrack-seed")

	db, err := bootstrap.OpenDB(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer postgres.Close(db)

	app := bootstrap.New(db, bootstrap.Options{
		Passwords: password.NewBcryptPasswordService(0),
		Logger:    structuredLogger,
	})

	stats, err := seed(ctx, app, structuredLogger)
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	structuredLogger.Info(ctx, "Seeding finished", map[string]interface{}{
		"created": stats.created,
		"skipped": stats.skipped,
	})
}

type seedStats struct {
	created int
	skipped int
}

// track counts a create result. Conflicts mean the row was seeded before.
func (s *seedStats) track(err error) (bool, error) {
	switch {
	case err == nil:
		s.created++
		return true, nil
	case errors.Is(err, domainerr.ErrConflict):
		s.skipped++
		return false, nil
	default:
		return false, err
	}
}

// seed creates demo data through the use cases, so every row gets an audit entry
// with a null actor.
func seed(ctx context.Context, app *bootstrap.App, log logger.Logger) (seedStats, error) {
	system := valueobject.SystemPrincipal()
	var stats seedStats

	owner, err := app.Owners.Create(ctx, system, inbound.CreateOwnerRequest{
		Name:    "Acme Logistics",
		Email:   "fleet@acme-logistics.example",
		Phone:   "+1-555-0100",
		Company: "Acme Logistics Inc.",
	})
	if ok, err := stats.track(err); err != nil {
		return stats, err
	} else if !ok {
		log.Info(ctx, "Data already seeded, skipping dependants", nil)
		return stats, nil
	}

	lat, lng := 33.7490, -84.3880
	depot, err := app.Locations.Create(ctx, system, inbound.CreateLocationRequest{
		Name:      "Atlanta Depot",
		Address:   "100 Peachtree St",
		City:      "Atlanta",
		Country:   "US",
		Type:      "Depot",
		Latitude:  &lat,
		Longitude: &lng,
	})
	if _, err := stats.track(err); err != nil {
		return stats, err
	}

	auction, err := app.Sources.Create(ctx, system, inbound.CreateSourceRequest{
		Name:         "Copart Atlanta",
		Type:         "Auction",
		ContactEmail: "atl@copart.example",
	})
	if _, err := stats.track(err); err != nil {
		return stats, err
	}

	vehicles := []inbound.CreateVehicleRequest{
		{VIN: "1HGCM82633A004352", PlateNumber: "GA-1001", Make: "Honda", Model: "Accord", Year: 2019, Color: "Silver", Status: "Available"},
		{VIN: "5YJ3E1EA7KF317000", PlateNumber: "GA-1002", Make: "Tesla", Model: "Model 3", Year: 2021, Color: "White", Status: "InTransit"},
		{VIN: "1FTFW1ET5DFC10312", PlateNumber: "GA-1003", Make: "Ford", Model: "F-150", Year: 2018, Color: "Blue", Status: "Maintenance"},
	}
	for _, v := range vehicles {
		v.OwnerID = &owner.ID
		v.LocationID = &depot.ID
		v.SourceID = &auction.ID
		_, err := app.Vehicles.Create(ctx, system, v)
		if _, err := stats.track(err); err != nil {
			return stats, err
		}
	}

	users := []inbound.CreateUserRequest{
		{Email: "manager@fleettrack.local", Name: "Fleet Manager", Role: "manager", Password: "manager-pass"},
		{Email: "operator@fleettrack.local", Name: "Yard Operator", Role: "operator", Password: "operator-pass", LocationID: &depot.ID},
		{Email: "viewer@fleettrack.local", Name: "Read Only", Role: "viewer", Password: "viewer-pass"},
	}
	for _, u := range users {
		_, err := app.Users.Create(ctx, system, u)
		if _, err := stats.track(err); err != nil {
			return stats, err
		}
	}

	return stats, nil
}
