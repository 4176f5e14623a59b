package fleet

import (
	"context"
	"strings"

	"github.com/fleettrack/fleettrack/application/port/inbound"
	"github.com/fleettrack/fleettrack/application/port/outbound"
	"github.com/fleettrack/fleettrack/domain"
	"github.com/fleettrack/fleettrack/domain/entity"
	"github.com/fleettrack/fleettrack/domain/query"
	"github.com/fleettrack/fleettrack/domain/valueobject"
)

var VehicleSchema = query.Schema{
	Entity:     "Vehicle",
	PrimaryKey: "id",
	SortFields: map[string]string{
		"vin":         "vin",
		"plateNumber": "plate_number",
		"make":        "make",
		"model":       "model",
		"year":        "year",
		"status":      "status",
		"createdAt":   "created_at",
	},
	Filters: map[string]query.FilterSpec{
		"status":      {Kind: query.FilterExact, Columns: []string{"status"}},
		"ownerId":     {Kind: query.FilterExact, Columns: []string{"owner_id"}},
		"locationId":  {Kind: query.FilterExact, Columns: []string{"location_id"}},
		"sourceId":    {Kind: query.FilterExact, Columns: []string{"source_id"}},
		"make":        {Kind: query.FilterExact, Columns: []string{"make"}},
		"search":      {Kind: query.FilterSearch, Columns: []string{"vin", "plate_number", "make", "model"}},
		"createdFrom": {Kind: query.FilterFrom, Columns: []string{"created_at"}},
		"createdTo":   {Kind: query.FilterTo, Columns: []string{"created_at"}},
	},
	DefaultSort:  query.Sort{Field: "createdAt", Order: query.OrderDesc},
	DefaultLimit: 50,
}

type VehicleUseCase = EntityUseCaseImpl[entity.Vehicle, *entity.Vehicle, inbound.CreateVehicleRequest, inbound.UpdateVehicleRequest]

type vehicleMapper struct {
	owners    outbound.ReferenceChecker
	locations outbound.ReferenceChecker
	sources   outbound.ReferenceChecker
}

func (vehicleMapper) FromCreate(id string, req inbound.CreateVehicleRequest) (*entity.Vehicle, error) {
	return &entity.Vehicle{
		ID:          id,
		VIN:         entity.NormalizeVIN(req.VIN),
		PlateNumber: strings.ToUpper(strings.TrimSpace(req.PlateNumber)),
		Make:        strings.TrimSpace(req.Make),
		Model:       strings.TrimSpace(req.Model),
		Year:        req.Year,
		Color:       strings.TrimSpace(req.Color),
		Status:      orDefault(req.Status, entity.VehicleAvailable),
		OwnerID:     optionalRef(req.OwnerID),
		LocationID:  optionalRef(req.LocationID),
		SourceID:    optionalRef(req.SourceID),
	}, nil
}

func (vehicleMapper) ApplyUpdate(v *entity.Vehicle, req inbound.UpdateVehicleRequest) error {
	if req.VIN != nil {
		v.VIN = entity.NormalizeVIN(*req.VIN)
	}
	if req.PlateNumber != nil {
		v.PlateNumber = strings.ToUpper(strings.TrimSpace(*req.PlateNumber))
	}
	setString(&v.Make, req.Make)
	setString(&v.Model, req.Model)
	if req.Year != nil {
		v.Year = *req.Year
	}
	setString(&v.Color, req.Color)
	setEnum(&v.Status, req.Status)
	if req.OwnerID != nil {
		v.OwnerID = optionalRef(req.OwnerID)
	}
	if req.LocationID != nil {
		v.LocationID = optionalRef(req.LocationID)
	}
	if req.SourceID != nil {
		v.SourceID = optionalRef(req.SourceID)
	}
	return nil
}

func (m vehicleMapper) CheckReferences(ctx context.Context, v *entity.Vehicle) error {
	return checkReferences(ctx,
		reference{field: "ownerId", id: v.OwnerID, checker: m.owners},
		reference{field: "locationId", id: v.LocationID, checker: m.locations},
		reference{field: "sourceId", id: v.SourceID, checker: m.sources},
	)
}

func NewVehicleUseCase(repo outbound.Repository[entity.Vehicle], owners, locations, sources outbound.ReferenceChecker, deps Deps) *VehicleUseCase {
	return NewEntityUseCase[entity.Vehicle, *entity.Vehicle](Resource[entity.Vehicle, inbound.CreateVehicleRequest, inbound.UpdateVehicleRequest]{
		Name:       valueobject.ResourceVehicles,
		EntityType: domain.EntityVehicle,
		Schema:     VehicleSchema,
		Mapper:     vehicleMapper{owners: owners, locations: locations, sources: sources},
	}, repo, deps)
}

var _ inbound.EntityUseCase[entity.Vehicle, inbound.CreateVehicleRequest, inbound.UpdateVehicleRequest] = (*VehicleUseCase)(nil)
