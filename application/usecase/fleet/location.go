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

var LocationSchema = query.Schema{
	Entity:     "Location",
	PrimaryKey: "id",
	SortFields: map[string]string{
		"name":      "name",
		"city":      "city",
		"country":   "country",
		"type":      "type",
		"createdAt": "created_at",
	},
	Filters: map[string]query.FilterSpec{
		"city":    {Kind: query.FilterExact, Columns: []string{"city"}},
		"country": {Kind: query.FilterExact, Columns: []string{"country"}},
		"type":    {Kind: query.FilterExact, Columns: []string{"type"}},
		"search":  {Kind: query.FilterSearch, Columns: []string{"name", "address", "city"}},
	},
	DefaultSort:  query.Sort{Field: "name", Order: query.OrderAsc},
	DefaultLimit: 10,
}

type LocationUseCase = EntityUseCaseImpl[entity.Location, *entity.Location, inbound.CreateLocationRequest, inbound.UpdateLocationRequest]

type locationMapper struct{}

func (locationMapper) FromCreate(id string, req inbound.CreateLocationRequest) (*entity.Location, error) {
	return &entity.Location{
		ID:        id,
		Name:      strings.TrimSpace(req.Name),
		Address:   strings.TrimSpace(req.Address),
		City:      strings.TrimSpace(req.City),
		Country:   strings.TrimSpace(req.Country),
		Type:      orDefault(req.Type, entity.LocationOther),
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}, nil
}

func (locationMapper) ApplyUpdate(l *entity.Location, req inbound.UpdateLocationRequest) error {
	setString(&l.Name, req.Name)
	setString(&l.Address, req.Address)
	setString(&l.City, req.City)
	setString(&l.Country, req.Country)
	setEnum(&l.Type, req.Type)
	if req.Latitude != nil {
		l.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		l.Longitude = req.Longitude
	}
	return nil
}

func (locationMapper) CheckReferences(context.Context, *entity.Location) error { return nil }

func NewLocationUseCase(repo outbound.Repository[entity.Location], deps Deps) *LocationUseCase {
	return NewEntityUseCase[entity.Location, *entity.Location](Resource[entity.Location, inbound.CreateLocationRequest, inbound.UpdateLocationRequest]{
		Name:       valueobject.ResourceLocations,
		EntityType: domain.EntityLocation,
		Schema:     LocationSchema,
		Mapper:     locationMapper{},
	}, repo, deps)
}

var _ inbound.EntityUseCase[entity.Location, inbound.CreateLocationRequest, inbound.UpdateLocationRequest] = (*LocationUseCase)(nil)
