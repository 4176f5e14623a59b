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

var OwnerSchema = query.Schema{
	Entity:     "Owner",
	PrimaryKey: "id",
	SortFields: map[string]string{
		"name":      "name",
		"email":     "email",
		"company":   "company",
		"status":    "status",
		"createdAt": "created_at",
	},
	Filters: map[string]query.FilterSpec{
		"status":  {Kind: query.FilterExact, Columns: []string{"status"}},
		"company": {Kind: query.FilterContains, Columns: []string{"company"}},
		"search":  {Kind: query.FilterSearch, Columns: []string{"name", "email", "company"}},
	},
	DefaultSort:  query.Sort{Field: "name", Order: query.OrderAsc},
	DefaultLimit: 10,
}

type OwnerUseCase = EntityUseCaseImpl[entity.Owner, *entity.Owner, inbound.CreateOwnerRequest, inbound.UpdateOwnerRequest]

type ownerMapper struct{}

func (ownerMapper) FromCreate(id string, req inbound.CreateOwnerRequest) (*entity.Owner, error) {
	return &entity.Owner{
		ID:      id,
		Name:    strings.TrimSpace(req.Name),
		Email:   valueobject.NormalizeEmail(req.Email),
		Phone:   strings.TrimSpace(req.Phone),
		Company: strings.TrimSpace(req.Company),
		Address: strings.TrimSpace(req.Address),
		Status:  orDefault(req.Status, entity.OwnerActive),
	}, nil
}

func (ownerMapper) ApplyUpdate(o *entity.Owner, req inbound.UpdateOwnerRequest) error {
	setString(&o.Name, req.Name)
	if req.Email != nil {
		o.Email = valueobject.NormalizeEmail(*req.Email)
	}
	setString(&o.Phone, req.Phone)
	setString(&o.Company, req.Company)
	setString(&o.Address, req.Address)
	setEnum(&o.Status, req.Status)
	return nil
}

func (ownerMapper) CheckReferences(context.Context, *entity.Owner) error { return nil }

func NewOwnerUseCase(repo outbound.Repository[entity.Owner], deps Deps) *OwnerUseCase {
	return NewEntityUseCase[entity.Owner, *entity.Owner](Resource[entity.Owner, inbound.CreateOwnerRequest, inbound.UpdateOwnerRequest]{
		Name:       valueobject.ResourceOwners,
		EntityType: domain.EntityOwner,
		Schema:     OwnerSchema,
		Mapper:     ownerMapper{},
	}, repo, deps)
}

var _ inbound.EntityUseCase[entity.Owner, inbound.CreateOwnerRequest, inbound.UpdateOwnerRequest] = (*OwnerUseCase)(nil)
