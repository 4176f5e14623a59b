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

var SourceSchema = query.Schema{
	Entity:     "Source",
	PrimaryKey: "id",
	SortFields: map[string]string{
		"name":      "name",
		"type":      "type",
		"status":    "status",
		"createdAt": "created_at",
	},
	Filters: map[string]query.FilterSpec{
		"type":   {Kind: query.FilterExact, Columns: []string{"type"}},
		"status": {Kind: query.FilterExact, Columns: []string{"status"}},
		"search": {Kind: query.FilterSearch, Columns: []string{"name", "contact_email"}},
	},
	DefaultSort:  query.Sort{Field: "name", Order: query.OrderAsc},
	DefaultLimit: 10,
}

type SourceUseCase = EntityUseCaseImpl[entity.Source, *entity.Source, inbound.CreateSourceRequest, inbound.UpdateSourceRequest]

type sourceMapper struct{}

func (sourceMapper) FromCreate(id string, req inbound.CreateSourceRequest) (*entity.Source, error) {
	return &entity.Source{
		ID:           id,
		Name:         strings.TrimSpace(req.Name),
		Type:         orDefault(req.Type, entity.SourceOther),
		ContactEmail: valueobject.NormalizeEmail(req.ContactEmail),
		Status:       orDefault(req.Status, entity.SourceActive),
	}, nil
}

func (sourceMapper) ApplyUpdate(s *entity.Source, req inbound.UpdateSourceRequest) error {
	setString(&s.Name, req.Name)
	setEnum(&s.Type, req.Type)
	if req.ContactEmail != nil {
		s.ContactEmail = valueobject.NormalizeEmail(*req.ContactEmail)
	}
	setEnum(&s.Status, req.Status)
	return nil
}

func (sourceMapper) CheckReferences(context.Context, *entity.Source) error { return nil }

func NewSourceUseCase(repo outbound.Repository[entity.Source], deps Deps) *SourceUseCase {
	return NewEntityUseCase[entity.Source, *entity.Source](Resource[entity.Source, inbound.CreateSourceRequest, inbound.UpdateSourceRequest]{
		Name:       valueobject.ResourceSources,
		EntityType: domain.EntitySource,
		Schema:     SourceSchema,
		Mapper:     sourceMapper{},
	}, repo, deps)
}

var _ inbound.EntityUseCase[entity.Source, inbound.CreateSourceRequest, inbound.UpdateSourceRequest] = (*SourceUseCase)(nil)
