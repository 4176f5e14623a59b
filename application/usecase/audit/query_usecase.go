package audit

import (
	"context"
	"strings"

	"github.com/fleettrack/fleettrack/application/port/inbound"
	"github.com/fleettrack/fleettrack/application/port/outbound"
	"github.com/fleettrack/fleettrack/domain"
	domainerr "github.com/fleettrack/fleettrack/domain/error"
	"github.com/fleettrack/fleettrack/domain/query"
	"github.com/fleettrack/fleettrack/domain/valueobject"
)

type QueryUseCase struct {
	repo outbound.AuditRepository
}

func NewQueryUseCase(repo outbound.AuditRepository) *QueryUseCase {
	return &QueryUseCase{repo: repo}
}

func (uc *QueryUseCase) List(ctx context.Context, p *valueobject.Principal, req query.PageRequest) (*query.PageResult[domain.AuditEntry], error) {
	if err := valueobject.Authorize(p, valueobject.Can(valueobject.ResourceAudit, valueobject.VerbRead)); err != nil {
		return nil, err
	}

	plan, err := Schema.Compile(req)
	if err != nil {
		return nil, err
	}

	entries, total, err := uc.repo.List(ctx, plan)
	if err != nil {
		return nil, err
	}

	result := query.NewPageResult(entries, total, plan)
	return &result, nil
}

func (uc *QueryUseCase) GetByID(ctx context.Context, p *valueobject.Principal, id string) (*domain.AuditEntry, error) {
	if err := valueobject.Authorize(p, valueobject.Can(valueobject.ResourceAudit, valueobject.VerbRead)); err != nil {
		return nil, err
	}
	return uc.repo.FindByID(ctx, id)
}

// GetByEntity is List filtered to one entity with the default sort.
func (uc *QueryUseCase) GetByEntity(ctx context.Context, p *valueobject.Principal, entityType, entityID string, pagination query.Pagination) (*query.PageResult[domain.AuditEntry], error) {
	if strings.TrimSpace(entityType) == "" {
		return nil, domainerr.ErrMissingField("entityType")
	}
	if strings.TrimSpace(entityID) == "" {
		return nil, domainerr.ErrMissingField("entityId")
	}
	return uc.List(ctx, p, query.PageRequest{
		Filters: query.Filters{
			"entityType": entityType,
			"entityId":   entityID,
		},
		Pagination: pagination,
	})
}

var _ inbound.AuditQueryUseCase = (*QueryUseCase)(nil)
