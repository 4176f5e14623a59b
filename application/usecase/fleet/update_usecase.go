package fleet

import (
	"context"

	"github.com/fleettrack/fleettrack/application/port/inbound"
	"github.com/fleettrack/fleettrack/application/port/outbound"
	"github.com/fleettrack/fleettrack/domain"
	domainerr "github.com/fleettrack/fleettrack/domain/error"
	"github.com/fleettrack/fleettrack/domain/valueobject"
)

type UpdateUseCase[T any, PT entityPtr[T], C any, U any] struct {
	res  Resource[T, C, U]
	repo outbound.Repository[T]
	deps Deps
}

func NewUpdateUseCase[T any, PT entityPtr[T], C any, U any](res Resource[T, C, U], repo outbound.Repository[T], deps Deps) *UpdateUseCase[T, PT, C, U] {
	return &UpdateUseCase[T, PT, C, U]{res: res, repo: repo, deps: deps}
}

func (uc *UpdateUseCase[T, PT, C, U]) Execute(ctx context.Context, p *valueobject.Principal, id string, req U) (*T, error) {
	if err := valueobject.Authorize(p, valueobject.Can(uc.res.Name, valueobject.VerbWrite)); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, domainerr.ErrMissingField("id")
	}

	var updated *T
	err := runAudited(ctx, uc.deps, func(ctx context.Context) (inbound.RecordAuditRequest, error) {
		current, err := uc.repo.FindByID(ctx, id)
		if err != nil {
			return inbound.RecordAuditRequest{}, err
		}
		before := PT(current).AuditSnapshot()

		if err := uc.res.Mapper.ApplyUpdate(current, req); err != nil {
			return inbound.RecordAuditRequest{}, err
		}
		if err := PT(current).Validate(); err != nil {
			return inbound.RecordAuditRequest{}, err
		}
		if err := uc.res.Mapper.CheckReferences(ctx, current); err != nil {
			return inbound.RecordAuditRequest{}, err
		}
		if err := uc.repo.Update(ctx, current); err != nil {
			return inbound.RecordAuditRequest{}, err
		}

		updated = current
		return inbound.RecordAuditRequest{
			EntityType: uc.res.EntityType,
			EntityID:   id,
			Action:     domain.ActionUpdate,
			ActorID:    p.ActorID(),
			Before:     before,
			After:      PT(current).AuditSnapshot(),
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
