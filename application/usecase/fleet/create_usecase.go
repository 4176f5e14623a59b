package fleet

import (
	"context"

	"github.com/fleettrack/fleettrack/application/port/inbound"
	"github.com/fleettrack/fleettrack/application/port/outbound"
	"github.com/fleettrack/fleettrack/domain"
	"github.com/fleettrack/fleettrack/domain/valueobject"
)

type CreateUseCase[T any, PT entityPtr[T], C any, U any] struct {
	res  Resource[T, C, U]
	repo outbound.Repository[T]
	deps Deps
}

func NewCreateUseCase[T any, PT entityPtr[T], C any, U any](res Resource[T, C, U], repo outbound.Repository[T], deps Deps) *CreateUseCase[T, PT, C, U] {
	return &CreateUseCase[T, PT, C, U]{res: res, repo: repo, deps: deps}
}

func (uc *CreateUseCase[T, PT, C, U]) Execute(ctx context.Context, p *valueobject.Principal, req C) (*T, error) {
	if err := valueobject.Authorize(p, valueobject.Can(uc.res.Name, valueobject.VerbWrite)); err != nil {
		return nil, err
	}

	e, err := uc.res.Mapper.FromCreate(uc.deps.newID(), req)
	if err != nil {
		return nil, err
	}
	if err := PT(e).Validate(); err != nil {
		return nil, err
	}

	err = runAudited(ctx, uc.deps, func(ctx context.Context) (inbound.RecordAuditRequest, error) {
		if err := uc.res.Mapper.CheckReferences(ctx, e); err != nil {
			return inbound.RecordAuditRequest{}, err
		}
		if err := uc.repo.Create(ctx, e); err != nil {
			return inbound.RecordAuditRequest{}, err
		}
		return inbound.RecordAuditRequest{
			EntityType: uc.res.EntityType,
			EntityID:   PT(e).GetID(),
			Action:     domain.ActionCreate,
			ActorID:    p.ActorID(),
			After:      PT(e).AuditSnapshot(),
		}, nil
	})
	if err != nil {
		return nil, err
	}

	uc.deps.Logger.Info(ctx, "Entity created", map[string]interface{}{
		"entity_type": string(uc.res.EntityType),
		"entity_id":   PT(e).GetID(),
	})
	return e, nil
}
