package fleet

import (
	"context"

	"github.com/fleettrack/fleettrack/application/port/inbound"
	"github.com/fleettrack/fleettrack/application/port/outbound"
	"github.com/fleettrack/fleettrack/domain"
	domainerr "github.com/fleettrack/fleettrack/domain/error"
	"github.com/fleettrack/fleettrack/domain/valueobject"
)

type DeleteUseCase[T any, PT entityPtr[T], C any, U any] struct {
	res  Resource[T, C, U]
	repo outbound.Repository[T]
	deps Deps
}

func NewDeleteUseCase[T any, PT entityPtr[T], C any, U any](res Resource[T, C, U], repo outbound.Repository[T], deps Deps) *DeleteUseCase[T, PT, C, U] {
	return &DeleteUseCase[T, PT, C, U]{res: res, repo: repo, deps: deps}
}

func (uc *DeleteUseCase[T, PT, C, U]) Execute(ctx context.Context, p *valueobject.Principal, id string) error {
	if err := valueobject.Authorize(p, valueobject.Can(uc.res.Name, valueobject.VerbDelete)); err != nil {
		return err
	}
	if id == "" {
		return domainerr.ErrMissingField("id")
	}

	err := runAudited(ctx, uc.deps, func(ctx context.Context) (inbound.RecordAuditRequest, error) {
		current, err := uc.repo.FindByID(ctx, id)
		if err != nil {
			return inbound.RecordAuditRequest{}, err
		}
		before := PT(current).AuditSnapshot()

		if uc.res.SoftDelete != nil {
			uc.res.SoftDelete(current)
			err = uc.repo.Update(ctx, current)
		} else {
			err = uc.repo.Delete(ctx, id)
		}
		if err != nil {
			return inbound.RecordAuditRequest{}, err
		}

		return inbound.RecordAuditRequest{
			EntityType: uc.res.EntityType,
			EntityID:   id,
			Action:     domain.ActionDelete,
			ActorID:    p.ActorID(),
			Before:     before,
		}, nil
	})
	if err != nil {
		return err
	}

	uc.deps.Logger.Info(ctx, "Entity deleted", map[string]interface{}{
		"entity_type": string(uc.res.EntityType),
		"entity_id":   id,
		"soft":        uc.res.SoftDelete != nil,
	})
	return nil
}
