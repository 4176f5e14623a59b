package fleet

import (
	"context"

	"github.com/fleettrack/fleettrack/application/port/outbound"
	domainerr "github.com/fleettrack/fleettrack/domain/error"
	"github.com/fleettrack/fleettrack/domain/valueobject"
)

type GetUseCase[T any] struct {
	resource string
	repo     outbound.Repository[T]
}

func NewGetUseCase[T any](resource string, repo outbound.Repository[T]) *GetUseCase[T] {
	return &GetUseCase[T]{resource: resource, repo: repo}
}

func (uc *GetUseCase[T]) Execute(ctx context.Context, p *valueobject.Principal, id string) (*T, error) {
	if err := valueobject.Authorize(p, valueobject.Can(uc.resource, valueobject.VerbRead)); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, domainerr.ErrMissingField("id")
	}
	return uc.repo.FindByID(ctx, id)
}
