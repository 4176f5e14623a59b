package fleet

import (
	"context"

	"github.com/fleettrack/fleettrack/application/port/outbound"
	"github.com/fleettrack/fleettrack/domain/query"
	"github.com/fleettrack/fleettrack/domain/valueobject"
)

// EntityUseCaseImpl composes the per-operation use cases of one resource.
type EntityUseCaseImpl[T any, PT entityPtr[T], C any, U any] struct {
	listUseCase   *ListUseCase[T]
	getUseCase    *GetUseCase[T]
	createUseCase *CreateUseCase[T, PT, C, U]
	updateUseCase *UpdateUseCase[T, PT, C, U]
	deleteUseCase *DeleteUseCase[T, PT, C, U]
}

func NewEntityUseCase[T any, PT entityPtr[T], C any, U any](res Resource[T, C, U], repo outbound.Repository[T], deps Deps) *EntityUseCaseImpl[T, PT, C, U] {
	return &EntityUseCaseImpl[T, PT, C, U]{
		listUseCase:   NewListUseCase[T](res.Name, res.Schema, repo),
		getUseCase:    NewGetUseCase[T](res.Name, repo),
		createUseCase: NewCreateUseCase[T, PT](res, repo, deps),
		updateUseCase: NewUpdateUseCase[T, PT](res, repo, deps),
		deleteUseCase: NewDeleteUseCase[T, PT](res, repo, deps),
	}
}

func (uc *EntityUseCaseImpl[T, PT, C, U]) List(ctx context.Context, p *valueobject.Principal, req query.PageRequest) (*query.PageResult[T], error) {
	return uc.listUseCase.Execute(ctx, p, req)
}

func (uc *EntityUseCaseImpl[T, PT, C, U]) Get(ctx context.Context, p *valueobject.Principal, id string) (*T, error) {
	return uc.getUseCase.Execute(ctx, p, id)
}

func (uc *EntityUseCaseImpl[T, PT, C, U]) Create(ctx context.Context, p *valueobject.Principal, req C) (*T, error) {
	return uc.createUseCase.Execute(ctx, p, req)
}

func (uc *EntityUseCaseImpl[T, PT, C, U]) Update(ctx context.Context, p *valueobject.Principal, id string, req U) (*T, error) {
	return uc.updateUseCase.Execute(ctx, p, id, req)
}

func (uc *EntityUseCaseImpl[T, PT, C, U]) Delete(ctx context.Context, p *valueobject.Principal, id string) error {
	return uc.deleteUseCase.Execute(ctx, p, id)
}
