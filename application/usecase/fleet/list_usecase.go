package fleet

import (
	"context"

	"github.com/fleettrack/fleettrack/application/port/outbound"
	"github.com/fleettrack/fleettrack/domain/query"
	"github.com/fleettrack/fleettrack/domain/valueobject"
)

type ListUseCase[T any] struct {
	resource string
	schema   query.Schema
	repo     outbound.Repository[T]
}

func NewListUseCase[T any](resource string, schema query.Schema, repo outbound.Repository[T]) *ListUseCase[T] {
	return &ListUseCase[T]{resource: resource, schema: schema, repo: repo}
}

func (uc *ListUseCase[T]) Execute(ctx context.Context, p *valueobject.Principal, req query.PageRequest) (*query.PageResult[T], error) {
	if err := valueobject.Authorize(p, valueobject.Can(uc.resource, valueobject.VerbRead)); err != nil {
		return nil, err
	}

	plan, err := uc.schema.Compile(req)
	if err != nil {
		return nil, err
	}

	items, total, err := uc.repo.List(ctx, plan)
	if err != nil {
		return nil, err
	}

	result := query.NewPageResult(items, total, plan)
	return &result, nil
}
