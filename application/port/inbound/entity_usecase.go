package inbound

import (
	"context"

	"github.com/fleettrack/fleettrack/domain/query"
	"github.com/fleettrack/fleettrack/domain/valueobject"
)

// EntityUseCase is the service contract every fleet resource exposes.
// T is the entity, C its create request and U its update request.
type EntityUseCase[T any, C any, U any] interface {
	List(ctx context.Context, p *valueobject.Principal, req query.PageRequest) (*query.PageResult[T], error)
	Get(ctx context.Context, p *valueobject.Principal, id string) (*T, error)
	Create(ctx context.Context, p *valueobject.Principal, req C) (*T, error)
	Update(ctx context.Context, p *valueobject.Principal, id string, req U) (*T, error)
	Delete(ctx context.Context, p *valueobject.Principal, id string) error
}
