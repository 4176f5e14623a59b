package outbound

import (
	"context"

	"github.com/fleettrack/fleettrack/domain/query"
)

// Repository is the store contract shared by every entity. All methods join the
// transaction carried by ctx when there is one.
type Repository[T any] interface {
	Create(ctx context.Context, e *T) error
	Update(ctx context.Context, e *T) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*T, error)
	List(ctx context.Context, plan query.Plan) ([]T, int64, error)
	ReferenceChecker
}

// ReferenceChecker answers whether a row with id exists.
type ReferenceChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// TxManager runs fn inside a transaction. Nested calls reuse the outer transaction.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
