package fleet

import (
	"context"

	"github.com/google/uuid"

	"github.com/fleettrack/fleettrack/application/port/inbound"
	"github.com/fleettrack/fleettrack/application/port/outbound"
	"github.com/fleettrack/fleettrack/domain"
	"github.com/fleettrack/fleettrack/domain/entity"
	"github.com/fleettrack/fleettrack/domain/query"
	"github.com/fleettrack/fleettrack/infrastructure/service/logger"
)

// entityPtr lets generic code call entity methods on *T.
type entityPtr[T any] interface {
	*T
	entity.Entity
}

// Mapper turns a resource's requests into entity state.
type Mapper[T any, C any, U any] interface {
	FromCreate(id string, req C) (*T, error)
	ApplyUpdate(e *T, req U) error
	// CheckReferences fails with a validation error when e points at rows that do not exist.
	CheckReferences(ctx context.Context, e *T) error
}

// Resource is everything that differs between fleet entities.
type Resource[T any, C any, U any] struct {
	// Name is the capability prefix, e.g. "vehicles".
	Name       string
	EntityType domain.EntityType
	Schema     query.Schema
	Mapper     Mapper[T, C, U]
	// SoftDelete replaces the row delete when set.
	SoftDelete func(e *T)
}

// Deps are shared by every resource.
type Deps struct {
	Tx       outbound.TxManager
	Recorder inbound.AuditRecorder
	Logger   logger.Logger
	NewID    func() string
}

func (d Deps) newID() string {
	if d.NewID != nil {
		return d.NewID()
	}
	return uuid.NewString()
}

// runAudited runs mutate and the audit append in one transaction. A failed append
// does not abort the mutation; it is escalated once the transaction has committed.
func runAudited(ctx context.Context, deps Deps, mutate func(ctx context.Context) (inbound.RecordAuditRequest, error)) error {
	var (
		pending  *domain.AuditEntry
		auditErr error
	)

	err := deps.Tx.WithinTx(ctx, func(ctx context.Context) error {
		req, err := mutate(ctx)
		if err != nil {
			return err
		}
		pending, auditErr = deps.Recorder.Record(ctx, req)
		return nil
	})
	if err != nil {
		return err
	}

	if auditErr != nil {
		deps.Recorder.Escalate(context.WithoutCancel(ctx), pending, auditErr)
	}
	return nil
}
