package outbound

import (
	"context"

	"github.com/fleettrack/fleettrack/domain"
	"github.com/fleettrack/fleettrack/domain/query"
)

// AuditRepository is append-only: there is no update or delete.
type AuditRepository interface {
	// Append inserts entry. Inside a transaction a failed insert must leave the
	// surrounding transaction usable.
	Append(ctx context.Context, entry *domain.AuditEntry) error
	// AppendIfAbsent inserts entry unless an entry with the same id exists.
	AppendIfAbsent(ctx context.Context, entry *domain.AuditEntry) (bool, error)
	FindByID(ctx context.Context, id string) (*domain.AuditEntry, error)
	List(ctx context.Context, plan query.Plan) ([]domain.AuditEntry, int64, error)
}

// AuditFallbackSink durably holds entries that could not be written with their mutation.
type AuditFallbackSink interface {
	Publish(ctx context.Context, entry *domain.AuditEntry) error
}
