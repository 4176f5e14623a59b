package inbound

import (
	"context"

	"github.com/fleettrack/fleettrack/domain"
	"github.com/fleettrack/fleettrack/domain/query"
	"github.com/fleettrack/fleettrack/domain/valueobject"
)

// RecordAuditRequest describes one mutation. Before is nil for CREATE, After is nil for DELETE.
type RecordAuditRequest struct {
	EntityType domain.EntityType
	EntityID   string
	Action     domain.AuditAction
	ActorID    *string
	Before     map[string]any
	After      map[string]any
}

// AuditRecorder writes audit entries for mutations.
type AuditRecorder interface {
	// Record builds the entry and appends it. On a store failure the built entry is
	// returned together with the error so it can be escalated once the mutation commits.
	Record(ctx context.Context, req RecordAuditRequest) (*domain.AuditEntry, error)
	// Escalate logs and counts a failed append and hands the entry to the fallback sink.
	Escalate(ctx context.Context, entry *domain.AuditEntry, cause error)
	// Failures is the number of escalated entries since start.
	Failures() int64
}

type AuditQueryUseCase interface {
	List(ctx context.Context, p *valueobject.Principal, req query.PageRequest) (*query.PageResult[domain.AuditEntry], error)
	GetByID(ctx context.Context, p *valueobject.Principal, id string) (*domain.AuditEntry, error)
	GetByEntity(ctx context.Context, p *valueobject.Principal, entityType, entityID string, pagination query.Pagination) (*query.PageResult[domain.AuditEntry], error)
}

// AuditRelayUseCase appends entries that arrive through the fallback channel.
type AuditRelayUseCase interface {
	Relay(ctx context.Context, entry *domain.AuditEntry) error
}
