package audit

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/fleettrack/fleettrack/application/port/inbound"
	"github.com/fleettrack/fleettrack/application/port/outbound"
	"github.com/fleettrack/fleettrack/domain"
	domainerr "github.com/fleettrack/fleettrack/domain/error"
	"github.com/fleettrack/fleettrack/infrastructure/service/logger"
)

// Recorder turns a mutation's before/after state into one appended AuditEntry.
type Recorder struct {
	repo     outbound.AuditRepository
	fallback outbound.AuditFallbackSink
	logger   logger.Logger
	now      func() time.Time
	newID    func() string
	failures atomic.Int64
}

// NewRecorder creates a recorder. fallback may be nil, in which case failed entries are only logged.
func NewRecorder(repo outbound.AuditRepository, fallback outbound.AuditFallbackSink, log logger.Logger) *Recorder {
	return &Recorder{
		repo:     repo,
		fallback: fallback,
		logger:   log,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
	}
}

// Record builds the entry for req and appends it.
func (r *Recorder) Record(ctx context.Context, req inbound.RecordAuditRequest) (*domain.AuditEntry, error) {
	if !req.EntityType.Valid() {
		return nil, domainerr.ErrInvalidField("entityType", string(req.EntityType))
	}
	if _, ok := domain.ParseAuditAction(string(req.Action)); !ok {
		return nil, domainerr.ErrInvalidField("action", string(req.Action))
	}
	if req.EntityID == "" {
		return nil, domainerr.ErrMissingField("entityId")
	}

	entry := &domain.AuditEntry{
		ID:         r.newID(),
		EntityType: req.EntityType,
		EntityID:   req.EntityID,
		Action:     req.Action,
		ActorID:    req.ActorID,
		Changes:    domain.BuildChanges(req.Action, req.Before, req.After),
		Timestamp:  r.now(),
	}

	if err := r.repo.Append(ctx, entry); err != nil {
		return entry, domainerr.ErrAuditWrite(err)
	}
	return entry, nil
}

// Escalate is called once the triggering mutation has committed without its entry.
func (r *Recorder) Escalate(ctx context.Context, entry *domain.AuditEntry, cause error) {
	r.failures.Add(1)
	if entry == nil {
		r.logger.Error(ctx, "Audit entry could not be built", cause, nil)
		return
	}

	logger.LogAuditFailure(ctx, r.logger, string(entry.EntityType), entry.EntityID, string(entry.Action), entry.ID, cause, nil)

	if r.fallback == nil {
		return
	}
	if err := r.fallback.Publish(ctx, entry); err != nil {
		r.logger.Error(ctx, "Audit fallback publish failed", err, map[string]interface{}{
			"audit_entry_id": entry.ID,
		})
		return
	}
	r.logger.Info(ctx, "Audit entry queued for relay", map[string]interface{}{
		"audit_entry_id": entry.ID,
	})
}

func (r *Recorder) Failures() int64 {
	return r.failures.Load()
}

var _ inbound.AuditRecorder = (*Recorder)(nil)
