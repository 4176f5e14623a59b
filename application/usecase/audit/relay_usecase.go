package audit

import (
	"context"

	"github.com/fleettrack/fleettrack/application/port/inbound"
	"github.com/fleettrack/fleettrack/application/port/outbound"
	"github.com/fleettrack/fleettrack/domain"
	domainerr "github.com/fleettrack/fleettrack/domain/error"
	"github.com/fleettrack/fleettrack/infrastructure/service/logger"
)

// RelayUseCase appends entries delivered by the fallback channel. Delivery is
// at-least-once, so appends are keyed on the entry id.
type RelayUseCase struct {
	repo   outbound.AuditRepository
	logger logger.Logger
}

func NewRelayUseCase(repo outbound.AuditRepository, log logger.Logger) *RelayUseCase {
	return &RelayUseCase{repo: repo, logger: log}
}

func (uc *RelayUseCase) Relay(ctx context.Context, entry *domain.AuditEntry) error {
	if entry == nil || entry.ID == "" || entry.EntityID == "" || !entry.EntityType.Valid() {
		return domainerr.ErrInvalidRequest("malformed audit entry")
	}

	inserted, err := uc.repo.AppendIfAbsent(ctx, entry)
	if err != nil {
		return err
	}

	fields := map[string]interface{}{
		"audit_entry_id": entry.ID,
		"entity_type":    string(entry.EntityType),
		"entity_id":      entry.EntityID,
	}
	if inserted {
		uc.logger.Info(ctx, "Audit entry relayed", fields)
	} else {
		uc.logger.Debug(ctx, "Audit entry already present, skipped", fields)
	}
	return nil
}

var _ inbound.AuditRelayUseCase = (*RelayUseCase)(nil)
