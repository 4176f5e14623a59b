package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fleettrack/fleettrack/application/port/outbound"
	"github.com/fleettrack/fleettrack/domain"
	domainerr "github.com/fleettrack/fleettrack/domain/error"
	"github.com/fleettrack/fleettrack/domain/query"
)

type auditLogRecord struct {
	ID         string         `gorm:"primaryKey;size:36"`
	EntityType string         `gorm:"size:32;not null;index:idx_audit_logs_entity,priority:1"`
	EntityID   string         `gorm:"size:36;not null;index:idx_audit_logs_entity,priority:2"`
	Action     string         `gorm:"size:16;not null;index"`
	ActorID    *string        `gorm:"size:64;index"`
	Changes    datatypes.JSON `gorm:"not null"`
	Timestamp  time.Time      `gorm:"not null;index"`
}

func (auditLogRecord) TableName() string { return "audit_logs" }

func toAuditRecord(e *domain.AuditEntry) (*auditLogRecord, error) {
	changes := e.Changes
	if changes == nil {
		changes = map[string]domain.FieldChange{}
	}
	raw, err := json.Marshal(changes)
	if err != nil {
		return nil, domainerr.ErrInvalidField("changes", err.Error())
	}
	return &auditLogRecord{
		ID:         e.ID,
		EntityType: string(e.EntityType),
		EntityID:   e.EntityID,
		Action:     string(e.Action),
		ActorID:    e.ActorID,
		Changes:    datatypes.JSON(raw),
		Timestamp:  e.Timestamp.UTC(),
	}, nil
}

func (r auditLogRecord) toDomain() (domain.AuditEntry, error) {
	changes := map[string]domain.FieldChange{}
	if len(r.Changes) > 0 {
		if err := json.Unmarshal(r.Changes, &changes); err != nil {
			return domain.AuditEntry{}, err
		}
	}
	return domain.AuditEntry{
		ID:         r.ID,
		EntityType: domain.EntityType(r.EntityType),
		EntityID:   r.EntityID,
		Action:     domain.AuditAction(r.Action),
		ActorID:    r.ActorID,
		Changes:    changes,
		Timestamp:  r.Timestamp.UTC(),
	}, nil
}

// AuditRepository stores audit entries in the audit_logs table.
type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Append runs inside a savepoint when ctx carries a transaction, so a failed
// insert rolls back alone and the caller's mutation can still commit.
func (r *AuditRepository) Append(ctx context.Context, entry *domain.AuditEntry) error {
	rec, err := toAuditRecord(entry)
	if err != nil {
		return err
	}

	db := conn(ctx, r.db)
	if inTx(ctx) {
		err = db.Transaction(func(sp *gorm.DB) error {
			return sp.Create(rec).Error
		})
	} else {
		err = db.Create(rec).Error
	}
	if err != nil {
		return storeError("append audit entry", err)
	}
	return nil
}

func (r *AuditRepository) AppendIfAbsent(ctx context.Context, entry *domain.AuditEntry) (bool, error) {
	rec, err := toAuditRecord(entry)
	if err != nil {
		return false, err
	}
	res := conn(ctx, r.db).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(rec)
	if res.Error != nil {
		return false, storeError("relay audit entry", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *AuditRepository) FindByID(ctx context.Context, id string) (*domain.AuditEntry, error) {
	var rec auditLogRecord
	if err := conn(ctx, r.db).Where("id = ?", id).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerr.ErrEntityNotFound("AuditLog", id)
		}
		return nil, storeError("find audit entry", err)
	}
	entry, err := rec.toDomain()
	if err != nil {
		return nil, storeError("decode audit entry", err)
	}
	return &entry, nil
}

func (r *AuditRepository) List(ctx context.Context, plan query.Plan) ([]domain.AuditEntry, int64, error) {
	records, total, err := list[auditLogRecord](conn(ctx, r.db), &auditLogRecord{}, plan)
	if err != nil {
		return nil, 0, storeError("list audit entries", err)
	}

	entries := make([]domain.AuditEntry, 0, len(records))
	for _, rec := range records {
		entry, err := rec.toDomain()
		if err != nil {
			return nil, 0, storeError("decode audit entry", err)
		}
		entries = append(entries, entry)
	}
	return entries, total, nil
}

var _ outbound.AuditRepository = (*AuditRepository)(nil)
