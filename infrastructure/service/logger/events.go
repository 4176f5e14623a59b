package logger

import (
	"context"
	"fmt"
	"time"
)

// LogAuditFailure records an audit entry that could not be stored with its mutation.
func LogAuditFailure(ctx context.Context, logger Logger, entityType, entityID, action, entryID string, err error, fields map[string]interface{}) {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	fields["event_type"] = "audit_failure"
	fields["entity_type"] = entityType
	fields["entity_id"] = entityID
	fields["action"] = action
	fields["audit_entry_id"] = entryID

	logger.Error(ctx, fmt.Sprintf("Audit write failed: %s %s %s", action, entityType, entityID), err, fields)
}

// LogSecurityEvent logs at error for HIGH, warn for MEDIUM and info otherwise.
func LogSecurityEvent(ctx context.Context, logger Logger, event string, severity string, fields map[string]interface{}) {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	fields["event_type"] = "security"
	fields["security_event"] = event
	fields["severity"] = severity

	message := fmt.Sprintf("Security event: %s", event)
	switch severity {
	case "HIGH":
		logger.Error(ctx, message, nil, fields)
	case "MEDIUM":
		logger.Warn(ctx, message, fields)
	default:
		logger.Info(ctx, message, fields)
	}
}

func LogPerformance(ctx context.Context, logger Logger, operation string, duration time.Duration, fields map[string]interface{}) {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	fields["event_type"] = "performance"
	fields["operation"] = operation
	fields["duration_ms"] = duration.Milliseconds()

	logger.Info(ctx, fmt.Sprintf("Performance: %s took %s", operation, duration), fields)
}
