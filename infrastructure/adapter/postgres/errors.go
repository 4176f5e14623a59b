package postgres

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	domainerr "github.com/fleettrack/fleettrack/domain/error"
)

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") || strings.Contains(msg, "UNIQUE constraint failed")
}

func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "violates foreign key constraint") || strings.Contains(msg, "FOREIGN KEY constraint failed")
}

// writeError classifies a failed insert or update.
func writeError(entityName, operation string, err error) error {
	switch {
	case isUniqueViolation(err):
		return domainerr.ErrDuplicate(entityName, err)
	case isForeignKeyViolation(err):
		return domainerr.NewAppError(domainerr.ErrCodeInvalidReference, domainerr.KindValidation, "Referenced record does not exist", entityName, err)
	default:
		return storeError(operation, err)
	}
}

func storeError(operation string, err error) error {
	return domainerr.ErrDatabaseError(operation, err)
}
