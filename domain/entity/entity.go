package entity

import (
	"strings"

	domainerr "github.com/fleettrack/fleettrack/domain/error"
)

// Entity is implemented by every audited model.
type Entity interface {
	GetID() string
	// AuditSnapshot returns the audited fields keyed by their JSON name.
	// Bookkeeping timestamps are left out so they never show up as changes.
	AuditSnapshot() map[string]any
	Validate() error
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return domainerr.ErrMissingField(field)
	}
	return nil
}

func oneOf[T ~string](field string, value T, allowed ...T) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return domainerr.ErrInvalidField(field, "unsupported value "+string(value))
}

func derefString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func derefFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

func invalidCoordinate(field string) error {
	return domainerr.ErrInvalidField(field, "out of range")
}

func invalidRole(role string) error {
	return domainerr.ErrInvalidField("role", "unsupported value "+role)
}
