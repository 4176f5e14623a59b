package valueobject

import (
	"regexp"
	"strings"

	domainerr "github.com/fleettrack/fleettrack/domain/error"
)

const MinPasswordLength = 8

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// NormalizeEmail lower-cases and trims an address so uniqueness is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ValidateEmail(field, email string) error {
	if email == "" {
		return domainerr.ErrMissingField(field)
	}
	if !emailRegex.MatchString(email) {
		return domainerr.ErrInvalidField(field, "invalid email format")
	}
	return nil
}

func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return domainerr.ErrInvalidField("password", "must be at least 8 characters")
	}
	return nil
}
