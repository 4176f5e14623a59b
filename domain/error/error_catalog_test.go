package error

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindSentinels(t *testing.T) {
	err := fmt.Errorf("update vehicle: %w", ErrEntityNotFound("Vehicle", "v-1"))

	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected wrapped error to match ErrNotFound")
	}
	if errors.Is(err, ErrValidation) {
		t.Errorf("not found error must not match ErrValidation")
	}
	if KindOf(err) != KindNotFound {
		t.Errorf("expected kind %s, got %s", KindNotFound, KindOf(err))
	}
}

func TestIsMatchesByCode(t *testing.T) {
	err := ErrInvalidSortField("Owner", "vin")

	if !errors.Is(err, &AppError{Code: ErrCodeInvalidSortField}) {
		t.Errorf("expected match on code")
	}
	if errors.Is(err, &AppError{Code: ErrCodeInvalidFilter}) {
		t.Errorf("unexpected match on different code")
	}
}

func TestKindOfForeignError(t *testing.T) {
	if KindOf(errors.New("boom")) != KindInternal {
		t.Errorf("foreign errors should be internal")
	}
}

func TestGetHTTPStatusCode(t *testing.T) {
	cases := map[int]error{
		http.StatusBadRequest:          ErrInvalidPagination("page", 0),
		http.StatusUnauthorized:        ErrInvalidToken("expired"),
		http.StatusForbidden:           ErrMissingCapability("vehicles:delete"),
		http.StatusNotFound:            ErrEntityNotFound("Source", "s-1"),
		http.StatusConflict:            ErrDuplicate("User", nil),
		http.StatusInternalServerError: ErrDatabaseError("insert", errors.New("down")),
	}
	for want, err := range cases {
		if got := GetHTTPStatusCode(err); got != want {
			t.Errorf("%v: expected %d, got %d", err, want, got)
		}
	}
}
