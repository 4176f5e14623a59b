package error

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	domainerr "github.com/fleettrack/fleettrack/domain/error"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", domainerr.ErrInvalidSortField("Vehicle", "vin"), http.StatusBadRequest, "VALID_2002"},
		{"not found", domainerr.ErrEntityNotFound("Owner", "o-1"), http.StatusNotFound, "NF_3001"},
		{"wrapped not found", fmt.Errorf("get: %w", domainerr.ErrEntityNotFound("Owner", "o-1")), http.StatusNotFound, "NF_3001"},
		{"forbidden", domainerr.ErrMissingCapability("audit:read"), http.StatusForbidden, "AUTH_1003"},
		{"unauthorized", domainerr.ErrUnauthenticated(""), http.StatusUnauthorized, "AUTH_1001"},
		{"conflict", domainerr.ErrDuplicate("Vehicle", nil), http.StatusConflict, "CONFLICT_4001"},
		{"store", domainerr.ErrDatabaseError("list", errors.New("connection refused")), http.StatusInternalServerError, "DB_5001"},
		{"cancelled", context.Canceled, http.StatusServiceUnavailable, "REQUEST_CANCELLED"},
		{"foreign", errors.New("boom"), http.StatusInternalServerError, "SERVER_6001"},
		{"bare kind sentinel", domainerr.ErrNotFound, http.StatusInternalServerError, "SERVER_6001"},
		{"transport", ErrRateLimited, http.StatusTooManyRequests, CodeRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.wantCode, got.Code)
		})
	}
}

func TestMapErrorHidesStoreCause(t *testing.T) {
	got := MapError(domainerr.ErrDatabaseError("list", errors.New("pq: password authentication failed")))
	assert.NotContains(t, got.Message, "password")
}
