package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleettrack/fleettrack/application/port/inbound"
	"github.com/fleettrack/fleettrack/domain/query"
	"github.com/fleettrack/fleettrack/domain/valueobject"
	"github.com/fleettrack/fleettrack/infrastructure/bootstrap"
	"github.com/fleettrack/fleettrack/infrastructure/service/password"
	"github.com/fleettrack/fleettrack/internal/testutil"
)

func TestEnsureAdminIsIdempotent(t *testing.T) {
	ctx := context.Background()
	passwords := password.NewBcryptPasswordService(4)
	app := bootstrap.New(testutil.NewDB(t), bootstrap.Options{
		Passwords: passwords,
		Logger:    testutil.NewLogger(),
	})
	req := inbound.CreateUserRequest{Email: "Root@Fleet.io", Name: "Root", Role: "admin", Password: "s3cret-pass"}

	first, created, err := ensureAdmin(ctx, app.Users, req)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, valueobject.RoleAdmin, first.Role)

	second, created, err := ensureAdmin(ctx, app.Users, req)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, passwords.Matches(second.PasswordHash, "s3cret-pass"))

	page, err := app.AuditQuery.GetByEntity(ctx, valueobject.SystemPrincipal(), "User", first.ID, query.Pagination{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Nil(t, page.Items[0].ActorID)
}
