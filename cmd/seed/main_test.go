package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleettrack/fleettrack/domain/query"
	"github.com/fleettrack/fleettrack/domain/valueobject"
	"github.com/fleettrack/fleettrack/infrastructure/bootstrap"
	"github.com/fleettrack/fleettrack/infrastructure/service/password"
	"github.com/fleettrack/fleettrack/internal/testutil"
)

func TestSeedCreatesAuditedDataOnce(t *testing.T) {
	ctx := context.Background()
	log := testutil.NewLogger()
	app := bootstrap.New(testutil.NewDB(t), bootstrap.Options{
		Passwords: password.NewBcryptPasswordService(4),
		Logger:    log,
	})
	system := valueobject.SystemPrincipal()

	stats, err := seed(ctx, app, log)
	require.NoError(t, err)
	assert.Equal(t, 9, stats.created)
	assert.Zero(t, stats.skipped)

	vehicles, err := app.Vehicles.List(ctx, system, query.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), vehicles.Total)

	entries, err := app.AuditQuery.List(ctx, system, query.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(9), entries.Total)
	for _, e := range entries.Items {
		assert.Nil(t, e.ActorID)
	}

	stats, err = seed(ctx, app, log)
	require.NoError(t, err)
	assert.Zero(t, stats.created)
	assert.Equal(t, 1, stats.skipped)
}
