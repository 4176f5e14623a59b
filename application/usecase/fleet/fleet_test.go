package fleet_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/fleettrack/fleettrack/application/port/inbound"
	"github.com/fleettrack/fleettrack/application/usecase/audit"
	"github.com/fleettrack/fleettrack/application/usecase/fleet"
	"github.com/fleettrack/fleettrack/domain"
	domainerr "github.com/fleettrack/fleettrack/domain/error"
	"github.com/fleettrack/fleettrack/domain/entity"
	"github.com/fleettrack/fleettrack/domain/query"
	"github.com/fleettrack/fleettrack/domain/valueobject"
	"github.com/fleettrack/fleettrack/infrastructure/adapter/postgres"
	"github.com/fleettrack/fleettrack/infrastructure/service/password"
	"github.com/fleettrack/fleettrack/internal/testutil"
)

type recordingSink struct {
	mu      sync.Mutex
	entries []*domain.AuditEntry
}

func (s *recordingSink) Publish(_ context.Context, e *domain.AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
	return nil
}

type fixture struct {
	db        *gorm.DB
	owners    *fleet.OwnerUseCase
	locations *fleet.LocationUseCase
	sources   *fleet.SourceUseCase
	vehicles  *fleet.VehicleUseCase
	users     *fleet.UserUseCase
	recorder  *audit.Recorder
	audit     *audit.QueryUseCase
	sink      *recordingSink
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	log := testutil.NewLogger()

	auditRepo := postgres.NewAuditRepository(db)
	sink := &recordingSink{}
	recorder := audit.NewRecorder(auditRepo, sink, log)
	deps := fleet.Deps{Tx: postgres.NewTxManager(db), Recorder: recorder, Logger: log}

	ownerRepo := postgres.NewOwnerRepository(db)
	locationRepo := postgres.NewLocationRepository(db)
	sourceRepo := postgres.NewSourceRepository(db)

	return &fixture{
		db:        db,
		owners:    fleet.NewOwnerUseCase(ownerRepo, deps),
		locations: fleet.NewLocationUseCase(locationRepo, deps),
		sources:   fleet.NewSourceUseCase(sourceRepo, deps),
		vehicles:  fleet.NewVehicleUseCase(postgres.NewVehicleRepository(db), ownerRepo, locationRepo, sourceRepo, deps),
		users:     fleet.NewUserUseCase(postgres.NewUserRepository(db), locationRepo, password.NewBcryptPasswordService(bcrypt.MinCost), deps),
		recorder:  recorder,
		audit:     audit.NewQueryUseCase(auditRepo),
		sink:      sink,
	}
}

var (
	admin   = valueobject.NewPrincipal("admin-1", "admin@fleet.io", valueobject.RoleAdmin)
	manager = valueobject.NewPrincipal("john.doe", "john@fleet.io", valueobject.RoleManager)
	viewer  = valueobject.NewPrincipal("viewer-1", "viewer@fleet.io", valueobject.RoleViewer)
)

func str(s string) *string { return &s }

func (f *fixture) history(t *testing.T, entityType domain.EntityType, id string) []domain.AuditEntry {
	t.Helper()
	page, err := f.audit.GetByEntity(context.Background(), admin, string(entityType), id, query.Pagination{})
	require.NoError(t, err)
	return page.Items
}

func newVehicleRequest() inbound.CreateVehicleRequest {
	return inbound.CreateVehicleRequest{
		VIN:         "1hgcm82633a004352",
		PlateNumber: "b 1234 xy",
		Make:        "Honda",
		Model:       "Accord",
		Year:        2020,
		Status:      string(entity.VehicleInTransit),
	}
}

func TestVehicleStatusChangeRecordsOnlyStatus(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	v, err := f.vehicles.Create(ctx, manager, newVehicleRequest())
	require.NoError(t, err)
	assert.Equal(t, "1HGCM82633A004352", v.VIN)
	assert.Equal(t, "B 1234 XY", v.PlateNumber)

	delivered := string(entity.VehicleDelivered)
	_, err = f.vehicles.Update(ctx, manager, v.ID, inbound.UpdateVehicleRequest{Status: &delivered})
	require.NoError(t, err)

	entries := f.history(t, domain.EntityVehicle, v.ID)
	require.Len(t, entries, 2)

	var updates []domain.AuditEntry
	for _, e := range entries {
		if e.Action == domain.ActionUpdate {
			updates = append(updates, e)
		}
	}
	require.Len(t, updates, 1)
	assert.Equal(t, map[string]domain.FieldChange{
		"status": {Before: "InTransit", After: "Delivered"},
	}, updates[0].Changes)
	require.NotNil(t, updates[0].ActorID)
	assert.Equal(t, "john.doe", *updates[0].ActorID)
}

func TestCreateRecordsAfterStateAndDeleteRecordsBeforeState(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	o, err := f.owners.Create(ctx, admin, inbound.CreateOwnerRequest{Name: "Acme", Email: "Ops@Acme.io"})
	require.NoError(t, err)
	assert.Equal(t, entity.OwnerActive, o.Status)
	assert.Equal(t, "ops@acme.io", o.Email)

	require.NoError(t, f.owners.Delete(ctx, admin, o.ID))

	_, err = f.owners.Get(ctx, admin, o.ID)
	assert.True(t, errors.Is(err, domainerr.ErrNotFound))

	entries := f.history(t, domain.EntityOwner, o.ID)
	require.Len(t, entries, 2)

	byAction := map[domain.AuditAction]domain.AuditEntry{}
	for _, e := range entries {
		byAction[e.Action] = e
	}

	created := byAction[domain.ActionCreate]
	assert.Equal(t, "Acme", created.Changes["name"].After)
	assert.Nil(t, created.Changes["name"].Before)

	deleted := byAction[domain.ActionDelete]
	assert.Equal(t, "Acme", deleted.Changes["name"].Before)
	assert.Nil(t, deleted.Changes["name"].After)
}

func TestUpdateWithoutChangesRecordsEmptyDiff(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	o, err := f.owners.Create(ctx, admin, inbound.CreateOwnerRequest{Name: "Acme", Email: "acme@x.io"})
	require.NoError(t, err)

	_, err = f.owners.Update(ctx, admin, o.ID, inbound.UpdateOwnerRequest{Name: str(" Acme ")})
	require.NoError(t, err)

	for _, e := range f.history(t, domain.EntityOwner, o.ID) {
		if e.Action == domain.ActionUpdate {
			assert.Empty(t, e.Changes)
		}
	}
}

func TestAuthorization(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.owners.Create(ctx, nil, inbound.CreateOwnerRequest{Name: "Acme", Email: "acme@x.io"})
	assert.True(t, errors.Is(err, domainerr.ErrUnauthorized))

	_, err = f.owners.Create(ctx, viewer, inbound.CreateOwnerRequest{Name: "Acme", Email: "acme@x.io"})
	assert.True(t, errors.Is(err, domainerr.ErrForbidden))

	_, err = f.users.List(ctx, viewer, query.PageRequest{})
	assert.True(t, errors.Is(err, domainerr.ErrForbidden))

	_, err = f.users.Create(ctx, manager, inbound.CreateUserRequest{Email: "x@fleet.io", Name: "X", Role: "viewer"})
	assert.True(t, errors.Is(err, domainerr.ErrForbidden))

	_, err = f.audit.List(ctx, viewer, query.PageRequest{})
	assert.True(t, errors.Is(err, domainerr.ErrForbidden))

	page, err := f.audit.List(ctx, admin, query.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), page.Total)
}

func TestVehicleReferencesMustExist(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	req := newVehicleRequest()
	req.OwnerID = str("missing-owner")
	_, err := f.vehicles.Create(ctx, admin, req)

	var appErr *domainerr.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, domainerr.ErrCodeInvalidReference, appErr.Code)

	page, err := f.vehicles.List(ctx, admin, query.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), page.Total)

	owner, err := f.owners.Create(ctx, admin, inbound.CreateOwnerRequest{Name: "Acme", Email: "acme@x.io"})
	require.NoError(t, err)
	req.OwnerID = &owner.ID

	v, err := f.vehicles.Create(ctx, admin, req)
	require.NoError(t, err)
	require.NotNil(t, v.OwnerID)

	// blank clears the reference
	v, err = f.vehicles.Update(ctx, admin, v.ID, inbound.UpdateVehicleRequest{OwnerID: str("")})
	require.NoError(t, err)
	assert.Nil(t, v.OwnerID)
}

func TestValidationAndNotFound(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	req := newVehicleRequest()
	req.VIN = "SHORT"
	_, err := f.vehicles.Create(ctx, admin, req)
	assert.True(t, errors.Is(err, domainerr.ErrValidation))

	_, err = f.owners.Update(ctx, admin, "missing", inbound.UpdateOwnerRequest{Name: str("x")})
	assert.True(t, errors.Is(err, domainerr.ErrNotFound))

	assert.True(t, errors.Is(f.sources.Delete(ctx, admin, "missing"), domainerr.ErrNotFound))

	_, err = f.locations.List(ctx, admin, query.PageRequest{Sort: &query.Sort{Field: "latitude"}})
	assert.True(t, errors.Is(err, domainerr.ErrValidation))
}

func TestDuplicateVINIsConflict(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.vehicles.Create(ctx, admin, newVehicleRequest())
	require.NoError(t, err)

	req := newVehicleRequest()
	req.PlateNumber = "OTHER 1"
	_, err = f.vehicles.Create(ctx, admin, req)
	assert.True(t, errors.Is(err, domainerr.ErrConflict), "got %v", err)

	page, err := f.audit.List(ctx, admin, query.PageRequest{Filters: query.Filters{"entityType": "vehicles"}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
}

func TestUserDeleteDeactivates(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	u, err := f.users.Create(ctx, admin, inbound.CreateUserRequest{
		Email:    "Dispatch@Fleet.io",
		Name:     "Dispatch",
		Role:     "operator",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.True(t, u.IsActive)
	assert.NotEmpty(t, u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("correct-horse")))

	require.NoError(t, f.users.Delete(ctx, admin, u.ID))

	got, err := f.users.Get(ctx, admin, u.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	page, err := f.users.List(ctx, admin, query.PageRequest{Filters: query.Filters{"isActive": "false"}})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)

	entries := f.history(t, domain.EntityUser, u.ID)
	require.Len(t, entries, 2)
	for _, e := range entries {
		_, leaked := e.Changes["passwordHash"]
		assert.False(t, leaked)
		if e.Action == domain.ActionDelete {
			assert.Equal(t, true, e.Changes["isActive"].Before)
		}
	}
}

func TestUserPasswordIsValidated(t *testing.T) {
	f := newFixture(t)

	_, err := f.users.Create(context.Background(), admin, inbound.CreateUserRequest{
		Email: "a@fleet.io", Name: "A", Role: "viewer", Password: "short",
	})
	assert.True(t, errors.Is(err, domainerr.ErrValidation))
}

func TestSystemPrincipalRecordsNullActor(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	s, err := f.sources.Create(ctx, valueobject.SystemPrincipal(), inbound.CreateSourceRequest{Name: "Copart", Type: "Auction"})
	require.NoError(t, err)

	entries := f.history(t, domain.EntitySource, s.ID)
	require.Len(t, entries, 1)
	assert.Nil(t, entries[0].ActorID)
}

func TestAuditFailureDoesNotFailMutation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.db.Migrator().DropTable("audit_logs"))

	o, err := f.owners.Create(ctx, admin, inbound.CreateOwnerRequest{Name: "Acme", Email: "acme@x.io"})
	require.NoError(t, err)

	got, err := f.owners.Get(ctx, admin, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Name)

	assert.Equal(t, int64(1), f.recorder.Failures())
	require.Len(t, f.sink.entries, 1)
	escalated := f.sink.entries[0]
	assert.Equal(t, o.ID, escalated.EntityID)
	assert.Equal(t, domain.ActionCreate, escalated.Action)
	assert.Equal(t, "admin-1", *escalated.ActorID)
}

func TestFailedMutationWritesNoAudit(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.owners.Create(ctx, admin, inbound.CreateOwnerRequest{Name: "Acme", Email: "acme@x.io"})
	require.NoError(t, err)
	_, err = f.owners.Create(ctx, admin, inbound.CreateOwnerRequest{Name: "Acme 2", Email: "acme@x.io"})
	require.Error(t, err)

	page, err := f.audit.List(ctx, admin, query.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	assert.Zero(t, f.recorder.Failures())
}
