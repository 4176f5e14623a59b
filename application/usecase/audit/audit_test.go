package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fleettrack/fleettrack/application/port/inbound"
	"github.com/fleettrack/fleettrack/domain"
	domainerr "github.com/fleettrack/fleettrack/domain/error"
	"github.com/fleettrack/fleettrack/domain/query"
	"github.com/fleettrack/fleettrack/domain/valueobject"
	"github.com/fleettrack/fleettrack/internal/testutil"
)

type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) Append(ctx context.Context, entry *domain.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditRepository) AppendIfAbsent(ctx context.Context, entry *domain.AuditEntry) (bool, error) {
	args := m.Called(ctx, entry)
	return args.Bool(0), args.Error(1)
}

func (m *MockAuditRepository) FindByID(ctx context.Context, id string) (*domain.AuditEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuditEntry), args.Error(1)
}

func (m *MockAuditRepository) List(ctx context.Context, plan query.Plan) ([]domain.AuditEntry, int64, error) {
	args := m.Called(ctx, plan)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.AuditEntry), args.Get(1).(int64), args.Error(2)
}

type MockFallbackSink struct {
	mock.Mock
}

func (m *MockFallbackSink) Publish(ctx context.Context, entry *domain.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

var fixedTime = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func newTestRecorder(repo *MockAuditRepository, sink *MockFallbackSink) *Recorder {
	var r *Recorder
	if sink == nil {
		r = NewRecorder(repo, nil, testutil.NewLogger())
	} else {
		r = NewRecorder(repo, sink, testutil.NewLogger())
	}
	r.now = func() time.Time { return fixedTime }
	r.newID = func() string { return "a-1" }
	return r
}

func ptr(s string) *string { return &s }

func TestRecorderRecord(t *testing.T) {
	tests := []struct {
		name     string
		req      inbound.RecordAuditRequest
		wantErr  error
		wantDiff map[string]domain.FieldChange
	}{
		{
			name: "update keeps only changed fields",
			req: inbound.RecordAuditRequest{
				EntityType: domain.EntityVehicle,
				EntityID:   "v-1",
				Action:     domain.ActionUpdate,
				ActorID:    ptr("john.doe"),
				Before:     map[string]any{"status": "InTransit", "year": 2020},
				After:      map[string]any{"status": "Delivered", "year": 2020},
			},
			wantDiff: map[string]domain.FieldChange{"status": {Before: "InTransit", After: "Delivered"}},
		},
		{
			name: "create keeps after state",
			req: inbound.RecordAuditRequest{
				EntityType: domain.EntityOwner,
				EntityID:   "o-1",
				Action:     domain.ActionCreate,
				After:      map[string]any{"name": "Acme"},
			},
			wantDiff: map[string]domain.FieldChange{"name": {After: "Acme"}},
		},
		{
			name: "unknown entity type",
			req: inbound.RecordAuditRequest{
				EntityType: domain.EntityType("Truck"),
				EntityID:   "t-1",
				Action:     domain.ActionCreate,
			},
			wantErr: domainerr.ErrValidation,
		},
		{
			name: "unknown action",
			req: inbound.RecordAuditRequest{
				EntityType: domain.EntityVehicle,
				EntityID:   "v-1",
				Action:     domain.AuditAction("ARCHIVE"),
			},
			wantErr: domainerr.ErrValidation,
		},
		{
			name: "missing entity id",
			req: inbound.RecordAuditRequest{
				EntityType: domain.EntityVehicle,
				Action:     domain.ActionDelete,
			},
			wantErr: domainerr.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockAuditRepository)
			if tt.wantErr == nil {
				repo.On("Append", mock.Anything, mock.AnythingOfType("*domain.AuditEntry")).Return(nil)
			}
			r := newTestRecorder(repo, nil)

			entry, err := r.Record(context.Background(), tt.req)

			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				repo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "a-1", entry.ID)
			assert.Equal(t, fixedTime, entry.Timestamp)
			assert.Equal(t, tt.req.ActorID, entry.ActorID)
			assert.Equal(t, tt.wantDiff, entry.Changes)
			repo.AssertExpectations(t)
		})
	}
}

func TestRecorderAppendFailureReturnsEntry(t *testing.T) {
	repo := new(MockAuditRepository)
	repo.On("Append", mock.Anything, mock.Anything).Return(domainerr.ErrDatabaseError("append audit", errors.New("disk full")))
	r := newTestRecorder(repo, nil)

	entry, err := r.Record(context.Background(), inbound.RecordAuditRequest{
		EntityType: domain.EntitySource,
		EntityID:   "s-1",
		Action:     domain.ActionDelete,
		Before:     map[string]any{"name": "Copart"},
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerr.ErrStore))
	require.NotNil(t, entry)
	assert.Equal(t, "s-1", entry.EntityID)
	assert.Zero(t, r.Failures())
}

func TestRecorderEscalate(t *testing.T) {
	entry := &domain.AuditEntry{ID: "a-1", EntityType: domain.EntityVehicle, EntityID: "v-1", Action: domain.ActionUpdate}
	cause := errors.New("disk full")

	t.Run("publishes to fallback", func(t *testing.T) {
		sink := new(MockFallbackSink)
		sink.On("Publish", mock.Anything, entry).Return(nil)
		r := newTestRecorder(new(MockAuditRepository), sink)

		r.Escalate(context.Background(), entry, cause)

		assert.Equal(t, int64(1), r.Failures())
		sink.AssertExpectations(t)
	})

	t.Run("fallback failure is still counted once", func(t *testing.T) {
		sink := new(MockFallbackSink)
		sink.On("Publish", mock.Anything, entry).Return(errors.New("broker down"))
		r := newTestRecorder(new(MockAuditRepository), sink)

		r.Escalate(context.Background(), entry, cause)
		r.Escalate(context.Background(), nil, cause)

		assert.Equal(t, int64(2), r.Failures())
		sink.AssertNumberOfCalls(t, "Publish", 1)
	})

	t.Run("without fallback", func(t *testing.T) {
		r := newTestRecorder(new(MockAuditRepository), nil)
		r.Escalate(context.Background(), entry, cause)
		assert.Equal(t, int64(1), r.Failures())
	})
}

var (
	auditAdmin  = valueobject.NewPrincipal("admin-1", "admin@fleet.io", valueobject.RoleAdmin)
	auditViewer = valueobject.NewPrincipal("viewer-1", "viewer@fleet.io", valueobject.RoleViewer)
)

func TestQueryAuthorization(t *testing.T) {
	repo := new(MockAuditRepository)
	uc := NewQueryUseCase(repo)
	ctx := context.Background()

	_, err := uc.List(ctx, nil, query.PageRequest{})
	assert.True(t, errors.Is(err, domainerr.ErrUnauthorized))

	_, err = uc.List(ctx, auditViewer, query.PageRequest{})
	assert.True(t, errors.Is(err, domainerr.ErrForbidden))

	_, err = uc.GetByID(ctx, auditViewer, "a-1")
	assert.True(t, errors.Is(err, domainerr.ErrForbidden))

	repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestQueryListCompilesPlan(t *testing.T) {
	repo := new(MockAuditRepository)
	uc := NewQueryUseCase(repo)

	var got query.Plan
	repo.On("List", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { got = args.Get(1).(query.Plan) }).
		Return([]domain.AuditEntry{{ID: "a-1"}}, int64(11), nil)

	res, err := uc.List(context.Background(), auditAdmin, query.PageRequest{
		Filters:    query.Filters{"entityType": "vehicles", "action": "update"},
		Pagination: query.Pagination{Page: 2, Limit: 5},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(11), res.Total)
	assert.Equal(t, 3, res.TotalPages)
	assert.Equal(t, 5, got.Limit)
	assert.Equal(t, 5, got.Offset())
}

func TestQueryListRejectsBadInput(t *testing.T) {
	uc := NewQueryUseCase(new(MockAuditRepository))
	ctx := context.Background()

	tests := []struct {
		name string
		req  query.PageRequest
	}{
		{"start after end", query.PageRequest{Filters: query.Filters{"startDate": "2024-03-02", "endDate": "2024-03-01"}}},
		{"unknown entity type", query.PageRequest{Filters: query.Filters{"entityType": "Truck"}}},
		{"unknown action", query.PageRequest{Filters: query.Filters{"action": "ARCHIVE"}}},
		{"unknown sort", query.PageRequest{Sort: &query.Sort{Field: "changes"}}},
		{"unparseable date", query.PageRequest{Filters: query.Filters{"startDate": "yesterday"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.List(ctx, auditAdmin, tt.req)
			assert.True(t, errors.Is(err, domainerr.ErrValidation), "got %v", err)
		})
	}
}

func TestGetByEntityIsFilteredList(t *testing.T) {
	repo := new(MockAuditRepository)
	uc := NewQueryUseCase(repo)
	ctx := context.Background()

	var plans []query.Plan
	repo.On("List", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { plans = append(plans, args.Get(1).(query.Plan)) }).
		Return([]domain.AuditEntry{}, int64(0), nil)

	_, err := uc.GetByEntity(ctx, auditAdmin, "Vehicle", "v-1", query.Pagination{})
	require.NoError(t, err)
	_, err = uc.List(ctx, auditAdmin, query.PageRequest{Filters: query.Filters{"entityType": "Vehicle", "entityId": "v-1"}})
	require.NoError(t, err)

	require.Len(t, plans, 2)
	assert.Equal(t, plans[1], plans[0])

	_, err = uc.GetByEntity(ctx, auditAdmin, "", "v-1", query.Pagination{})
	assert.True(t, errors.Is(err, domainerr.ErrValidation))
	_, err = uc.GetByEntity(ctx, auditAdmin, "Vehicle", " ", query.Pagination{})
	assert.True(t, errors.Is(err, domainerr.ErrValidation))
}

func TestRelay(t *testing.T) {
	entry := &domain.AuditEntry{ID: "a-1", EntityType: domain.EntityOwner, EntityID: "o-1", Action: domain.ActionCreate, Timestamp: fixedTime}

	t.Run("inserts once", func(t *testing.T) {
		repo := new(MockAuditRepository)
		repo.On("AppendIfAbsent", mock.Anything, entry).Return(true, nil).Once()
		repo.On("AppendIfAbsent", mock.Anything, entry).Return(false, nil).Once()
		uc := NewRelayUseCase(repo, testutil.NewLogger())

		require.NoError(t, uc.Relay(context.Background(), entry))
		require.NoError(t, uc.Relay(context.Background(), entry))
		repo.AssertExpectations(t)
	})

	t.Run("malformed entries are rejected", func(t *testing.T) {
		repo := new(MockAuditRepository)
		uc := NewRelayUseCase(repo, testutil.NewLogger())

		for _, bad := range []*domain.AuditEntry{
			nil,
			{EntityType: domain.EntityOwner, EntityID: "o-1"},
			{ID: "a-2", EntityType: domain.EntityType("Truck"), EntityID: "t-1"},
		} {
			err := uc.Relay(context.Background(), bad)
			assert.True(t, errors.Is(err, domainerr.ErrValidation))
		}
		repo.AssertNotCalled(t, "AppendIfAbsent", mock.Anything, mock.Anything)
	})

	t.Run("store errors propagate", func(t *testing.T) {
		repo := new(MockAuditRepository)
		repo.On("AppendIfAbsent", mock.Anything, entry).Return(false, domainerr.ErrDatabaseError("append audit", errors.New("down")))
		uc := NewRelayUseCase(repo, testutil.NewLogger())

		err := uc.Relay(context.Background(), entry)
		assert.True(t, errors.Is(err, domainerr.ErrStore))
	})
}
