package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/fleettrack/fleettrack/application/port/inbound"
	"github.com/fleettrack/fleettrack/domain"
	"github.com/fleettrack/fleettrack/domain/entity"
	"github.com/fleettrack/fleettrack/domain/query"
	"github.com/fleettrack/fleettrack/domain/valueobject"
)

// MockOwnerUseCase is a mock implementation of the owner EntityUseCase
type MockOwnerUseCase struct {
	mock.Mock
}

func (m *MockOwnerUseCase) List(ctx context.Context, p *valueobject.Principal, req query.PageRequest) (*query.PageResult[entity.Owner], error) {
	args := m.Called(ctx, p, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*query.PageResult[entity.Owner]), args.Error(1)
}

func (m *MockOwnerUseCase) Get(ctx context.Context, p *valueobject.Principal, id string) (*entity.Owner, error) {
	args := m.Called(ctx, p, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Owner), args.Error(1)
}

func (m *MockOwnerUseCase) Create(ctx context.Context, p *valueobject.Principal, req inbound.CreateOwnerRequest) (*entity.Owner, error) {
	args := m.Called(ctx, p, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Owner), args.Error(1)
}

func (m *MockOwnerUseCase) Update(ctx context.Context, p *valueobject.Principal, id string, req inbound.UpdateOwnerRequest) (*entity.Owner, error) {
	args := m.Called(ctx, p, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Owner), args.Error(1)
}

func (m *MockOwnerUseCase) Delete(ctx context.Context, p *valueobject.Principal, id string) error {
	args := m.Called(ctx, p, id)
	return args.Error(0)
}

// MockAuditQueryUseCase is a mock implementation of AuditQueryUseCase
type MockAuditQueryUseCase struct {
	mock.Mock
}

func (m *MockAuditQueryUseCase) List(ctx context.Context, p *valueobject.Principal, req query.PageRequest) (*query.PageResult[domain.AuditEntry], error) {
	args := m.Called(ctx, p, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*query.PageResult[domain.AuditEntry]), args.Error(1)
}

func (m *MockAuditQueryUseCase) GetByID(ctx context.Context, p *valueobject.Principal, id string) (*domain.AuditEntry, error) {
	args := m.Called(ctx, p, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuditEntry), args.Error(1)
}

func (m *MockAuditQueryUseCase) GetByEntity(ctx context.Context, p *valueobject.Principal, entityType, entityID string, pagination query.Pagination) (*query.PageResult[domain.AuditEntry], error) {
	args := m.Called(ctx, p, entityType, entityID, pagination)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*query.PageResult[domain.AuditEntry]), args.Error(1)
}

type fixedFailures int64

func (f fixedFailures) Failures() int64 { return int64(f) }

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }
