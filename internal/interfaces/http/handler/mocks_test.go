package handler

import (
	"context"
	"time"

	"github.com/costura/backend/internal/domain/catalog"
	"github.com/costura/backend/internal/domain/partner"
	"github.com/costura/backend/internal/domain/production"
	"github.com/costura/backend/internal/domain/settlement"
	"github.com/costura/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockWeeklySettlementRepository is a mock for settlement.WeeklySettlementRepository
type MockWeeklySettlementRepository struct {
	mock.Mock
}

func (m *MockWeeklySettlementRepository) FindByID(ctx context.Context, id uuid.UUID) (*settlement.WeeklySettlement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settlement.WeeklySettlement), args.Error(1)
}

func (m *MockWeeklySettlementRepository) FindByIDWithChildren(ctx context.Context, id uuid.UUID) (*settlement.WeeklySettlement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settlement.WeeklySettlement), args.Error(1)
}

func (m *MockWeeklySettlementRepository) FindByWeekKey(ctx context.Context, weekKey string) (*settlement.WeeklySettlement, error) {
	args := m.Called(ctx, weekKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settlement.WeeklySettlement), args.Error(1)
}

func (m *MockWeeklySettlementRepository) FindByWeekKeyWithChildren(ctx context.Context, weekKey string) (*settlement.WeeklySettlement, error) {
	args := m.Called(ctx, weekKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settlement.WeeklySettlement), args.Error(1)
}

func (m *MockWeeklySettlementRepository) FindAll(ctx context.Context, filter settlement.WeeklySettlementFilter) ([]settlement.WeeklySettlement, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]settlement.WeeklySettlement), args.Error(1)
}

func (m *MockWeeklySettlementRepository) Create(ctx context.Context, ws *settlement.WeeklySettlement) error {
	args := m.Called(ctx, ws)
	return args.Error(0)
}

func (m *MockWeeklySettlementRepository) Save(ctx context.Context, ws *settlement.WeeklySettlement) error {
	args := m.Called(ctx, ws)
	return args.Error(0)
}

// MockSubcontractorSettlementRepository is a mock for settlement.SubcontractorSettlementRepository
type MockSubcontractorSettlementRepository struct {
	mock.Mock
}

func (m *MockSubcontractorSettlementRepository) FindByID(ctx context.Context, id uuid.UUID) (*settlement.SubcontractorSettlement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settlement.SubcontractorSettlement), args.Error(1)
}

func (m *MockSubcontractorSettlementRepository) FindByWeekAndSubcontractor(ctx context.Context, weeklySettlementID, subcontractorID uuid.UUID) (*settlement.SubcontractorSettlement, error) {
	args := m.Called(ctx, weeklySettlementID, subcontractorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settlement.SubcontractorSettlement), args.Error(1)
}

func (m *MockSubcontractorSettlementRepository) FindByWeeklySettlement(ctx context.Context, weeklySettlementID uuid.UUID) ([]settlement.SubcontractorSettlement, error) {
	args := m.Called(ctx, weeklySettlementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]settlement.SubcontractorSettlement), args.Error(1)
}

func (m *MockSubcontractorSettlementRepository) SaveWithLines(ctx context.Context, ss *settlement.SubcontractorSettlement) error {
	args := m.Called(ctx, ss)
	return args.Error(0)
}

func (m *MockSubcontractorSettlementRepository) Save(ctx context.Context, ss *settlement.SubcontractorSettlement) error {
	args := m.Called(ctx, ss)
	return args.Error(0)
}

// MockSubcontractorRepository is a mock for partner.SubcontractorRepository
type MockSubcontractorRepository struct {
	mock.Mock
}

func (m *MockSubcontractorRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Subcontractor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Subcontractor), args.Error(1)
}

func (m *MockSubcontractorRepository) FindByName(ctx context.Context, name string) (*partner.Subcontractor, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Subcontractor), args.Error(1)
}

func (m *MockSubcontractorRepository) FindByTrimmedName(ctx context.Context, name string) (*partner.Subcontractor, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Subcontractor), args.Error(1)
}

func (m *MockSubcontractorRepository) FindAll(ctx context.Context, filter partner.SubcontractorFilter) ([]partner.Subcontractor, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Subcontractor), args.Error(1)
}

func (m *MockSubcontractorRepository) Save(ctx context.Context, subcontractor *partner.Subcontractor) error {
	args := m.Called(ctx, subcontractor)
	return args.Error(0)
}

func (m *MockSubcontractorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSubcontractorRepository) Count(ctx context.Context, filter partner.SubcontractorFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockProductRepository is a mock for catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByNameKeys(ctx context.Context, nameKeys []string) ([]catalog.Product, error) {
	args := m.Called(ctx, nameKeys)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

// MockMovementReader is a mock for production.MovementReader
type MockMovementReader struct {
	mock.Mock
}

func (m *MockMovementReader) DistinctSubcontractorNames(ctx context.Context, types []production.MovementType, periodStart, periodEnd time.Time) ([]string, error) {
	args := m.Called(ctx, types, periodStart, periodEnd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockMovementReader) FindForSubcontractor(ctx context.Context, name string, types []production.MovementType, periodStart, periodEnd time.Time) ([]production.Movement, error) {
	args := m.Called(ctx, name, types, periodStart, periodEnd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]production.Movement), args.Error(1)
}

// MockEventPublisher is a mock for shared.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}
