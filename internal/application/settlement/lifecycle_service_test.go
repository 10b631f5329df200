package settlement

import (
	"context"
	"testing"
	"time"

	"github.com/costura/backend/internal/domain/settlement"
	"github.com/costura/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type lifecycleFixture struct {
	weeklyRepo *MockWeeklySettlementRepository
	bancaRepo  *MockSubcontractorSettlementRepository
	publisher  *MockEventPublisher
	service    *LifecycleService
}

func newLifecycleFixture() *lifecycleFixture {
	f := &lifecycleFixture{
		weeklyRepo: new(MockWeeklySettlementRepository),
		bancaRepo:  new(MockSubcontractorSettlementRepository),
		publisher:  new(MockEventPublisher),
	}
	f.service = NewLifecycleService(f.weeklyRepo, f.bancaRepo, f.publisher, zap.NewNop())
	f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Maybe()
	return f
}

func newOpenWeek(t *testing.T) *settlement.WeeklySettlement {
	t.Helper()
	ws, err := settlement.NewWeeklySettlement(
		time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 24, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	ws.ClearDomainEvents()
	return ws
}

func newPendingBanca(t *testing.T, weeklyID uuid.UUID) *settlement.SubcontractorSettlement {
	t.Helper()
	ss, err := settlement.NewSubcontractorSettlement(
		weeklyID, uuid.New(), "Banca Azul", false,
		time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 24, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	ss.ClearDomainEvents()
	return ss
}

func TestLifecycleService_FinalizeWeek(t *testing.T) {
	ctx := context.Background()

	t.Run("marks an open week paid", func(t *testing.T) {
		f := newLifecycleFixture()
		ws := newOpenWeek(t)

		f.weeklyRepo.On("FindByID", mock.Anything, ws.ID).Return(ws, nil)
		f.weeklyRepo.On("Save", mock.Anything, ws).Return(nil)

		result, changed, err := f.service.FinalizeWeek(ctx, ws.ID)

		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, settlement.WeeklyStatusPaid, result.Status)
		require.NotNil(t, result.PaidAt)
	})

	t.Run("is a no-op for an already paid week", func(t *testing.T) {
		f := newLifecycleFixture()
		ws := newOpenWeek(t)
		require.True(t, ws.Finalize())
		ws.ClearDomainEvents()
		paidAt := *ws.PaidAt

		f.weeklyRepo.On("FindByID", mock.Anything, ws.ID).Return(ws, nil)

		result, changed, err := f.service.FinalizeWeek(ctx, ws.ID)

		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, paidAt, *result.PaidAt)
		f.weeklyRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("returns not found for an unknown week", func(t *testing.T) {
		f := newLifecycleFixture()
		id := uuid.New()

		f.weeklyRepo.On("FindByID", mock.Anything, id).Return(nil, nil)

		_, _, err := f.service.FinalizeWeek(ctx, id)

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestLifecycleService_FinalizeSubcontractor(t *testing.T) {
	ctx := context.Background()

	t.Run("marks a pending banca paid without touching the week", func(t *testing.T) {
		f := newLifecycleFixture()
		ws := newOpenWeek(t)
		ss := newPendingBanca(t, ws.ID)

		f.bancaRepo.On("FindByWeekAndSubcontractor", mock.Anything, ws.ID, ss.SubcontractorID).Return(ss, nil)
		f.bancaRepo.On("Save", mock.Anything, ss).Return(nil)

		result, changed, err := f.service.FinalizeSubcontractor(ctx, ws.ID, ss.SubcontractorID)

		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, settlement.SubcontractorStatusPaid, result.Status)
		require.NotNil(t, result.PaidAt)
		f.weeklyRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("is a no-op for an already paid banca", func(t *testing.T) {
		f := newLifecycleFixture()
		ws := newOpenWeek(t)
		ss := newPendingBanca(t, ws.ID)
		require.True(t, ss.Finalize())
		ss.ClearDomainEvents()

		f.bancaRepo.On("FindByWeekAndSubcontractor", mock.Anything, ws.ID, ss.SubcontractorID).Return(ss, nil)

		_, changed, err := f.service.FinalizeSubcontractor(ctx, ws.ID, ss.SubcontractorID)

		require.NoError(t, err)
		assert.False(t, changed)
		f.bancaRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("returns not found when the pair has no settlement", func(t *testing.T) {
		f := newLifecycleFixture()
		ws := newOpenWeek(t)
		subcontractorID := uuid.New()

		f.bancaRepo.On("FindByWeekAndSubcontractor", mock.Anything, ws.ID, subcontractorID).Return(nil, nil)

		_, _, err := f.service.FinalizeSubcontractor(ctx, ws.ID, subcontractorID)

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
