package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/costura/backend/internal/domain/settlement"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSettlementDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&settlement.WeeklySettlement{},
		&settlement.SubcontractorSettlement{},
		&settlement.SettlementLineItem{},
	))
	return db
}

func makeWeek(t *testing.T) *settlement.WeeklySettlement {
	t.Helper()
	ws, err := settlement.NewWeeklySettlement(
		time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 24, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	ws.ClearDomainEvents()
	return ws
}

func makeBancaSettlement(t *testing.T, weeklyID uuid.UUID, lines int) *settlement.SubcontractorSettlement {
	t.Helper()
	ss, err := settlement.NewSubcontractorSettlement(
		weeklyID, uuid.New(), "Banca Azul", false,
		time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 24, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	items := make([]settlement.SettlementLineItem, 0, lines)
	for i := 0; i < lines; i++ {
		item, err := settlement.NewSettlementLineItem(
			uuid.New(), "Camisa Polo", 10, decimal.RequireFromString("12.00"),
			time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		)
		require.NoError(t, err)
		items = append(items, *item)
	}
	ss.ReplaceLines(items)
	ss.ClearDomainEvents()
	return ss
}

func TestGormWeeklySettlementRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Create and FindByWeekKey round trip", func(t *testing.T) {
		db := setupSettlementDB(t)
		repo := NewGormWeeklySettlementRepository(db)
		ws := makeWeek(t)

		require.NoError(t, repo.Create(ctx, ws))

		found, err := repo.FindByWeekKey(ctx, "2024-W12")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, ws.ID, found.ID)
		assert.Equal(t, settlement.WeeklyStatusOpen, found.Status)
	})

	t.Run("Create returns ErrDuplicateWeekKey for the same week", func(t *testing.T) {
		db := setupSettlementDB(t)
		repo := NewGormWeeklySettlementRepository(db)

		require.NoError(t, repo.Create(ctx, makeWeek(t)))

		err := repo.Create(ctx, makeWeek(t))
		assert.ErrorIs(t, err, settlement.ErrDuplicateWeekKey)
	})

	t.Run("FindByWeekKey returns nil for an unknown week", func(t *testing.T) {
		db := setupSettlementDB(t)
		repo := NewGormWeeklySettlementRepository(db)

		found, err := repo.FindByWeekKey(ctx, "2024-W99")
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("FindByIDWithChildren preloads bancas and line items", func(t *testing.T) {
		db := setupSettlementDB(t)
		weeklyRepo := NewGormWeeklySettlementRepository(db)
		bancaRepo := NewGormSubcontractorSettlementRepository(db)

		ws := makeWeek(t)
		require.NoError(t, weeklyRepo.Create(ctx, ws))
		require.NoError(t, bancaRepo.SaveWithLines(ctx, makeBancaSettlement(t, ws.ID, 2)))

		found, err := weeklyRepo.FindByIDWithChildren(ctx, ws.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		require.Len(t, found.Subcontractors, 1)
		assert.Len(t, found.Subcontractors[0].LineItems, 2)
	})

	t.Run("FindByWeekKeyWithChildren preloads bancas and line items", func(t *testing.T) {
		db := setupSettlementDB(t)
		weeklyRepo := NewGormWeeklySettlementRepository(db)
		bancaRepo := NewGormSubcontractorSettlementRepository(db)

		ws := makeWeek(t)
		require.NoError(t, weeklyRepo.Create(ctx, ws))
		require.NoError(t, bancaRepo.SaveWithLines(ctx, makeBancaSettlement(t, ws.ID, 2)))

		found, err := weeklyRepo.FindByWeekKeyWithChildren(ctx, "2024-W12")
		require.NoError(t, err)
		require.NotNil(t, found)
		require.Len(t, found.Subcontractors, 1)
		assert.Len(t, found.Subcontractors[0].LineItems, 2)

		missing, err := weeklyRepo.FindByWeekKeyWithChildren(ctx, "2024-W99")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("FindAll filters by status", func(t *testing.T) {
		db := setupSettlementDB(t)
		repo := NewGormWeeklySettlementRepository(db)

		open := makeWeek(t)
		require.NoError(t, repo.Create(ctx, open))

		paid, err := settlement.NewWeeklySettlement(
			time.Date(2024, 3, 25, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		)
		require.NoError(t, err)
		require.True(t, paid.Finalize())
		paid.ClearDomainEvents()
		require.NoError(t, repo.Create(ctx, paid))

		status := settlement.WeeklyStatusPaid
		results, err := repo.FindAll(ctx, settlement.WeeklySettlementFilter{Status: &status})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, paid.ID, results[0].ID)
	})
}

func TestGormSubcontractorSettlementRepository_SaveWithLines(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces prior lines instead of merging", func(t *testing.T) {
		db := setupSettlementDB(t)
		weeklyRepo := NewGormWeeklySettlementRepository(db)
		bancaRepo := NewGormSubcontractorSettlementRepository(db)

		ws := makeWeek(t)
		require.NoError(t, weeklyRepo.Create(ctx, ws))

		ss := makeBancaSettlement(t, ws.ID, 3)
		require.NoError(t, bancaRepo.SaveWithLines(ctx, ss))

		item, err := settlement.NewSettlementLineItem(
			uuid.New(), "Camisa Polo", 5, decimal.RequireFromString("12.00"),
			time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		)
		require.NoError(t, err)
		ss.ReplaceLines([]settlement.SettlementLineItem{*item})
		require.NoError(t, bancaRepo.SaveWithLines(ctx, ss))

		found, err := bancaRepo.FindByID(ctx, ss.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		require.Len(t, found.LineItems, 1)
		assert.Equal(t, int64(5), found.LineItems[0].Quantity)
		assert.Equal(t, int64(5), found.TotalPieces)

		var orphans int64
		require.NoError(t, db.Model(&settlement.SettlementLineItem{}).Count(&orphans).Error)
		assert.Equal(t, int64(1), orphans)
	})

	t.Run("clearing all lines leaves an empty settlement", func(t *testing.T) {
		db := setupSettlementDB(t)
		weeklyRepo := NewGormWeeklySettlementRepository(db)
		bancaRepo := NewGormSubcontractorSettlementRepository(db)

		ws := makeWeek(t)
		require.NoError(t, weeklyRepo.Create(ctx, ws))

		ss := makeBancaSettlement(t, ws.ID, 2)
		require.NoError(t, bancaRepo.SaveWithLines(ctx, ss))

		ss.ReplaceLines(nil)
		require.NoError(t, bancaRepo.SaveWithLines(ctx, ss))

		found, err := bancaRepo.FindByID(ctx, ss.ID)
		require.NoError(t, err)
		assert.Empty(t, found.LineItems)
		assert.Equal(t, int64(0), found.TotalPieces)
	})

	t.Run("FindByWeekAndSubcontractor locates the unique pair", func(t *testing.T) {
		db := setupSettlementDB(t)
		weeklyRepo := NewGormWeeklySettlementRepository(db)
		bancaRepo := NewGormSubcontractorSettlementRepository(db)

		ws := makeWeek(t)
		require.NoError(t, weeklyRepo.Create(ctx, ws))

		ss := makeBancaSettlement(t, ws.ID, 1)
		require.NoError(t, bancaRepo.SaveWithLines(ctx, ss))

		found, err := bancaRepo.FindByWeekAndSubcontractor(ctx, ws.ID, ss.SubcontractorID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, ss.ID, found.ID)

		missing, err := bancaRepo.FindByWeekAndSubcontractor(ctx, ws.ID, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, missing)
	})
}
