package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/costura/backend/internal/domain/production"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupMovementDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&production.Movement{}))
	return db
}

func seedMovement(t *testing.T, db *gorm.DB, mType production.MovementType, name string, date time.Time) production.Movement {
	t.Helper()
	m := production.Movement{
		ID:                uuid.New(),
		ProductionBatchID: uuid.New(),
		Type:              mType,
		Quantity:          decimal.NewFromInt(10),
		Date:              date,
		SubcontractorName: name,
		ProductName:       "Camisa Polo",
		BatchDate:         date.AddDate(0, 0, -2),
	}
	require.NoError(t, db.Create(&m).Error)
	return m
}

func TestGormMovementRepository(t *testing.T) {
	ctx := context.Background()
	periodStart := time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC)
	periodEnd := time.Date(2024, 3, 24, 0, 0, 0, 0, time.UTC)

	t.Run("DistinctSubcontractorNames returns names in first-appearance order", func(t *testing.T) {
		db := setupMovementDB(t)
		repo := NewGormMovementRepository(db)

		seedMovement(t, db, production.MovementReturn, "Banca Verde", periodStart.AddDate(0, 0, 1))
		seedMovement(t, db, production.MovementCompletion, "Banca Azul", periodStart)
		seedMovement(t, db, production.MovementReturn, "Banca Verde", periodStart.AddDate(0, 0, 3))

		names, err := repo.DistinctSubcontractorNames(ctx, production.SettlementTypes(), periodStart, periodEnd)

		require.NoError(t, err)
		assert.Equal(t, []string{"Banca Azul", "Banca Verde"}, names)
	})

	t.Run("DistinctSubcontractorNames ignores deliveries and out-of-period movements", func(t *testing.T) {
		db := setupMovementDB(t)
		repo := NewGormMovementRepository(db)

		seedMovement(t, db, production.MovementDelivery, "Banca Entregue", periodStart)
		seedMovement(t, db, production.MovementReturn, "Banca Atrasada", periodEnd.AddDate(0, 0, 1))
		seedMovement(t, db, production.MovementReturn, "Banca Azul", periodEnd)

		names, err := repo.DistinctSubcontractorNames(ctx, production.SettlementTypes(), periodStart, periodEnd)

		require.NoError(t, err)
		assert.Equal(t, []string{"Banca Azul"}, names)
	})

	t.Run("FindForSubcontractor matches the exact name snapshot", func(t *testing.T) {
		db := setupMovementDB(t)
		repo := NewGormMovementRepository(db)

		seedMovement(t, db, production.MovementReturn, "Banca Azul", periodStart)
		seedMovement(t, db, production.MovementReturn, "Banca Verde", periodStart)

		movements, err := repo.FindForSubcontractor(ctx, "Banca Azul", production.SettlementTypes(), periodStart, periodEnd)

		require.NoError(t, err)
		require.Len(t, movements, 1)
		assert.Equal(t, "Banca Azul", movements[0].SubcontractorName)
	})

	t.Run("FindForSubcontractor also matches snapshots with stray whitespace", func(t *testing.T) {
		db := setupMovementDB(t)
		repo := NewGormMovementRepository(db)

		seedMovement(t, db, production.MovementReturn, " Banca Azul ", periodStart)

		movements, err := repo.FindForSubcontractor(ctx, "Banca Azul", production.SettlementTypes(), periodStart, periodEnd)

		require.NoError(t, err)
		require.Len(t, movements, 1)
		assert.Equal(t, " Banca Azul ", movements[0].SubcontractorName)
	})
}
