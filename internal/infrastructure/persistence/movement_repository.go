package persistence

import (
	"context"
	"strings"
	"time"

	"github.com/costura/backend/internal/domain/production"
	"gorm.io/gorm"
)

// GormMovementRepository implements the read-only MovementReader over the
// production ledger
type GormMovementRepository struct {
	db *gorm.DB
}

// NewGormMovementRepository creates a new GormMovementRepository
func NewGormMovementRepository(db *gorm.DB) *GormMovementRepository {
	return &GormMovementRepository{db: db}
}

// DistinctSubcontractorNames returns the distinct name snapshots with at
// least one movement of the given types in the period, ordered by first
// appearance in the ledger
func (r *GormMovementRepository) DistinctSubcontractorNames(ctx context.Context, types []production.MovementType, periodStart, periodEnd time.Time) ([]string, error) {
	names := make([]string, 0)
	if err := r.db.WithContext(ctx).
		Model(&production.Movement{}).
		Where("type IN ? AND date >= ? AND date <= ?", types, periodStart, periodEnd).
		Group("subcontractor_name").
		Order("MIN(date), MIN(id)").
		Pluck("subcontractor_name", &names).Error; err != nil {
		return nil, err
	}
	return names, nil
}

// FindForSubcontractor returns movements whose name snapshot equals the
// given name exactly or after trimming, with type in the given set and date
// in the period
func (r *GormMovementRepository) FindForSubcontractor(ctx context.Context, name string, types []production.MovementType, periodStart, periodEnd time.Time) ([]production.Movement, error) {
	var movements []production.Movement
	if err := r.db.WithContext(ctx).
		Where("(subcontractor_name = ? OR TRIM(subcontractor_name) = ?)", name, strings.TrimSpace(name)).
		Where("type IN ? AND date >= ? AND date <= ?", types, periodStart, periodEnd).
		Order("date, id").
		Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

var _ production.MovementReader = (*GormMovementRepository)(nil)
