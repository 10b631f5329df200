package persistence

import (
	"context"
	"errors"

	"github.com/costura/backend/internal/domain/settlement"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormWeeklySettlementRepository implements WeeklySettlementRepository using GORM
type GormWeeklySettlementRepository struct {
	db *gorm.DB
}

// NewGormWeeklySettlementRepository creates a new GormWeeklySettlementRepository
func NewGormWeeklySettlementRepository(db *gorm.DB) *GormWeeklySettlementRepository {
	return &GormWeeklySettlementRepository{db: db}
}

// FindByID finds a weekly settlement by ID, without children
func (r *GormWeeklySettlementRepository) FindByID(ctx context.Context, id uuid.UUID) (*settlement.WeeklySettlement, error) {
	var ws settlement.WeeklySettlement
	if err := r.db.WithContext(ctx).
		First(&ws, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ws, nil
}

// FindByIDWithChildren finds a weekly settlement with banca settlements and
// line items preloaded
func (r *GormWeeklySettlementRepository) FindByIDWithChildren(ctx context.Context, id uuid.UUID) (*settlement.WeeklySettlement, error) {
	var ws settlement.WeeklySettlement
	if err := r.db.WithContext(ctx).
		Preload("Subcontractors").
		Preload("Subcontractors.LineItems").
		First(&ws, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ws, nil
}

// FindByWeekKey finds a weekly settlement by its canonical week label
func (r *GormWeeklySettlementRepository) FindByWeekKey(ctx context.Context, weekKey string) (*settlement.WeeklySettlement, error) {
	var ws settlement.WeeklySettlement
	if err := r.db.WithContext(ctx).
		First(&ws, "week_key = ?", weekKey).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ws, nil
}

// FindByWeekKeyWithChildren finds a weekly settlement by its week label with
// banca settlements and line items preloaded
func (r *GormWeeklySettlementRepository) FindByWeekKeyWithChildren(ctx context.Context, weekKey string) (*settlement.WeeklySettlement, error) {
	var ws settlement.WeeklySettlement
	if err := r.db.WithContext(ctx).
		Preload("Subcontractors").
		Preload("Subcontractors.LineItems").
		First(&ws, "week_key = ?", weekKey).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ws, nil
}

// FindAll finds weekly settlement summaries with filtering
func (r *GormWeeklySettlementRepository) FindAll(ctx context.Context, filter settlement.WeeklySettlementFilter) ([]settlement.WeeklySettlement, error) {
	var settlements []settlement.WeeklySettlement
	query := r.db.WithContext(ctx).Model(&settlement.WeeklySettlement{})

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize)
		if filter.Page > 0 {
			query = query.Offset((filter.Page - 1) * filter.PageSize)
		}
	}

	if err := query.Order("period_start DESC").Find(&settlements).Error; err != nil {
		return nil, err
	}
	return settlements, nil
}

// Create inserts a new weekly settlement row. The unique index on week_key
// turns a concurrent insert for the same week into ErrDuplicateWeekKey.
func (r *GormWeeklySettlementRepository) Create(ctx context.Context, ws *settlement.WeeklySettlement) error {
	if err := r.db.WithContext(ctx).Create(ws).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return settlement.ErrDuplicateWeekKey
		}
		return err
	}
	return nil
}

// Save updates an existing weekly settlement row
func (r *GormWeeklySettlementRepository) Save(ctx context.Context, ws *settlement.WeeklySettlement) error {
	return r.db.WithContext(ctx).
		Omit("Subcontractors").
		Save(ws).Error
}

var _ settlement.WeeklySettlementRepository = (*GormWeeklySettlementRepository)(nil)
