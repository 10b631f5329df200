package persistence

import (
	"context"
	"errors"

	"github.com/costura/backend/internal/domain/settlement"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSubcontractorSettlementRepository implements
// SubcontractorSettlementRepository using GORM
type GormSubcontractorSettlementRepository struct {
	db *gorm.DB
}

// NewGormSubcontractorSettlementRepository creates a new GormSubcontractorSettlementRepository
func NewGormSubcontractorSettlementRepository(db *gorm.DB) *GormSubcontractorSettlementRepository {
	return &GormSubcontractorSettlementRepository{db: db}
}

// FindByID finds a banca settlement by ID with line items preloaded
func (r *GormSubcontractorSettlementRepository) FindByID(ctx context.Context, id uuid.UUID) (*settlement.SubcontractorSettlement, error) {
	var ss settlement.SubcontractorSettlement
	if err := r.db.WithContext(ctx).
		Preload("LineItems").
		First(&ss, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ss, nil
}

// FindByWeekAndSubcontractor finds the banca settlement for one
// (weekly settlement, subcontractor) pair
func (r *GormSubcontractorSettlementRepository) FindByWeekAndSubcontractor(ctx context.Context, weeklySettlementID, subcontractorID uuid.UUID) (*settlement.SubcontractorSettlement, error) {
	var ss settlement.SubcontractorSettlement
	if err := r.db.WithContext(ctx).
		Preload("LineItems").
		First(&ss, "weekly_settlement_id = ? AND subcontractor_id = ?", weeklySettlementID, subcontractorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ss, nil
}

// FindByWeeklySettlement finds all banca settlements for a week
func (r *GormSubcontractorSettlementRepository) FindByWeeklySettlement(ctx context.Context, weeklySettlementID uuid.UUID) ([]settlement.SubcontractorSettlement, error) {
	var settlements []settlement.SubcontractorSettlement
	if err := r.db.WithContext(ctx).
		Preload("LineItems").
		Where("weekly_settlement_id = ?", weeklySettlementID).
		Order("subcontractor_name").
		Find(&settlements).Error; err != nil {
		return nil, err
	}
	return settlements, nil
}

// SaveWithLines persists the settlement and replaces all of its line items
// in one transaction. Deleting before inserting keeps the replace semantics
// of regeneration: no stale lines survive, and readers never see totals
// from one generation with lines from another.
func (r *GormSubcontractorSettlementRepository) SaveWithLines(ctx context.Context, ss *settlement.SubcontractorSettlement) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("LineItems").Save(ss).Error; err != nil {
			return err
		}
		if err := tx.Where("subcontractor_settlement_id = ?", ss.ID).
			Delete(&settlement.SettlementLineItem{}).Error; err != nil {
			return err
		}
		if len(ss.LineItems) == 0 {
			return nil
		}
		return tx.Create(&ss.LineItems).Error
	})
}

// Save updates the settlement row only
func (r *GormSubcontractorSettlementRepository) Save(ctx context.Context, ss *settlement.SubcontractorSettlement) error {
	return r.db.WithContext(ctx).
		Omit("LineItems").
		Save(ss).Error
}

var _ settlement.SubcontractorSettlementRepository = (*GormSubcontractorSettlementRepository)(nil)
