package persistence

import (
	"context"
	"errors"

	"github.com/costura/backend/internal/domain/partner"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSubcontractorRepository implements SubcontractorRepository using GORM
type GormSubcontractorRepository struct {
	db *gorm.DB
}

// NewGormSubcontractorRepository creates a new GormSubcontractorRepository
func NewGormSubcontractorRepository(db *gorm.DB) *GormSubcontractorRepository {
	return &GormSubcontractorRepository{db: db}
}

// FindByID finds a subcontractor by ID
func (r *GormSubcontractorRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Subcontractor, error) {
	var sub partner.Subcontractor
	if err := r.db.WithContext(ctx).
		First(&sub, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

// FindByName finds a subcontractor whose stored name equals the given name
// exactly
func (r *GormSubcontractorRepository) FindByName(ctx context.Context, name string) (*partner.Subcontractor, error) {
	var sub partner.Subcontractor
	if err := r.db.WithContext(ctx).
		First(&sub, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

// FindByTrimmedName finds a subcontractor whose stored name matches the
// given name after trimming surrounding whitespace on both sides
func (r *GormSubcontractorRepository) FindByTrimmedName(ctx context.Context, name string) (*partner.Subcontractor, error) {
	var sub partner.Subcontractor
	if err := r.db.WithContext(ctx).
		First(&sub, "TRIM(name) = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

// FindAll finds all subcontractors with filtering
func (r *GormSubcontractorRepository) FindAll(ctx context.Context, filter partner.SubcontractorFilter) ([]partner.Subcontractor, error) {
	var subs []partner.Subcontractor
	query := r.applyFilter(r.db.WithContext(ctx).Model(&partner.Subcontractor{}), filter)

	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize)
		if filter.Page > 0 {
			query = query.Offset((filter.Page - 1) * filter.PageSize)
		}
	}

	if err := query.Order("name").Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

// Save creates or updates a subcontractor
func (r *GormSubcontractorRepository) Save(ctx context.Context, subcontractor *partner.Subcontractor) error {
	return r.db.WithContext(ctx).Save(subcontractor).Error
}

// Delete soft deletes a subcontractor
func (r *GormSubcontractorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&partner.Subcontractor{}, "id = ?", id).Error
}

// Count counts subcontractors with optional filters
func (r *GormSubcontractorRepository) Count(ctx context.Context, filter partner.SubcontractorFilter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&partner.Subcontractor{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormSubcontractorRepository) applyFilter(query *gorm.DB, filter partner.SubcontractorFilter) *gorm.DB {
	if filter.Kind != nil {
		query = query.Where("kind = ?", *filter.Kind)
	}
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}
	return query
}

var _ partner.SubcontractorRepository = (*GormSubcontractorRepository)(nil)
