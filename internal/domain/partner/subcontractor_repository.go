package partner

import (
	"context"

	"github.com/costura/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SubcontractorFilter defines filtering options for subcontractor queries
type SubcontractorFilter struct {
	shared.Filter
	Kind   *SubcontractorKind // Filter by kind
	Active *bool              // Filter by active flag
}

// SubcontractorRepository defines the interface for subcontractor persistence
type SubcontractorRepository interface {
	// FindByID finds a subcontractor by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Subcontractor, error)

	// FindByName finds a subcontractor whose stored name equals the given
	// name exactly
	FindByName(ctx context.Context, name string) (*Subcontractor, error)

	// FindByTrimmedName finds a subcontractor whose stored name equals the
	// given name after trimming surrounding whitespace on both sides
	FindByTrimmedName(ctx context.Context, name string) (*Subcontractor, error)

	// FindAll finds all subcontractors with filtering
	FindAll(ctx context.Context, filter SubcontractorFilter) ([]Subcontractor, error)

	// Save creates or updates a subcontractor
	Save(ctx context.Context, subcontractor *Subcontractor) error

	// Delete soft deletes a subcontractor
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts subcontractors with optional filters
	Count(ctx context.Context, filter SubcontractorFilter) (int64, error)
}
