package settlement

import (
	"context"

	"github.com/costura/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ErrDuplicateWeekKey is returned by Create when another caller inserted a
// settlement for the same week first. The orchestrator recovers by
// re-reading the existing row; it never surfaces to API callers.
var ErrDuplicateWeekKey = shared.NewDomainError("DUPLICATE_WEEK_KEY", "A settlement for this week already exists")

// WeeklySettlementFilter defines filtering options for weekly settlement queries
type WeeklySettlementFilter struct {
	shared.Filter
	Status *WeeklyStatus // Filter by status
}

// WeeklySettlementRepository defines the interface for weekly settlement persistence
type WeeklySettlementRepository interface {
	// FindByID finds a weekly settlement by ID, without children
	FindByID(ctx context.Context, id uuid.UUID) (*WeeklySettlement, error)

	// FindByIDWithChildren finds a weekly settlement with its banca
	// settlements and their line items preloaded
	FindByIDWithChildren(ctx context.Context, id uuid.UUID) (*WeeklySettlement, error)

	// FindByWeekKey finds a weekly settlement by its canonical week label
	FindByWeekKey(ctx context.Context, weekKey string) (*WeeklySettlement, error)

	// FindByWeekKeyWithChildren finds a weekly settlement by its week label
	// with banca settlements and line items preloaded
	FindByWeekKeyWithChildren(ctx context.Context, weekKey string) (*WeeklySettlement, error)

	// FindAll finds weekly settlement summaries (no children) with filtering
	FindAll(ctx context.Context, filter WeeklySettlementFilter) ([]WeeklySettlement, error)

	// Create inserts a new weekly settlement row. Returns
	// ErrDuplicateWeekKey when the unique index on week_key rejects the
	// insert.
	Create(ctx context.Context, ws *WeeklySettlement) error

	// Save updates an existing weekly settlement row (totals, status)
	Save(ctx context.Context, ws *WeeklySettlement) error
}

// SubcontractorSettlementRepository defines the interface for per-banca
// settlement persistence
type SubcontractorSettlementRepository interface {
	// FindByID finds a banca settlement by ID with line items preloaded
	FindByID(ctx context.Context, id uuid.UUID) (*SubcontractorSettlement, error)

	// FindByWeekAndSubcontractor finds the banca settlement for one
	// (weekly settlement, subcontractor) pair, with line items
	FindByWeekAndSubcontractor(ctx context.Context, weeklySettlementID, subcontractorID uuid.UUID) (*SubcontractorSettlement, error)

	// FindByWeeklySettlement finds all banca settlements for a week, with
	// line items
	FindByWeeklySettlement(ctx context.Context, weeklySettlementID uuid.UUID) ([]SubcontractorSettlement, error)

	// SaveWithLines persists the settlement and atomically replaces all of
	// its line items with the given set. A reader never observes a
	// settlement with totals from one generation and lines from another.
	SaveWithLines(ctx context.Context, ss *SubcontractorSettlement) error

	// Save updates the settlement row only (status transitions)
	Save(ctx context.Context, ss *SubcontractorSettlement) error
}
