package production

import (
	"context"
	"time"
)

// MovementReader is the read-only interface over the production ledger
// consumed by the settlement engine
type MovementReader interface {
	// DistinctSubcontractorNames returns the distinct subcontractor name
	// snapshots with at least one movement of the given types in
	// [periodStart, periodEnd] inclusive, in ledger-discovery order
	DistinctSubcontractorNames(ctx context.Context, types []MovementType, periodStart, periodEnd time.Time) ([]string, error)

	// FindForSubcontractor returns movements whose subcontractor name
	// snapshot equals the given name exactly or after trimming, with type
	// in the given set and date in [periodStart, periodEnd] inclusive
	FindForSubcontractor(ctx context.Context, name string, types []MovementType, periodStart, periodEnd time.Time) ([]Movement, error)
}
