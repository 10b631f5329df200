package settlement

import (
	"time"

	"github.com/costura/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SubcontractorStatus represents the status of a per-banca settlement
type SubcontractorStatus string

const (
	SubcontractorStatusPending  SubcontractorStatus = "pending"
	SubcontractorStatusPaid     SubcontractorStatus = "paid"
	SubcontractorStatusCanceled SubcontractorStatus = "canceled" // Administrative; the engine never transitions into it
)

// IsValid checks if the status is a valid SubcontractorStatus
func (s SubcontractorStatus) IsValid() bool {
	switch s {
	case SubcontractorStatusPending, SubcontractorStatusPaid, SubcontractorStatusCanceled:
		return true
	}
	return false
}

// String returns the string representation of SubcontractorStatus
func (s SubcontractorStatus) String() string {
	return string(s)
}

// IsTerminal returns true if the status is terminal
func (s SubcontractorStatus) IsTerminal() bool {
	return s == SubcontractorStatusPaid || s == SubcontractorStatusCanceled
}

// SubcontractorSettlement is one banca's breakdown inside a weekly
// settlement. At most one row exists per (weekly settlement, subcontractor)
// pair. Its status advances independently of the parent week.
//
// SubcontractorID may reference an ephemeral placeholder rather than a
// registry row; SubcontractorEphemeral distinguishes the two so the ID is
// never misused as a foreign key.
type SubcontractorSettlement struct {
	shared.BaseAggregateRoot
	WeeklySettlementID     uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex:idx_banca_settlement_week,priority:1"`
	SubcontractorID        uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex:idx_banca_settlement_week,priority:2"`
	SubcontractorName      string              `gorm:"type:varchar(200);not null"` // snapshot at generation time
	SubcontractorEphemeral bool                `gorm:"not null;default:false"`
	PeriodStart            time.Time           `gorm:"not null"`
	PeriodEnd              time.Time           `gorm:"not null"`
	TotalPieces            int64               `gorm:"not null;default:0"`
	TotalValue             decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	Status                 SubcontractorStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	PaidAt                 *time.Time

	LineItems []SettlementLineItem `gorm:"foreignKey:SubcontractorSettlementID"`
}

// TableName returns the table name for GORM
func (SubcontractorSettlement) TableName() string {
	return "subcontractor_settlements"
}

// NewSubcontractorSettlement creates a pending settlement for one banca
func NewSubcontractorSettlement(
	weeklySettlementID uuid.UUID,
	subcontractorID uuid.UUID,
	subcontractorName string,
	ephemeral bool,
	periodStart, periodEnd time.Time,
) (*SubcontractorSettlement, error) {
	if weeklySettlementID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WEEKLY_SETTLEMENT", "Weekly settlement ID cannot be empty")
	}
	if subcontractorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUBCONTRACTOR", "Subcontractor ID cannot be empty")
	}
	if subcontractorName == "" {
		return nil, shared.NewDomainError("INVALID_SUBCONTRACTOR_NAME", "Subcontractor name cannot be empty")
	}
	if periodEnd.Before(periodStart) {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Period end cannot be before period start")
	}

	ss := &SubcontractorSettlement{
		BaseAggregateRoot:      shared.NewBaseAggregateRoot(),
		WeeklySettlementID:     weeklySettlementID,
		SubcontractorID:        subcontractorID,
		SubcontractorName:      subcontractorName,
		SubcontractorEphemeral: ephemeral,
		PeriodStart:            periodStart,
		PeriodEnd:              periodEnd,
		TotalPieces:            0,
		TotalValue:             decimal.Zero,
		Status:                 SubcontractorStatusPending,
		LineItems:              make([]SettlementLineItem, 0),
	}

	ss.AddDomainEvent(NewSubcontractorSettlementUpsertedEvent(ss))

	return ss, nil
}

// ReplaceLines discards all prior line items and installs freshly computed
// ones, updating totals to match. Replace, not merge: regeneration never
// leaves stale lines behind. Status is untouched; while the parent week is
// open the lines of an already-paid banca are still refreshed from the
// ledger.
func (ss *SubcontractorSettlement) ReplaceLines(items []SettlementLineItem) {
	var pieces int64
	value := decimal.Zero
	for i := range items {
		items[i].SubcontractorSettlementID = ss.ID
		pieces += items[i].Quantity
		value = value.Add(items[i].LineTotal)
	}

	ss.LineItems = items
	ss.TotalPieces = pieces
	ss.TotalValue = value
	ss.UpdatedAt = time.Now()
	ss.IncrementVersion()

	ss.AddDomainEvent(NewSubcontractorSettlementUpsertedEvent(ss))
}

// Finalize transitions the settlement from pending to paid, stamping
// PaidAt. Returns false without changing state if not pending.
func (ss *SubcontractorSettlement) Finalize() bool {
	if ss.Status != SubcontractorStatusPending {
		return false
	}

	now := time.Now()
	ss.Status = SubcontractorStatusPaid
	ss.PaidAt = &now
	ss.UpdatedAt = now
	ss.IncrementVersion()

	ss.AddDomainEvent(NewSubcontractorSettlementFinalizedEvent(ss))

	return true
}

// Cancel transitions the settlement from pending to canceled. Reserved for
// administrative correction; the settlement engine itself never calls it.
// Returns false without changing state if not pending.
func (ss *SubcontractorSettlement) Cancel() bool {
	if ss.Status != SubcontractorStatusPending {
		return false
	}

	ss.Status = SubcontractorStatusCanceled
	ss.UpdatedAt = time.Now()
	ss.IncrementVersion()

	return true
}

// IsPending returns true if the settlement is still regenerable/payable
func (ss *SubcontractorSettlement) IsPending() bool {
	return ss.Status == SubcontractorStatusPending
}

// IsPaid returns true if the banca has been paid for this week
func (ss *SubcontractorSettlement) IsPaid() bool {
	return ss.Status == SubcontractorStatusPaid
}
