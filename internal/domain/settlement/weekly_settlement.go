package settlement

import (
	"time"

	"github.com/costura/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// WeeklyStatus represents the status of a weekly settlement
type WeeklyStatus string

const (
	WeeklyStatusOpen WeeklyStatus = "open" // Regenerable; totals track the ledger
	WeeklyStatusPaid WeeklyStatus = "paid" // Frozen; regeneration is a no-op
)

// IsValid checks if the status is a valid WeeklyStatus
func (s WeeklyStatus) IsValid() bool {
	switch s {
	case WeeklyStatusOpen, WeeklyStatusPaid:
		return true
	}
	return false
}

// String returns the string representation of WeeklyStatus
func (s WeeklyStatus) String() string {
	return string(s)
}

// IsTerminal returns true if the status is terminal
func (s WeeklyStatus) IsTerminal() bool {
	return s == WeeklyStatusPaid
}

// WeeklySettlement is the aggregate root for one week's reconciliation
// across all active bancas. At most one row exists per WeekKey; the unique
// index is the only serialization point between concurrent generate calls.
type WeeklySettlement struct {
	shared.BaseAggregateRoot
	WeekKey     string          `gorm:"type:varchar(20);not null;uniqueIndex"`
	PeriodStart time.Time       `gorm:"not null"`
	PeriodEnd   time.Time       `gorm:"not null"`
	TotalPieces int64           `gorm:"not null;default:0"`
	TotalValue  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Status      WeeklyStatus    `gorm:"type:varchar(20);not null;default:'open'"`
	PaidAt      *time.Time

	Subcontractors []SubcontractorSettlement `gorm:"foreignKey:WeeklySettlementID"`
}

// TableName returns the table name for GORM
func (WeeklySettlement) TableName() string {
	return "weekly_settlements"
}

// NewWeeklySettlement creates a new open weekly settlement with zero totals
func NewWeeklySettlement(periodStart, periodEnd time.Time) (*WeeklySettlement, error) {
	if periodEnd.Before(periodStart) {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Period end cannot be before period start")
	}

	ws := &WeeklySettlement{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		WeekKey:           WeekKeyOf(periodStart),
		PeriodStart:       periodStart,
		PeriodEnd:         periodEnd,
		TotalPieces:       0,
		TotalValue:        decimal.Zero,
		Status:            WeeklyStatusOpen,
	}

	ws.AddDomainEvent(NewWeeklySettlementCreatedEvent(ws))

	return ws, nil
}

// UpdateTotals replaces the rolled-up totals after regeneration.
// Only valid while the settlement is open.
func (ws *WeeklySettlement) UpdateTotals(totalPieces int64, totalValue decimal.Decimal) error {
	if ws.Status != WeeklyStatusOpen {
		return shared.NewDomainError("INVALID_STATE", "Cannot update totals of a paid weekly settlement")
	}
	if totalPieces < 0 || totalValue.IsNegative() {
		return shared.NewDomainError("INVALID_TOTALS", "Totals cannot be negative")
	}

	ws.TotalPieces = totalPieces
	ws.TotalValue = totalValue
	ws.UpdatedAt = time.Now()
	ws.IncrementVersion()

	ws.AddDomainEvent(NewWeeklySettlementUpdatedEvent(ws))

	return nil
}

// Finalize transitions the settlement from open to paid, stamping PaidAt.
// Returns false without changing state if the settlement is not open.
// Does not cascade to child subcontractor settlements; those are paid out
// independently.
func (ws *WeeklySettlement) Finalize() bool {
	if ws.Status != WeeklyStatusOpen {
		return false
	}

	now := time.Now()
	ws.Status = WeeklyStatusPaid
	ws.PaidAt = &now
	ws.UpdatedAt = now
	ws.IncrementVersion()

	ws.AddDomainEvent(NewWeeklySettlementFinalizedEvent(ws))

	return true
}

// IsOpen returns true if the settlement can still be regenerated
func (ws *WeeklySettlement) IsOpen() bool {
	return ws.Status == WeeklyStatusOpen
}

// IsPaid returns true if the settlement is frozen
func (ws *WeeklySettlement) IsPaid() bool {
	return ws.Status == WeeklyStatusPaid
}
