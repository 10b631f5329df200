package settlement

import (
	"time"

	"github.com/costura/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event types for the settlement engine. Published best-effort to the
// realtime transport so dashboards can refresh without polling.
const (
	EventWeeklySettlementCreated          = "settlement.weekly.created"
	EventWeeklySettlementUpdated          = "settlement.weekly.updated"
	EventWeeklySettlementFinalized        = "settlement.weekly.finalized"
	EventSubcontractorSettlementUpserted  = "settlement.subcontractor.upserted"
	EventSubcontractorSettlementFinalized = "settlement.subcontractor.finalized"
)

// WeeklySettlementCreatedEvent is raised when a week's settlement row is
// first created
type WeeklySettlementCreatedEvent struct {
	shared.BaseDomainEvent
	WeekKey     string    `json:"week_key"`
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`
}

// NewWeeklySettlementCreatedEvent creates a new WeeklySettlementCreatedEvent
func NewWeeklySettlementCreatedEvent(ws *WeeklySettlement) *WeeklySettlementCreatedEvent {
	return &WeeklySettlementCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventWeeklySettlementCreated, "WeeklySettlement", ws.ID),
		WeekKey:         ws.WeekKey,
		PeriodStart:     ws.PeriodStart,
		PeriodEnd:       ws.PeriodEnd,
	}
}

// WeeklySettlementUpdatedEvent is raised when an open week's totals are
// regenerated
type WeeklySettlementUpdatedEvent struct {
	shared.BaseDomainEvent
	WeekKey     string          `json:"week_key"`
	TotalPieces int64           `json:"total_pieces"`
	TotalValue  decimal.Decimal `json:"total_value"`
}

// NewWeeklySettlementUpdatedEvent creates a new WeeklySettlementUpdatedEvent
func NewWeeklySettlementUpdatedEvent(ws *WeeklySettlement) *WeeklySettlementUpdatedEvent {
	return &WeeklySettlementUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventWeeklySettlementUpdated, "WeeklySettlement", ws.ID),
		WeekKey:         ws.WeekKey,
		TotalPieces:     ws.TotalPieces,
		TotalValue:      ws.TotalValue,
	}
}

// WeeklySettlementFinalizedEvent is raised when a week is marked paid
type WeeklySettlementFinalizedEvent struct {
	shared.BaseDomainEvent
	WeekKey string     `json:"week_key"`
	PaidAt  *time.Time `json:"paid_at"`
}

// NewWeeklySettlementFinalizedEvent creates a new WeeklySettlementFinalizedEvent
func NewWeeklySettlementFinalizedEvent(ws *WeeklySettlement) *WeeklySettlementFinalizedEvent {
	return &WeeklySettlementFinalizedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventWeeklySettlementFinalized, "WeeklySettlement", ws.ID),
		WeekKey:         ws.WeekKey,
		PaidAt:          ws.PaidAt,
	}
}

// SubcontractorSettlementUpsertedEvent is raised when a banca settlement is
// created or its lines are regenerated
type SubcontractorSettlementUpsertedEvent struct {
	shared.BaseDomainEvent
	WeeklySettlementID uuid.UUID       `json:"weekly_settlement_id"`
	SubcontractorName  string          `json:"subcontractor_name"`
	TotalPieces        int64           `json:"total_pieces"`
	TotalValue         decimal.Decimal `json:"total_value"`
}

// NewSubcontractorSettlementUpsertedEvent creates a new SubcontractorSettlementUpsertedEvent
func NewSubcontractorSettlementUpsertedEvent(ss *SubcontractorSettlement) *SubcontractorSettlementUpsertedEvent {
	return &SubcontractorSettlementUpsertedEvent{
		BaseDomainEvent:    shared.NewBaseDomainEvent(EventSubcontractorSettlementUpserted, "SubcontractorSettlement", ss.ID),
		WeeklySettlementID: ss.WeeklySettlementID,
		SubcontractorName:  ss.SubcontractorName,
		TotalPieces:        ss.TotalPieces,
		TotalValue:         ss.TotalValue,
	}
}

// SubcontractorSettlementFinalizedEvent is raised when a banca is paid
type SubcontractorSettlementFinalizedEvent struct {
	shared.BaseDomainEvent
	WeeklySettlementID uuid.UUID  `json:"weekly_settlement_id"`
	SubcontractorName  string     `json:"subcontractor_name"`
	PaidAt             *time.Time `json:"paid_at"`
}

// NewSubcontractorSettlementFinalizedEvent creates a new SubcontractorSettlementFinalizedEvent
func NewSubcontractorSettlementFinalizedEvent(ss *SubcontractorSettlement) *SubcontractorSettlementFinalizedEvent {
	return &SubcontractorSettlementFinalizedEvent{
		BaseDomainEvent:    shared.NewBaseDomainEvent(EventSubcontractorSettlementFinalized, "SubcontractorSettlement", ss.ID),
		WeeklySettlementID: ss.WeeklySettlementID,
		SubcontractorName:  ss.SubcontractorName,
		PaidAt:             ss.PaidAt,
	}
}
