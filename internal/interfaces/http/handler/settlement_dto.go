package handler

import (
	"time"

	"github.com/costura/backend/internal/domain/settlement"
	"github.com/shopspring/decimal"
)

// WeeklySettlementResponse represents a weekly settlement in API responses
type WeeklySettlementResponse struct {
	ID             string                            `json:"id" example:"d9cbb1b2-7e52-4c8a-9d12-6f0a8e3b1c44"`
	WeekKey        string                            `json:"week_key" example:"2024-W12"`
	PeriodStart    time.Time                         `json:"period_start"`
	PeriodEnd      time.Time                         `json:"period_end"`
	TotalPieces    int64                             `json:"total_pieces" example:"1250"`
	TotalValue     decimal.Decimal                   `json:"total_value" example:"4375.00"`
	Status         string                            `json:"status" example:"open"`
	PaidAt         *time.Time                        `json:"paid_at,omitempty"`
	Subcontractors []SubcontractorSettlementResponse `json:"subcontractors,omitempty"`
	CreatedAt      time.Time                         `json:"created_at"`
	UpdatedAt      time.Time                         `json:"updated_at"`
}

// SubcontractorSettlementResponse represents one banca's breakdown inside a
// weekly settlement
type SubcontractorSettlementResponse struct {
	ID                     string             `json:"id"`
	SubcontractorID        string             `json:"subcontractor_id"`
	SubcontractorName      string             `json:"subcontractor_name" example:"Banca Azul"`
	SubcontractorEphemeral bool               `json:"subcontractor_ephemeral" example:"false"`
	TotalPieces            int64              `json:"total_pieces" example:"350"`
	TotalValue             decimal.Decimal    `json:"total_value" example:"1225.00"`
	Status                 string             `json:"status" example:"pending"`
	PaidAt                 *time.Time         `json:"paid_at,omitempty"`
	LineItems              []LineItemResponse `json:"line_items,omitempty"`
}

// LineItemResponse represents one priced movement line
type LineItemResponse struct {
	ID          string          `json:"id"`
	MovementID  string          `json:"movement_id"`
	ProductName string          `json:"product_name" example:"Camisa Polo"`
	Quantity    int64           `json:"quantity" example:"120"`
	UnitPrice   decimal.Decimal `json:"unit_price" example:"3.50"`
	LineTotal   decimal.Decimal `json:"line_total" example:"420.00"`
	BatchDate   time.Time       `json:"batch_date"`
}

// GenerateSettlementResponse represents the outcome of a generation run
type GenerateSettlementResponse struct {
	Settlement WeeklySettlementResponse `json:"settlement"`
	Created    bool                     `json:"created" example:"true"`
	Frozen     bool                     `json:"frozen" example:"false"`
	// FailedSubcontractors lists banca names skipped by this run; the rest
	// of the settlement still committed
	FailedSubcontractors []string `json:"failed_subcontractors,omitempty"`
}

func toWeeklySettlementResponse(ws *settlement.WeeklySettlement, withChildren bool) WeeklySettlementResponse {
	resp := WeeklySettlementResponse{
		ID:          ws.ID.String(),
		WeekKey:     ws.WeekKey,
		PeriodStart: ws.PeriodStart,
		PeriodEnd:   ws.PeriodEnd,
		TotalPieces: ws.TotalPieces,
		TotalValue:  ws.TotalValue,
		Status:      ws.Status.String(),
		PaidAt:      ws.PaidAt,
		CreatedAt:   ws.CreatedAt,
		UpdatedAt:   ws.UpdatedAt,
	}

	if withChildren {
		resp.Subcontractors = make([]SubcontractorSettlementResponse, 0, len(ws.Subcontractors))
		for i := range ws.Subcontractors {
			resp.Subcontractors = append(resp.Subcontractors, toSubcontractorSettlementResponse(&ws.Subcontractors[i]))
		}
	}

	return resp
}

func toSubcontractorSettlementResponse(ss *settlement.SubcontractorSettlement) SubcontractorSettlementResponse {
	resp := SubcontractorSettlementResponse{
		ID:                     ss.ID.String(),
		SubcontractorID:        ss.SubcontractorID.String(),
		SubcontractorName:      ss.SubcontractorName,
		SubcontractorEphemeral: ss.SubcontractorEphemeral,
		TotalPieces:            ss.TotalPieces,
		TotalValue:             ss.TotalValue,
		Status:                 ss.Status.String(),
		PaidAt:                 ss.PaidAt,
	}

	resp.LineItems = make([]LineItemResponse, 0, len(ss.LineItems))
	for i := range ss.LineItems {
		li := &ss.LineItems[i]
		resp.LineItems = append(resp.LineItems, LineItemResponse{
			ID:          li.ID.String(),
			MovementID:  li.MovementID.String(),
			ProductName: li.ProductName,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
			LineTotal:   li.LineTotal,
			BatchDate:   li.BatchDate,
		})
	}

	return resp
}
