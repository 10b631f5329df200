package handler

import (
	"time"

	settlementapp "github.com/costura/backend/internal/application/settlement"
	"github.com/costura/backend/internal/domain/settlement"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// dateOnlyLayout is the wire format for period bounds
const dateOnlyLayout = "2006-01-02"

// SettlementHandler handles settlement-related API endpoints
type SettlementHandler struct {
	BaseHandler
	generateService  *settlementapp.GenerateService
	lifecycleService *settlementapp.LifecycleService
	queryService     *settlementapp.QueryService
}

// NewSettlementHandler creates a new SettlementHandler
func NewSettlementHandler(
	generateService *settlementapp.GenerateService,
	lifecycleService *settlementapp.LifecycleService,
	queryService *settlementapp.QueryService,
) *SettlementHandler {
	return &SettlementHandler{
		generateService:  generateService,
		lifecycleService: lifecycleService,
		queryService:     queryService,
	}
}

// RegisterRoutes registers settlement routes on the given group
func (h *SettlementHandler) RegisterRoutes(rg *gin.RouterGroup) {
	settlements := rg.Group("/settlements")
	settlements.POST("/weekly/generate", h.Generate)
	settlements.GET("/weekly", h.List)
	settlements.GET("/weekly/key/:weekKey", h.GetByWeekKey)
	settlements.GET("/weekly/:id", h.GetByID)
	settlements.POST("/weekly/:id/finalize", h.FinalizeWeek)
	settlements.POST("/weekly/:id/subcontractors/:subId/finalize", h.FinalizeSubcontractor)
}

// GenerateSettlementRequest represents a request to generate the weekly
// settlement for a period
type GenerateSettlementRequest struct {
	PeriodStart string `json:"period_start" binding:"required,dateonly" example:"2024-03-18"`
	PeriodEnd   string `json:"period_end" binding:"required,dateonly" example:"2024-03-24"`
}

// ListSettlementsRequest represents the query parameters for listing weekly
// settlements
type ListSettlementsRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Status   string `form:"status" binding:"omitempty,oneof=open paid"`
}

// Generate runs the weekly settlement for the requested period.
// Re-running for the same week replaces the prior results while the week is
// open; a paid week is returned untouched.
func (h *SettlementHandler) Generate(c *gin.Context) {
	var req GenerateSettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	periodStart, err := time.Parse(dateOnlyLayout, req.PeriodStart)
	if err != nil {
		h.BadRequest(c, "Invalid period_start date")
		return
	}
	periodEnd, err := time.Parse(dateOnlyLayout, req.PeriodEnd)
	if err != nil {
		h.BadRequest(c, "Invalid period_end date")
		return
	}
	// The end date is inclusive; stretch it to the last instant of the day
	// so movements dated anywhere on it are settled.
	periodEnd = periodEnd.Add(24*time.Hour - time.Nanosecond)

	result, err := h.generateService.Generate(c.Request.Context(), periodStart, periodEnd)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	resp := GenerateSettlementResponse{
		Settlement:           toWeeklySettlementResponse(result.Settlement, true),
		Created:              result.Created,
		Frozen:               result.Frozen,
		FailedSubcontractors: result.FailedSubcontractors,
	}

	if result.Created {
		h.Created(c, resp)
		return
	}
	h.Success(c, resp)
}

// GetByID retrieves a weekly settlement with its banca breakdowns and line
// items
func (h *SettlementHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid settlement ID format")
		return
	}

	ws, err := h.queryService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toWeeklySettlementResponse(ws, true))
}

// GetByWeekKey retrieves a weekly settlement by its week label, e.g.
// 2024-W12
func (h *SettlementHandler) GetByWeekKey(c *gin.Context) {
	weekKey := c.Param("weekKey")
	if weekKey == "" {
		h.BadRequest(c, "Week key is required")
		return
	}

	ws, err := h.queryService.GetByWeekKey(c.Request.Context(), weekKey)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toWeeklySettlementResponse(ws, true))
}

// List retrieves weekly settlement summaries, optionally filtered by status
func (h *SettlementHandler) List(c *gin.Context) {
	var req ListSettlementsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 20
	}

	var filter settlement.WeeklySettlementFilter
	filter.Page = req.Page
	filter.PageSize = req.PageSize
	if req.Status != "" {
		status := settlement.WeeklyStatus(req.Status)
		filter.Status = &status
	}

	settlements, err := h.queryService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	responses := make([]WeeklySettlementResponse, 0, len(settlements))
	for i := range settlements {
		responses = append(responses, toWeeklySettlementResponse(&settlements[i], false))
	}

	h.Success(c, responses)
}

// FinalizeWeek marks a weekly settlement as paid, freezing it against
// regeneration. Finalizing an already paid week is a no-op.
func (h *SettlementHandler) FinalizeWeek(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid settlement ID format")
		return
	}

	ws, _, err := h.lifecycleService.FinalizeWeek(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toWeeklySettlementResponse(ws, false))
}

// FinalizeSubcontractor marks one banca's settlement inside a week as paid,
// addressed by the subcontractor's ID. The parent week's status is not
// touched.
func (h *SettlementHandler) FinalizeSubcontractor(c *gin.Context) {
	weeklyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid settlement ID format")
		return
	}
	subcontractorID, err := uuid.Parse(c.Param("subId"))
	if err != nil {
		h.BadRequest(c, "Invalid subcontractor ID format")
		return
	}

	ss, _, err := h.lifecycleService.FinalizeSubcontractor(c.Request.Context(), weeklyID, subcontractorID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toSubcontractorSettlementResponse(ss))
}
