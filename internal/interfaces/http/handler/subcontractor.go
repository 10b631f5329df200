package handler

import (
	partnerapp "github.com/costura/backend/internal/application/partner"
	"github.com/costura/backend/internal/domain/partner"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SubcontractorHandler handles subcontractor registry API endpoints
type SubcontractorHandler struct {
	BaseHandler
	subcontractorService *partnerapp.SubcontractorService
}

// NewSubcontractorHandler creates a new SubcontractorHandler
func NewSubcontractorHandler(subcontractorService *partnerapp.SubcontractorService) *SubcontractorHandler {
	return &SubcontractorHandler{
		subcontractorService: subcontractorService,
	}
}

// RegisterRoutes registers subcontractor routes on the given group
func (h *SubcontractorHandler) RegisterRoutes(rg *gin.RouterGroup) {
	subs := rg.Group("/subcontractors")
	subs.POST("", h.Create)
	subs.GET("", h.List)
	subs.GET("/:id", h.GetByID)
	subs.PUT("/:id", h.Update)
	subs.DELETE("/:id", h.Delete)
	subs.POST("/:id/activate", h.Activate)
	subs.POST("/:id/deactivate", h.Deactivate)
}

// CreateSubcontractorRequest represents a request to register a
// subcontractor
type CreateSubcontractorRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200" example:"Banca Azul"`
	Kind        string `json:"kind" binding:"required,oneof=supplier banca" example:"banca"`
	ContactName string `json:"contact_name" binding:"max=100" example:"Maria Souza"`
	Phone       string `json:"phone" binding:"max=50" example:"11987654321"`
	Email       string `json:"email" binding:"omitempty,email,max=200" example:"maria@bancaazul.com.br"`
	Address     string `json:"address" binding:"max=500" example:"Rua das Costureiras, 120"`
	City        string `json:"city" binding:"max=100" example:"São Paulo"`
	State       string `json:"state" binding:"max=50" example:"SP"`
	Notes       string `json:"notes"`
}

// UpdateSubcontractorRequest represents a request to update a subcontractor
type UpdateSubcontractorRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	ContactName string `json:"contact_name" binding:"max=100"`
	Phone       string `json:"phone" binding:"max=50"`
	Email       string `json:"email" binding:"omitempty,email,max=200"`
	Address     string `json:"address" binding:"max=500"`
	City        string `json:"city" binding:"max=100"`
	State       string `json:"state" binding:"max=50"`
	Notes       string `json:"notes"`
}

// ListSubcontractorsRequest represents the query parameters for listing
// subcontractors
type ListSubcontractorsRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Kind     string `form:"kind" binding:"omitempty,oneof=supplier banca"`
	Active   *bool  `form:"active"`
}

// Create registers a new subcontractor
func (h *SubcontractorHandler) Create(c *gin.Context) {
	var req CreateSubcontractorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sub, err := h.subcontractorService.Create(c.Request.Context(), partnerapp.CreateSubcontractorInput{
		Name:        req.Name,
		Kind:        partner.SubcontractorKind(req.Kind),
		ContactName: req.ContactName,
		Phone:       req.Phone,
		Email:       req.Email,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		Notes:       req.Notes,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, toSubcontractorResponse(sub))
}

// GetByID retrieves a subcontractor by ID
func (h *SubcontractorHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid subcontractor ID format")
		return
	}

	sub, err := h.subcontractorService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toSubcontractorResponse(sub))
}

// List retrieves subcontractors with optional kind and active filters
func (h *SubcontractorHandler) List(c *gin.Context) {
	var req ListSubcontractorsRequest
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

	var filter partner.SubcontractorFilter
	filter.Page = req.Page
	filter.PageSize = req.PageSize
	if req.Kind != "" {
		kind := partner.SubcontractorKind(req.Kind)
		filter.Kind = &kind
	}
	filter.Active = req.Active

	subs, total, err := h.subcontractorService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	responses := make([]SubcontractorResponse, 0, len(subs))
	for i := range subs {
		responses = append(responses, toSubcontractorResponse(&subs[i]))
	}

	h.SuccessWithMeta(c, responses, total, req.Page, req.PageSize)
}

// Update changes a subcontractor's registered details
func (h *SubcontractorHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid subcontractor ID format")
		return
	}

	var req UpdateSubcontractorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sub, err := h.subcontractorService.Update(c.Request.Context(), id, partnerapp.UpdateSubcontractorInput{
		Name:        req.Name,
		ContactName: req.ContactName,
		Phone:       req.Phone,
		Email:       req.Email,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		Notes:       req.Notes,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toSubcontractorResponse(sub))
}

// Activate marks a subcontractor as active
func (h *SubcontractorHandler) Activate(c *gin.Context) {
	h.setActive(c, true)
}

// Deactivate marks a subcontractor as inactive. The registry row is kept so
// historical settlements stay resolvable.
func (h *SubcontractorHandler) Deactivate(c *gin.Context) {
	h.setActive(c, false)
}

func (h *SubcontractorHandler) setActive(c *gin.Context, active bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid subcontractor ID format")
		return
	}

	sub, err := h.subcontractorService.SetActive(c.Request.Context(), id, active)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toSubcontractorResponse(sub))
}

// Delete removes a subcontractor from the registry
func (h *SubcontractorHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid subcontractor ID format")
		return
	}

	if err := h.subcontractorService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
