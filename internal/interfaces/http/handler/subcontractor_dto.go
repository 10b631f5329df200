package handler

import (
	"time"

	"github.com/costura/backend/internal/domain/partner"
)

// SubcontractorResponse represents a registered subcontractor in API
// responses
type SubcontractorResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name" example:"Banca Azul"`
	Kind        string    `json:"kind" example:"banca"`
	ContactName string    `json:"contact_name,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Email       string    `json:"email,omitempty"`
	Address     string    `json:"address,omitempty"`
	City        string    `json:"city,omitempty"`
	State       string    `json:"state,omitempty"`
	Active      bool      `json:"active"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toSubcontractorResponse(s *partner.Subcontractor) SubcontractorResponse {
	return SubcontractorResponse{
		ID:          s.ID.String(),
		Name:        s.Name,
		Kind:        s.Kind.String(),
		ContactName: s.ContactName,
		Phone:       s.Phone,
		Email:       s.Email,
		Address:     s.Address,
		City:        s.City,
		State:       s.State,
		Active:      s.Active,
		Notes:       s.Notes,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
