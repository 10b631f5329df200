package partner

import (
	"github.com/costura/backend/internal/domain/shared"
)

// Event types for the subcontractor registry
const (
	EventSubcontractorCreated = "partner.subcontractor.created"
	EventSubcontractorUpdated = "partner.subcontractor.updated"
)

// SubcontractorCreatedEvent is raised when a subcontractor is registered
type SubcontractorCreatedEvent struct {
	shared.BaseDomainEvent
	Name string            `json:"name"`
	Kind SubcontractorKind `json:"kind"`
}

// NewSubcontractorCreatedEvent creates a new SubcontractorCreatedEvent
func NewSubcontractorCreatedEvent(s *Subcontractor) *SubcontractorCreatedEvent {
	return &SubcontractorCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventSubcontractorCreated, "Subcontractor", s.ID),
		Name:            s.Name,
		Kind:            s.Kind,
	}
}

// SubcontractorUpdatedEvent is raised when a subcontractor is updated
type SubcontractorUpdatedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewSubcontractorUpdatedEvent creates a new SubcontractorUpdatedEvent
func NewSubcontractorUpdatedEvent(s *Subcontractor) *SubcontractorUpdatedEvent {
	return &SubcontractorUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventSubcontractorUpdated, "Subcontractor", s.ID),
		Name:            s.Name,
	}
}
