// Package partner contains the application service for the subcontractor
// registry.
package partner

import (
	"context"
	"fmt"

	"github.com/costura/backend/internal/domain/partner"
	"github.com/costura/backend/internal/domain/shared"
	"github.com/costura/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateSubcontractorInput carries the fields for registering a subcontractor
type CreateSubcontractorInput struct {
	Name        string
	Kind        partner.SubcontractorKind
	ContactName string
	Phone       string
	Email       string
	Address     string
	City        string
	State       string
	Notes       string
}

// UpdateSubcontractorInput carries the fields for updating a subcontractor
type UpdateSubcontractorInput struct {
	Name        string
	ContactName string
	Phone       string
	Email       string
	Address     string
	City        string
	State       string
	Notes       string
}

// SubcontractorService manages the subcontractor registry
type SubcontractorService struct {
	repo           partner.SubcontractorRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewSubcontractorService creates a new subcontractor service
func NewSubcontractorService(
	repo partner.SubcontractorRepository,
	eventPublisher shared.EventPublisher,
	logger *zap.Logger,
) *SubcontractorService {
	return &SubcontractorService{
		repo:           repo,
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

// Create registers a new subcontractor. Names must be unique after
// trimming, otherwise the settlement resolver could match two registry rows
// for the same ledger name.
func (s *SubcontractorService) Create(ctx context.Context, input CreateSubcontractorInput) (*partner.Subcontractor, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "partner", "create_subcontractor")
	defer span.End()
	telemetry.SetAttribute(span, telemetry.SpanAttrSubcontractorName, input.Name)

	existing, err := s.repo.FindByTrimmedName(ctx, partner.TrimNormalizer(input.Name))
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to check subcontractor name: %w", err)
	}
	if existing != nil {
		return nil, shared.NewDomainError("DUPLICATE_NAME", "A subcontractor with this name already exists")
	}

	sub, err := partner.NewSubcontractor(input.Name, input.Kind)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if err := sub.SetContact(input.ContactName, input.Phone, input.Email); err != nil {
		return nil, err
	}
	if err := sub.SetAddress(input.Address, input.City, input.State); err != nil {
		return nil, err
	}
	sub.Notes = input.Notes

	if err := s.repo.Save(ctx, sub); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to save subcontractor: %w", err)
	}
	s.publishEvents(ctx, sub)

	s.logger.Info("Subcontractor created",
		zap.String("subcontractor_id", sub.ID.String()),
		zap.String("name", sub.Name),
		zap.String("kind", sub.Kind.String()),
	)

	return sub, nil
}

// Update changes a subcontractor's registered details
func (s *SubcontractorService) Update(ctx context.Context, id uuid.UUID, input UpdateSubcontractorInput) (*partner.Subcontractor, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "partner", "update_subcontractor")
	defer span.End()
	telemetry.SetAttribute(span, telemetry.SpanAttrSubcontractorID, id.String())

	sub, err := s.repo.FindByID(ctx, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to find subcontractor: %w", err)
	}
	if sub == nil {
		return nil, shared.ErrNotFound
	}

	if input.Name != sub.Name {
		existing, err := s.repo.FindByTrimmedName(ctx, partner.TrimNormalizer(input.Name))
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, fmt.Errorf("failed to check subcontractor name: %w", err)
		}
		if existing != nil && existing.ID != sub.ID {
			return nil, shared.NewDomainError("DUPLICATE_NAME", "A subcontractor with this name already exists")
		}
	}

	if err := sub.Update(input.Name); err != nil {
		return nil, err
	}
	if err := sub.SetContact(input.ContactName, input.Phone, input.Email); err != nil {
		return nil, err
	}
	if err := sub.SetAddress(input.Address, input.City, input.State); err != nil {
		return nil, err
	}
	sub.Notes = input.Notes

	if err := s.repo.Save(ctx, sub); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to save subcontractor: %w", err)
	}
	s.publishEvents(ctx, sub)

	return sub, nil
}

// GetByID returns one subcontractor
func (s *SubcontractorService) GetByID(ctx context.Context, id uuid.UUID) (*partner.Subcontractor, error) {
	sub, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find subcontractor: %w", err)
	}
	if sub == nil {
		return nil, shared.ErrNotFound
	}
	return sub, nil
}

// List returns subcontractors matching the filter, with the total count
func (s *SubcontractorService) List(ctx context.Context, filter partner.SubcontractorFilter) ([]partner.Subcontractor, int64, error) {
	subs, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list subcontractors: %w", err)
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count subcontractors: %w", err)
	}
	return subs, total, nil
}

// SetActive activates or deactivates a subcontractor. Deactivation keeps
// the registry row so historical settlements stay resolvable.
func (s *SubcontractorService) SetActive(ctx context.Context, id uuid.UUID, active bool) (*partner.Subcontractor, error) {
	sub, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find subcontractor: %w", err)
	}
	if sub == nil {
		return nil, shared.ErrNotFound
	}

	if active {
		sub.Activate()
	} else {
		sub.Deactivate()
	}

	if err := s.repo.Save(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to save subcontractor: %w", err)
	}
	return sub, nil
}

// Delete soft deletes a subcontractor from the registry
func (s *SubcontractorService) Delete(ctx context.Context, id uuid.UUID) error {
	sub, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to find subcontractor: %w", err)
	}
	if sub == nil {
		return shared.ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

func (s *SubcontractorService) publishEvents(ctx context.Context, aggregate shared.AggregateRoot) {
	events := aggregate.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("Failed to publish domain events",
			zap.String("aggregate_id", aggregate.GetID().String()),
			zap.Error(err),
		)
	}
	aggregate.ClearDomainEvents()
}
