package settlement

import (
	"context"
	"fmt"

	"github.com/costura/backend/internal/domain/settlement"
	"github.com/costura/backend/internal/domain/shared"
	"github.com/costura/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LifecycleService handles status transitions for weekly and per-banca
// settlements. Transitions are independent across the two levels: paying a
// week does not cascade to its bancas, and a banca can be paid while the
// week stays open.
type LifecycleService struct {
	weeklyRepo     settlement.WeeklySettlementRepository
	bancaRepo      settlement.SubcontractorSettlementRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewLifecycleService creates a new lifecycle service
func NewLifecycleService(
	weeklyRepo settlement.WeeklySettlementRepository,
	bancaRepo settlement.SubcontractorSettlementRepository,
	eventPublisher shared.EventPublisher,
	logger *zap.Logger,
) *LifecycleService {
	return &LifecycleService{
		weeklyRepo:     weeklyRepo,
		bancaRepo:      bancaRepo,
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

// FinalizeWeek marks a weekly settlement as paid, freezing it against
// regeneration. Returns the settlement and whether the transition happened;
// finalizing an already paid week is a no-op with changed=false. Pending
// banca settlements do not block the transition.
func (s *LifecycleService) FinalizeWeek(ctx context.Context, id uuid.UUID) (*settlement.WeeklySettlement, bool, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "settlement", "finalize_week")
	defer span.End()
	telemetry.SetAttribute(span, telemetry.SpanAttrSettlementID, id.String())

	ws, err := s.weeklyRepo.FindByID(ctx, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, false, fmt.Errorf("failed to find weekly settlement: %w", err)
	}
	if ws == nil {
		return nil, false, shared.ErrNotFound
	}

	if !ws.Finalize() {
		telemetry.AddEvent(span, "already_paid")
		return ws, false, nil
	}

	if err := s.weeklyRepo.Save(ctx, ws); err != nil {
		telemetry.RecordError(span, err)
		return nil, false, fmt.Errorf("failed to save weekly settlement: %w", err)
	}
	s.publishEvents(ctx, ws)

	s.logger.Info("Weekly settlement finalized",
		zap.String("settlement_id", ws.ID.String()),
		zap.String("week_key", ws.WeekKey),
	)

	return ws, true, nil
}

// FinalizeSubcontractor marks one banca's settlement inside a week as paid,
// addressed by the (weekly settlement, subcontractor) pair. Returns the
// settlement and whether the transition happened; finalizing an already paid
// or canceled banca is a no-op with changed=false.
func (s *LifecycleService) FinalizeSubcontractor(ctx context.Context, weeklySettlementID, subcontractorID uuid.UUID) (*settlement.SubcontractorSettlement, bool, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "settlement", "finalize_subcontractor")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrSettlementID, weeklySettlementID.String(),
		telemetry.SpanAttrSubcontractorID, subcontractorID.String(),
	)

	ss, err := s.bancaRepo.FindByWeekAndSubcontractor(ctx, weeklySettlementID, subcontractorID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, false, fmt.Errorf("failed to find banca settlement: %w", err)
	}
	if ss == nil {
		return nil, false, shared.ErrNotFound
	}

	if !ss.Finalize() {
		telemetry.AddEvent(span, "not_pending")
		return ss, false, nil
	}

	if err := s.bancaRepo.Save(ctx, ss); err != nil {
		telemetry.RecordError(span, err)
		return nil, false, fmt.Errorf("failed to save banca settlement: %w", err)
	}
	s.publishEvents(ctx, ss)

	s.logger.Info("Banca settlement finalized",
		zap.String("banca_settlement_id", ss.ID.String()),
		zap.String("subcontractor_name", ss.SubcontractorName),
	)

	return ss, true, nil
}

func (s *LifecycleService) publishEvents(ctx context.Context, aggregate shared.AggregateRoot) {
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
