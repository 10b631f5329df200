package settlement

import (
	"context"
	"fmt"

	"github.com/costura/backend/internal/domain/settlement"
	"github.com/costura/backend/internal/domain/shared"
	"github.com/costura/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
)

// QueryService serves read-only settlement lookups for the API layer
type QueryService struct {
	weeklyRepo settlement.WeeklySettlementRepository
}

// NewQueryService creates a new query service
func NewQueryService(weeklyRepo settlement.WeeklySettlementRepository) *QueryService {
	return &QueryService{weeklyRepo: weeklyRepo}
}

// GetByID returns a weekly settlement with its banca breakdowns and line
// items preloaded
func (s *QueryService) GetByID(ctx context.Context, id uuid.UUID) (*settlement.WeeklySettlement, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "settlement", "get_by_id")
	defer span.End()
	telemetry.SetAttribute(span, telemetry.SpanAttrSettlementID, id.String())

	ws, err := s.weeklyRepo.FindByIDWithChildren(ctx, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to find weekly settlement: %w", err)
	}
	if ws == nil {
		return nil, shared.ErrNotFound
	}
	return ws, nil
}

// GetByWeekKey returns the weekly settlement carrying the given week label,
// with children preloaded
func (s *QueryService) GetByWeekKey(ctx context.Context, weekKey string) (*settlement.WeeklySettlement, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "settlement", "get_by_week_key")
	defer span.End()
	telemetry.SetAttribute(span, telemetry.SpanAttrWeekKey, weekKey)

	ws, err := s.weeklyRepo.FindByWeekKeyWithChildren(ctx, weekKey)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to find weekly settlement: %w", err)
	}
	if ws == nil {
		return nil, shared.ErrNotFound
	}
	return ws, nil
}

// List returns weekly settlement summaries (no children), optionally
// filtered by status
func (s *QueryService) List(ctx context.Context, filter settlement.WeeklySettlementFilter) ([]settlement.WeeklySettlement, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "settlement", "list")
	defer span.End()

	settlements, err := s.weeklyRepo.FindAll(ctx, filter)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to list weekly settlements: %w", err)
	}
	return settlements, nil
}
