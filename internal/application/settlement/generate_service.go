// Package settlement contains the application services for the weekly
// settlement engine: generation, lifecycle transitions and queries.
package settlement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/costura/backend/internal/domain/catalog"
	"github.com/costura/backend/internal/domain/partner"
	"github.com/costura/backend/internal/domain/production"
	"github.com/costura/backend/internal/domain/settlement"
	"github.com/costura/backend/internal/domain/shared"
	"github.com/costura/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// GenerateResult describes the outcome of one generation run
type GenerateResult struct {
	// Settlement carries the full tree: banca breakdowns with line items
	Settlement *settlement.WeeklySettlement
	// Created is true when this run inserted the weekly settlement row
	Created bool
	// Frozen is true when the week is already paid and nothing was touched
	Frozen bool
	// FailedSubcontractors lists banca names whose aggregation failed and
	// was skipped; the rest of the run still committed
	FailedSubcontractors []string
}

// GenerateService orchestrates weekly settlement generation: it discovers
// the bancas active in the period, aggregates their settleable movements
// into priced line items, and rolls totals up into the weekly settlement.
// Generation is idempotent per week; re-running replaces prior results.
type GenerateService struct {
	weeklyRepo        settlement.WeeklySettlementRepository
	bancaRepo         settlement.SubcontractorSettlementRepository
	subcontractorRepo partner.SubcontractorRepository
	productRepo       catalog.ProductRepository
	movements         production.MovementReader
	eventPublisher    shared.EventPublisher
	logger            *zap.Logger
}

// NewGenerateService creates a new generate service
func NewGenerateService(
	weeklyRepo settlement.WeeklySettlementRepository,
	bancaRepo settlement.SubcontractorSettlementRepository,
	subcontractorRepo partner.SubcontractorRepository,
	productRepo catalog.ProductRepository,
	movements production.MovementReader,
	eventPublisher shared.EventPublisher,
	logger *zap.Logger,
) *GenerateService {
	return &GenerateService{
		weeklyRepo:        weeklyRepo,
		bancaRepo:         bancaRepo,
		subcontractorRepo: subcontractorRepo,
		productRepo:       productRepo,
		movements:         movements,
		eventPublisher:    eventPublisher,
		logger:            logger,
	}
}

// Generate runs the weekly settlement for [periodStart, periodEnd].
// If the week is already paid it returns the frozen settlement untouched.
// If the week is open (or does not exist yet) every banca's line items and
// totals are recomputed from the current ledger, replacing prior results.
func (s *GenerateService) Generate(ctx context.Context, periodStart, periodEnd time.Time) (*GenerateResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "settlement", "generate_weekly")
	defer span.End()

	if periodEnd.Before(periodStart) {
		err := shared.NewDomainError("INVALID_PERIOD", "Period end cannot be before period start")
		telemetry.RecordError(span, err)
		return nil, err
	}

	weekKey := settlement.WeekKeyOf(periodStart)
	telemetry.SetAttributes(span,
		telemetry.SpanAttrWeekKey, weekKey,
		telemetry.SpanAttrPeriodStart, periodStart.Format("2006-01-02"),
		telemetry.SpanAttrPeriodEnd, periodEnd.Format("2006-01-02"),
	)

	ws, created, err := s.findOrCreateWeek(ctx, weekKey, periodStart, periodEnd)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if ws.IsPaid() {
		s.logger.Info("Weekly settlement already paid, skipping regeneration",
			zap.String("week_key", weekKey),
			zap.String("settlement_id", ws.ID.String()),
		)
		telemetry.AddEvent(span, "settlement.frozen")
		full, err := s.weeklyRepo.FindByIDWithChildren(ctx, ws.ID)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, fmt.Errorf("failed to load frozen weekly settlement: %w", err)
		}
		if full != nil {
			ws = full
		}
		return &GenerateResult{Settlement: ws, Frozen: true}, nil
	}

	names, err := s.movements.DistinctSubcontractorNames(ctx, production.SettlementTypes(), periodStart, periodEnd)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to discover active subcontractors: %w", err)
	}

	resolver := partner.NewSubcontractorResolver(s.subcontractorRepo)

	var totalPieces int64
	totalValue := decimal.Zero
	var failed []string
	children := make([]settlement.SubcontractorSettlement, 0, len(names))
	settled := make(map[uuid.UUID]struct{}, len(names))
	for _, name := range names {
		ref, err := resolver.Resolve(ctx, name)
		if err != nil {
			// One banca failing must not lose the rest of the week
			s.logger.Warn("Failed to resolve subcontractor, skipping",
				zap.String("week_key", weekKey),
				zap.String("subcontractor_name", name),
				zap.Error(err),
			)
			failed = append(failed, name)
			continue
		}
		// Distinct raw snapshots can trim to the same banca; the first
		// spelling already settled every movement the trimmed match returns
		if _, done := settled[ref.ID]; done {
			s.logger.Debug("Skipping duplicate spelling of already settled subcontractor",
				zap.String("week_key", weekKey),
				zap.String("subcontractor_name", name),
				zap.String("subcontractor_id", ref.ID.String()),
			)
			continue
		}
		settled[ref.ID] = struct{}{}

		ss, err := s.settleSubcontractor(ctx, ws, ref, name)
		if err != nil {
			s.logger.Warn("Failed to settle subcontractor, skipping",
				zap.String("week_key", weekKey),
				zap.String("subcontractor_name", name),
				zap.Error(err),
			)
			failed = append(failed, name)
			continue
		}
		if ss == nil {
			continue
		}
		children = append(children, *ss)
		totalPieces += ss.TotalPieces
		totalValue = totalValue.Add(ss.TotalValue)
	}

	if err := ws.UpdateTotals(totalPieces, totalValue); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if err := s.weeklyRepo.Save(ctx, ws); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to save weekly settlement: %w", err)
	}
	ws.Subcontractors = children
	s.publishEvents(ctx, ws)

	s.logger.Info("Weekly settlement generated",
		zap.String("week_key", weekKey),
		zap.String("settlement_id", ws.ID.String()),
		zap.Bool("created", created),
		zap.Int("subcontractors", len(names)),
		zap.Int("failed", len(failed)),
		zap.Int64("total_pieces", totalPieces),
		zap.String("total_value", totalValue.String()),
	)
	telemetry.SetAttributes(span,
		telemetry.SpanAttrSettlementID, ws.ID.String(),
		"subcontractor_count", len(names),
		"failed_count", len(failed),
	)

	return &GenerateResult{
		Settlement:           ws,
		Created:              created,
		FailedSubcontractors: failed,
	}, nil
}

// findOrCreateWeek loads the settlement for weekKey, inserting a fresh open
// one if none exists. A concurrent insert losing the race on the week_key
// unique index falls back to re-reading the winner's row.
func (s *GenerateService) findOrCreateWeek(ctx context.Context, weekKey string, periodStart, periodEnd time.Time) (*settlement.WeeklySettlement, bool, error) {
	existing, err := s.weeklyRepo.FindByWeekKey(ctx, weekKey)
	if err != nil {
		return nil, false, fmt.Errorf("failed to find weekly settlement: %w", err)
	}
	if existing != nil {
		return existing, false, nil
	}

	ws, err := settlement.NewWeeklySettlement(periodStart, periodEnd)
	if err != nil {
		return nil, false, err
	}
	if err := s.weeklyRepo.Create(ctx, ws); err != nil {
		if errors.Is(err, settlement.ErrDuplicateWeekKey) {
			s.logger.Info("Lost weekly settlement creation race, reusing existing row",
				zap.String("week_key", weekKey),
			)
			winner, findErr := s.weeklyRepo.FindByWeekKey(ctx, weekKey)
			if findErr != nil {
				return nil, false, fmt.Errorf("failed to re-read weekly settlement after duplicate key: %w", findErr)
			}
			if winner == nil {
				return nil, false, shared.NewDomainError("SETTLEMENT_RACE", "Weekly settlement vanished after duplicate key")
			}
			return winner, false, nil
		}
		return nil, false, fmt.Errorf("failed to create weekly settlement: %w", err)
	}
	s.publishEvents(ctx, ws)
	return ws, true, nil
}

// settleSubcontractor aggregates one banca's settleable movements into a
// priced settlement, replacing any prior lines for the week. Returns the
// saved settlement for the weekly roll-up. A banca with no movements
// contributes nothing and gets no settlement row (nil, nil).
func (s *GenerateService) settleSubcontractor(
	ctx context.Context,
	ws *settlement.WeeklySettlement,
	ref partner.SubcontractorRef,
	rawName string,
) (*settlement.SubcontractorSettlement, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "settlement", "settle_subcontractor")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrWeekKey, ws.WeekKey,
		telemetry.SpanAttrSubcontractorName, rawName,
		telemetry.SpanAttrSubcontractorID, ref.ID.String(),
		"subcontractor_ephemeral", ref.IsEphemeral(),
	)

	movements, err := s.movements.FindForSubcontractor(ctx, rawName, production.SettlementTypes(), ws.PeriodStart, ws.PeriodEnd)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to load movements: %w", err)
	}
	if len(movements) == 0 {
		telemetry.AddEvent(span, "no_settleable_movements")
		return nil, nil
	}

	productNames := make([]string, 0, len(movements))
	for i := range movements {
		productNames = append(productNames, movements[i].ProductName)
	}
	priceTable, err := catalog.LoadPriceTable(ctx, s.productRepo, productNames)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	ss, err := s.bancaRepo.FindByWeekAndSubcontractor(ctx, ws.ID, ref.ID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to find banca settlement: %w", err)
	}
	if ss == nil {
		ss, err = settlement.NewSubcontractorSettlement(ws.ID, ref.ID, ref.Name, ref.IsEphemeral(), ws.PeriodStart, ws.PeriodEnd)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
	}

	items := make([]settlement.SettlementLineItem, 0, len(movements))
	for i := range movements {
		mov := &movements[i]
		item, err := settlement.NewSettlementLineItem(
			mov.ID,
			mov.ProductName,
			mov.PieceCount(),
			priceTable.UnitPriceFor(mov.ProductName),
			mov.BatchDate,
		)
		if err != nil {
			s.logger.Warn("Skipping unpriceable movement",
				zap.String("movement_id", mov.ID.String()),
				zap.String("subcontractor_name", rawName),
				zap.Error(err),
			)
			continue
		}
		items = append(items, *item)
	}

	ss.ReplaceLines(items)
	if err := s.bancaRepo.SaveWithLines(ctx, ss); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to save banca settlement: %w", err)
	}
	s.publishEvents(ctx, ss)

	return ss, nil
}

// publishEvents publishes the aggregate's pending events best-effort.
// Delivery failures are logged and swallowed; realtime notification must
// never fail a settlement operation.
func (s *GenerateService) publishEvents(ctx context.Context, aggregate shared.AggregateRoot) {
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
