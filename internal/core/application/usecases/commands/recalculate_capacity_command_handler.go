package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/capacity"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// RecalculateCapacityCommandHandler recomputes one location's utilization
// from scratch. Sums on-hand inventory per dimension, resolves the highest
// priority rule per dimension, classifies each record, persists the result,
// and raises or refreshes at most one open alert per (location, dimension).
//
// The whole recomputation runs in one transaction. A failure rolls back and
// leaves the previous state intact; other locations are never touched.
type RecalculateCapacityCommandHandler struct {
	uowFactory CapacityUoWFactory
	publisher  ports.EventPublisher
	calculator services.CapacityCalculator
}

// NewRecalculateCapacityCommandHandler creates a handler for capacity
// recalculation.
func NewRecalculateCapacityCommandHandler(
	uowFactory CapacityUoWFactory, publisher ports.EventPublisher,
) RecalculateCapacityCommandHandler {
	return RecalculateCapacityCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		calculator: services.NewCapacityCalculator(),
	}
}

// Handle processes the recalculation command. Always broadcasts
// zone:updated for the location's zone after commit, plus inventory:low for
// every record that ended up WARNING or EXCEEDED.
func (h RecalculateCapacityCommandHandler) Handle(ctx context.Context, cmd RecalculateCapacityCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	capacityRepo := uow.CapacityRepository()
	loc := cmd.Location()

	measurements, err := capacityRepo.SumOnHand(ctx, loc)
	if err != nil {
		return err
	}

	rules, err := capacityRepo.GetRulesFor(ctx, loc)
	if err != nil {
		return err
	}

	existing, err := capacityRepo.GetCapacities(ctx, loc)
	if err != nil {
		return err
	}

	now := time.Now().UTC()

	records, err := h.calculator.Calculate(loc, measurements, rules, existing, now)
	if err != nil {
		return err
	}

	alerted := make([]*capacity.LocationCapacity, 0, len(records))
	for _, record := range records {
		if err = capacityRepo.SaveCapacity(ctx, record); err != nil {
			return err
		}

		if err = h.raiseAlert(ctx, capacityRepo, record, now); err != nil {
			return err
		}
		if record.Status() != capacity.CapacityStatusActive {
			alerted = append(alerted, record)
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publishResults(ctx, loc, records, alerted)

	return nil
}

func (h RecalculateCapacityCommandHandler) raiseAlert(
	ctx context.Context, capacityRepo ports.CapacityRepository, record *capacity.LocationCapacity, now time.Time,
) error {
	alert, err := capacity.NewAlertForCapacity(kernel.NewUUID(), record, now)
	if errors.Is(err, capacity.ErrAlertNotAlertable) {
		// ACTIVE records raise nothing; open alerts stay open until acknowledged.
		return nil
	}
	if err != nil {
		return err
	}

	return capacityRepo.UpsertOpenAlert(ctx, alert)
}

func (h RecalculateCapacityCommandHandler) publishResults(
	ctx context.Context, loc kernel.BinLocation,
	records []*capacity.LocationCapacity, alerted []*capacity.LocationCapacity,
) {
	statuses := make(map[string]string, len(records))
	for _, record := range records {
		statuses[record.Dimension().String()] = record.Status().String()
	}

	_ = h.publisher.Publish(ctx, ports.TopicZoneUpdated, map[string]any{
		"location": loc.Code(),
		"zone":     loc.Zone(),
		"statuses": statuses,
	})

	for _, record := range alerted {
		_ = h.publisher.Publish(ctx, ports.TopicInventoryLow, map[string]any{
			"location":  loc.Code(),
			"zone":      loc.Zone(),
			"dimension": record.Dimension().String(),
			"status":    record.Status().String(),
			"percent":   record.Percent(),
		})
	}
}
