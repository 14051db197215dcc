package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/presence"
	"fulfillment/internal/core/ports"
)

// recentOrdersLimit caps how many of a worker's latest orders are
// cross-referenced for progress extraction.
const recentOrdersLimit = 10

// GetWorkerActivityQueryHandler assembles the dashboard's worker activity
// view. Reads every presence record, and for workers that look busy fetches
// their recent orders so inference can attach an order number and progress.
type GetWorkerActivityQueryHandler struct {
	presenceRepo ports.PresenceRepository
	orderRepo    ports.OrderRepository
}

// NewGetWorkerActivityQueryHandler creates a handler for worker activity
// queries.
func NewGetWorkerActivityQueryHandler(
	presenceRepo ports.PresenceRepository,
	orderRepo ports.OrderRepository,
) GetWorkerActivityQueryHandler {
	return GetWorkerActivityQueryHandler{presenceRepo: presenceRepo, orderRepo: orderRepo}
}

// Handle executes the query. Workers who never sent a heartbeat are absent
// from the result; staleness of heartbeats is not considered.
func (h GetWorkerActivityQueryHandler) Handle(
	ctx context.Context,
	query GetWorkerActivityQuery,
) ([]GetWorkerActivityQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	records, err := h.presenceRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	activities := make([]GetWorkerActivityQueryResponse, 0, len(records))
	for _, record := range records {
		var refs []presence.OrderRef
		if record.IsActive() && record.CurrentView() != nil {
			refs, err = h.recentOrderRefs(ctx, record.WorkerID())
			if err != nil {
				return nil, err
			}
		}

		activity := presence.Infer(record, record.Role(), refs)
		activities = append(activities, GetWorkerActivityQueryResponse{
			WorkerID:    record.WorkerID(),
			Role:        record.Role().String(),
			Status:      activity.Status,
			OrderNumber: activity.OrderNumber,
			Progress:    activity.Progress,
		})
	}

	return activities, nil
}

func (h GetWorkerActivityQueryHandler) recentOrderRefs(
	ctx context.Context, workerID string,
) ([]presence.OrderRef, error) {
	id, err := kernel.UUIDFromString(workerID)
	if err != nil {
		// A worker id that is not a UUID cannot match order assignee
		// columns; inference proceeds without order context.
		return nil, nil
	}

	recent, err := h.orderRepo.GetRecentForWorker(ctx, id, recentOrdersLimit)
	if err != nil {
		return nil, err
	}

	refs := make([]presence.OrderRef, 0, len(recent))
	for _, o := range recent {
		refs = append(refs, presence.OrderRef{
			Number:   o.Number(),
			Progress: o.Progress(),
		})
	}

	return refs, nil
}
