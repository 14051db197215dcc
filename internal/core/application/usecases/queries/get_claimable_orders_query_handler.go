package queries

import (
	"context"

	"fulfillment/internal/core/ports"
)

// GetClaimableOrdersQueryHandler lists orders still open for claiming. The
// list is advisory: winning a claim is decided by the conditional write,
// not by appearing here, so a row may already be gone by the time a worker
// taps it.
type GetClaimableOrdersQueryHandler struct {
	orderRepo ports.OrderRepository
}

// NewGetClaimableOrdersQueryHandler creates a handler for claimable order
// queries.
func NewGetClaimableOrdersQueryHandler(orderRepo ports.OrderRepository) GetClaimableOrdersQueryHandler {
	return GetClaimableOrdersQueryHandler{orderRepo: orderRepo}
}

// Handle executes the query. Urgent orders sort first, then oldest first
// within the same priority; the repository owns that ordering.
func (h GetClaimableOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetClaimableOrdersQuery,
) ([]GetClaimableOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	claimable, err := h.orderRepo.GetAllClaimable(ctx, query.Stage())
	if err != nil {
		return nil, err
	}

	orders := make([]GetClaimableOrdersQueryResponse, 0, len(claimable))
	for _, o := range claimable {
		orders = append(orders, GetClaimableOrdersQueryResponse{
			ID:        o.ID(),
			Number:    o.Number(),
			Status:    o.Status().String(),
			Priority:  o.Priority().String(),
			UpdatedAt: o.UpdatedAt(),
		})
	}

	return orders, nil
}
