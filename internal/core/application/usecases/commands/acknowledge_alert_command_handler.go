package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/capacity"
)

// AcknowledgeAlertCommandHandler silences a capacity alert. The write is a
// conditional update scoped to unacknowledged rows, so a second acknowledge
// of the same alert surfaces errs.ErrObjectNotFound instead of overwriting
// the first user's stamp.
type AcknowledgeAlertCommandHandler struct {
	uowFactory CapacityUoWFactory
}

// NewAcknowledgeAlertCommandHandler creates a handler for alert
// acknowledgement.
func NewAcknowledgeAlertCommandHandler(uowFactory CapacityUoWFactory) AcknowledgeAlertCommandHandler {
	return AcknowledgeAlertCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the acknowledgement and returns the updated alert.
func (h AcknowledgeAlertCommandHandler) Handle(
	ctx context.Context, cmd AcknowledgeAlertCommand,
) (*capacity.Alert, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	capacityRepo := uow.CapacityRepository()

	alert, err := capacityRepo.AcknowledgeAlert(ctx, cmd.AlertID(), cmd.UserID(), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return alert, nil
}
