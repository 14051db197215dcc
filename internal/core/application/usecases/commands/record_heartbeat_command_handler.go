package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/presence"
)

// RecordHeartbeatCommandHandler stores the latest heartbeat per worker.
// Each write replaces the previous record wholesale; activity inference
// reads these rows later, so recording stays cheap and unconditional.
type RecordHeartbeatCommandHandler struct {
	uowFactory PresenceUoWFactory
}

// NewRecordHeartbeatCommandHandler creates a handler for heartbeat recording.
func NewRecordHeartbeatCommandHandler(uowFactory PresenceUoWFactory) RecordHeartbeatCommandHandler {
	return RecordHeartbeatCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle upserts the worker's presence record.
func (h RecordHeartbeatCommandHandler) Handle(ctx context.Context, cmd RecordHeartbeatCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var viewUpdatedAt *time.Time
	if cmd.CurrentView() != nil {
		now := time.Now().UTC()
		viewUpdatedAt = &now
	}

	record, err := presence.NewRecord(cmd.WorkerID(), cmd.Role(), cmd.Active(), cmd.CurrentView(), viewUpdatedAt)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.PresenceRepository().Upsert(ctx, record); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
