package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/presence"
)

// PresenceRepository persists the last reported heartbeat per worker.
type PresenceRepository interface {
	// Upsert replaces the worker's presence record, keyed by worker id.
	Upsert(ctx context.Context, record presence.Record) error

	// Get retrieves a worker's presence record. Returns
	// errs.ErrObjectNotFound when the worker never sent a heartbeat.
	Get(ctx context.Context, workerID string) (presence.Record, error)

	// GetAll retrieves every known presence record.
	GetAll(ctx context.Context) ([]presence.Record, error)
}
