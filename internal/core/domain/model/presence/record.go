// Package presence infers a worker's live activity from their latest
// heartbeat. There is no server-pushed "I am idle" signal: classification is
// purely a function of the last-reported session flag and current-view
// string, so it runs over already-fetched data with no I/O.
//
// No staleness window is applied: a stale but present current-view counts
// the same as a fresh one. A structured {orderId, screen} heartbeat would
// remove the string matching below; until clients send one, the display
// string is what there is.
package presence

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Record is a worker's latest heartbeat. It is overwritten wholesale by the
// worker's own client; everyone else reads it. No history is retained.
type Record struct {
	workerID string
	role     kernel.Role
	active   bool

	currentView          *string
	currentViewUpdatedAt *time.Time

	isConstructed bool
}

// NewRecord creates a presence record from a heartbeat. The role is the one
// the client authenticated with; currentView may be nil when the client
// reports a session without a view (e.g. login ping).
func NewRecord(
	workerID string, role kernel.Role, active bool, currentView *string, updatedAt *time.Time,
) (Record, error) {
	if workerID == "" {
		return Record{}, errs.NewValueIsRequiredError("workerID")
	}
	if err := role.Validate(); err != nil {
		return Record{}, err
	}

	return Record{
		workerID:             workerID,
		role:                 role,
		active:               active,
		currentView:          currentView,
		currentViewUpdatedAt: updatedAt,
		isConstructed:        true,
	}, nil
}

// Validate ensures the Record was created via NewRecord.
func (r Record) Validate() error {
	if !r.isConstructed {
		return errs.NewValueIsRequiredError("presence Record must be created via NewRecord")
	}
	return nil
}

// WorkerID returns the owning worker's identifier.
func (r Record) WorkerID() string {
	return r.workerID
}

// Role returns the role the worker's client reported.
func (r Record) Role() kernel.Role {
	return r.role
}

// IsActive reports whether the worker's session is open.
func (r Record) IsActive() bool {
	return r.active
}

// CurrentView returns the free-form screen string from the latest
// heartbeat, or nil.
func (r Record) CurrentView() *string {
	return r.currentView
}

// CurrentViewUpdatedAt returns when the view was last reported, or nil.
func (r Record) CurrentViewUpdatedAt() *time.Time {
	return r.currentViewUpdatedAt
}
