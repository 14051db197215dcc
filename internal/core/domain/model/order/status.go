package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Transition outcome errors. These are ordinary decision results, not
// failures: callers are expected to branch on them.
var (
	// ErrInvalidTransition is returned when the requested status is not in
	// the current status's successor set.
	ErrInvalidTransition = errs.NewValueIsInvalidError("status transition is not allowed")

	// ErrAlreadyTerminal is returned when attempting any transition out of
	// SHIPPED or CANCELLED.
	ErrAlreadyTerminal = errs.NewValueIsInvalidError("order is already in a terminal status")
)

// Status represents the lifecycle state of a fulfillment order.
// It implements a state machine with a fixed successor set per state:
//
//	PENDING ──> PICKING ──> PICKED ──> PACKING ──> PACKED ──> SHIPPED
//	   │           │           │           │          │
//	   │           ├──────── ON_HOLD ──────┤          │
//	   └───────────┴────── CANCELLED ──────┴──────────┘
//
// ON_HOLD resumes to PENDING (redo picking) or PICKED (redo packing).
// SHIPPED and CANCELLED are terminal; no transition leaves them.
//
// Status is a value object; transition checks are total and side-effect-free
// so they can be unit-tested without storage.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status; the order waits in the pick pool.
	Pending

	// Picking means a picker has claimed the order and is collecting items.
	Picking

	// Picked means picking is complete; the order waits in the pack pool.
	Picked

	// Packing means a packer has claimed the order and is boxing it.
	Packing

	// Packed means packing is complete; the order awaits shipment.
	Packed

	// Shipped is a terminal status: the order left the warehouse.
	Shipped

	// Cancelled is a terminal status reachable from any non-terminal state.
	Cancelled

	// OnHold suspends work; the interrupted phase's claim is released.
	OnHold
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Pending:   "PENDING",
		Picking:   "PICKING",
		Picked:    "PICKED",
		Packing:   "PACKING",
		Packed:    "PACKED",
		Shipped:   "SHIPPED",
		Cancelled: "CANCELLED",
		OnHold:    "ON_HOLD",
	}
}

// getStatusSuccessors returns the explicit allow-list of legal transitions.
// Any (from, to) pair absent here is rejected.
func getStatusSuccessors() map[Status][]Status {
	return map[Status][]Status{
		Pending:   {Picking, OnHold, Cancelled},
		Picking:   {Picked, OnHold, Cancelled},
		Picked:    {Packing, OnHold, Cancelled},
		Packing:   {Packed, OnHold, Cancelled},
		Packed:    {Shipped, Cancelled},
		Shipped:   {},
		Cancelled: {},
		OnHold:    {Pending, Picked, Cancelled},
	}
}

// getProgressPercents maps each status to its derived completion percentage.
func getProgressPercents() map[Status]int {
	return map[Status]int{
		Pending:   0,
		Picking:   25,
		Picked:    50,
		Packing:   75,
		Packed:    90,
		Shipped:   100,
		Cancelled: 0,
		OnHold:    0,
	}
}

// StatusFromString parses the wire representation (e.g. "PICKING").
// Returns an error for unrecognized values.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that the Status is one of the defined lifecycle states.
func (s Status) Validate() error {
	if _, ok := getStatusSuccessors()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire representation, or "UNKNOWN" for invalid values.
// Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Shipped || s == Cancelled
}

// CanTransitionTo reports whether target is in this status's successor set.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range getStatusSuccessors()[s] {
		if next == target {
			return true
		}
	}
	return false
}

// TransitionTo validates the transition and returns the next status.
//
// Returns:
//   - (target, nil) when the transition is in the allow-list
//   - (0, ErrAlreadyTerminal) when the current status is terminal
//   - (0, ErrInvalidTransition) for any other pair
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if err := target.Validate(); err != nil {
		return 0, err
	}
	if s.IsTerminal() {
		return 0, ErrAlreadyTerminal
	}
	if !s.CanTransitionTo(target) {
		return 0, ErrInvalidTransition
	}
	return target, nil
}

// Progress returns the completion percentage derived from the status alone.
// It is recomputed on demand and never stored incrementally.
func (s Status) Progress() int {
	return getProgressPercents()[s]
}

// ReleasesPicker reports whether leaving from for target must clear the
// picker assignment.
func (s Status) ReleasesPicker(target Status) bool {
	return s == Picking && (target == OnHold || target == Cancelled)
}

// ReleasesPacker reports whether leaving from for target must clear the
// packer assignment.
func (s Status) ReleasesPacker(target Status) bool {
	return s == Packing && (target == OnHold || target == Cancelled)
}
