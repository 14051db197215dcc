package production

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Transition outcome errors, mirroring the fulfillment order state machine.
var (
	ErrInvalidTransition = errs.NewValueIsInvalidError("production status transition is not allowed")
	ErrAlreadyTerminal   = errs.NewValueIsInvalidError("production order is already in a terminal status")
)

// Status represents the lifecycle state of a production order. It is a
// separate status set from fulfillment orders but modeled identically:
// a fixed successor allow-list, total transition checks, terminal guard.
//
//	DRAFT ──> PLANNED ──> RELEASED ──> IN_PROGRESS ──> COMPLETED
//	  │          │            │  ^          │
//	  │          │            │  └─ ON_HOLD ┘
//	  └──────────┴────────── CANCELLED
//
// Resuming from ON_HOLD returns the order to RELEASED, which releases the
// operator's claim.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Draft is the initial status; the order is being specified.
	Draft

	// Planned means materials and capacity are reserved.
	Planned

	// Released means the order is in the claim pool for operators.
	Released

	// InProgress means an operator has claimed the order.
	InProgress

	// OnHold suspends work and releases the operator's claim on resume.
	OnHold

	// Completed is a terminal status.
	Completed

	// Cancelled is a terminal status reachable from any non-terminal state.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "UNKNOWN",
		Draft:      "DRAFT",
		Planned:    "PLANNED",
		Released:   "RELEASED",
		InProgress: "IN_PROGRESS",
		OnHold:     "ON_HOLD",
		Completed:  "COMPLETED",
		Cancelled:  "CANCELLED",
	}
}

func getStatusSuccessors() map[Status][]Status {
	return map[Status][]Status{
		Draft:      {Planned, Cancelled},
		Planned:    {Released, Cancelled},
		Released:   {InProgress, OnHold, Cancelled},
		InProgress: {Completed, OnHold, Cancelled},
		OnHold:     {Released, Cancelled},
		Completed:  {},
		Cancelled:  {},
	}
}

// StatusFromString parses the wire representation (e.g. "RELEASED").
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid production status", s))
}

// Validate checks that the Status is one of the defined lifecycle states.
func (s Status) Validate() error {
	if _, ok := getStatusSuccessors()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid production status", s))
	}
	return nil
}

// String returns the wire representation. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
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
// Mirrors order.Status.TransitionTo.
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

// ReleasesAssignee reports whether the transition must clear the operator
// assignment. Leaving ON_HOLD back to RELEASED re-opens the claim pool, and
// cancellation always drops the claim.
func (s Status) ReleasesAssignee(target Status) bool {
	return (s == OnHold && target == Released) || target == Cancelled
}
