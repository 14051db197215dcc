package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Priority orders the claim pool: higher priorities surface first in the
// claimable-order lists.
type Priority int

const (
	// PriorityUnknown is an invalid zero value.
	PriorityUnknown Priority = iota

	PriorityLow
	PriorityNormal
	PriorityHigh
	PriorityUrgent
)

func getPriorityStrings() map[Priority]string {
	return map[Priority]string{
		PriorityUnknown: "UNKNOWN",
		PriorityLow:     "LOW",
		PriorityNormal:  "NORMAL",
		PriorityHigh:    "HIGH",
		PriorityUrgent:  "URGENT",
	}
}

// PriorityFromString parses the wire representation (e.g. "URGENT").
func PriorityFromString(s string) (Priority, error) {
	for p, str := range getPriorityStrings() {
		if str == s && p != PriorityUnknown {
			return p, nil
		}
	}
	return PriorityUnknown, errs.NewValueIsInvalidErrorWithCause("priority", fmt.Errorf("%q is not a valid priority", s))
}

// Validate checks that the Priority is one of the defined levels.
func (p Priority) Validate() error {
	if p < PriorityLow || p > PriorityUrgent {
		return errs.NewValueIsInvalidErrorWithCause("priority", fmt.Errorf("%d is not a valid priority", p))
	}
	return nil
}

// String returns the wire representation. Implements fmt.Stringer.
func (p Priority) String() string {
	if str, ok := getPriorityStrings()[p]; ok {
		return str
	}
	return "UNKNOWN"
}
