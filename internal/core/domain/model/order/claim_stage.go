package order

import (
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrClaimConflict is returned when a conditional claim write matched no
// row: another worker won, or the order moved on between list-fetch and
// claim. The caller should re-poll the claimable list and pick a different
// order, never retry the same id.
var ErrClaimConflict = errs.NewValueIsInvalidError("order claim lost the race")

// ClaimStage identifies which contested phase a worker is claiming. It
// bundles the required current status, the target status, and which
// assignee slot the conditional write fills.
type ClaimStage int

const (
	// ClaimStageUnknown is an invalid zero value.
	ClaimStageUnknown ClaimStage = iota

	// ClaimStagePick claims PENDING -> PICKING, filling the picker slot.
	ClaimStagePick

	// ClaimStagePack claims PICKED -> PACKING, filling the packer slot.
	ClaimStagePack
)

func getClaimStageStrings() map[ClaimStage]string {
	return map[ClaimStage]string{
		ClaimStageUnknown: "UNKNOWN",
		ClaimStagePick:    "PICK",
		ClaimStagePack:    "PACK",
	}
}

// ClaimStageFromString parses the wire representation ("PICK" or "PACK").
func ClaimStageFromString(s string) (ClaimStage, error) {
	for stage, str := range getClaimStageStrings() {
		if str == s && stage != ClaimStageUnknown {
			return stage, nil
		}
	}
	return ClaimStageUnknown, errs.NewValueIsInvalidErrorWithCause("stage", fmt.Errorf("%q is not a valid claim stage", s))
}

// Validate checks that the ClaimStage is one of the defined phases.
func (s ClaimStage) Validate() error {
	if s != ClaimStagePick && s != ClaimStagePack {
		return errs.NewValueIsInvalidErrorWithCause("stage", fmt.Errorf("%d is not a valid claim stage", s))
	}
	return nil
}

// String returns the wire representation. Implements fmt.Stringer.
func (s ClaimStage) String() string {
	if str, ok := getClaimStageStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// RequiredStatus returns the status an order must still hold for the claim
// to win.
func (s ClaimStage) RequiredStatus() Status {
	if s == ClaimStagePack {
		return Picked
	}
	return Pending
}

// TargetStatus returns the status a winning claim moves the order into.
func (s ClaimStage) TargetStatus() Status {
	if s == ClaimStagePack {
		return Packing
	}
	return Picking
}

// RequiredRole returns the worker role that may claim this stage.
func (s ClaimStage) RequiredRole() kernel.Role {
	if s == ClaimStagePack {
		return kernel.RolePacker
	}
	return kernel.RolePicker
}
