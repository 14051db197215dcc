package kernel

import (
	"strings"

	"fulfillment/internal/pkg/errs"
)

// ErrBinLocationIsNotConstructed indicates a BinLocation was not created via
// NewBinLocation.
var ErrBinLocationIsNotConstructed = errs.NewValueIsRequiredError("BinLocation must be created via NewBinLocation")

// BinLocation identifies a physical storage location in the warehouse.
// Codes follow the "zone-aisle-shelf" convention (e.g. "A-01-01"); the zone
// is the segment before the first dash unless given explicitly.
//
// BinLocation is immutable. Capacity rules match against its code, zone, or
// location type.
type BinLocation struct {
	code    string
	zone    string
	locType string

	isConstructed bool
}

// NewBinLocation creates a validated BinLocation. The code is required; zone
// defaults to the code's first dash-separated segment, locType may be empty.
func NewBinLocation(code, zone, locType string) (BinLocation, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return BinLocation{}, errs.NewValueIsRequiredError("code")
	}

	if zone == "" {
		if i := strings.Index(code, "-"); i > 0 {
			zone = code[:i]
		}
	}

	return BinLocation{
		code:          code,
		zone:          zone,
		locType:       locType,
		isConstructed: true,
	}, nil
}

// Code returns the full location code, e.g. "A-01-01".
func (l BinLocation) Code() string {
	return l.code
}

// Zone returns the warehouse zone this location belongs to.
func (l BinLocation) Zone() string {
	return l.zone
}

// Type returns the location type, e.g. "SHELF" or "FLOOR". May be empty.
func (l BinLocation) Type() string {
	return l.locType
}

// IsEqual reports whether two locations share the same code.
func (l BinLocation) IsEqual(other BinLocation) bool {
	return l.code == other.code
}

// Validate returns ErrBinLocationIsNotConstructed for zero-value locations.
func (l BinLocation) Validate() error {
	if !l.isConstructed {
		return ErrBinLocationIsNotConstructed
	}
	return nil
}
