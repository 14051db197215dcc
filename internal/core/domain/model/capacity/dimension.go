package capacity

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Dimension is an independent axis of fullness for a storage location.
// Each dimension is tracked and alerted separately; a location can be fine
// on quantity while exceeded on weight.
type Dimension int

const (
	// DimensionUnknown is an invalid zero value.
	DimensionUnknown Dimension = iota

	DimensionQuantity
	DimensionWeight
	DimensionVolume
)

func getDimensionStrings() map[Dimension]string {
	return map[Dimension]string{
		DimensionUnknown:  "UNKNOWN",
		DimensionQuantity: "QUANTITY",
		DimensionWeight:   "WEIGHT",
		DimensionVolume:   "VOLUME",
	}
}

// DimensionFromString parses the wire representation (e.g. "QUANTITY").
func DimensionFromString(s string) (Dimension, error) {
	for d, str := range getDimensionStrings() {
		if str == s && d != DimensionUnknown {
			return d, nil
		}
	}
	return DimensionUnknown, errs.NewValueIsInvalidErrorWithCause("dimension", fmt.Errorf("%q is not a valid capacity dimension", s))
}

// Validate checks that the Dimension is one of the defined axes.
func (d Dimension) Validate() error {
	if d < DimensionQuantity || d > DimensionVolume {
		return errs.NewValueIsInvalidErrorWithCause("dimension", fmt.Errorf("%d is not a valid capacity dimension", d))
	}
	return nil
}

// String returns the wire representation. Implements fmt.Stringer.
func (d Dimension) String() string {
	if str, ok := getDimensionStrings()[d]; ok {
		return str
	}
	return "UNKNOWN"
}
