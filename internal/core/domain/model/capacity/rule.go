package capacity

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrRuleIsNotConstructed is returned when a Rule was not created via
	// NewRule or RestoreRule.
	ErrRuleIsNotConstructed = errors.New("Rule must be created via NewRule or RestoreRule")

	// ErrInvalidRule is returned for malformed capacity configuration,
	// most importantly a zero or negative maximum capacity. Rejecting the
	// rule up front keeps the percentage arithmetic free of division by
	// zero.
	ErrInvalidRule = errs.NewValueIsInvalidError("capacity rule is malformed")
)

// Scope selects which locations a capacity rule applies to.
type Scope int

const (
	// ScopeUnknown is an invalid zero value.
	ScopeUnknown Scope = iota

	// ScopeAll matches every location.
	ScopeAll

	// ScopeZone matches locations in the named zone.
	ScopeZone

	// ScopeType matches locations of the named type.
	ScopeType

	// ScopeLocation matches a single location code.
	ScopeLocation
)

func getScopeStrings() map[Scope]string {
	return map[Scope]string{
		ScopeUnknown:  "UNKNOWN",
		ScopeAll:      "ALL",
		ScopeZone:     "ZONE",
		ScopeType:     "TYPE",
		ScopeLocation: "LOCATION",
	}
}

// ScopeFromString parses the wire representation (e.g. "ZONE").
func ScopeFromString(s string) (Scope, error) {
	for scope, str := range getScopeStrings() {
		if str == s && scope != ScopeUnknown {
			return scope, nil
		}
	}
	return ScopeUnknown, errs.NewValueIsInvalidErrorWithCause("scope", fmt.Errorf("%q is not a valid rule scope", s))
}

// Validate checks that the Scope is one of the defined kinds.
func (s Scope) Validate() error {
	if s < ScopeAll || s > ScopeLocation {
		return errs.NewValueIsInvalidErrorWithCause("scope", fmt.Errorf("%d is not a valid rule scope", s))
	}
	return nil
}

// String returns the wire representation. Implements fmt.Stringer.
func (s Scope) String() string {
	if str, ok := getScopeStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Rule is a capacity constraint applicable to a set of locations.
// Rules are fetched in priority order (lower number wins first) so that a
// location-specific rule can shadow a broader zone rule for the same
// dimension.
type Rule struct {
	id               kernel.UUID
	dimension        Dimension
	scope            Scope
	scopeValue       string
	maxCapacity      float64
	warningThreshold float64
	priority         int

	isConstructed bool
}

// NewRule creates a validated capacity rule.
//
// Parameters:
//   - dimension: the fullness axis this rule constrains
//   - scope + scopeValue: which locations it applies to; scopeValue is
//     required for every scope but ALL
//   - maxCapacity: must be strictly positive (ErrInvalidRule otherwise)
//   - warningThreshold: percent in (0, 100]
//   - priority: fetch order, lower first
func NewRule(
	id kernel.UUID,
	dimension Dimension,
	scope Scope,
	scopeValue string,
	maxCapacity float64,
	warningThreshold float64,
	priority int,
) (*Rule, error) {
	r := &Rule{isConstructed: true}

	if err := errors.Join(
		r.setID(id),
		dimension.Validate(),
		scope.Validate(),
	); err != nil {
		return nil, err
	}
	r.dimension = dimension
	r.scope = scope

	if scope != ScopeAll && scopeValue == "" {
		return nil, errs.NewValueIsRequiredError("scopeValue")
	}
	r.scopeValue = scopeValue

	if maxCapacity <= 0 {
		return nil, ErrInvalidRule
	}
	r.maxCapacity = maxCapacity

	if warningThreshold <= 0 || warningThreshold > 100 {
		return nil, errs.NewValueIsOutOfRangeError("warningThreshold", warningThreshold, 0, 100)
	}
	r.warningThreshold = warningThreshold
	r.priority = priority

	return r, nil
}

// RestoreRule reconstructs a rule from persistence, re-running validation so
// malformed stored configuration is rejected rather than producing
// nonsensical percentages.
func RestoreRule(
	id kernel.UUID,
	dimension Dimension,
	scope Scope,
	scopeValue string,
	maxCapacity float64,
	warningThreshold float64,
	priority int,
) (*Rule, error) {
	return NewRule(id, dimension, scope, scopeValue, maxCapacity, warningThreshold, priority)
}

// Validate ensures the Rule was constructed via NewRule or RestoreRule.
func (r *Rule) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRuleIsNotConstructed
	}
	return nil
}

// ID returns the rule's unique identifier.
func (r *Rule) ID() kernel.UUID {
	return r.id
}

// Dimension returns the constrained fullness axis.
func (r *Rule) Dimension() Dimension {
	return r.dimension
}

// Scope returns the rule's applicability kind.
func (r *Rule) Scope() Scope {
	return r.scope
}

// ScopeValue returns the zone, type, or location code the scope matches.
// Empty for ScopeAll.
func (r *Rule) ScopeValue() string {
	return r.scopeValue
}

// MaxCapacity returns the capacity ceiling, always positive.
func (r *Rule) MaxCapacity() float64 {
	return r.maxCapacity
}

// WarningThreshold returns the WARNING classification boundary in percent.
func (r *Rule) WarningThreshold() float64 {
	return r.warningThreshold
}

// Priority returns the fetch order; lower numbers are evaluated first.
func (r *Rule) Priority() int {
	return r.priority
}

// AppliesTo reports whether the rule constrains the given location.
func (r *Rule) AppliesTo(loc kernel.BinLocation) bool {
	switch r.scope {
	case ScopeAll:
		return true
	case ScopeZone:
		return r.scopeValue == loc.Zone()
	case ScopeType:
		return r.scopeValue == loc.Type()
	case ScopeLocation:
		return r.scopeValue == loc.Code()
	default:
		return false
	}
}

func (r *Rule) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}
