// Package capacity implements storage-location capacity tracking: rules,
// per-(location, dimension) utilization records, and the alerts raised when
// a location crosses its warning or maximum capacity.
//
// Percentages are recomputed in full on every recalculation, so there is no
// incremental accumulation to drift. Rules with a non-positive maximum are
// rejected (ErrInvalidRule) so the arithmetic can never divide by zero.
package capacity
