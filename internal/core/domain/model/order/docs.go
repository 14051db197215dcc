// Package order implements the fulfillment order aggregate and its status
// state machine.
//
// The state machine is pure and total: every (status, requested status) pair
// either appears in the explicit successor allow-list or is rejected with
// ErrInvalidTransition (ErrAlreadyTerminal for closed orders), leaving the
// aggregate untouched. Persistence never happens here; contested claims are
// settled by the store's conditional update in the repository layer.
package order
