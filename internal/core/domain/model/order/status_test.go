package order_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allStatuses() []order.Status {
	return []order.Status{
		order.Pending, order.Picking, order.Picked, order.Packing,
		order.Packed, order.Shipped, order.Cancelled, order.OnHold,
	}
}

// allowedTransitions is the full edge list of the lifecycle machine. Every
// (from, to) pair not listed here must be rejected.
var allowedTransitions = map[order.Status][]order.Status{
	order.Pending:   {order.Picking, order.OnHold, order.Cancelled},
	order.Picking:   {order.Picked, order.OnHold, order.Cancelled},
	order.Picked:    {order.Packing, order.OnHold, order.Cancelled},
	order.Packing:   {order.Packed, order.OnHold, order.Cancelled},
	order.Packed:    {order.Shipped, order.Cancelled},
	order.Shipped:   {},
	order.Cancelled: {},
	order.OnHold:    {order.Pending, order.Picked, order.Cancelled},
}

func isAllowed(from, to order.Status) bool {
	for _, succ := range allowedTransitions[from] {
		if succ == to {
			return true
		}
	}
	return false
}

func TestStatus_TransitionTo_FullPairTable(t *testing.T) {
	for _, from := range allStatuses() {
		for _, to := range allStatuses() {
			t.Run(from.String()+"_to_"+to.String(), func(t *testing.T) {
				next, err := from.TransitionTo(to)

				if isAllowed(from, to) {
					require.NoError(t, err)
					assert.Equal(t, to, next)
					return
				}

				require.Error(t, err)
				if from.IsTerminal() {
					assert.ErrorIs(t, err, order.ErrAlreadyTerminal)
				} else {
					assert.ErrorIs(t, err, order.ErrInvalidTransition)
				}
			})
		}
	}
}

func TestStatus_SelfTransitionIsRejected(t *testing.T) {
	for _, s := range allStatuses() {
		_, err := s.TransitionTo(s)
		require.Error(t, err, s.String())
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.Shipped.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())

	for _, s := range []order.Status{
		order.Pending, order.Picking, order.Picked, order.Packing, order.Packed, order.OnHold,
	} {
		assert.False(t, s.IsTerminal(), s.String())
	}
}

func TestStatus_Progress(t *testing.T) {
	tests := []struct {
		status   order.Status
		expected int
	}{
		{order.Pending, 0},
		{order.Picking, 25},
		{order.Picked, 50},
		{order.Packing, 75},
		{order.Packed, 90},
		{order.Shipped, 100},
		{order.OnHold, 0},
		{order.Cancelled, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.status.Progress(), tt.status.String())
	}
}

func TestStatusFromString(t *testing.T) {
	t.Run("should parse every wire string", func(t *testing.T) {
		for _, s := range allStatuses() {
			parsed, err := order.StatusFromString(s.String())
			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("should reject unknown strings", func(t *testing.T) {
		_, err := order.StatusFromString("DELIVERED")
		require.Error(t, err)

		_, err = order.StatusFromString("pending")
		require.Error(t, err)

		_, err = order.StatusFromString("UNKNOWN")
		require.Error(t, err)
	})
}

func TestStatus_ReleasesAssignees(t *testing.T) {
	t.Run("holding an in-pick order releases the picker", func(t *testing.T) {
		assert.True(t, order.Picking.ReleasesPicker(order.OnHold))
	})

	t.Run("holding an in-pack order releases the packer", func(t *testing.T) {
		assert.True(t, order.Packing.ReleasesPacker(order.OnHold))
	})

	t.Run("normal progress keeps the assignee", func(t *testing.T) {
		assert.False(t, order.Picking.ReleasesPicker(order.Picked))
		assert.False(t, order.Packing.ReleasesPacker(order.Packed))
	})
}
