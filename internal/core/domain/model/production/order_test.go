package production_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/production"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrder(t *testing.T) {
	t.Run("should create valid order in DRAFT status", func(t *testing.T) {
		o, err := production.NewOrder(kernel.NewUUID(), "PRD-20260901-0001")

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, production.Draft, o.Status())
		assert.Nil(t, o.Assignee())
	})

	t.Run("should fail with empty number", func(t *testing.T) {
		o, err := production.NewOrder(kernel.NewUUID(), "")

		require.Error(t, err)
		assert.Nil(t, o)
	})
}

func TestOrder_Claim(t *testing.T) {
	t.Run("should claim a RELEASED order", func(t *testing.T) {
		o := newReleasedOrder(t)
		operator := kernel.NewUUID()

		require.NoError(t, o.Claim(operator))

		assert.Equal(t, production.InProgress, o.Status())
		require.NotNil(t, o.Assignee())
		assert.True(t, o.Assignee().IsEqual(operator))
	})

	t.Run("should reject a second claim", func(t *testing.T) {
		o := newReleasedOrder(t)
		first := kernel.NewUUID()
		require.NoError(t, o.Claim(first))

		err := o.Claim(kernel.NewUUID())

		require.ErrorIs(t, err, production.ErrAssigneeAlreadySet)
		assert.True(t, o.Assignee().IsEqual(first))
	})

	t.Run("should reject claiming a DRAFT order", func(t *testing.T) {
		o, err := production.NewOrder(kernel.NewUUID(), "PRD-20260901-0002")
		require.NoError(t, err)

		require.ErrorIs(t, o.Claim(kernel.NewUUID()), production.ErrInvalidTransition)
	})
}

func TestOrder_TransitionTo(t *testing.T) {
	t.Run("operator completes an in-progress order", func(t *testing.T) {
		o := newReleasedOrder(t)
		require.NoError(t, o.Claim(kernel.NewUUID()))

		require.NoError(t, o.TransitionTo(production.Completed, kernel.RolePicker))

		assert.Equal(t, production.Completed, o.Status())
		assert.NotNil(t, o.Assignee())
	})

	t.Run("in-progress is not reachable by transition", func(t *testing.T) {
		o := newReleasedOrder(t)

		err := o.TransitionTo(production.InProgress, kernel.RoleSupervisor)

		require.ErrorIs(t, err, production.ErrClaimRequired)
		assert.Equal(t, production.Released, o.Status())
		assert.Nil(t, o.Assignee(), "only a claim may set the operator")
	})

	t.Run("planning stages are supervisor-only", func(t *testing.T) {
		o, err := production.NewOrder(kernel.NewUUID(), "PRD-20260901-0003")
		require.NoError(t, err)

		require.ErrorIs(t,
			o.TransitionTo(production.Planned, kernel.RolePicker),
			production.ErrRoleNotPermitted)

		require.NoError(t, o.TransitionTo(production.Planned, kernel.RoleSupervisor))
	})

	t.Run("hold is supervisor-only and keeps the assignee", func(t *testing.T) {
		o := newReleasedOrder(t)
		require.NoError(t, o.Claim(kernel.NewUUID()))

		require.ErrorIs(t,
			o.TransitionTo(production.OnHold, kernel.RolePicker),
			production.ErrRoleNotPermitted)

		require.NoError(t, o.TransitionTo(production.OnHold, kernel.RoleSupervisor))
		assert.NotNil(t, o.Assignee())
	})

	t.Run("resume re-opens the claim pool", func(t *testing.T) {
		o := newReleasedOrder(t)
		require.NoError(t, o.Claim(kernel.NewUUID()))
		require.NoError(t, o.TransitionTo(production.OnHold, kernel.RoleSupervisor))

		require.NoError(t, o.TransitionTo(production.Released, kernel.RoleSupervisor))

		assert.Equal(t, production.Released, o.Status())
		assert.Nil(t, o.Assignee())
	})

	t.Run("cancellation clears the assignee", func(t *testing.T) {
		o := newReleasedOrder(t)
		require.NoError(t, o.Claim(kernel.NewUUID()))

		require.ErrorIs(t,
			o.TransitionTo(production.Cancelled, kernel.RolePacker),
			production.ErrRoleNotPermitted)

		require.NoError(t, o.TransitionTo(production.Cancelled, kernel.RoleSupervisor))
		assert.Nil(t, o.Assignee())
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("should reject IN_PROGRESS without an assignee", func(t *testing.T) {
		_, err := production.RestoreOrder(
			kernel.NewUUID(), "PRD-20260901-0004", production.InProgress, nil, time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		)

		require.Error(t, err)
	})

	t.Run("should restore a consistent row", func(t *testing.T) {
		operator := kernel.NewUUID()

		o, err := production.RestoreOrder(
			kernel.NewUUID(), "PRD-20260901-0004", production.InProgress, &operator, time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		)

		require.NoError(t, err)
		assert.Equal(t, production.InProgress, o.Status())
	})
}

func newReleasedOrder(t *testing.T) *production.Order {
	t.Helper()
	o, err := production.NewOrder(kernel.NewUUID(), "PRD-20260901-0100")
	require.NoError(t, err)
	require.NoError(t, o.TransitionTo(production.Planned, kernel.RoleSupervisor))
	require.NoError(t, o.TransitionTo(production.Released, kernel.RoleSupervisor))
	return o
}
