package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClaimOrderCommand(t *testing.T) {
	orderID := kernel.NewUUID()
	workerID := kernel.NewUUID()

	t.Run("should create valid command", func(t *testing.T) {
		cmd, err := commands.NewClaimOrderCommand(orderID, workerID, order.ClaimStagePick, kernel.RolePicker)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.True(t, cmd.OrderID().IsEqual(orderID))
		assert.True(t, cmd.WorkerID().IsEqual(workerID))
		assert.Equal(t, order.ClaimStagePick, cmd.Stage())
		assert.Equal(t, kernel.RolePicker, cmd.Role())
	})

	t.Run("should fail with invalid order id", func(t *testing.T) {
		var invalidID kernel.UUID

		_, err := commands.NewClaimOrderCommand(invalidID, workerID, order.ClaimStagePick, kernel.RolePicker)

		require.Error(t, err)
	})

	t.Run("should fail with unknown stage", func(t *testing.T) {
		_, err := commands.NewClaimOrderCommand(orderID, workerID, order.ClaimStageUnknown, kernel.RolePicker)

		require.Error(t, err)
	})

	t.Run("should fail with unknown role", func(t *testing.T) {
		var invalidRole kernel.Role

		_, err := commands.NewClaimOrderCommand(orderID, workerID, order.ClaimStagePick, invalidRole)

		require.Error(t, err)
	})

	t.Run("empty command should fail validation", func(t *testing.T) {
		cmd := commands.ClaimOrderCommand{}

		require.ErrorIs(t, cmd.Validate(), commands.ErrClaimOrderCommandIsNotConstructed)
	})
}
