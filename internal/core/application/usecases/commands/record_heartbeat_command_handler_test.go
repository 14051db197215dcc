package commands_test

import (
	"context"
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/presence"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPresenceRepository struct{ mock.Mock }

func (m *MockPresenceRepository) Upsert(ctx context.Context, record presence.Record) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockPresenceRepository) Get(ctx context.Context, workerID string) (presence.Record, error) {
	args := m.Called(ctx, workerID)
	return args.Get(0).(presence.Record), args.Error(1)
}

func (m *MockPresenceRepository) GetAll(ctx context.Context) ([]presence.Record, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]presence.Record), args.Error(1)
}

type MockPresenceUoW struct{ mock.Mock }

func (m *MockPresenceUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPresenceUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPresenceUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPresenceUoW) PresenceRepository() ports.PresenceRepository {
	args := m.Called()
	return args.Get(0).(ports.PresenceRepository)
}

type MockPresenceUoWFactory struct{ mock.Mock }

func (m *MockPresenceUoWFactory) Create() commands.PresenceUoW {
	args := m.Called()
	return args.Get(0).(commands.PresenceUoW)
}

func TestRecordHeartbeatCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	view := "Picking Order ORD-20260901-0007"
	cmd, err := commands.NewRecordHeartbeatCommand("worker-7", kernel.RolePicker, true, &view)
	require.NoError(t, err)

	presenceRepo := new(MockPresenceRepository)
	uow := new(MockPresenceUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PresenceRepository").Return(presenceRepo).Once(),
		presenceRepo.On("Upsert", ctx, mock.AnythingOfType("presence.Record")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPresenceUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRecordHeartbeatCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	presenceRepo.AssertExpectations(t)
	uow.AssertExpectations(t)

	stored := presenceRepo.Calls[0].Arguments[1].(presence.Record)
	assert.Equal(t, "worker-7", stored.WorkerID())
	assert.Equal(t, kernel.RolePicker, stored.Role())
	assert.True(t, stored.IsActive())
	require.NotNil(t, stored.CurrentView())
	assert.Equal(t, view, *stored.CurrentView())
	assert.NotNil(t, stored.CurrentViewUpdatedAt())
}

func TestRecordHeartbeatCommandHandler_Handle_BareSessionPing(t *testing.T) {
	ctx := t.Context()

	cmd, err := commands.NewRecordHeartbeatCommand("worker-7", kernel.RolePacker, true, nil)
	require.NoError(t, err)

	presenceRepo := new(MockPresenceRepository)
	uow := new(MockPresenceUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PresenceRepository").Return(presenceRepo).Once(),
		presenceRepo.On("Upsert", ctx, mock.AnythingOfType("presence.Record")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPresenceUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRecordHeartbeatCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)

	stored := presenceRepo.Calls[0].Arguments[1].(presence.Record)
	assert.Nil(t, stored.CurrentView())
	assert.Nil(t, stored.CurrentViewUpdatedAt(), "no view means no view timestamp")
}

func TestRecordHeartbeatCommandHandler_Handle_EmptyWorkerID(t *testing.T) {
	_, err := commands.NewRecordHeartbeatCommand("", kernel.RolePicker, true, nil)

	require.Error(t, err)
}

func TestNewRecordHeartbeatCommand_CanonicalizesUUIDWorkerIDs(t *testing.T) {
	t.Run("uppercase uuid is stored in canonical text", func(t *testing.T) {
		cmd, err := commands.NewRecordHeartbeatCommand(
			"  6BA7B810-9DAD-11D1-80B4-00C04FD430C8 ", kernel.RolePicker, true, nil,
		)

		require.NoError(t, err)
		assert.Equal(t, "6ba7b810-9dad-11d1-80b4-00c04fd430c8", cmd.WorkerID(),
			"uuid worker ids must match the text of the order assignee columns")
	})

	t.Run("non-uuid worker id passes through unchanged", func(t *testing.T) {
		cmd, err := commands.NewRecordHeartbeatCommand("Worker-7", kernel.RolePicker, true, nil)

		require.NoError(t, err)
		assert.Equal(t, "Worker-7", cmd.WorkerID())
	})
}

func TestRecordHeartbeatCommandHandler_Handle_UpsertError(t *testing.T) {
	ctx := t.Context()

	cmd, err := commands.NewRecordHeartbeatCommand("worker-7", kernel.RolePicker, false, nil)
	require.NoError(t, err)

	presenceRepo := new(MockPresenceRepository)
	uow := new(MockPresenceUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PresenceRepository").Return(presenceRepo).Once(),
		presenceRepo.On("Upsert", ctx, mock.AnythingOfType("presence.Record")).
			Return(assert.AnError).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPresenceUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRecordHeartbeatCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, assert.AnError)
	uow.AssertNotCalled(t, "Commit", ctx)
}
