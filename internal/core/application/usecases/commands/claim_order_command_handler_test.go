package commands_test

import (
	"context"
	"errors"
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) Claim(
	ctx context.Context, orderID, workerID kernel.UUID, stage order.ClaimStage,
) (*order.Order, error) {
	args := m.Called(ctx, orderID, workerID, stage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllClaimable(
	ctx context.Context, stage order.ClaimStage,
) ([]*order.Order, error) {
	args := m.Called(ctx, stage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetRecentForWorker(
	ctx context.Context, workerID kernel.UUID, limit int,
) ([]*order.Order, error) {
	args := m.Called(ctx, workerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, topic string, payload any) error {
	args := m.Called(ctx, topic, payload)
	return args.Error(0)
}

func TestClaimOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	orderID := kernel.NewUUID()
	workerID := kernel.NewUUID()
	cmd, err := commands.NewClaimOrderCommand(orderID, workerID, order.ClaimStagePick, kernel.RolePicker)
	require.NoError(t, err)

	claimed, err := order.NewOrder(orderID, "ORD-20260901-0001", order.PriorityNormal)
	require.NoError(t, err)
	require.NoError(t, claimed.ClaimPicking(workerID))

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Claim", ctx, orderID, workerID, order.ClaimStagePick).Return(claimed, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", ctx, ports.TopicOrderClaimed, mock.Anything).Return(nil).Once()

	handler := commands.NewClaimOrderCommandHandler(factory, publisher)
	got, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, order.Picking, got.Status())
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	publisher.AssertExpectations(t)

	payload := publisher.Calls[0].Arguments[2].(map[string]any)
	assert.Equal(t, "ORD-20260901-0001", payload["orderNumber"])
	assert.Equal(t, workerID.String(), payload["workerId"])
}

func TestClaimOrderCommandHandler_Handle_LostRace(t *testing.T) {
	ctx := t.Context()

	orderID := kernel.NewUUID()
	workerID := kernel.NewUUID()
	cmd, err := commands.NewClaimOrderCommand(orderID, workerID, order.ClaimStagePick, kernel.RolePicker)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Claim", ctx, orderID, workerID, order.ClaimStagePick).
			Return(nil, order.ErrClaimConflict).
			Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)

	handler := commands.NewClaimOrderCommandHandler(factory, publisher)
	got, err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrClaimFailed)
	assert.Nil(t, got)
	uow.AssertNotCalled(t, "Commit", ctx)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestClaimOrderCommandHandler_Handle_RoleMismatch(t *testing.T) {
	ctx := t.Context()

	cmd, err := commands.NewClaimOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(), order.ClaimStagePack, kernel.RolePicker,
	)
	require.NoError(t, err)

	factory := new(MockOrderUoWFactory)
	publisher := new(MockEventPublisher)

	handler := commands.NewClaimOrderCommandHandler(factory, publisher)
	got, err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrRoleNotPermitted)
	assert.Nil(t, got)
	factory.AssertNotCalled(t, "Create")
}

func TestClaimOrderCommandHandler_Handle_SupervisorMayClaimAnyStage(t *testing.T) {
	ctx := t.Context()

	orderID := kernel.NewUUID()
	workerID := kernel.NewUUID()
	cmd, err := commands.NewClaimOrderCommand(orderID, workerID, order.ClaimStagePack, kernel.RoleSupervisor)
	require.NoError(t, err)

	picker := kernel.NewUUID()
	claimed, err := order.NewOrder(orderID, "ORD-20260901-0002", order.PriorityHigh)
	require.NoError(t, err)
	require.NoError(t, claimed.ClaimPicking(picker))
	require.NoError(t, claimed.TransitionTo(order.Picked, kernel.RolePicker))
	require.NoError(t, claimed.ClaimPacking(workerID))

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Claim", ctx, orderID, workerID, order.ClaimStagePack).Return(claimed, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", ctx, ports.TopicOrderClaimed, mock.Anything).Return(nil).Once()

	handler := commands.NewClaimOrderCommandHandler(factory, publisher)
	_, err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	orderRepo.AssertExpectations(t)
}

func TestClaimOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.ClaimOrderCommand{} // not constructed properly

	factory := new(MockOrderUoWFactory)
	publisher := new(MockEventPublisher)

	handler := commands.NewClaimOrderCommandHandler(factory, publisher)
	_, err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrClaimOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestClaimOrderCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()

	orderID := kernel.NewUUID()
	workerID := kernel.NewUUID()
	cmd, err := commands.NewClaimOrderCommand(orderID, workerID, order.ClaimStagePick, kernel.RolePicker)
	require.NoError(t, err)

	claimed, err := order.NewOrder(orderID, "ORD-20260901-0003", order.PriorityNormal)
	require.NoError(t, err)
	require.NoError(t, claimed.ClaimPicking(workerID))

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Claim", ctx, orderID, workerID, order.ClaimStagePick).Return(claimed, nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)

	handler := commands.NewClaimOrderCommandHandler(factory, publisher)
	_, err = handler.Handle(ctx, cmd)

	require.EqualError(t, err, "commit error")
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}
