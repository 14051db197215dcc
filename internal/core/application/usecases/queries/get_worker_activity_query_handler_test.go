package queries_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/presence"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetWorkerActivityQueryHandler_Handle_PickerWithOrderContext(t *testing.T) {
	ctx := t.Context()

	workerID := kernel.NewUUID()
	view := "Picking Order ORD-20260901-0040"
	record := presenceRecord(t, workerID.String(), kernel.RolePicker, true, &view)

	picking, err := order.RestoreOrder(
		kernel.NewUUID(), "ORD-20260901-0040", order.Picking, order.PriorityNormal, &workerID, nil,
		time.Date(2026, 9, 1, 9, 30, 0, 0, time.UTC),
	)
	require.NoError(t, err)

	presenceRepo := new(MockPresenceRepository)
	presenceRepo.On("GetAll", ctx).Return([]presence.Record{record}, nil).Once()

	orderRepo := new(MockOrderRepository)
	orderRepo.On("GetRecentForWorker", ctx, workerID, 10).
		Return([]*order.Order{picking}, nil).Once()

	handler := queries.NewGetWorkerActivityQueryHandler(presenceRepo, orderRepo)

	activities, err := handler.Handle(ctx, queries.NewGetWorkerActivityQuery())
	require.NoError(t, err)

	require.Len(t, activities, 1)
	assert.Equal(t, workerID.String(), activities[0].WorkerID)
	assert.Equal(t, presence.StatusPicking, activities[0].Status)
	assert.Equal(t, "ORD-20260901-0040", activities[0].OrderNumber)
	require.NotNil(t, activities[0].Progress)
	assert.Equal(t, 25, *activities[0].Progress)
	presenceRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}

func TestGetWorkerActivityQueryHandler_Handle_NonUUIDWorkerSkipsOrderLookup(t *testing.T) {
	ctx := t.Context()

	view := "Picking Order ORD-20260901-0041"
	record := presenceRecord(t, "badge-0042", kernel.RolePicker, true, &view)

	presenceRepo := new(MockPresenceRepository)
	presenceRepo.On("GetAll", ctx).Return([]presence.Record{record}, nil).Once()

	orderRepo := new(MockOrderRepository)

	handler := queries.NewGetWorkerActivityQueryHandler(presenceRepo, orderRepo)

	activities, err := handler.Handle(ctx, queries.NewGetWorkerActivityQuery())
	require.NoError(t, err)

	require.Len(t, activities, 1)
	assert.Equal(t, presence.StatusPicking, activities[0].Status)
	assert.Equal(t, "ORD-20260901-0041", activities[0].OrderNumber)
	assert.Nil(t, activities[0].Progress, "no assignee match means no progress guess")
	orderRepo.AssertNotCalled(t, "GetRecentForWorker")
}

func TestGetWorkerActivityQueryHandler_Handle_IdleWorkerNeedsNoOrders(t *testing.T) {
	ctx := t.Context()

	record := presenceRecord(t, kernel.NewUUID().String(), kernel.RolePacker, true, nil)

	presenceRepo := new(MockPresenceRepository)
	presenceRepo.On("GetAll", ctx).Return([]presence.Record{record}, nil).Once()

	orderRepo := new(MockOrderRepository)

	handler := queries.NewGetWorkerActivityQueryHandler(presenceRepo, orderRepo)

	activities, err := handler.Handle(ctx, queries.NewGetWorkerActivityQuery())
	require.NoError(t, err)

	require.Len(t, activities, 1)
	assert.Equal(t, presence.StatusIdle, activities[0].Status)
	orderRepo.AssertNotCalled(t, "GetRecentForWorker")
}

func presenceRecord(
	t *testing.T, workerID string, role kernel.Role, active bool, view *string,
) presence.Record {
	t.Helper()

	var viewAt *time.Time
	if view != nil {
		at := time.Date(2026, 9, 1, 9, 45, 0, 0, time.UTC)
		viewAt = &at
	}

	record, err := presence.NewRecord(workerID, role, active, view, viewAt)
	require.NoError(t, err)
	return record
}
