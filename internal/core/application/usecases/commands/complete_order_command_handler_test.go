package commands_test

import (
	"testing"

	"workplans/internal/core/application/usecases/commands"
	"workplans/internal/core/domain/model/kernel"
	"workplans/internal/core/domain/model/workorder"
	"workplans/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewCompleteOrderCommand(t *testing.T) {
	t.Run("should accept completed and cancelled", func(t *testing.T) {
		for _, status := range []string{"completed", "cancelled"} {
			_, err := commands.NewCompleteOrderCommand(kernel.NewUUID(), status, nil, "")
			require.NoError(t, err)
		}
	})

	t.Run("should reject any other status", func(t *testing.T) {
		for _, status := range []string{"active", "broken", "queued", "done", ""} {
			_, err := commands.NewCompleteOrderCommand(kernel.NewUUID(), status, nil, "")
			require.ErrorIs(t, err, workorder.ErrInvalidState, status)
		}
	})
}

func TestCompleteOrderCommandHandler_Handle_Completed(t *testing.T) {
	ctx := t.Context()
	ord := activeOrder(t)
	finishedSet := kernel.NewUUID()
	cmd, err := commands.NewCompleteOrderCommand(ord.ID(), "completed", &finishedSet, "all passed")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	publisher := new(MockEventPublisher)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*workorder.WorkOrder")).Return(nil).Once(),
		orderRepo.On("GetByPlanAndStage", ctx, ord.PlanID(), ord.StageIndex()+1).
			Return(nil, errs.NewObjectNotFoundError("work order", ord.PlanID().String())).
			Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		publisher.On("Publish", ctx, mock.AnythingOfType("workorder.Event")).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCompleteOrderCommandHandler(factory, publisher)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, workorder.Completed, ord.Status())
	require.NotNil(t, ord.FinishedSet())
	assert.True(t, ord.FinishedSet().IsEqual(finishedSet))
	assert.Equal(t, "all passed", ord.Comment())

	event := publisher.Calls[0].Arguments[1].(workorder.Event)
	assert.Equal(t, "completed", event.Status)
	publisher.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}

func TestCompleteOrderCommandHandler_Handle_Cancelled(t *testing.T) {
	ctx := t.Context()
	ord := activeOrder(t)
	cmd, err := commands.NewCompleteOrderCommand(ord.ID(), "cancelled", nil, "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	publisher := new(MockEventPublisher)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*workorder.WorkOrder")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		publisher.On("Publish", ctx, mock.AnythingOfType("workorder.Event")).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCompleteOrderCommandHandler(factory, publisher)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, workorder.Cancelled, ord.Status())
	event := publisher.Calls[0].Arguments[1].(workorder.Event)
	assert.Equal(t, "cancelled", event.Status)
}

func TestCompleteOrderCommandHandler_Handle_CompletedSeedsNextStage(t *testing.T) {
	ctx := t.Context()
	ord := activeOrder(t)
	next, err := workorder.NewWorkOrder(kernel.NewUUID(), ord.PlanID(), ord.StageIndex()+1, kernel.NewUUID(), "Library Prep")
	require.NoError(t, err)
	finishedSet := kernel.NewUUID()
	cmd, err := commands.NewCompleteOrderCommand(ord.ID(), "completed", &finishedSet, "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	publisher := new(MockEventPublisher)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once(),
		orderRepo.On("Update", ctx, ord).Return(nil).Once(),
		orderRepo.On("GetByPlanAndStage", ctx, ord.PlanID(), ord.StageIndex()+1).Return(next, nil).Once(),
		orderRepo.On("Update", ctx, next).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		publisher.On("Publish", ctx, mock.AnythingOfType("workorder.Event")).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCompleteOrderCommandHandler(factory, publisher)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, next.WorkingSet())
	assert.True(t, next.WorkingSet().IsEqual(finishedSet))
	require.NotNil(t, next.OriginalSet())
	assert.True(t, next.OriginalSet().IsEqual(finishedSet))
	assert.Equal(t, workorder.Queued, next.Status())
	orderRepo.AssertExpectations(t)
}

func TestCompleteOrderCommandHandler_Handle_NotActive(t *testing.T) {
	ctx := t.Context()
	ord := queuedOrder(t)
	cmd, err := commands.NewCompleteOrderCommand(ord.ID(), "completed", nil, "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	publisher := new(MockEventPublisher)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCompleteOrderCommandHandler(factory, publisher)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, workorder.ErrInvalidState)
	assert.Equal(t, workorder.Queued, ord.Status())
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", ctx)
}
