package commands_test

import (
	"testing"

	"workplans/internal/core/application/usecases/commands"
	"workplans/internal/core/domain/model/workorder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewRepairOrderCommand(t *testing.T) {
	t.Run("should accept queued and active targets", func(t *testing.T) {
		for _, target := range []string{"queued", "active"} {
			_, err := commands.NewRepairOrderCommand(queuedOrder(t).ID(), target)
			require.NoError(t, err)
		}
	})

	t.Run("should reject terminal and unknown targets", func(t *testing.T) {
		for _, target := range []string{"completed", "cancelled", "broken", ""} {
			_, err := commands.NewRepairOrderCommand(queuedOrder(t).ID(), target)
			require.ErrorIs(t, err, workorder.ErrInvalidState, target)
		}
	})
}

func TestRepairOrderCommandHandler_Handle(t *testing.T) {
	t.Run("should repair a broken order back to queued", func(t *testing.T) {
		ctx := t.Context()
		ord := queuedOrder(t)
		require.NoError(t, ord.Break())

		cmd, err := commands.NewRepairOrderCommand(ord.ID(), "queued")
		require.NoError(t, err)

		orderRepo := new(MockOrderRepository)
		uow := new(MockUoW)

		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("OrderRepository").Return(orderRepo).Once(),
			orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once(),
			orderRepo.On("Update", ctx, mock.AnythingOfType("*workorder.WorkOrder")).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		factory := new(MockOrderUoWFactory)
		factory.On("Create").Return(uow).Once()

		handler := commands.NewRepairOrderCommandHandler(factory)
		err = handler.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, workorder.Queued, ord.Status())
	})

	t.Run("should refuse to repair an order that is not broken", func(t *testing.T) {
		ctx := t.Context()
		ord := activeOrder(t)

		cmd, err := commands.NewRepairOrderCommand(ord.ID(), "queued")
		require.NoError(t, err)

		orderRepo := new(MockOrderRepository)
		uow := new(MockUoW)

		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("OrderRepository").Return(orderRepo).Once(),
			orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		factory := new(MockOrderUoWFactory)
		factory.On("Create").Return(uow).Once()

		handler := commands.NewRepairOrderCommandHandler(factory)
		err = handler.Handle(ctx, cmd)

		require.ErrorIs(t, err, workorder.ErrInvalidState)
		assert.Equal(t, workorder.Active, ord.Status())
		orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}
