package commands_test

import (
	"errors"
	"testing"

	"workplans/internal/core/application/usecases/commands"
	"workplans/internal/core/domain/model/kernel"
	"workplans/internal/core/domain/model/workplan"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewCreatePlanCommand(t *testing.T) {
	t.Run("should sanitise the owner email", func(t *testing.T) {
		cmd, err := commands.NewCreatePlanCommand(kernel.NewUUID(), "  Owner@Sanger.AC.UK ")

		require.NoError(t, err)
		assert.Equal(t, "owner@sanger.ac.uk", cmd.Owner().String())
	})

	t.Run("should reject an invalid owner email", func(t *testing.T) {
		_, err := commands.NewCreatePlanCommand(kernel.NewUUID(), "not-an-email")

		require.Error(t, err)
	})

	t.Run("should reject a zero plan id", func(t *testing.T) {
		_, err := commands.NewCreatePlanCommand(kernel.UUID{}, "owner@sanger.ac.uk")

		require.Error(t, err)
	})

	t.Run("should reject a zero-value command in Validate", func(t *testing.T) {
		var cmd commands.CreatePlanCommand
		require.ErrorIs(t, cmd.Validate(), commands.ErrCreatePlanCommandIsNotConstructed)
	})
}

func TestCreatePlanCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	planID := kernel.NewUUID()
	cmd, err := commands.NewCreatePlanCommand(planID, "owner@sanger.ac.uk")
	require.NoError(t, err)

	planRepo := new(MockPlanRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PlanRepository").Return(planRepo).Once(),
		planRepo.On("Add", ctx, mock.AnythingOfType("*workplan.WorkPlan")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPlanUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreatePlanCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	addedPlan := planRepo.Calls[0].Arguments[1].(*workplan.WorkPlan)
	assert.True(t, addedPlan.ID().IsEqual(planID))
	assert.Equal(t, workplan.StatusConstruction, addedPlan.Status())
	planRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreatePlanCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	var cmd commands.CreatePlanCommand

	factory := new(MockPlanUoWFactory)
	handler := commands.NewCreatePlanCommandHandler(factory)
	err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrCreatePlanCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestCreatePlanCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreatePlanCommand(kernel.NewUUID(), "owner@sanger.ac.uk")
	require.NoError(t, err)

	planRepo := new(MockPlanRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PlanRepository").Return(planRepo).Once(),
		planRepo.On("Add", ctx, mock.AnythingOfType("*workplan.WorkPlan")).
			Return(errors.New("duplicate key")).
			Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPlanUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreatePlanCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.EqualError(t, err, "duplicate key")
	uow.AssertNotCalled(t, "Commit", ctx)
}
