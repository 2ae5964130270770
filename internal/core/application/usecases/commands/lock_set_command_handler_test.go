package commands_test

import (
	"errors"
	"testing"

	"workplans/internal/core/application/usecases/commands"
	"workplans/internal/core/domain/model/kernel"
	"workplans/internal/core/domain/model/remote"
	"workplans/internal/core/domain/model/workplan"
	"workplans/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLockSetCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	owner, _ := kernel.NewEmail("owner@sanger.ac.uk")
	plan, err := workplan.NewWorkPlan(kernel.NewUUID(), owner)
	require.NoError(t, err)
	originalSet := kernel.NewUUID()
	require.NoError(t, plan.SetOriginalSet(originalSet))

	lockedSet := &remote.Set{UUID: kernel.NewUUID(), Name: plan.Name(), Locked: true}
	cmd, err := commands.NewLockSetCommand(plan.ID())
	require.NoError(t, err)

	planRepo := new(MockPlanRepository)
	setGateway := new(MockSetGateway)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PlanRepository").Return(planRepo).Once(),
		planRepo.On("Get", ctx, plan.ID()).Return(plan, nil).Once(),
		setGateway.On("CreateLockedClone", ctx, originalSet, plan.Name()).Return(lockedSet, nil).Once(),
		planRepo.On("Update", ctx, mock.AnythingOfType("*workplan.WorkPlan")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPlanUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewLockSetCommandHandler(factory, setGateway)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, plan.LockedSet())
	assert.True(t, plan.LockedSet().IsEqual(lockedSet.UUID))
	setGateway.AssertExpectations(t)
}

func TestLockSetCommandHandler_Handle_AlreadyLockedIsNoOp(t *testing.T) {
	ctx := t.Context()
	owner, _ := kernel.NewEmail("owner@sanger.ac.uk")
	plan, err := workplan.NewWorkPlan(kernel.NewUUID(), owner)
	require.NoError(t, err)
	require.NoError(t, plan.SetOriginalSet(kernel.NewUUID()))
	existing := kernel.NewUUID()
	require.NoError(t, plan.SetLockedSet(existing))

	cmd, err := commands.NewLockSetCommand(plan.ID())
	require.NoError(t, err)

	planRepo := new(MockPlanRepository)
	setGateway := new(MockSetGateway)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PlanRepository").Return(planRepo).Once(),
		planRepo.On("Get", ctx, plan.ID()).Return(plan, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPlanUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewLockSetCommandHandler(factory, setGateway)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, plan.LockedSet().IsEqual(existing))
	setGateway.AssertNotCalled(t, "CreateLockedClone", mock.Anything, mock.Anything, mock.Anything)
}

func TestLockSetCommandHandler_Handle_NoOriginalSet(t *testing.T) {
	ctx := t.Context()
	owner, _ := kernel.NewEmail("owner@sanger.ac.uk")
	plan, err := workplan.NewWorkPlan(kernel.NewUUID(), owner)
	require.NoError(t, err)

	cmd, err := commands.NewLockSetCommand(plan.ID())
	require.NoError(t, err)

	planRepo := new(MockPlanRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PlanRepository").Return(planRepo).Once(),
		planRepo.On("Get", ctx, plan.ID()).Return(plan, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPlanUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewLockSetCommandHandler(factory, new(MockSetGateway))
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestLockSetCommandHandler_Handle_GatewayError(t *testing.T) {
	ctx := t.Context()
	owner, _ := kernel.NewEmail("owner@sanger.ac.uk")
	plan, err := workplan.NewWorkPlan(kernel.NewUUID(), owner)
	require.NoError(t, err)
	originalSet := kernel.NewUUID()
	require.NoError(t, plan.SetOriginalSet(originalSet))

	cmd, err := commands.NewLockSetCommand(plan.ID())
	require.NoError(t, err)

	planRepo := new(MockPlanRepository)
	setGateway := new(MockSetGateway)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PlanRepository").Return(planRepo).Once(),
		planRepo.On("Get", ctx, plan.ID()).Return(plan, nil).Once(),
		setGateway.On("CreateLockedClone", ctx, originalSet, plan.Name()).
			Return(nil, errors.New("set service unavailable")).
			Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPlanUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewLockSetCommandHandler(factory, setGateway)
	err = handler.Handle(ctx, cmd)

	require.EqualError(t, err, "set service unavailable")
	assert.Nil(t, plan.LockedSet())
}
