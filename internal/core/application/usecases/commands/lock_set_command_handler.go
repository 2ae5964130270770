package commands

import (
	"context"

	"workplans/internal/core/ports"
	"workplans/internal/pkg/errs"
)

// LockSetCommandHandler creates the locked clone of a plan's original set
// through the set gateway and records the resulting set uuid on the plan.
// Locking an already locked plan is a no-op, which makes the wizard's
// retry-on-refresh behavior safe.
type LockSetCommandHandler struct {
	uowFactory PlanUoWFactory
	setGateway ports.SetGateway
}

// NewLockSetCommandHandler creates a handler for set locking operations.
func NewLockSetCommandHandler(uowFactory PlanUoWFactory, setGateway ports.SetGateway) LockSetCommandHandler {
	return LockSetCommandHandler{
		uowFactory: uowFactory,
		setGateway: setGateway,
	}
}

// Handle processes the lock command.
// The clone is created before the transaction opens; a crash between clone
// and commit leaves an orphaned locked set behind, which is harmless.
func (h *LockSetCommandHandler) Handle(ctx context.Context, cmd LockSetCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	planRepo := uow.PlanRepository()
	plan, err := planRepo.Get(ctx, cmd.PlanID())
	if err != nil {
		return err
	}

	if plan.LockedSet() != nil {
		return nil
	}
	if plan.OriginalSet() == nil {
		return errs.NewValueIsRequiredError("plan original set")
	}

	locked, err := h.setGateway.CreateLockedClone(ctx, *plan.OriginalSet(), plan.Name())
	if err != nil {
		return err
	}

	if err = plan.SetLockedSet(locked.UUID); err != nil {
		return err
	}

	if err = planRepo.Update(ctx, plan); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
