package commands

import (
	"context"
	"time"
)

// CancelPlanCommandHandler cancels a plan. Only plans in construction or
// active may be cancelled; the domain rejects everything else.
type CancelPlanCommandHandler struct {
	uowFactory PlanUoWFactory
}

// NewCancelPlanCommandHandler creates a handler for plan cancellation.
func NewCancelPlanCommandHandler(uowFactory PlanUoWFactory) CancelPlanCommandHandler {
	return CancelPlanCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the cancellation command.
// Returns workplan.ErrPlanNotCancellable (via the aggregate) when the plan
// is already closed, broken or cancelled.
func (h *CancelPlanCommandHandler) Handle(ctx context.Context, cmd CancelPlanCommand) error {
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

	if err = plan.Cancel(time.Now().UTC()); err != nil {
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
