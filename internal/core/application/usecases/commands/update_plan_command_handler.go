package commands

import (
	"context"
	"fmt"

	"workplans/internal/core/domain/model/workorder"
)

// UpdatePlanCommandHandler applies wizard data to a plan under construction.
// Once a plan has been dispatched (or cancelled) its defining fields are
// frozen and updates fail with workorder.ErrInvalidState.
type UpdatePlanCommandHandler struct {
	uowFactory PlanUoWFactory
}

// NewUpdatePlanCommandHandler creates a handler for plan update operations.
// Requires a PlanUoWFactory for transactional persistence.
func NewUpdatePlanCommandHandler(uowFactory PlanUoWFactory) UpdatePlanCommandHandler {
	return UpdatePlanCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the plan update command.
// Loads the plan, rejects updates outside construction, applies the provided
// fields and persists the result in one transaction.
func (h *UpdatePlanCommandHandler) Handle(ctx context.Context, cmd UpdatePlanCommand) error {
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

	if !plan.InConstruction() {
		return fmt.Errorf("%w: plan %s is no longer under construction", workorder.ErrInvalidState, plan.ID())
	}

	if cmd.OriginalSetUUID() != nil {
		if err = plan.SetOriginalSet(*cmd.OriginalSetUUID()); err != nil {
			return err
		}
	}
	if cmd.ProjectID() != nil {
		if err = plan.SetProject(*cmd.ProjectID()); err != nil {
			return err
		}
	}
	if cmd.ProductID() != nil {
		if err = plan.SetProduct(*cmd.ProductID()); err != nil {
			return err
		}
	}
	if cmd.DataReleaseStrategyID() != nil {
		if err = plan.SetDataReleaseStrategy(*cmd.DataReleaseStrategyID()); err != nil {
			return err
		}
	}

	if err = planRepo.Update(ctx, plan); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
