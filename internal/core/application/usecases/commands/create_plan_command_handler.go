package commands

import (
	"context"

	"workplans/internal/core/domain/model/workplan"
)

// CreatePlanCommandHandler handles the business logic for plan creation.
// New plans start in construction with no product, project or orders.
//
// Example:
//
//	handler := NewCreatePlanCommandHandler(uowFactory)
//	cmd, _ := NewCreatePlanCommand(kernel.NewUUID(), "user@sanger.ac.uk")
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("plan creation failed: %w", err)
//	}
type CreatePlanCommandHandler struct {
	uowFactory PlanUoWFactory
}

// NewCreatePlanCommandHandler creates a handler for plan creation operations.
// Requires a PlanUoWFactory for transactional persistence.
func NewCreatePlanCommandHandler(uowFactory PlanUoWFactory) CreatePlanCommandHandler {
	return CreatePlanCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the plan creation command.
// Uses a transaction to ensure the plan is properly persisted or rolled back on error.
func (h *CreatePlanCommandHandler) Handle(ctx context.Context, cmd CreatePlanCommand) error {
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
	plan, err := workplan.NewWorkPlan(cmd.PlanID(), cmd.Owner())
	if err != nil {
		return err
	}

	if err = planRepo.Add(ctx, plan); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
