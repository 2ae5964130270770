package commands

import (
	"context"
)

// RepairOrderCommandHandler returns a broken order to a working state.
type RepairOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewRepairOrderCommandHandler creates a handler for repairing orders.
func NewRepairOrderCommandHandler(uowFactory OrderUoWFactory) RepairOrderCommandHandler {
	return RepairOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the repair command.
// Only broken orders can be repaired, and only to queued or active.
func (h *RepairOrderCommandHandler) Handle(ctx context.Context, cmd RepairOrderCommand) error {
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

	orderRepo := uow.OrderRepository()
	ord, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = ord.Repair(cmd.Target()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, ord); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
