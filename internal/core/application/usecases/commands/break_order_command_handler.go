package commands

import (
	"context"
)

// BreakOrderCommandHandler marks an order broken.
type BreakOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewBreakOrderCommandHandler creates a handler for breaking orders.
func NewBreakOrderCommandHandler(uowFactory OrderUoWFactory) BreakOrderCommandHandler {
	return BreakOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the break command.
// Only queued or active orders can break; closed orders stay closed.
func (h *BreakOrderCommandHandler) Handle(ctx context.Context, cmd BreakOrderCommand) error {
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

	if err = ord.Break(); err != nil {
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
