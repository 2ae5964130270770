package commands

import (
	"context"
	"errors"

	"workplans/internal/core/domain/model/kernel"
	"workplans/internal/pkg/errs"
)

// ErrNoOrderReady is returned when no queued order currently qualifies for
// submission. The background job treats it as a normal idle tick.
var ErrNoOrderReady = errors.New("no order ready for submission")

// OrderSubmitter runs the submission flow for one order.
// SubmitOrderCommandHandler implements it.
type OrderSubmitter interface {
	Handle(ctx context.Context, cmd SubmitOrderCommand) error
}

// SubmitNextOrderCommandHandler drives the submission queue: it picks the
// oldest order that is ready and hands it to the submit flow. One order per
// invocation; the cron job provides the cadence.
//
// Example:
//
//	handler := NewSubmitNextOrderCommandHandler(uowFactory, &submitHandler)
//	err := handler.Handle(ctx, NewSubmitNextOrderCommand())
//	if errors.Is(err, ErrNoOrderReady) {
//	    // nothing to do this tick
//	}
type SubmitNextOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	submitter  OrderSubmitter
}

// NewSubmitNextOrderCommandHandler creates a handler for the submission queue.
func NewSubmitNextOrderCommandHandler(
	uowFactory OrderUoWFactory,
	submitter OrderSubmitter,
) SubmitNextOrderCommandHandler {
	return SubmitNextOrderCommandHandler{
		uowFactory: uowFactory,
		submitter:  submitter,
	}
}

// Handle finds the first ready order and submits it.
// The lookup runs in its own short transaction; the submit flow manages its
// own transaction around the state change.
func (h *SubmitNextOrderCommandHandler) Handle(ctx context.Context, cmd SubmitNextOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	orderID, err := h.nextReadyOrderID(ctx)
	if err != nil {
		return err
	}

	submitCmd, err := NewSubmitOrderCommand(orderID)
	if err != nil {
		return err
	}

	return h.submitter.Handle(ctx, submitCmd)
}

func (h *SubmitNextOrderCommandHandler) nextReadyOrderID(ctx context.Context) (kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ord, err := uow.OrderRepository().GetFirstReadyForSubmission(ctx)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return kernel.UUID{}, ErrNoOrderReady
	}
	if err != nil {
		return kernel.UUID{}, err
	}

	return ord.ID(), nil
}
