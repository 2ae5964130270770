package commands

import (
	"context"
	"errors"

	"workplans/internal/core/domain/model/kernel"
	"workplans/internal/core/domain/model/workorder"
	"workplans/internal/core/ports"
	"workplans/internal/pkg/errs"
	"workplans/internal/pkg/metrics"
)

// CompleteOrderCommandHandler closes an active order on behalf of the
// execution LIMS and publishes the terminal lifecycle event.
//
// Example:
//
//	handler := NewCompleteOrderCommandHandler(uowFactory, publisher)
//	cmd, _ := NewCompleteOrderCommand(orderID, "completed", &finishedSet, "all passed")
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    // errors.Is(err, workorder.ErrInvalidState) when the order was not active
//	}
type CompleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewCompleteOrderCommandHandler creates a handler for order closure.
func NewCompleteOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the closure command.
// Transitions the order to its terminal status, records the finished set and
// comment, and on completion seeds the next stage's working set from the
// finished set so the follow-up order becomes submittable. Everything persists
// in one transaction and the closed event publishes afterwards. The event is
// emitted only when the transition committed.
func (h *CompleteOrderCommandHandler) Handle(ctx context.Context, cmd CompleteOrderCommand) error {
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

	switch cmd.Status() {
	case workorder.Completed:
		err = ord.Complete()
	case workorder.Cancelled:
		err = ord.Cancel()
	}
	if err != nil {
		return err
	}

	if cmd.FinishedSetUUID() != nil {
		if err = ord.SetFinishedSet(*cmd.FinishedSetUUID()); err != nil {
			return err
		}
	}
	if cmd.Comment() != "" {
		ord.SetComment(cmd.Comment())
	}

	if err = orderRepo.Update(ctx, ord); err != nil {
		return err
	}

	if cmd.Status() == workorder.Completed && cmd.FinishedSetUUID() != nil {
		if err = h.seedNextStage(ctx, orderRepo, ord, *cmd.FinishedSetUUID()); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	event, err := workorder.NewClosedEvent(ord)
	if err != nil {
		return err
	}
	if err = h.publisher.Publish(ctx, event); err != nil {
		return err
	}
	metrics.LifecycleEventsTotal.WithLabelValues(event.Status).Inc()

	return nil
}

// seedNextStage hands the finished set over as the working set of the order at
// the following stage. When the completed order is the last stage of its plan
// there is nothing to seed.
func (h *CompleteOrderCommandHandler) seedNextStage(
	ctx context.Context,
	orderRepo ports.OrderRepository,
	ord *workorder.WorkOrder,
	finishedSet kernel.UUID,
) error {
	next, err := orderRepo.GetByPlanAndStage(ctx, ord.PlanID(), ord.StageIndex()+1)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil
		}
		return err
	}

	if err = next.SetWorkingSet(finishedSet); err != nil {
		return err
	}
	if err = next.SetOriginalSet(finishedSet); err != nil {
		return err
	}

	return orderRepo.Update(ctx, next)
}
