package commands

import (
	"context"
	"errors"
	"fmt"

	"workplans/internal/core/domain/model/workorder"
	"workplans/internal/core/domain/services"
	"workplans/internal/core/ports"
	"workplans/internal/pkg/errs"
	"workplans/internal/pkg/metrics"
)

var (
	// ErrDispatchFailed wraps any failure during order dispatch. The
	// transaction is rolled back, so the plan is left exactly as it was and
	// the command may be retried after correcting the input.
	ErrDispatchFailed = errors.New("order dispatch failed")

	// ErrSetNotLocked is returned when dispatch is attempted before the
	// plan's original set was locked.
	ErrSetNotLocked = errors.New("plan set is not locked")
)

// DispatchOrdersCommandHandler orchestrates order dispatch: it loads the plan
// and its product definition, runs the OrderDispatcher domain service and
// persists the created orders with the plan inside a single transaction.
//
// Example:
//
//	handler := NewDispatchOrdersCommandHandler(uowFactory, catalogueRepo)
//	orders, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, services.ErrInvalidProcessOptions):
//	    // selections don't fit the product, nothing persisted
//	case err != nil:
//	    // infrastructure failure, nothing persisted
//	}
type DispatchOrdersCommandHandler struct {
	uowFactory    PlanUoWFactory
	catalogueRepo ports.CatalogueRepository
}

// NewDispatchOrdersCommandHandler creates a handler for order dispatch.
// Requires a PlanUoWFactory for the transaction and the catalogue repository
// for product definitions.
func NewDispatchOrdersCommandHandler(
	uowFactory PlanUoWFactory,
	catalogueRepo ports.CatalogueRepository,
) DispatchOrdersCommandHandler {
	return DispatchOrdersCommandHandler{
		uowFactory:    uowFactory,
		catalogueRepo: catalogueRepo,
	}
}

// Handle processes the dispatch command and returns the plan's orders.
// Repeat dispatch of an already dispatched plan is an idempotent no-op
// returning the existing orders. Domain validation errors pass through
// unwrapped so callers can match them; infrastructure failures are wrapped
// in ErrDispatchFailed.
func (h *DispatchOrdersCommandHandler) Handle(
	ctx context.Context,
	cmd DispatchOrdersCommand,
) ([]*workorder.WorkOrder, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	planRepo := uow.PlanRepository()
	plan, err := planRepo.Get(ctx, cmd.PlanID())
	if err != nil {
		return nil, err
	}

	if plan.HasOrders() {
		metrics.DispatchesTotal.WithLabelValues(metrics.OutcomeOK).Inc()
		return plan.Orders(), nil
	}

	if plan.ProductID() == nil {
		return nil, services.ErrNoProductSelected
	}
	if plan.LockedSet() == nil {
		return nil, ErrSetNotLocked
	}

	product, err := h.catalogueRepo.GetProduct(ctx, *plan.ProductID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, services.ErrNoProductSelected
	}
	if err != nil {
		return nil, err
	}

	orders, err := services.NewOrderDispatcher().Dispatch(plan, product, cmd.Selections(), *plan.LockedSet())
	if err != nil {
		metrics.DispatchesTotal.WithLabelValues(metrics.OutcomeFailed).Inc()
		return nil, err
	}

	if err = planRepo.Update(ctx, plan); err != nil {
		metrics.DispatchesTotal.WithLabelValues(metrics.OutcomeFailed).Inc()
		return nil, fmt.Errorf("%w: %w", ErrDispatchFailed, err)
	}

	if err = uow.Commit(ctx); err != nil {
		metrics.DispatchesTotal.WithLabelValues(metrics.OutcomeFailed).Inc()
		return nil, fmt.Errorf("%w: %w", ErrDispatchFailed, err)
	}

	metrics.DispatchesTotal.WithLabelValues(metrics.OutcomeOK).Inc()
	return orders, nil
}
