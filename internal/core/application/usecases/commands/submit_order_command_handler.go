package commands

import (
	"context"
	"errors"

	"workplans/internal/core/domain/model/kernel"
	"workplans/internal/core/domain/model/submission"
	"workplans/internal/core/domain/model/workorder"
	"workplans/internal/core/ports"
	"workplans/internal/pkg/metrics"
)

// SubmissionBuilder assembles the denormalized submission document for one
// work order and resolves the LIMS URL it must be delivered to. The export
// assembler in the queries package implements this.
type SubmissionBuilder interface {
	Build(ctx context.Context, orderID kernel.UUID) (*submission.Document, string, error)
}

// SubmitOrderCommandHandler runs the submission flow for one queued order:
// build the document, deliver it to the LIMS, transition the order to active
// and publish the submitted lifecycle event.
//
// Failure handling distinguishes two phases. The order must be queued before
// anything is sent: an ineligible order is rejected up front and nothing
// reaches the LIMS. Before the document is accepted by the LIMS any failure
// leaves the order queued and retryable. After the LIMS has accepted the
// document, a failure to persist the transition leaves the systems
// inconsistent; the order is then marked broken and held for manual
// intervention. A publish failure after the commit is reported but does not
// touch the order, which is active and correct at that point.
//
// Example:
//
//	handler := NewSubmitOrderCommandHandler(uowFactory, builder, limsChannel, publisher)
//	cmd, _ := NewSubmitOrderCommand(orderID)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    // errors.Is(err, workorder.ErrInvalidState) when the order is not queued
//	}
type SubmitOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	builder    SubmissionBuilder
	channel    ports.SubmissionChannel
	publisher  ports.EventPublisher
}

// NewSubmitOrderCommandHandler creates a handler for order submission.
func NewSubmitOrderCommandHandler(
	uowFactory OrderUoWFactory,
	builder SubmissionBuilder,
	channel ports.SubmissionChannel,
	publisher ports.EventPublisher,
) SubmitOrderCommandHandler {
	return SubmitOrderCommandHandler{
		uowFactory: uowFactory,
		builder:    builder,
		channel:    channel,
		publisher:  publisher,
	}
}

// Handle processes the submission command.
// Eligibility is checked first so an order that already left the queued state
// never produces a second delivery. The document is built and delivered before
// the transaction opens: document assembly is read-only, and holding a
// transaction across remote calls would pin a connection for seconds. The
// status transition and event publication happen only after the LIMS accepted
// the document.
func (h *SubmitOrderCommandHandler) Handle(ctx context.Context, cmd SubmitOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := h.checkEligible(ctx, cmd.OrderID()); err != nil {
		return err
	}

	doc, limsURL, err := h.builder.Build(ctx, cmd.OrderID())
	if err != nil {
		metrics.SubmissionsTotal.WithLabelValues(metrics.OutcomeFailed).Inc()
		return err
	}

	if err = h.channel.Post(ctx, limsURL, doc); err != nil {
		metrics.SubmissionsTotal.WithLabelValues(metrics.OutcomeFailed).Inc()
		return err
	}

	ord, err := h.recordSubmission(ctx, cmd.OrderID())
	if err != nil {
		// The LIMS already holds the document; retrying would submit the
		// work twice. Park the order for manual intervention. The one
		// exception is losing the submit race to a concurrent handler: the
		// order is active and the document delivered, so there is nothing
		// to repair.
		if !errors.Is(err, workorder.ErrInvalidState) {
			h.markBroken(ctx, cmd.OrderID())
		}
		metrics.SubmissionsTotal.WithLabelValues(metrics.OutcomeFailed).Inc()
		return err
	}

	metrics.SubmissionsTotal.WithLabelValues(metrics.OutcomeOK).Inc()

	event, err := workorder.NewSubmittedEvent(ord)
	if err != nil {
		return err
	}
	if err = h.publisher.Publish(ctx, event); err != nil {
		return err
	}
	metrics.LifecycleEventsTotal.WithLabelValues(event.Status).Inc()

	return nil
}

// checkEligible verifies the order can be submitted before any document is
// built or delivered.
func (h *SubmitOrderCommandHandler) checkEligible(ctx context.Context, orderID kernel.UUID) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ord, err := uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		return err
	}

	return ord.Status().ValidateSubmit()
}

// recordSubmission transitions the order to active and persists it in one
// transaction, returning the updated order for event publication.
func (h *SubmitOrderCommandHandler) recordSubmission(ctx context.Context, orderID kernel.UUID) (*workorder.WorkOrder, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	ord, err := orderRepo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err = ord.Submit(); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, ord); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return ord, nil
}

// markBroken is a best-effort recovery write in a fresh transaction.
// Errors are dropped; the caller reports the original failure, and a broken
// flag that failed to stick is caught by the next attempt's state check.
func (h *SubmitOrderCommandHandler) markBroken(ctx context.Context, orderID kernel.UUID) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	ord, err := orderRepo.Get(ctx, orderID)
	if err != nil {
		return
	}
	if err = ord.Break(); err != nil {
		return
	}
	if err = orderRepo.Update(ctx, ord); err != nil {
		return
	}
	_ = uow.Commit(ctx)
}
