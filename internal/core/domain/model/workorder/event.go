package workorder

import (
	"fmt"

	"workplans/internal/core/domain/model/kernel"
)

// StatusSubmitted is the event status published when an order enters Active.
// It is distinct from the Status enum: submission is reported to billing and
// notification collaborators as "submitted", not "active".
const StatusSubmitted = "submitted"

// Event is a lifecycle notification handed to the event publishing
// collaborator. Exactly one event is published per qualifying transition:
// one when an order enters Active, and one when it closes. Delivery
// guarantees are the collaborator's responsibility.
type Event struct {
	WorkOrderID kernel.UUID
	PlanID      kernel.UUID
	Status      string
}

// NewSubmittedEvent builds the submission lifecycle event for an order.
//
// Business rules:
//   - The order must be in Active status (it has just been submitted)
//
// Returns an error wrapping ErrInvalidState if the order is not active;
// no event must be published in that case.
func NewSubmittedEvent(o *WorkOrder) (Event, error) {
	if err := o.Validate(); err != nil {
		return Event{}, err
	}
	if !o.IsActive() {
		return Event{}, fmt.Errorf(
			"%w: cannot generate a submitted event from a work order that is not active", ErrInvalidState)
	}

	return Event{
		WorkOrderID: o.ID(),
		PlanID:      o.PlanID(),
		Status:      StatusSubmitted,
	}, nil
}

// NewClosedEvent builds the terminal lifecycle event for an order. The event
// payload carries the terminal status (completed or cancelled).
//
// Business rules:
//   - The order must be closed (Completed or Cancelled)
//
// Returns an error wrapping ErrInvalidState if the order is not closed;
// no event must be published in that case.
func NewClosedEvent(o *WorkOrder) (Event, error) {
	if err := o.Validate(); err != nil {
		return Event{}, err
	}
	if !o.Closed() {
		return Event{}, fmt.Errorf(
			"%w: cannot generate an event from a work order that has not been closed", ErrInvalidState)
	}

	return Event{
		WorkOrderID: o.ID(),
		PlanID:      o.PlanID(),
		Status:      o.Status().String(),
	}, nil
}
