package commands

import (
	"errors"
	"fmt"

	"workplans/internal/core/domain/model/kernel"
	"workplans/internal/core/domain/model/workorder"
	"workplans/internal/pkg/guard"
)

var ErrCompleteOrderCommandIsNotConstructed = errors.New(
	"CompleteOrderCommand must be created via NewCompleteOrderCommand constructor",
)

// CompleteOrderCommand is the execution system's closure callback for one
// active order: the LIMS reports the order completed or cancelled, optionally
// handing back the finished material set and a closing comment.
type CompleteOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	status          workorder.Status
	finishedSetUUID *kernel.UUID
	comment         string

	guard guard.ConstructorGuard
}

// NewCompleteOrderCommand creates a command to close a work order.
//
// Parameters:
//   - orderID: The order being closed
//   - status: The terminal status reported by the LIMS, "completed" or "cancelled"
//   - finishedSetUUID: Optional set of materials produced by the work
//   - comment: Optional closing comment from the LIMS
func NewCompleteOrderCommand(
	orderID kernel.UUID,
	status string,
	finishedSetUUID *kernel.UUID,
	comment string,
) (CompleteOrderCommand, error) {
	completeCommand := CompleteOrderCommand{
		comment: comment,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		completeCommand.setOrderID(orderID),
		completeCommand.setStatus(status),
		completeCommand.setFinishedSetUUID(finishedSetUUID),
	); err != nil {
		return CompleteOrderCommand{}, err
	}

	return completeCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCompleteOrderCommandIsNotConstructed if validation fails.
func (c CompleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrCompleteOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being closed.
func (c CompleteOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Status returns the terminal status, Completed or Cancelled.
func (c CompleteOrderCommand) Status() workorder.Status {
	return c.status
}

// FinishedSetUUID returns the set produced by the work, or nil.
func (c CompleteOrderCommand) FinishedSetUUID() *kernel.UUID {
	return c.finishedSetUUID
}

// Comment returns the closing comment, possibly empty.
func (c CompleteOrderCommand) Comment() string {
	return c.comment
}

func (c *CompleteOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CompleteOrderCommand) setStatus(status string) error {
	switch status {
	case workorder.Completed.String():
		c.status = workorder.Completed
	case workorder.Cancelled.String():
		c.status = workorder.Cancelled
	default:
		return fmt.Errorf("%w: %q is not a terminal order status", workorder.ErrInvalidState, status)
	}

	return nil
}

func (c *CompleteOrderCommand) setFinishedSetUUID(finishedSetUUID *kernel.UUID) error {
	if finishedSetUUID != nil {
		if err := finishedSetUUID.Validate(); err != nil {
			return err
		}
	}

	c.finishedSetUUID = finishedSetUUID
	return nil
}
