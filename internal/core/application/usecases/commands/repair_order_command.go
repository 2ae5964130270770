package commands

import (
	"errors"
	"fmt"

	"workplans/internal/core/domain/model/kernel"
	"workplans/internal/core/domain/model/workorder"
	"workplans/internal/pkg/guard"
)

var ErrRepairOrderCommandIsNotConstructed = errors.New(
	"RepairOrderCommand must be created via NewRepairOrderCommand constructor",
)

// RepairOrderCommand returns a broken order to a working state after manual
// investigation. Repair is strictly administrative: an operator decides
// whether the order should go back to queued (submission never reached the
// LIMS) or active (the LIMS holds the work).
type RepairOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	target  workorder.Status

	guard guard.ConstructorGuard
}

// NewRepairOrderCommand creates a command to repair a broken order.
// Target must be "queued" or "active".
func NewRepairOrderCommand(orderID kernel.UUID, target string) (RepairOrderCommand, error) {
	repairCommand := RepairOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		repairCommand.setOrderID(orderID),
		repairCommand.setTarget(target),
	); err != nil {
		return RepairOrderCommand{}, err
	}

	return repairCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRepairOrderCommandIsNotConstructed if validation fails.
func (c RepairOrderCommand) Validate() error {
	return c.guard.Validate(ErrRepairOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to repair.
func (c RepairOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the status the order should return to.
func (c RepairOrderCommand) Target() workorder.Status {
	return c.target
}

func (c *RepairOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RepairOrderCommand) setTarget(target string) error {
	switch target {
	case workorder.Queued.String():
		c.target = workorder.Queued
	case workorder.Active.String():
		c.target = workorder.Active
	default:
		return fmt.Errorf("%w: %q is not a valid repair target", workorder.ErrInvalidState, target)
	}

	return nil
}
