package commands

import (
	"errors"

	"workplans/internal/core/domain/model/kernel"
	"workplans/internal/pkg/guard"
)

var ErrBreakOrderCommandIsNotConstructed = errors.New(
	"BreakOrderCommand must be created via NewBreakOrderCommand constructor",
)

// BreakOrderCommand marks an order broken after an operation on it failed
// half way and the correct state could not be recovered. Breaking is
// administrative and one-way; see RepairOrderCommand for the way back.
type BreakOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewBreakOrderCommand creates a command to mark an order broken.
func NewBreakOrderCommand(orderID kernel.UUID) (BreakOrderCommand, error) {
	breakCommand := BreakOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := breakCommand.setOrderID(orderID); err != nil {
		return BreakOrderCommand{}, err
	}

	return breakCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrBreakOrderCommandIsNotConstructed if validation fails.
func (c BreakOrderCommand) Validate() error {
	return c.guard.Validate(ErrBreakOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to break.
func (c BreakOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *BreakOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
