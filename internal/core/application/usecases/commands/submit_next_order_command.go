package commands

import (
	"errors"

	"workplans/internal/pkg/guard"
)

var ErrSubmitNextOrderCommandIsNotConstructed = errors.New(
	"SubmitNextOrderCommand must be created via NewSubmitNextOrderCommand constructor",
)

// SubmitNextOrderCommand asks the system to find and submit the next order
// that is ready: queued, on a non-cancelled plan with a project, with every
// earlier stage completed. It carries no parameters; the background
// submission job issues it on a schedule.
type SubmitNextOrderCommand struct {
	guard guard.ConstructorGuard
}

// NewSubmitNextOrderCommand creates a command to submit the next ready order.
func NewSubmitNextOrderCommand() SubmitNextOrderCommand {
	return SubmitNextOrderCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrSubmitNextOrderCommandIsNotConstructed if validation fails.
func (c SubmitNextOrderCommand) Validate() error {
	return c.guard.Validate(ErrSubmitNextOrderCommandIsNotConstructed)
}
