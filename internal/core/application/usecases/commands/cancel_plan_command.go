package commands

import (
	"errors"

	"workplans/internal/core/domain/model/kernel"
	"workplans/internal/pkg/guard"
)

var ErrCancelPlanCommandIsNotConstructed = errors.New(
	"CancelPlanCommand must be created via NewCancelPlanCommand constructor",
)

// CancelPlanCommand represents a user request to cancel a whole plan.
type CancelPlanCommand struct { //nolint:recvcheck //using for validation
	planID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCancelPlanCommand creates a command to cancel a plan.
func NewCancelPlanCommand(planID kernel.UUID) (CancelPlanCommand, error) {
	cancelCommand := CancelPlanCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cancelCommand.setPlanID(planID); err != nil {
		return CancelPlanCommand{}, err
	}

	return cancelCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCancelPlanCommandIsNotConstructed if validation fails.
func (c CancelPlanCommand) Validate() error {
	return c.guard.Validate(ErrCancelPlanCommandIsNotConstructed)
}

// PlanID returns the identifier of the plan to cancel.
func (c CancelPlanCommand) PlanID() kernel.UUID {
	return c.planID
}

func (c *CancelPlanCommand) setPlanID(planID kernel.UUID) error {
	if err := planID.Validate(); err != nil {
		return err
	}

	c.planID = planID
	return nil
}
