package commands

import (
	"errors"

	"workplans/internal/core/domain/model/kernel"
	"workplans/internal/pkg/guard"
)

var ErrLockSetCommandIsNotConstructed = errors.New(
	"LockSetCommand must be created via NewLockSetCommand constructor",
)

// LockSetCommand requests a locked clone of the plan's original set. Locking
// freezes the plan's input materials before dispatch; the set service forbids
// any further change to a locked set.
type LockSetCommand struct { //nolint:recvcheck //using for validation
	planID kernel.UUID

	guard guard.ConstructorGuard
}

// NewLockSetCommand creates a command to lock the plan's original set.
func NewLockSetCommand(planID kernel.UUID) (LockSetCommand, error) {
	lockCommand := LockSetCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := lockCommand.setPlanID(planID); err != nil {
		return LockSetCommand{}, err
	}

	return lockCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrLockSetCommandIsNotConstructed if validation fails.
func (c LockSetCommand) Validate() error {
	return c.guard.Validate(ErrLockSetCommandIsNotConstructed)
}

// PlanID returns the identifier of the plan whose set should be locked.
func (c LockSetCommand) PlanID() kernel.UUID {
	return c.planID
}

func (c *LockSetCommand) setPlanID(planID kernel.UUID) error {
	if err := planID.Validate(); err != nil {
		return err
	}

	c.planID = planID
	return nil
}
