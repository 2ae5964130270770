package commands

import (
	"errors"

	"workplans/internal/core/domain/model/kernel"
	"workplans/internal/core/domain/services"
	"workplans/internal/pkg/guard"
)

var ErrDispatchOrdersCommandIsNotConstructed = errors.New(
	"DispatchOrdersCommand must be created via NewDispatchOrdersCommand constructor",
)

// DispatchOrdersCommand represents a request to instantiate a plan's work
// orders from its product definition. Selections carry the user's module
// choices, one list per product process in stage order.
//
// Example:
//
//	cmd, err := NewDispatchOrdersCommand(planID, selections)
//	if err != nil {
//	    return err
//	}
//	orders, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, ErrDispatchFailed) {
//	    // nothing was persisted, safe to correct and retry
//	}
type DispatchOrdersCommand struct { //nolint:recvcheck //using for validation
	planID     kernel.UUID
	selections [][]services.ModuleSelection

	guard guard.ConstructorGuard
}

// NewDispatchOrdersCommand creates a command to dispatch a plan's orders.
// The selections are validated against the product definition by the
// handler, not here; only the plan id is checked at construction.
func NewDispatchOrdersCommand(
	planID kernel.UUID,
	selections [][]services.ModuleSelection,
) (DispatchOrdersCommand, error) {
	dispatchCommand := DispatchOrdersCommand{
		selections: selections,
		guard:      guard.NewConstructorGuard(),
	}

	if err := dispatchCommand.setPlanID(planID); err != nil {
		return DispatchOrdersCommand{}, err
	}

	return dispatchCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrDispatchOrdersCommandIsNotConstructed if validation fails.
func (c DispatchOrdersCommand) Validate() error {
	return c.guard.Validate(ErrDispatchOrdersCommandIsNotConstructed)
}

// PlanID returns the identifier of the plan being dispatched.
func (c DispatchOrdersCommand) PlanID() kernel.UUID {
	return c.planID
}

// Selections returns the per-stage module selections.
func (c DispatchOrdersCommand) Selections() [][]services.ModuleSelection {
	return c.selections
}

func (c *DispatchOrdersCommand) setPlanID(planID kernel.UUID) error {
	if err := planID.Validate(); err != nil {
		return err
	}

	c.planID = planID
	return nil
}
