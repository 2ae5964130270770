package commands

import (
	"errors"

	"workplans/internal/core/domain/model/kernel"
	"workplans/internal/pkg/guard"
)

var ErrCreatePlanCommandIsNotConstructed = errors.New(
	"CreatePlanCommand must be created via NewCreatePlanCommand constructor",
)

// CreatePlanCommand represents a request to start a new work plan for a user.
// The plan is created empty, in construction, and is filled in through
// UpdatePlanCommand as the user works through the wizard.
//
// Example:
//
//	planID := kernel.NewUUID()
//	cmd, err := NewCreatePlanCommand(planID, "user@sanger.ac.uk")
//	if err != nil {
//	    return fmt.Errorf("invalid plan data: %w", err)
//	}
//
//	handler := NewCreatePlanCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create plan: %w", err)
//	}
type CreatePlanCommand struct { //nolint:recvcheck //using for validation
	planID kernel.UUID
	owner  kernel.Email

	guard guard.ConstructorGuard
}

// NewCreatePlanCommand creates a command to start a new work plan.
// The owner email is trimmed and lowercased; an invalid email fails the
// construction.
func NewCreatePlanCommand(planID kernel.UUID, ownerEmail string) (CreatePlanCommand, error) {
	planCommand := CreatePlanCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		planCommand.setPlanID(planID),
		planCommand.setOwner(ownerEmail),
	); err != nil {
		return CreatePlanCommand{}, err
	}

	return planCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreatePlanCommandIsNotConstructed if validation fails.
func (c CreatePlanCommand) Validate() error {
	return c.guard.Validate(ErrCreatePlanCommandIsNotConstructed)
}

// PlanID returns the unique identifier for the new plan.
func (c CreatePlanCommand) PlanID() kernel.UUID {
	return c.planID
}

// Owner returns the sanitised owner email.
func (c CreatePlanCommand) Owner() kernel.Email {
	return c.owner
}

func (c *CreatePlanCommand) setPlanID(planID kernel.UUID) error {
	if err := planID.Validate(); err != nil {
		return err
	}

	c.planID = planID
	return nil
}

func (c *CreatePlanCommand) setOwner(ownerEmail string) error {
	owner, err := kernel.NewEmail(ownerEmail)
	if err != nil {
		return err
	}

	c.owner = owner
	return nil
}
