package commands

import (
	"errors"

	"workplans/internal/core/domain/model/kernel"
	"workplans/internal/pkg/errs"
	"workplans/internal/pkg/guard"
)

var ErrUpdatePlanCommandIsNotConstructed = errors.New(
	"UpdatePlanCommand must be created via NewUpdatePlanCommand constructor",
)

// UpdatePlanCommand carries one wizard step's worth of plan data: the
// original set, the project, the product or the data release strategy. All
// fields except the plan id are optional; only the provided ones are applied.
//
// Example:
//
//	projectID := int64(42)
//	cmd, err := NewUpdatePlanCommand(planID, UpdatePlanParams{ProjectID: &projectID})
//	if err != nil {
//	    return err
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    // errors.Is(err, workorder.ErrInvalidState) when the plan has left construction
//	}
type UpdatePlanCommand struct { //nolint:recvcheck //using for validation
	planID                kernel.UUID
	originalSetUUID       *kernel.UUID
	projectID             *int64
	productID             *kernel.UUID
	dataReleaseStrategyID *kernel.UUID

	guard guard.ConstructorGuard
}

// UpdatePlanParams groups the optional fields of UpdatePlanCommand.
// A nil field means "leave unchanged".
type UpdatePlanParams struct {
	OriginalSetUUID       *kernel.UUID
	ProjectID             *int64
	ProductID             *kernel.UUID
	DataReleaseStrategyID *kernel.UUID
}

// NewUpdatePlanCommand creates a command to update a plan under construction.
// Provided UUIDs must be valid and a provided project id must be positive.
func NewUpdatePlanCommand(planID kernel.UUID, params UpdatePlanParams) (UpdatePlanCommand, error) {
	planCommand := UpdatePlanCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		planCommand.setPlanID(planID),
		planCommand.setParams(params),
	); err != nil {
		return UpdatePlanCommand{}, err
	}

	return planCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdatePlanCommandIsNotConstructed if validation fails.
func (c UpdatePlanCommand) Validate() error {
	return c.guard.Validate(ErrUpdatePlanCommandIsNotConstructed)
}

// PlanID returns the identifier of the plan to update.
func (c UpdatePlanCommand) PlanID() kernel.UUID {
	return c.planID
}

// OriginalSetUUID returns the new original set, or nil when unchanged.
func (c UpdatePlanCommand) OriginalSetUUID() *kernel.UUID {
	return c.originalSetUUID
}

// ProjectID returns the new project id, or nil when unchanged.
func (c UpdatePlanCommand) ProjectID() *int64 {
	return c.projectID
}

// ProductID returns the new product id, or nil when unchanged.
func (c UpdatePlanCommand) ProductID() *kernel.UUID {
	return c.productID
}

// DataReleaseStrategyID returns the new data release strategy, or nil when unchanged.
func (c UpdatePlanCommand) DataReleaseStrategyID() *kernel.UUID {
	return c.dataReleaseStrategyID
}

func (c *UpdatePlanCommand) setPlanID(planID kernel.UUID) error {
	if err := planID.Validate(); err != nil {
		return err
	}

	c.planID = planID
	return nil
}

func (c *UpdatePlanCommand) setParams(params UpdatePlanParams) error {
	if params.OriginalSetUUID != nil {
		if err := params.OriginalSetUUID.Validate(); err != nil {
			return err
		}
	}
	if params.ProductID != nil {
		if err := params.ProductID.Validate(); err != nil {
			return err
		}
	}
	if params.DataReleaseStrategyID != nil {
		if err := params.DataReleaseStrategyID.Validate(); err != nil {
			return err
		}
	}
	if params.ProjectID != nil && *params.ProjectID <= 0 {
		return errs.NewValueIsInvalidError("project id must be positive")
	}

	c.originalSetUUID = params.OriginalSetUUID
	c.projectID = params.ProjectID
	c.productID = params.ProductID
	c.dataReleaseStrategyID = params.DataReleaseStrategyID
	return nil
}
