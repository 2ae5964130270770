package queries

import (
	"errors"

	"workplans/internal/core/domain/model/kernel"
	"workplans/internal/pkg/errs"
	"workplans/internal/pkg/guard"
)

var ErrGetPlanStatusQueryIsNotConstructed = errors.New(
	"GetPlanStatusQuery must be created via NewGetPlanStatusQuery constructor",
)

// GetPlanStatusQuery requests the full status view of a single plan,
// including the state of every order dispatched from it.
type GetPlanStatusQuery struct {
	planID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetPlanStatusQuery creates a query for one plan's status view.
//
// Parameters:
//   - planID: identifier of the plan to inspect.
//
// Errors:
//   - errs.ValueIsRequiredError: planID is empty.
func NewGetPlanStatusQuery(planID kernel.UUID) (GetPlanStatusQuery, error) {
	if err := planID.Validate(); err != nil {
		return GetPlanStatusQuery{}, errs.NewValueIsRequiredErrorWithCause("planID", err)
	}

	return GetPlanStatusQuery{
		planID: planID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetPlanStatusQueryIsNotConstructed if validation fails.
func (q GetPlanStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetPlanStatusQueryIsNotConstructed)
}

// PlanID returns the identifier of the plan to inspect.
func (q GetPlanStatusQuery) PlanID() kernel.UUID {
	return q.planID
}

// GetPlanStatusQueryResponse is the status view of a plan.
type GetPlanStatusQueryResponse struct {
	ID              kernel.UUID
	Owner           string
	Status          string
	ProjectID       *int64
	ProductID       *kernel.UUID
	OriginalSetUUID *kernel.UUID
	LockedSetUUID   *kernel.UUID
	Orders          []OrderStatusResponse
}

// OrderStatusResponse is one order's slice of the plan status view.
type OrderStatusResponse struct {
	ID          kernel.UUID
	StageIndex  int
	ProcessName string
	Status      string
}
