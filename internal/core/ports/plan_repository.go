// Package ports defines the contracts between the work plans core and its
// infrastructure: repositories for the persisted aggregates, gateways to the
// remote services that own sets, materials, containers and studies, and the
// outbound channels for submissions and lifecycle events.
package ports

import (
	"context"

	"workplans/internal/core/domain/model/kernel"
	"workplans/internal/core/domain/model/workplan"
)

// PlanRepository defines the persistence contract for work plan aggregates.
// Plans are always loaded together with their work orders and the orders'
// module choices.
type PlanRepository interface {
	// Add persists a new plan aggregate to storage.
	// The plan must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *workplan.WorkPlan) error

	// Update persists changes to an existing plan aggregate, including any
	// orders attached since the last save.
	Update(ctx context.Context, aggregate *workplan.WorkPlan) error

	// Get retrieves a plan aggregate by its unique identifier.
	// Returns the complete plan with all its orders.
	Get(ctx context.Context, id kernel.UUID) (*workplan.WorkPlan, error)

	// GetByOwner retrieves all plans owned by the given email, newest first.
	GetByOwner(ctx context.Context, owner kernel.Email) ([]*workplan.WorkPlan, error)
}
