package ports

import (
	"context"

	"workplans/internal/core/domain/model/kernel"
	"workplans/internal/core/domain/model/workorder"
)

// OrderRepository defines the persistence contract for work order aggregates.
// Orders are persisted as part of their plan but frequently loaded and
// updated on their own, so they get a repository of their own.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *workorder.WorkOrder) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *workorder.WorkOrder) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*workorder.WorkOrder, error)

	// GetByPlanAndStage retrieves the order at the given stage of a plan.
	// Returns errs.ObjectNotFoundError (wrapping errs.ErrObjectNotFound)
	// when the plan has no order at that stage.
	GetByPlanAndStage(ctx context.Context, planID kernel.UUID, stageIndex int) (*workorder.WorkOrder, error)

	// GetFirstReadyForSubmission retrieves the oldest queued order whose
	// plan is complete enough to submit: the plan has a project, is not
	// cancelled, and every earlier stage of the plan is completed.
	// Returns errs.ObjectNotFoundError (wrapping errs.ErrObjectNotFound)
	// when no order is ready.
	GetFirstReadyForSubmission(ctx context.Context) (*workorder.WorkOrder, error)
}
