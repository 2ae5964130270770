package workplan

import "workplans/internal/core/domain/model/workorder"

// Status represents the plan-level lifecycle state. It is derived on every
// read and never persisted, which rules out status-drift bugs from partial
// updates across an order and its plan. The cost is an O(number of orders)
// evaluation per read, acceptable because plans have single-digit stages.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusConstruction means the plan is not yet underway: either the
	// wizard has not attached a project, or all orders are still queued.
	StatusConstruction

	// StatusActive means the orders are underway.
	StatusActive

	// StatusClosed means all orders are completed or cancelled, in any mix.
	StatusClosed

	// StatusBroken means at least one order is broken. Broken dominates
	// every other order state.
	StatusBroken

	// StatusCancelled means the plan itself has been cancelled.
	StatusCancelled
)

// String returns the lowercase name of the status.
func (s Status) String() string {
	switch s {
	case StatusConstruction:
		return "construction"
	case StatusActive:
		return "active"
	case StatusClosed:
		return "closed"
	case StatusBroken:
		return "broken"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// DeriveStatus computes the plan status from an explicit snapshot of the
// plan-level flags and the child order states. It is the single source of
// truth for status derivation, decoupled from any storage mechanism; the
// WorkPlan aggregate and the read-side query handlers both delegate to it.
//
// Rules, in order:
//   - cancelled         -> StatusCancelled
//   - no project        -> StatusConstruction
//   - any order broken  -> StatusBroken
//   - all orders closed -> StatusClosed (requires at least one order)
//   - not all queued    -> StatusActive
//   - otherwise         -> StatusConstruction
//
// The caller must pass the complete set of child order statuses, loaded
// once; partial snapshots produce wrong answers.
func DeriveStatus(cancelled bool, hasProject bool, orderStatuses []workorder.Status) Status {
	if cancelled {
		return StatusCancelled
	}
	if !hasProject {
		return StatusConstruction
	}

	if len(orderStatuses) > 0 {
		allClosed := true
		allQueued := true
		for _, s := range orderStatuses {
			if s == workorder.Broken {
				return StatusBroken
			}
			if !s.Closed() {
				allClosed = false
			}
			if s != workorder.Queued {
				allQueued = false
			}
		}

		if allClosed {
			return StatusClosed
		}
		if !allQueued {
			return StatusActive
		}
	}

	return StatusConstruction
}
