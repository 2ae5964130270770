package queries

import (
	"context"

	"workplans/internal/core/domain/model/kernel"
	"workplans/internal/core/domain/model/workplan"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GetPlansForUserQueryHandler retrieves the plan listing from the database.
// Uses direct SQL for optimal read performance in the CQRS pattern; plan
// status is derived from per-status order counts without loading aggregates.
//
// Example:
//
//	handler := NewGetPlansForUserQueryHandler(db)
//	plans, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to list plans: %v", err)
//	    return err
//	}
//	fmt.Printf("Found %d plans\n", len(plans))
type GetPlansForUserQueryHandler struct {
	db *gorm.DB
}

// NewGetPlansForUserQueryHandler creates a handler for plan listing queries.
// Requires a GORM database connection for query execution.
func NewGetPlansForUserQueryHandler(db *gorm.DB) GetPlansForUserQueryHandler {
	return GetPlansForUserQueryHandler{db: db}
}

// Handle executes the listing query.
// Returns plans owned by the user or billed against one of the user's
// spendable projects, newest first.
func (h GetPlansForUserQueryHandler) Handle(
	ctx context.Context,
	query GetPlansForUserQuery,
) ([]GetPlansForUserQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	plans := make([]GetPlansForUserQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			p.id,
			p.owner_email,
			p.project_id IS NOT NULL AS has_project,
			p.cancelled_at IS NOT NULL AS cancelled,
			COALESCE(o.total, 0)  AS total,
			COALESCE(o.queued, 0) AS queued,
			COALESCE(o.broken, 0) AS broken,
			COALESCE(o.closed, 0) AS closed
		FROM work_plans p
		LEFT JOIN (
			SELECT
				plan_id,
				COUNT(*) AS total,
				COUNT(*) FILTER (WHERE status = 'queued') AS queued,
				COUNT(*) FILTER (WHERE status = 'broken') AS broken,
				COUNT(*) FILTER (WHERE status IN ('completed', 'cancelled')) AS closed
			FROM work_orders
			GROUP BY plan_id
		) o ON o.plan_id = p.id
		WHERE p.owner_email = ? OR p.project_id = ANY(?)
		ORDER BY p.created_at DESC
	`, query.User().Email().String(), pq.Array(query.SpendableProjectIDs())).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var plan GetPlansForUserQueryResponse
		var id uuid.UUID
		var hasProject, cancelled bool
		var total, queued, broken, closed int

		err = rows.Scan(
			&id,
			&plan.Owner,
			&hasProject,
			&cancelled,
			&total,
			&queued,
			&broken,
			&closed,
		)
		if err != nil {
			return nil, err
		}

		planID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		plan.ID = planID
		plan.OrderCount = total
		plan.Status = statusFromCounts(cancelled, hasProject, total, queued, broken, closed).String()
		plans = append(plans, plan)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return plans, nil
}

// statusFromCounts mirrors workplan.DeriveStatus over aggregated order
// counts so the listing never loads full aggregates.
func statusFromCounts(cancelled, hasProject bool, total, queued, broken, closed int) workplan.Status {
	switch {
	case cancelled:
		return workplan.StatusCancelled
	case !hasProject:
		return workplan.StatusConstruction
	case broken > 0:
		return workplan.StatusBroken
	case total > 0 && closed == total:
		return workplan.StatusClosed
	case queued < total:
		return workplan.StatusActive
	default:
		return workplan.StatusConstruction
	}
}
