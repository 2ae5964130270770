package queries

import (
	"context"
	"time"

	"workplans/internal/core/domain/model/kernel"
	"workplans/internal/core/domain/model/workorder"
	"workplans/internal/core/domain/model/workplan"
	"workplans/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPlanStatusQueryHandler retrieves the status view of a single plan.
// Reads the plan row and its order rows directly; the plan status is
// derived from the order statuses the same way the aggregate derives it.
type GetPlanStatusQueryHandler struct {
	db *gorm.DB
}

// NewGetPlanStatusQueryHandler creates a handler for plan status queries.
func NewGetPlanStatusQueryHandler(db *gorm.DB) GetPlanStatusQueryHandler {
	return GetPlanStatusQueryHandler{db: db}
}

// Handle executes the status query.
//
// Errors:
//   - errs.ObjectNotFoundError: no plan with the given id exists.
func (h GetPlanStatusQueryHandler) Handle(
	ctx context.Context,
	query GetPlanStatusQuery,
) (GetPlanStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetPlanStatusQueryResponse{}, err
	}

	response, cancelled, err := h.loadPlan(ctx, query.PlanID())
	if err != nil {
		return GetPlanStatusQueryResponse{}, err
	}

	orders, statuses, err := h.loadOrders(ctx, query.PlanID())
	if err != nil {
		return GetPlanStatusQueryResponse{}, err
	}

	response.Orders = orders
	response.Status = workplan.DeriveStatus(cancelled, response.ProjectID != nil, statuses).String()

	return response, nil
}

func (h GetPlanStatusQueryHandler) loadPlan(
	ctx context.Context,
	planID kernel.UUID,
) (GetPlanStatusQueryResponse, bool, error) {
	row := h.db.WithContext(ctx).Raw(`
		SELECT id, owner_email, project_id, product_id,
		       original_set_uuid, locked_set_uuid, cancelled_at
		FROM work_plans
		WHERE id = ?
	`, planID.String()).Row()

	var response GetPlanStatusQueryResponse
	var id uuid.UUID
	var productID, originalSet, lockedSet uuid.NullUUID
	var cancelledAt *time.Time

	err := row.Scan(
		&id,
		&response.Owner,
		&response.ProjectID,
		&productID,
		&originalSet,
		&lockedSet,
		&cancelledAt,
	)
	if err != nil {
		return GetPlanStatusQueryResponse{}, false,
			errs.NewObjectNotFoundErrorWithCause("planID", planID.String(), err)
	}

	response.ID, err = kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetPlanStatusQueryResponse{}, false, err
	}

	response.ProductID, err = optionalUUID(productID)
	if err != nil {
		return GetPlanStatusQueryResponse{}, false, err
	}
	response.OriginalSetUUID, err = optionalUUID(originalSet)
	if err != nil {
		return GetPlanStatusQueryResponse{}, false, err
	}
	response.LockedSetUUID, err = optionalUUID(lockedSet)
	if err != nil {
		return GetPlanStatusQueryResponse{}, false, err
	}

	return response, cancelledAt != nil, nil
}

func (h GetPlanStatusQueryHandler) loadOrders(
	ctx context.Context,
	planID kernel.UUID,
) ([]OrderStatusResponse, []workorder.Status, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, stage_index, process_name, status
		FROM work_orders
		WHERE plan_id = ?
		ORDER BY stage_index
	`, planID.String()).Rows()
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	orders := make([]OrderStatusResponse, 0)
	statuses := make([]workorder.Status, 0)

	for rows.Next() {
		var order OrderStatusResponse
		var id uuid.UUID

		err = rows.Scan(&id, &order.StageIndex, &order.ProcessName, &order.Status)
		if err != nil {
			return nil, nil, err
		}

		order.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, nil, err
		}

		status, statusErr := workorder.StatusFromString(order.Status)
		if statusErr != nil {
			return nil, nil, statusErr
		}

		orders = append(orders, order)
		statuses = append(statuses, status)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	return orders, statuses, nil
}

func optionalUUID(value uuid.NullUUID) (*kernel.UUID, error) {
	if !value.Valid {
		return nil, nil
	}

	id, err := kernel.UUIDFromBytes(value.UUID[:])
	if err != nil {
		return nil, err
	}

	return &id, nil
}
