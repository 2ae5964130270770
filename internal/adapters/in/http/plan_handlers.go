package http

import (
	"net/http"

	"workplans/internal/core/application/usecases/commands"
	"workplans/internal/core/application/usecases/queries"
	"workplans/internal/core/domain/model/kernel"
	"workplans/internal/core/domain/model/workplan"
	"workplans/internal/core/domain/services"

	"github.com/labstack/echo/v4"
)

// PlanSummary is one row of the plan listing.
type PlanSummary struct {
	ID         string `json:"id"`
	Owner      string `json:"owner"`
	Status     string `json:"status"`
	OrderCount int    `json:"order_count"`
}

// PlanDetail is the full status view of one plan.
type PlanDetail struct {
	ID              string        `json:"id"`
	Owner           string        `json:"owner"`
	Status          string        `json:"status"`
	ProjectID       *int64        `json:"project_id"`
	ProductID       *string       `json:"product_id"`
	OriginalSetUUID *string       `json:"original_set_uuid"`
	LockedSetUUID   *string       `json:"locked_set_uuid"`
	Orders          []OrderDetail `json:"work_orders"`
}

// OrderDetail is one order's slice of a plan view or dispatch response.
type OrderDetail struct {
	ID          string `json:"id"`
	StageIndex  int    `json:"stage_index"`
	ProcessName string `json:"process_name"`
	Status      string `json:"status"`
}

// UpdatePlanRequest carries one wizard step's worth of plan data. Absent
// fields are left unchanged.
type UpdatePlanRequest struct {
	OriginalSetUUID       *string `json:"original_set_uuid"`
	ProjectID             *int64  `json:"project_id"`
	ProductID             *string `json:"product_id"`
	DataReleaseStrategyID *string `json:"data_release_strategy_id"`
}

// DispatchRequest carries the user's module choices, one list per product
// process in stage order.
type DispatchRequest struct {
	Selections [][]ModuleSelectionRequest `json:"selections"`
}

// ModuleSelectionRequest is one selected process module.
type ModuleSelectionRequest struct {
	ModuleID      string `json:"module_id"`
	SelectedValue *int   `json:"selected_value"`
}

// CreatePlan handles POST /api/v1/work_plans - starts a new plan owned by
// the requesting user.
func (s *Server) CreatePlan(ctx echo.Context) error {
	user, err := userFromRequest(ctx)
	if err != nil {
		return renderError(ctx, err)
	}

	planID := kernel.NewUUID()
	cmd, err := commands.NewCreatePlanCommand(planID, user.Email().String())
	if err != nil {
		return renderError(ctx, err)
	}

	if handleErr := s.createPlanHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return renderError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": planID.String()})
}

// GetPlans handles GET /api/v1/work_plans - lists the plans the user owns
// plus any plan billed against a project the user may spend on.
func (s *Server) GetPlans(ctx echo.Context) error {
	user, err := userFromRequest(ctx)
	if err != nil {
		return renderError(ctx, err)
	}

	projectIDs, err := s.studies.SpendableProjectIDs(ctx.Request().Context(), user)
	if err != nil {
		return renderError(ctx, err)
	}

	query, err := queries.NewGetPlansForUserQuery(user, projectIDs)
	if err != nil {
		return renderError(ctx, err)
	}

	plans, err := s.planListingHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return renderError(ctx, err)
	}

	response := make([]PlanSummary, len(plans))
	for i, plan := range plans {
		response[i] = PlanSummary{
			ID:         plan.ID.String(),
			Owner:      plan.Owner,
			Status:     plan.Status,
			OrderCount: plan.OrderCount,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetPlan handles GET /api/v1/work_plans/:id - the plan status view.
func (s *Server) GetPlan(ctx echo.Context) error {
	planID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return renderBadRequest(ctx, "invalid plan id")
	}

	query, err := queries.NewGetPlanStatusQuery(planID)
	if err != nil {
		return renderError(ctx, err)
	}

	plan, err := s.planStatusHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return renderError(ctx, err)
	}

	detail := PlanDetail{
		ID:              plan.ID.String(),
		Owner:           plan.Owner,
		Status:          plan.Status,
		ProjectID:       plan.ProjectID,
		ProductID:       uuidString(plan.ProductID),
		OriginalSetUUID: uuidString(plan.OriginalSetUUID),
		LockedSetUUID:   uuidString(plan.LockedSetUUID),
		Orders:          make([]OrderDetail, len(plan.Orders)),
	}
	for i, order := range plan.Orders {
		detail.Orders[i] = OrderDetail{
			ID:          order.ID.String(),
			StageIndex:  order.StageIndex,
			ProcessName: order.ProcessName,
			Status:      order.Status,
		}
	}

	return ctx.JSON(http.StatusOK, detail)
}

// UpdatePlan handles PUT /api/v1/work_plans/:id - applies one wizard step to
// a plan under construction.
func (s *Server) UpdatePlan(ctx echo.Context) error {
	plan, err := s.writablePlan(ctx)
	if err != nil || plan == nil {
		return err
	}

	var request UpdatePlanRequest
	if bindErr := ctx.Bind(&request); bindErr != nil {
		return renderBadRequest(ctx, "invalid request body")
	}

	params := commands.UpdatePlanParams{ProjectID: request.ProjectID}
	if params.OriginalSetUUID, err = parseOptionalUUID(request.OriginalSetUUID); err != nil {
		return renderBadRequest(ctx, "invalid original set uuid")
	}
	if params.ProductID, err = parseOptionalUUID(request.ProductID); err != nil {
		return renderBadRequest(ctx, "invalid product id")
	}
	if params.DataReleaseStrategyID, err = parseOptionalUUID(request.DataReleaseStrategyID); err != nil {
		return renderBadRequest(ctx, "invalid data release strategy id")
	}

	cmd, err := commands.NewUpdatePlanCommand(plan.ID(), params)
	if err != nil {
		return renderError(ctx, err)
	}

	if handleErr := s.updatePlanHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return renderError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelPlan handles POST /api/v1/work_plans/:id/cancel.
func (s *Server) CancelPlan(ctx echo.Context) error {
	plan, err := s.writablePlan(ctx)
	if err != nil || plan == nil {
		return err
	}

	cmd, err := commands.NewCancelPlanCommand(plan.ID())
	if err != nil {
		return renderError(ctx, err)
	}

	if handleErr := s.cancelPlanHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return renderError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// LockSet handles POST /api/v1/work_plans/:id/lock_set - freezes the plan's
// original set into a locked clone.
func (s *Server) LockSet(ctx echo.Context) error {
	plan, err := s.writablePlan(ctx)
	if err != nil || plan == nil {
		return err
	}

	cmd, err := commands.NewLockSetCommand(plan.ID())
	if err != nil {
		return renderError(ctx, err)
	}

	if handleErr := s.lockSetHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return renderError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DispatchOrders handles POST /api/v1/work_plans/:id/dispatch - instantiates
// the plan's work orders from its product definition.
func (s *Server) DispatchOrders(ctx echo.Context) error {
	plan, err := s.writablePlan(ctx)
	if err != nil || plan == nil {
		return err
	}

	var request DispatchRequest
	if bindErr := ctx.Bind(&request); bindErr != nil {
		return renderBadRequest(ctx, "invalid request body")
	}

	selections := make([][]services.ModuleSelection, len(request.Selections))
	for i, processSelections := range request.Selections {
		selections[i] = make([]services.ModuleSelection, len(processSelections))
		for j, selection := range processSelections {
			moduleID, parseErr := kernel.UUIDFromString(selection.ModuleID)
			if parseErr != nil {
				return renderBadRequest(ctx, "invalid module id")
			}
			selections[i][j] = services.ModuleSelection{
				ModuleID:      moduleID,
				SelectedValue: selection.SelectedValue,
			}
		}
	}

	cmd, err := commands.NewDispatchOrdersCommand(plan.ID(), selections)
	if err != nil {
		return renderError(ctx, err)
	}

	orders, err := s.dispatchHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return renderError(ctx, err)
	}

	response := make([]OrderDetail, len(orders))
	for i, order := range orders {
		response[i] = OrderDetail{
			ID:          order.ID().String(),
			StageIndex:  order.StageIndex(),
			ProcessName: order.ProcessName(),
			Status:      order.Status().String(),
		}
	}

	return ctx.JSON(http.StatusCreated, response)
}

// writablePlan loads the plan named by the :id parameter and checks the
// requesting user's write access. A nil plan with a nil error means the
// response has already been written.
func (s *Server) writablePlan(ctx echo.Context) (*workplan.WorkPlan, error) {
	user, err := userFromRequest(ctx)
	if err != nil {
		return nil, renderError(ctx, err)
	}

	planID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return nil, renderBadRequest(ctx, "invalid plan id")
	}

	plan, err := s.plans.Get(ctx.Request().Context(), planID)
	if err != nil {
		return nil, renderError(ctx, err)
	}

	permitted, err := s.permissions.Permitted(ctx.Request().Context(), user, plan, services.PermissionWrite)
	if err != nil {
		return nil, renderError(ctx, err)
	}
	if !permitted {
		return nil, renderForbidden(ctx)
	}

	return plan, nil
}

func parseOptionalUUID(raw *string) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromString(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func uuidString(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
