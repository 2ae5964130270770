package http

import (
	"net/http"

	"workplans/internal/core/application/usecases/commands"
	"workplans/internal/core/application/usecases/queries"
	"workplans/internal/core/domain/model/kernel"
	"workplans/internal/core/domain/model/submission"
	"workplans/internal/core/domain/model/workorder"
	"workplans/internal/core/domain/services"

	"github.com/labstack/echo/v4"
)

// CompleteOrderRequest is the execution system's closure callback body.
type CompleteOrderRequest struct {
	Status          string  `json:"status"`
	FinishedSetUUID *string `json:"finished_set_uuid"`
	Comment         string  `json:"comment"`
}

// RepairOrderRequest names the status a broken order is repaired to.
type RepairOrderRequest struct {
	Target string `json:"target"`
}

// SubmissionPreview is the read-back view of an order's submission document.
type SubmissionPreview struct {
	LIMSURL    string               `json:"lims_url"`
	Submission *submission.Document `json:"submission"`
}

// GetSubmissionPreview handles GET /api/v1/work_orders/:id/submission -
// assembles the order's submission document with its current status embedded.
func (s *Server) GetSubmissionPreview(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return renderBadRequest(ctx, "invalid order id")
	}

	query, err := queries.NewBuildSubmissionQuery(orderID, true)
	if err != nil {
		return renderError(ctx, err)
	}

	result, err := s.submissionHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return renderError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, SubmissionPreview{
		LIMSURL:    result.LIMSURL,
		Submission: result.Document,
	})
}

// SubmitOrder handles POST /api/v1/work_orders/:id/submit - builds the
// order's submission document and delivers it to the execution system.
func (s *Server) SubmitOrder(ctx echo.Context) error {
	order, err := s.writableOrder(ctx)
	if err != nil || order == nil {
		return err
	}

	cmd, err := commands.NewSubmitOrderCommand(order.ID())
	if err != nil {
		return renderError(ctx, err)
	}

	if handleErr := s.submitOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return renderError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompleteOrder handles POST /api/v1/work_orders/:id/complete - the LIMS
// reports an active order completed or cancelled. The caller is the
// execution system, not a user, so no plan permission is checked.
func (s *Server) CompleteOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return renderBadRequest(ctx, "invalid order id")
	}

	var request CompleteOrderRequest
	if bindErr := ctx.Bind(&request); bindErr != nil {
		return renderBadRequest(ctx, "invalid request body")
	}

	finishedSetUUID, err := parseOptionalUUID(request.FinishedSetUUID)
	if err != nil {
		return renderBadRequest(ctx, "invalid finished set uuid")
	}

	cmd, err := commands.NewCompleteOrderCommand(orderID, request.Status, finishedSetUUID, request.Comment)
	if err != nil {
		return renderError(ctx, err)
	}

	if handleErr := s.completeOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return renderError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// BreakOrder handles POST /api/v1/work_orders/:id/break - marks an order
// broken after a failed submission or a LIMS fault.
func (s *Server) BreakOrder(ctx echo.Context) error {
	order, err := s.writableOrder(ctx)
	if err != nil || order == nil {
		return err
	}

	cmd, err := commands.NewBreakOrderCommand(order.ID())
	if err != nil {
		return renderError(ctx, err)
	}

	if handleErr := s.breakOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return renderError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RepairOrder handles POST /api/v1/work_orders/:id/repair - administrative
// recovery of a broken order back to queued or active.
func (s *Server) RepairOrder(ctx echo.Context) error {
	order, err := s.writableOrder(ctx)
	if err != nil || order == nil {
		return err
	}

	var request RepairOrderRequest
	if bindErr := ctx.Bind(&request); bindErr != nil {
		return renderBadRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewRepairOrderCommand(order.ID(), request.Target)
	if err != nil {
		return renderError(ctx, err)
	}

	if handleErr := s.repairOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return renderError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// writableOrder loads the order named by the :id parameter and checks the
// requesting user's write access to the order's plan. A nil order with a nil
// error means the response has already been written.
func (s *Server) writableOrder(ctx echo.Context) (*workorder.WorkOrder, error) {
	user, err := userFromRequest(ctx)
	if err != nil {
		return nil, renderError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return nil, renderBadRequest(ctx, "invalid order id")
	}

	order, err := s.orders.Get(ctx.Request().Context(), orderID)
	if err != nil {
		return nil, renderError(ctx, err)
	}

	plan, err := s.plans.Get(ctx.Request().Context(), order.PlanID())
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

	return order, nil
}
