// Package http is the inbound HTTP adapter: an echo server exposing the work
// plan lifecycle, the work order callbacks for the execution systems, the
// submission preview, the product catalogue and the operational endpoints.
package http

import (
	"net/http"

	"workplans/internal/core/application/usecases/commands"
	"workplans/internal/core/application/usecases/queries"
	"workplans/internal/core/domain/services"
	"workplans/internal/core/ports"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server coordinates between HTTP handlers and application use cases.
// Write access to a plan and its orders is checked here, before the command
// is issued; the command handlers themselves do not know about users.
type Server struct {
	// Command handlers
	createPlanHandler    commands.CreatePlanCommandHandler
	updatePlanHandler    commands.UpdatePlanCommandHandler
	cancelPlanHandler    commands.CancelPlanCommandHandler
	lockSetHandler       commands.LockSetCommandHandler
	dispatchHandler      commands.DispatchOrdersCommandHandler
	submitOrderHandler   commands.SubmitOrderCommandHandler
	completeOrderHandler commands.CompleteOrderCommandHandler
	breakOrderHandler    commands.BreakOrderCommandHandler
	repairOrderHandler   commands.RepairOrderCommandHandler

	// Query handlers
	planListingHandler queries.GetPlansForUserQueryHandler
	planStatusHandler  queries.GetPlanStatusQueryHandler
	submissionHandler  queries.BuildSubmissionQueryHandler

	// Read-side collaborators for permission checks and catalogue reads
	plans       ports.PlanRepository
	orders      ports.OrderRepository
	catalogue   ports.CatalogueRepository
	studies     ports.StudyGateway
	permissions *services.PermissionEvaluator
}

// Deps groups the collaborators of the HTTP server.
type Deps struct {
	CreatePlanHandler    commands.CreatePlanCommandHandler
	UpdatePlanHandler    commands.UpdatePlanCommandHandler
	CancelPlanHandler    commands.CancelPlanCommandHandler
	LockSetHandler       commands.LockSetCommandHandler
	DispatchHandler      commands.DispatchOrdersCommandHandler
	SubmitOrderHandler   commands.SubmitOrderCommandHandler
	CompleteOrderHandler commands.CompleteOrderCommandHandler
	BreakOrderHandler    commands.BreakOrderCommandHandler
	RepairOrderHandler   commands.RepairOrderCommandHandler

	PlanListingHandler queries.GetPlansForUserQueryHandler
	PlanStatusHandler  queries.GetPlanStatusQueryHandler
	SubmissionHandler  queries.BuildSubmissionQueryHandler

	Plans       ports.PlanRepository
	Orders      ports.OrderRepository
	Catalogue   ports.CatalogueRepository
	Studies     ports.StudyGateway
	Permissions *services.PermissionEvaluator
}

// NewServer creates a new HTTP server with the required command and query
// handlers.
func NewServer(deps Deps) *Server {
	return &Server{
		createPlanHandler:    deps.CreatePlanHandler,
		updatePlanHandler:    deps.UpdatePlanHandler,
		cancelPlanHandler:    deps.CancelPlanHandler,
		lockSetHandler:       deps.LockSetHandler,
		dispatchHandler:      deps.DispatchHandler,
		submitOrderHandler:   deps.SubmitOrderHandler,
		completeOrderHandler: deps.CompleteOrderHandler,
		breakOrderHandler:    deps.BreakOrderHandler,
		repairOrderHandler:   deps.RepairOrderHandler,
		planListingHandler:   deps.PlanListingHandler,
		planStatusHandler:    deps.PlanStatusHandler,
		submissionHandler:    deps.SubmissionHandler,
		plans:                deps.Plans,
		orders:               deps.Orders,
		catalogue:            deps.Catalogue,
		studies:              deps.Studies,
		permissions:          deps.Permissions,
	}
}

// RegisterRoutes wires the server's handlers into the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")
	api.GET("/products", s.GetProducts)

	api.POST("/work_plans", s.CreatePlan)
	api.GET("/work_plans", s.GetPlans)
	api.GET("/work_plans/:id", s.GetPlan)
	api.PUT("/work_plans/:id", s.UpdatePlan)
	api.POST("/work_plans/:id/cancel", s.CancelPlan)
	api.POST("/work_plans/:id/lock_set", s.LockSet)
	api.POST("/work_plans/:id/dispatch", s.DispatchOrders)

	api.GET("/work_orders/:id/submission", s.GetSubmissionPreview)
	api.POST("/work_orders/:id/submit", s.SubmitOrder)
	api.POST("/work_orders/:id/complete", s.CompleteOrder)
	api.POST("/work_orders/:id/break", s.BreakOrder)
	api.POST("/work_orders/:id/repair", s.RepairOrder)
}

// Health handles GET /health - liveness probe.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
