package cmd

import (
	"context"
	"fmt"
	"log/slog"

	httpin "workplans/internal/adapters/in/http"
	"workplans/internal/adapters/out/catalogue"
	"workplans/internal/adapters/out/limssrv"
	"workplans/internal/adapters/out/matconsrv"
	"workplans/internal/adapters/out/natsevents"
	"workplans/internal/adapters/out/postgres"
	"workplans/internal/adapters/out/setsrv"
	"workplans/internal/adapters/out/studysrv"
	"workplans/internal/core/application/usecases/commands"
	"workplans/internal/core/application/usecases/queries"
	"workplans/internal/core/domain/model/kernel"
	"workplans/internal/core/domain/model/submission"
	"workplans/internal/core/domain/services"
	"workplans/internal/jobs"

	"github.com/nats-io/nats.go"
	"gorm.io/gorm"
)

// CompositionRoot wires the adapters into the use cases. One instance per
// process; every Create method hands out a fresh handler over the shared
// infrastructure.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	catalogueRepo     *catalogue.FileRepository
	setGateway        *setsrv.Client
	matconGateway     *matconsrv.Client
	studyGateway      *studysrv.Client
	submissionChannel *limssrv.Channel
	eventPublisher    *natsevents.Publisher
}

// NewCompositionRoot builds the shared infrastructure: the unit of work
// factory, the catalogue index, the remote service clients and the NATS
// publisher.
func NewCompositionRoot(config Config, gormDB *gorm.DB) (*CompositionRoot, error) {
	catalogueRepo, err := catalogue.NewFileRepository(config.CataloguePath)
	if err != nil {
		return nil, fmt.Errorf("load catalogue: %w", err)
	}

	natsConn, err := nats.Connect(config.NatsURL)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	return &CompositionRoot{
		config:            config,
		gormDB:            gormDB,
		uowFactory:        *postgres.NewGormUnitOfWorkFactory(gormDB),
		catalogueRepo:     catalogueRepo,
		setGateway:        setsrv.NewClient(config.SetServiceURL, config.RemoteTimeout),
		matconGateway:     matconsrv.NewClient(config.MaterialsServiceURL, config.RemoteTimeout),
		studyGateway:      studysrv.NewClient(config.StudyServiceURL, config.RemoteTimeout),
		submissionChannel: limssrv.NewChannel(config.RemoteTimeout),
		eventPublisher:    natsevents.NewPublisher(natsConn),
	}, nil
}

func (c *CompositionRoot) CreateCreatePlanCommandHandler() commands.CreatePlanCommandHandler {
	return commands.NewCreatePlanCommandHandler(c.planUoWFactory())
}

func (c *CompositionRoot) CreateUpdatePlanCommandHandler() commands.UpdatePlanCommandHandler {
	return commands.NewUpdatePlanCommandHandler(c.planUoWFactory())
}

func (c *CompositionRoot) CreateCancelPlanCommandHandler() commands.CancelPlanCommandHandler {
	return commands.NewCancelPlanCommandHandler(c.planUoWFactory())
}

func (c *CompositionRoot) CreateLockSetCommandHandler() commands.LockSetCommandHandler {
	return commands.NewLockSetCommandHandler(c.planUoWFactory(), c.setGateway)
}

func (c *CompositionRoot) CreateDispatchOrdersCommandHandler() commands.DispatchOrdersCommandHandler {
	return commands.NewDispatchOrdersCommandHandler(c.planUoWFactory(), c.catalogueRepo)
}

func (c *CompositionRoot) CreateSubmitOrderCommandHandler() commands.SubmitOrderCommandHandler {
	builder := submissionBuilder{handler: c.CreateBuildSubmissionQueryHandler()}
	return commands.NewSubmitOrderCommandHandler(
		c.orderUoWFactory(),
		builder,
		c.submissionChannel,
		c.eventPublisher,
	)
}

func (c *CompositionRoot) CreateSubmitNextOrderCommandHandler() commands.SubmitNextOrderCommandHandler {
	submitHandler := c.CreateSubmitOrderCommandHandler()
	return commands.NewSubmitNextOrderCommandHandler(c.orderUoWFactory(), &submitHandler)
}

func (c *CompositionRoot) CreateCompleteOrderCommandHandler() commands.CompleteOrderCommandHandler {
	return commands.NewCompleteOrderCommandHandler(c.orderUoWFactory(), c.eventPublisher)
}

func (c *CompositionRoot) CreateBreakOrderCommandHandler() commands.BreakOrderCommandHandler {
	return commands.NewBreakOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateRepairOrderCommandHandler() commands.RepairOrderCommandHandler {
	return commands.NewRepairOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateGetPlansForUserQueryHandler() queries.GetPlansForUserQueryHandler {
	return queries.NewGetPlansForUserQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPlanStatusQueryHandler() queries.GetPlanStatusQueryHandler {
	return queries.NewGetPlanStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateBuildSubmissionQueryHandler() queries.BuildSubmissionQueryHandler {
	readSide := c.uowFactory.Create()
	return queries.NewBuildSubmissionQueryHandler(
		readSide.PlanRepository(),
		readSide.OrderRepository(),
		c.catalogueRepo,
		c.setGateway,
		c.matconGateway,
		c.matconGateway,
		c.studyGateway,
	)
}

// CreateHTTPServer assembles the inbound HTTP adapter over all handlers.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	readSide := c.uowFactory.Create()
	return httpin.NewServer(httpin.Deps{
		CreatePlanHandler:    c.CreateCreatePlanCommandHandler(),
		UpdatePlanHandler:    c.CreateUpdatePlanCommandHandler(),
		CancelPlanHandler:    c.CreateCancelPlanCommandHandler(),
		LockSetHandler:       c.CreateLockSetCommandHandler(),
		DispatchHandler:      c.CreateDispatchOrdersCommandHandler(),
		SubmitOrderHandler:   c.CreateSubmitOrderCommandHandler(),
		CompleteOrderHandler: c.CreateCompleteOrderCommandHandler(),
		BreakOrderHandler:    c.CreateBreakOrderCommandHandler(),
		RepairOrderHandler:   c.CreateRepairOrderCommandHandler(),
		PlanListingHandler:   c.CreateGetPlansForUserQueryHandler(),
		PlanStatusHandler:    c.CreateGetPlanStatusQueryHandler(),
		SubmissionHandler:    c.CreateBuildSubmissionQueryHandler(),
		Plans:                readSide.PlanRepository(),
		Orders:               readSide.OrderRepository(),
		Catalogue:            c.catalogueRepo,
		Studies:              c.studyGateway,
		Permissions:          services.NewPermissionEvaluator(c.studyGateway),
	})
}

// CreateJobManager assembles the background jobs.
func (c *CompositionRoot) CreateJobManager(logger *slog.Logger) *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateSubmitNextOrderCommandHandler(),
		c.config.SubmissionJobSchedule,
		logger,
	)
}

func (c *CompositionRoot) planUoWFactory() commands.PlanUoWFactory {
	return FuncPlanUoWFactory(func() commands.PlanUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

// submissionBuilder adapts the export assembler query to the command side's
// SubmissionBuilder port.
type submissionBuilder struct {
	handler queries.BuildSubmissionQueryHandler
}

func (b submissionBuilder) Build(
	ctx context.Context,
	orderID kernel.UUID,
) (*submission.Document, string, error) {
	query, err := queries.NewBuildSubmissionQuery(orderID, false)
	if err != nil {
		return nil, "", err
	}

	result, err := b.handler.Handle(ctx, query)
	if err != nil {
		return nil, "", err
	}

	return result.Document, result.LIMSURL, nil
}

type FuncPlanUoWFactory func() commands.PlanUoW

func (f FuncPlanUoWFactory) Create() commands.PlanUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
