package postgres_test

import (
	"context"
	"testing"

	postgres_adapter "workplans/internal/adapters/out/postgres"
	"workplans/internal/adapters/out/postgres/workorderrepo"
	"workplans/internal/adapters/out/postgres/workplanrepo"
	"workplans/internal/core/application/usecases/queries"
	"workplans/internal/core/domain/model/kernel"
	"workplans/internal/core/domain/model/workorder"
	"workplans/internal/core/domain/model/workplan"
	"workplans/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite provides integration testing for the
// GORM-based Unit of Work implementation with a real PostgreSQL database,
// plus the raw-SQL listing queries that read the same schema.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

// SetupSuite initializes PostgreSQL container and database connection for all tests.
// Runs database migrations to prepare schema for unit of work operations.
func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&workplanrepo.WorkPlanDTO{},
		&workorderrepo.WorkOrderDTO{},
		&workorderrepo.ModuleChoiceDTO{},
	)
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

// SetupTest ensures clean database state before each test.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE work_plans, work_orders, work_order_module_choices").Error
	suite.Require().NoError(err)
}

// TearDownSuite cleans up PostgreSQL container after all tests complete.
func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) createDispatchablePlan() *workplan.WorkPlan {
	owner, err := kernel.NewEmail("owner@sanger.ac.uk")
	suite.Require().NoError(err)
	plan, err := workplan.NewWorkPlan(kernel.NewUUID(), owner)
	suite.Require().NoError(err)
	suite.Require().NoError(plan.SetOriginalSet(kernel.NewUUID()))
	suite.Require().NoError(plan.SetProduct(kernel.NewUUID()))
	suite.Require().NoError(plan.SetProject(42))
	suite.Require().NoError(plan.SetLockedSet(kernel.NewUUID()))
	return plan
}

func (suite *UnitOfWorkIntegrationTestSuite) stageOrders(plan *workplan.WorkPlan) []*workorder.WorkOrder {
	first, err := workorder.NewWorkOrder(kernel.NewUUID(), plan.ID(), 0, kernel.NewUUID(), "QC")
	suite.Require().NoError(err)
	suite.Require().NoError(first.SetWorkingSet(*plan.LockedSet()))
	second, err := workorder.NewWorkOrder(kernel.NewUUID(), plan.ID(), 1, kernel.NewUUID(), "Library Prep")
	suite.Require().NoError(err)
	return []*workorder.WorkOrder{first, second}
}

// TestUnitOfWorkFactory_Create verifies factory creates unit of work instances
// with proper initialization and isolation between instances.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")
	suite.NotNil(uow1.PlanRepository(), "First instance should provide plan repository")
	suite.NotNil(uow1.OrderRepository(), "First instance should provide order repository")
	suite.NotNil(uow2.PlanRepository(), "Second instance should provide plan repository")
	suite.NotNil(uow2.OrderRepository(), "Second instance should provide order repository")
}

// TestUnitOfWork_TransactionLifecycle verifies proper transaction management
// including begin, commit, and rollback operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err, "Should begin transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err, "Multiple begin calls should be safe")

	err = uow.Commit(ctx)
	suite.Require().NoError(err, "Should commit transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err, "Should rollback transaction successfully")
}

// TestUnitOfWork_TransactionErrors verifies error handling for invalid transaction operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Commit(ctx)
	suite.Require().Error(err, "Should error when committing without active transaction")

	err = uow.Rollback(ctx)
	suite.Require().Error(err, "Should error when rolling back without active transaction")
}

// TestUnitOfWork_DispatchWorkflow verifies the dispatch write path: the plan
// and its freshly attached orders are persisted atomically within one
// transaction.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_DispatchWorkflow() {
	ctx := context.Background()
	uow := suite.factory.Create()

	plan := suite.createDispatchablePlan()
	err := uow.PlanRepository().Add(ctx, plan)
	suite.Require().NoError(err)

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	orders := suite.stageOrders(plan)
	suite.Require().NoError(plan.AttachOrders(orders))
	err = uow.PlanRepository().Update(ctx, plan)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	restored, err := newUow.PlanRepository().Get(ctx, plan.ID())
	suite.Require().NoError(err)
	suite.Require().Len(restored.Orders(), 2)
	suite.Equal(workorder.Queued, restored.Orders()[0].Status())
	suite.Equal(workplan.StatusConstruction, restored.Status())
}

// TestUnitOfWork_TransactionRollback verifies rollback discards all changes
// made within the transaction.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionRollback() {
	ctx := context.Background()
	uow := suite.factory.Create()

	plan := suite.createDispatchablePlan()

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.PlanRepository().Add(ctx, plan)
	suite.Require().NoError(err)

	_, err = uow.PlanRepository().Get(ctx, plan.ID())
	suite.Require().NoError(err, "Plan should be visible within the transaction")

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	_, err = newUow.PlanRepository().Get(ctx, plan.ID())
	suite.Require().Error(err, "Plan should not exist after rollback")
}

// TestUnitOfWork_RepositoryIsolation verifies that repositories obtained
// from different unit of work instances operate independently.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RepositoryIsolation() {
	ctx := context.Background()

	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	plan1 := suite.createDispatchablePlan()
	plan2 := suite.createDispatchablePlan()

	suite.Require().NoError(uow1.Begin(ctx))
	suite.Require().NoError(uow2.Begin(ctx))

	suite.Require().NoError(uow1.PlanRepository().Add(ctx, plan1))
	suite.Require().NoError(uow2.PlanRepository().Add(ctx, plan2))

	_, err := uow1.PlanRepository().Get(ctx, plan1.ID())
	suite.Require().NoError(err, "UOW1 should see plan1")
	_, err = uow1.PlanRepository().Get(ctx, plan2.ID())
	suite.Require().Error(err, "UOW1 should not see plan2")

	suite.Require().NoError(uow1.Commit(ctx))
	suite.Require().NoError(uow2.Rollback(ctx))

	newUow := suite.factory.Create()
	_, err = newUow.PlanRepository().Get(ctx, plan1.ID())
	suite.Require().NoError(err, "Plan1 should persist after commit")
	_, err = newUow.PlanRepository().Get(ctx, plan2.ID())
	suite.Require().Error(err, "Plan2 should not persist after rollback")
}

// TestUnitOfWork_WithoutTransaction verifies that repositories work correctly
// without explicit transaction boundaries for immediate operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WithoutTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	plan := suite.createDispatchablePlan()
	err := uow.PlanRepository().Add(ctx, plan)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	restored, err := newUow.PlanRepository().Get(ctx, plan.ID())
	suite.Require().NoError(err)
	suite.True(restored.ID().IsEqual(plan.ID()))
}

// TestListingQueries exercises the raw-SQL read side against the same schema
// the repositories write: per-user plan listing with derived statuses and the
// single-plan status view.
func (suite *UnitOfWorkIntegrationTestSuite) TestListingQueries() {
	ctx := context.Background()
	uow := suite.factory.Create()

	// Owned plan with one active and one queued order.
	plan := suite.createDispatchablePlan()
	orders := suite.stageOrders(plan)
	suite.Require().NoError(orders[0].Submit())
	suite.Require().NoError(plan.AttachOrders(orders))
	suite.Require().NoError(uow.PlanRepository().Add(ctx, plan))

	// Plan billed against a project this user can spend on, owned by someone else.
	otherOwner, err := kernel.NewEmail("other@sanger.ac.uk")
	suite.Require().NoError(err)
	shared, err := workplan.NewWorkPlan(kernel.NewUUID(), otherOwner)
	suite.Require().NoError(err)
	suite.Require().NoError(shared.SetProject(77))
	suite.Require().NoError(uow.PlanRepository().Add(ctx, shared))

	// Plan invisible to this user.
	hidden, err := workplan.NewWorkPlan(kernel.NewUUID(), otherOwner)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.PlanRepository().Add(ctx, hidden))

	email, err := kernel.NewEmail("owner@sanger.ac.uk")
	suite.Require().NoError(err)
	user, err := kernel.NewUser(email, nil)
	suite.Require().NoError(err)

	listQuery, err := queries.NewGetPlansForUserQuery(user, []int64{77})
	suite.Require().NoError(err)
	listing, err := queries.NewGetPlansForUserQueryHandler(suite.db).Handle(ctx, listQuery)
	suite.Require().NoError(err)
	suite.Require().Len(listing, 2)

	byID := make(map[kernel.UUID]queries.GetPlansForUserQueryResponse, len(listing))
	for _, row := range listing {
		byID[row.ID] = row
	}
	suite.Equal(workplan.StatusActive.String(), byID[plan.ID()].Status)
	suite.Equal(2, byID[plan.ID()].OrderCount)
	suite.Equal(workplan.StatusConstruction.String(), byID[shared.ID()].Status)

	statusQuery, err := queries.NewGetPlanStatusQuery(plan.ID())
	suite.Require().NoError(err)
	view, err := queries.NewGetPlanStatusQueryHandler(suite.db).Handle(ctx, statusQuery)
	suite.Require().NoError(err)
	suite.Equal(workplan.StatusActive.String(), view.Status)
	suite.Require().Len(view.Orders, 2)
	suite.Equal(workorder.Active.String(), view.Orders[0].Status)
	suite.Equal(workorder.Queued.String(), view.Orders[1].Status)
	suite.Equal(0, view.Orders[0].StageIndex)
	suite.Equal(1, view.Orders[1].StageIndex)

	missingQuery, err := queries.NewGetPlanStatusQuery(kernel.NewUUID())
	suite.Require().NoError(err)
	_, err = queries.NewGetPlanStatusQueryHandler(suite.db).Handle(ctx, missingQuery)
	suite.Require().Error(err, "Unknown plan should not resolve")
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
