package commands_test

import (
	"context"

	"workplans/internal/core/application/usecases/commands"
	"workplans/internal/core/domain/model/catalog"
	"workplans/internal/core/domain/model/kernel"
	"workplans/internal/core/domain/model/remote"
	"workplans/internal/core/domain/model/submission"
	"workplans/internal/core/domain/model/workorder"
	"workplans/internal/core/domain/model/workplan"
	"workplans/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockPlanRepository struct{ mock.Mock }

func (m *MockPlanRepository) Add(ctx context.Context, p *workplan.WorkPlan) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPlanRepository) Update(ctx context.Context, p *workplan.WorkPlan) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPlanRepository) Get(ctx context.Context, id kernel.UUID) (*workplan.WorkPlan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workplan.WorkPlan), args.Error(1)
}

func (m *MockPlanRepository) GetByOwner(ctx context.Context, owner kernel.Email) ([]*workplan.WorkPlan, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*workplan.WorkPlan), args.Error(1)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *workorder.WorkOrder) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *workorder.WorkOrder) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*workorder.WorkOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workorder.WorkOrder), args.Error(1)
}

func (m *MockOrderRepository) GetByPlanAndStage(ctx context.Context, planID kernel.UUID, stageIndex int) (*workorder.WorkOrder, error) {
	args := m.Called(ctx, planID, stageIndex)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workorder.WorkOrder), args.Error(1)
}

func (m *MockOrderRepository) GetFirstReadyForSubmission(ctx context.Context) (*workorder.WorkOrder, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workorder.WorkOrder), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) PlanRepository() ports.PlanRepository {
	args := m.Called()
	return args.Get(0).(ports.PlanRepository)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockPlanUoWFactory struct{ mock.Mock }

func (m *MockPlanUoWFactory) Create() commands.PlanUoW {
	args := m.Called()
	return args.Get(0).(commands.PlanUoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockCatalogueRepository struct{ mock.Mock }

func (m *MockCatalogueRepository) GetProduct(ctx context.Context, id kernel.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockCatalogueRepository) GetAvailableProducts(ctx context.Context) ([]*catalog.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Product), args.Error(1)
}

type MockSetGateway struct{ mock.Mock }

func (m *MockSetGateway) Find(ctx context.Context, setUUID kernel.UUID) (*remote.Set, error) {
	args := m.Called(ctx, setUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*remote.Set), args.Error(1)
}

func (m *MockSetGateway) FindWithMaterials(ctx context.Context, setUUID kernel.UUID) (*remote.Set, error) {
	args := m.Called(ctx, setUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*remote.Set), args.Error(1)
}

func (m *MockSetGateway) CreateLockedClone(ctx context.Context, setUUID kernel.UUID, name string) (*remote.Set, error) {
	args := m.Called(ctx, setUUID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*remote.Set), args.Error(1)
}

type MockSubmissionChannel struct{ mock.Mock }

func (m *MockSubmissionChannel) Post(ctx context.Context, url string, doc *submission.Document) error {
	args := m.Called(ctx, url, doc)
	return args.Error(0)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, event workorder.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockSubmissionBuilder struct{ mock.Mock }

func (m *MockSubmissionBuilder) Build(
	ctx context.Context,
	orderID kernel.UUID,
) (*submission.Document, string, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*submission.Document), args.String(1), args.Error(2)
}

type MockOrderSubmitter struct{ mock.Mock }

func (m *MockOrderSubmitter) Handle(ctx context.Context, cmd commands.SubmitOrderCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}
