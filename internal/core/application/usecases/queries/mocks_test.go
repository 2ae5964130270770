package queries_test

import (
	"context"

	"workplans/internal/core/domain/model/catalog"
	"workplans/internal/core/domain/model/kernel"
	"workplans/internal/core/domain/model/remote"
	"workplans/internal/core/domain/model/workorder"
	"workplans/internal/core/domain/model/workplan"
	"workplans/internal/pkg/pagination"

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

type MockMaterialGateway struct{ mock.Mock }

func (m *MockMaterialGateway) QueryByIDs(
	ctx context.Context,
	materialIDs []string,
) (pagination.Cursor[*remote.Material], error) {
	args := m.Called(ctx, materialIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pagination.Cursor[*remote.Material]), args.Error(1)
}

type MockContainerGateway struct{ mock.Mock }

func (m *MockContainerGateway) QueryBySlotMaterialIDs(
	ctx context.Context,
	materialIDs []string,
) (pagination.Cursor[*remote.Container], error) {
	args := m.Called(ctx, materialIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pagination.Cursor[*remote.Container]), args.Error(1)
}

type MockStudyGateway struct{ mock.Mock }

func (m *MockStudyGateway) FindNode(ctx context.Context, nodeID int64) (*remote.ProjectNode, error) {
	args := m.Called(ctx, nodeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*remote.ProjectNode), args.Error(1)
}

func (m *MockStudyGateway) HasSpendPermission(
	ctx context.Context,
	user kernel.User,
	nodeID int64,
) (bool, error) {
	args := m.Called(ctx, user, nodeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStudyGateway) SpendableProjectIDs(ctx context.Context, user kernel.User) ([]int64, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}
