package workorderrepo

import (
	"context"
	"errors"

	"workplans/internal/core/domain/model/kernel"
	"workplans/internal/core/domain/model/workorder"
	"workplans/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormWorkOrderRepository implements OrderRepository using GORM.
type GormWorkOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormWorkOrderRepository creates a new GORM work order repository.
func NewGormWorkOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormWorkOrderRepository {
	return &GormWorkOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new work order to the database.
func (r *GormWorkOrderRepository) Add(ctx context.Context, aggregate *workorder.WorkOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := FromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing work order to the database.
func (r *GormWorkOrderRepository) Update(ctx context.Context, aggregate *workorder.WorkOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := FromDomain(aggregate)

	// Use Session with FullSaveAssociations to properly update module choices
	result := r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a work order by ID.
func (r *GormWorkOrderRepository) Get(ctx context.Context, id kernel.UUID) (*workorder.WorkOrder, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto WorkOrderDTO
	if err := r.db.WithContext(ctx).
		Preload("ModuleChoices").
		First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("work order", id.String())
		}
		return nil, err
	}

	return ToDomain(dto)
}

// GetByPlanAndStage retrieves the order at the given stage of a plan.
func (r *GormWorkOrderRepository) GetByPlanAndStage(ctx context.Context, planID kernel.UUID, stageIndex int) (*workorder.WorkOrder, error) {
	if err := planID.Validate(); err != nil {
		return nil, err
	}

	var dto WorkOrderDTO
	if err := r.db.WithContext(ctx).
		Preload("ModuleChoices").
		Where("plan_id = ? AND stage_index = ?", planID.Bytes(), stageIndex).
		First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("work order", planID.String())
		}
		return nil, err
	}

	return ToDomain(dto)
}

// GetFirstReadyForSubmission retrieves the oldest queued order whose plan is
// ready to act on it: the plan has a project, is not cancelled, every earlier
// stage of the plan has completed, and the order carries a working set.
//
// Example:
//
//	ord, err := repo.GetFirstReadyForSubmission(ctx)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//		return nil // nothing to submit right now
//	}
func (r *GormWorkOrderRepository) GetFirstReadyForSubmission(ctx context.Context) (*workorder.WorkOrder, error) {
	var dto WorkOrderDTO
	if err := r.db.WithContext(ctx).
		Preload("ModuleChoices").
		Joins("JOIN work_plans ON work_plans.id = work_orders.plan_id").
		Where("work_orders.status = ?", workorder.Queued.String()).
		Where("work_orders.set_uuid IS NOT NULL").
		Where("work_plans.project_id IS NOT NULL").
		Where("work_plans.cancelled_at IS NULL").
		Where(`NOT EXISTS (
			SELECT 1 FROM work_orders prior
			WHERE prior.plan_id = work_orders.plan_id
			AND prior.stage_index < work_orders.stage_index
			AND prior.status <> ?
		)`, workorder.Completed.String()).
		Order("work_orders.created_at").
		First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("work order", "first ready for submission")
		}
		return nil, err
	}

	return ToDomain(dto)
}
