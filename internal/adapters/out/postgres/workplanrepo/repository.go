package workplanrepo

import (
	"context"
	"errors"

	"workplans/internal/core/domain/model/kernel"
	"workplans/internal/core/domain/model/workplan"
	"workplans/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormWorkPlanRepository implements PlanRepository using GORM.
type GormWorkPlanRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormWorkPlanRepository creates a new GORM work plan repository.
func NewGormWorkPlanRepository(db *gorm.DB, tracker aggregateTracker) *GormWorkPlanRepository {
	return &GormWorkPlanRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new work plan to the database.
func (r *GormWorkPlanRepository) Add(ctx context.Context, aggregate *workplan.WorkPlan) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing work plan to the database, including any orders
// attached since the last save.
func (r *GormWorkPlanRepository) Update(ctx context.Context, aggregate *workplan.WorkPlan) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	// Use Session with FullSaveAssociations to properly update nested orders
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

// Get retrieves a work plan by ID, with its orders ordered by stage.
func (r *GormWorkPlanRepository) Get(ctx context.Context, id kernel.UUID) (*workplan.WorkPlan, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto WorkPlanDTO
	if err := r.db.WithContext(ctx).
		Preload("Orders", func(db *gorm.DB) *gorm.DB {
			return db.Order("work_orders.stage_index")
		}).
		Preload("Orders.ModuleChoices").
		First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("work plan", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByOwner retrieves all plans owned by the given email, newest first.
func (r *GormWorkPlanRepository) GetByOwner(ctx context.Context, owner kernel.Email) ([]*workplan.WorkPlan, error) {
	if err := owner.Validate(); err != nil {
		return nil, err
	}

	var dtos []WorkPlanDTO
	if err := r.db.WithContext(ctx).
		Preload("Orders", func(db *gorm.DB) *gorm.DB {
			return db.Order("work_orders.stage_index")
		}).
		Preload("Orders.ModuleChoices").
		Where("owner_email = ?", owner.String()).
		Order("created_at DESC").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	plans := make([]*workplan.WorkPlan, 0, len(dtos))
	for _, dto := range dtos {
		plan, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}

	return plans, nil
}
