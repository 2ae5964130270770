// Package workplanrepo provides data transfer objects and mapping functions
// for work plan persistence. Plans are the aggregate root: their orders and
// the orders' module choices are persisted and loaded together with the plan.
package workplanrepo

import (
	"time"

	"workplans/internal/adapters/out/postgres/workorderrepo"
	"workplans/internal/core/domain/model/kernel"
	"workplans/internal/core/domain/model/workorder"
	"workplans/internal/core/domain/model/workplan"

	"github.com/google/uuid"
)

// WorkPlanDTO represents the database structure for persisting work plan
// aggregates. The owner is stored as the normalized email string; the
// optional references fill in as the wizard progresses.
type WorkPlanDTO struct {
	ID                    uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OwnerEmail            string     `gorm:"type:varchar(255);not null;index"`
	ProductID             *uuid.UUID `gorm:"type:uuid"`
	ProjectID             *int64     `gorm:"type:bigint;index"`
	DataReleaseStrategyID *uuid.UUID `gorm:"type:uuid"`
	OriginalSetUUID       *uuid.UUID `gorm:"type:uuid"`
	LockedSetUUID         *uuid.UUID `gorm:"type:uuid"`
	CancelledAt           *time.Time
	CreatedAt             time.Time
	Orders                []workorderrepo.WorkOrderDTO `gorm:"foreignKey:PlanID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for work plan entities.
// Overrides GORM's default naming convention to use "work_plans".
func (WorkPlanDTO) TableName() string {
	return "work_plans"
}

// fromDomain converts a work plan domain aggregate to its database
// representation. Maps the plan and every order attached to it.
func fromDomain(plan *workplan.WorkPlan) WorkPlanDTO {
	orders := make([]workorderrepo.WorkOrderDTO, 0, len(plan.Orders()))
	for _, ord := range plan.Orders() {
		orders = append(orders, workorderrepo.FromDomain(ord))
	}

	return WorkPlanDTO{
		ID:                    plan.ID().Bytes(),
		OwnerEmail:            plan.Owner().String(),
		ProductID:             optionalBytes(plan.ProductID()),
		ProjectID:             plan.ProjectID(),
		DataReleaseStrategyID: optionalBytes(plan.DataReleaseStrategyID()),
		OriginalSetUUID:       optionalBytes(plan.OriginalSet()),
		LockedSetUUID:         optionalBytes(plan.LockedSet()),
		CancelledAt:           plan.CancelledAt(),
		Orders:                orders,
	}
}

// toDomain converts a database DTO to a work plan domain aggregate.
// Reconstructs the complete aggregate including orders using RestoreWorkPlan.
func toDomain(dto WorkPlanDTO) (*workplan.WorkPlan, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	owner, err := kernel.NewEmail(dto.OwnerEmail)
	if err != nil {
		return nil, err
	}

	productID, err := optionalUUID(dto.ProductID)
	if err != nil {
		return nil, err
	}
	strategyID, err := optionalUUID(dto.DataReleaseStrategyID)
	if err != nil {
		return nil, err
	}
	originalSetUUID, err := optionalUUID(dto.OriginalSetUUID)
	if err != nil {
		return nil, err
	}
	lockedSetUUID, err := optionalUUID(dto.LockedSetUUID)
	if err != nil {
		return nil, err
	}

	orders := make([]*workorder.WorkOrder, 0, len(dto.Orders))
	for _, orderDto := range dto.Orders {
		ord, orderErr := workorderrepo.ToDomain(orderDto)
		if orderErr != nil {
			return nil, orderErr
		}
		orders = append(orders, ord)
	}

	return workplan.RestoreWorkPlan(
		id,
		owner,
		productID,
		dto.ProjectID,
		strategyID,
		originalSetUUID,
		lockedSetUUID,
		dto.CancelledAt,
		orders,
	)
}

func optionalBytes(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}

	raw := id.Bytes()
	return &raw
}

func optionalUUID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}

	id, err := kernel.UUIDFromBytes((*raw)[:])
	if err != nil {
		return nil, err
	}

	return &id, nil
}
