// Package workorderrepo provides data transfer objects and mapping functions
// for work order persistence. This package implements the repository pattern
// for the work order domain aggregate, handling the conversion between domain
// entities and database representations.
package workorderrepo

import (
	"time"

	"workplans/internal/core/domain/model/kernel"
	"workplans/internal/core/domain/model/workorder"

	"github.com/google/uuid"
)

// WorkOrderDTO represents the database structure for persisting work order
// aggregates. Maps work order domain entities to relational database tables
// with proper indexing for submission scheduling queries.
//
// Status is stored as its lowercase string name so the submission scheduler
// and listing queries can match on it without knowing enum values.
type WorkOrderDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	PlanID          uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:idx_plan_stage,priority:1"`
	StageIndex      int        `gorm:"type:int;not null;uniqueIndex:idx_plan_stage,priority:2"`
	ProcessID       uuid.UUID  `gorm:"type:uuid;not null"`
	ProcessName     string     `gorm:"type:varchar(255);not null"`
	Status          string     `gorm:"type:varchar(32);not null;index"`
	SetUUID         *uuid.UUID `gorm:"type:uuid"`
	OriginalSetUUID *uuid.UUID `gorm:"type:uuid"`
	FinishedSetUUID *uuid.UUID `gorm:"type:uuid"`
	Comment         string     `gorm:"type:text"`
	DesiredDate     *time.Time
	CreatedAt       time.Time
	ModuleChoices   []ModuleChoiceDTO `gorm:"foreignKey:WorkOrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for work order entities.
// Overrides GORM's default naming convention to use "work_orders".
func (WorkOrderDTO) TableName() string {
	return "work_orders"
}

// ModuleChoiceDTO represents the database structure for persisting the module
// choices of a work order's stage. Choices have no identity of their own; the
// (work order, position) pair is the primary key.
type ModuleChoiceDTO struct {
	WorkOrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position      int       `gorm:"type:int;primaryKey"`
	ModuleID      uuid.UUID `gorm:"type:uuid;not null"`
	Name          string    `gorm:"type:varchar(255);not null"`
	SelectedValue *int      `gorm:"type:int"`
}

// TableName specifies the database table name for module choice entities.
// Overrides GORM's default naming convention to use "work_order_module_choices".
func (ModuleChoiceDTO) TableName() string {
	return "work_order_module_choices"
}

// FromDomain converts a work order domain aggregate to its database
// representation. Exported because the plan repository persists orders as
// part of the plan aggregate.
func FromDomain(ord *workorder.WorkOrder) WorkOrderDTO {
	orderID := ord.ID().Bytes()
	choices := make([]ModuleChoiceDTO, 0, len(ord.ModuleChoices()))
	for _, choice := range ord.ModuleChoices() {
		choices = append(choices, ModuleChoiceDTO{
			WorkOrderID:   orderID,
			Position:      choice.Position(),
			ModuleID:      choice.ModuleID().Bytes(),
			Name:          choice.Name(),
			SelectedValue: choice.SelectedValue(),
		})
	}

	return WorkOrderDTO{
		ID:              orderID,
		PlanID:          ord.PlanID().Bytes(),
		StageIndex:      ord.StageIndex(),
		ProcessID:       ord.ProcessID().Bytes(),
		ProcessName:     ord.ProcessName(),
		Status:          ord.Status().String(),
		SetUUID:         optionalBytes(ord.WorkingSet()),
		OriginalSetUUID: optionalBytes(ord.OriginalSet()),
		FinishedSetUUID: optionalBytes(ord.FinishedSet()),
		Comment:         ord.Comment(),
		DesiredDate:     ord.DesiredDate(),
		ModuleChoices:   choices,
	}
}

// ToDomain converts a database DTO to a work order domain aggregate.
// Reconstructs the complete aggregate including module choices using
// RestoreWorkOrder.
func ToDomain(dto WorkOrderDTO) (*workorder.WorkOrder, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	planID, err := kernel.UUIDFromBytes(dto.PlanID[:])
	if err != nil {
		return nil, err
	}

	processID, err := kernel.UUIDFromBytes(dto.ProcessID[:])
	if err != nil {
		return nil, err
	}

	status, err := workorder.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	setUUID, err := optionalUUID(dto.SetUUID)
	if err != nil {
		return nil, err
	}
	originalSetUUID, err := optionalUUID(dto.OriginalSetUUID)
	if err != nil {
		return nil, err
	}
	finishedSetUUID, err := optionalUUID(dto.FinishedSetUUID)
	if err != nil {
		return nil, err
	}

	choices := make([]workorder.ModuleChoice, 0, len(dto.ModuleChoices))
	for _, choiceDto := range dto.ModuleChoices {
		choice, choiceErr := choiceToDomain(choiceDto)
		if choiceErr != nil {
			return nil, choiceErr
		}
		choices = append(choices, choice)
	}

	return workorder.RestoreWorkOrder(
		id,
		planID,
		dto.StageIndex,
		processID,
		dto.ProcessName,
		status,
		setUUID,
		originalSetUUID,
		finishedSetUUID,
		dto.Comment,
		dto.DesiredDate,
		choices,
	)
}

// choiceToDomain converts a module choice DTO to its domain value object.
func choiceToDomain(dto ModuleChoiceDTO) (workorder.ModuleChoice, error) {
	moduleID, err := kernel.UUIDFromBytes(dto.ModuleID[:])
	if err != nil {
		return workorder.ModuleChoice{}, err
	}

	return workorder.NewModuleChoice(moduleID, dto.Name, dto.Position, dto.SelectedValue)
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
