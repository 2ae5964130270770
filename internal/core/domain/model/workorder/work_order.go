package workorder

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"workplans/internal/core/domain/model/kernel"
	"workplans/internal/pkg/errs"
)

var (
	// ErrWorkOrderIsNotConstructed is returned when a WorkOrder instance was not
	// created through the NewWorkOrder factory method. This ensures all orders
	// are properly validated.
	ErrWorkOrderIsNotConstructed = errors.New("WorkOrder must be created via NewWorkOrder constructor")
)

// WorkOrder represents one processing stage of a work plan. It is the
// aggregate root that manages the stage's identity, its module choices and
// its lifecycle from dispatch through submission to closure.
//
// WorkOrder follows these invariants:
//   - Must have a valid unique identifier and owning plan reference
//   - Stage index is unique within a plan and defines dispatch order
//   - Status transitions follow the Status state machine
//   - Can only be created through the NewWorkOrder constructor
//
// The WorkOrder struct uses private fields to ensure encapsulation and
// maintains its invariants through validated methods.
type WorkOrder struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// planID references the owning work plan
	planID kernel.UUID

	// stageIndex is the 0-based position within the plan
	stageIndex int

	// processID references the product-defined process for this stage
	processID kernel.UUID

	// processName is the process display name, used in status summaries
	processName string

	// status is the current state in the order lifecycle
	status Status

	// setUUID references the working input sample collection (nil until known)
	setUUID *kernel.UUID

	// originalSetUUID references the unlocked set the working set was cloned from
	originalSetUUID *kernel.UUID

	// finishedSetUUID references the result set reported at closure
	finishedSetUUID *kernel.UUID

	// comment is free text attached to the order
	comment string

	// desiredDate is the requested completion date, when given
	desiredDate *time.Time

	// moduleChoices are the stage's ordered module selections
	moduleChoices []ModuleChoice

	// isConstructed ensures the order was created via NewWorkOrder
	isConstructed bool
}

// NewWorkOrder creates a new WorkOrder in Queued status. This is the only way
// to create a valid WorkOrder, ensuring all business invariants are
// maintained. Orders are created in bulk at plan dispatch; set references,
// comment and module choices are attached through setters afterwards.
//
// Parameters:
//   - id: Unique identifier for the order (must be valid)
//   - planID: Identifier of the owning work plan (must be valid)
//   - stageIndex: 0-based position within the plan (must not be negative)
//   - processID: Catalogue identifier of the stage's process (must be valid)
//   - processName: Process display name (must not be empty)
func NewWorkOrder(
	id kernel.UUID,
	planID kernel.UUID,
	stageIndex int,
	processID kernel.UUID,
	processName string,
) (*WorkOrder, error) {
	wo := &WorkOrder{
		status:        Queued,
		isConstructed: true,
	}

	if err := errors.Join(
		wo.setID(id),
		wo.setPlanID(planID),
		wo.setStageIndex(stageIndex),
		wo.setProcess(processID, processName),
	); err != nil {
		return nil, err
	}

	return wo, nil
}

// RestoreWorkOrder reconstructs a WorkOrder from persisted state. It is used
// by repositories and validates the restored status.
func RestoreWorkOrder(
	id kernel.UUID,
	planID kernel.UUID,
	stageIndex int,
	processID kernel.UUID,
	processName string,
	status Status,
	setUUID *kernel.UUID,
	originalSetUUID *kernel.UUID,
	finishedSetUUID *kernel.UUID,
	comment string,
	desiredDate *time.Time,
	moduleChoices []ModuleChoice,
) (*WorkOrder, error) {
	wo, err := NewWorkOrder(id, planID, stageIndex, processID, processName)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}
	wo.status = status

	wo.setUUID = setUUID
	wo.originalSetUUID = originalSetUUID
	wo.finishedSetUUID = finishedSetUUID
	wo.comment = comment
	wo.desiredDate = desiredDate

	if err = wo.SetModuleChoices(moduleChoices); err != nil {
		return nil, err
	}

	return wo, nil
}

// Validate ensures the WorkOrder instance was properly constructed through
// NewWorkOrder. This prevents bypassing validation by directly instantiating
// the struct.
func (o *WorkOrder) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrWorkOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two work orders by their unique identifiers.
func (o *WorkOrder) IsEqual(other *WorkOrder) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *WorkOrder) ID() kernel.UUID {
	return o.id
}

// PlanID returns the identifier of the owning work plan.
func (o *WorkOrder) PlanID() kernel.UUID {
	return o.planID
}

// StageIndex returns the order's 0-based position within its plan.
func (o *WorkOrder) StageIndex() int {
	return o.stageIndex
}

// ProcessID returns the catalogue identifier of the stage's process.
func (o *WorkOrder) ProcessID() kernel.UUID {
	return o.processID
}

// ProcessName returns the process display name.
func (o *WorkOrder) ProcessName() string {
	return o.processName
}

// Status returns the current status of the order.
func (o *WorkOrder) Status() Status {
	return o.status
}

// WorkingSet returns the working input set reference, or nil if not yet set.
func (o *WorkOrder) WorkingSet() *kernel.UUID {
	return o.setUUID
}

// OriginalSet returns the original set reference, or nil if none.
func (o *WorkOrder) OriginalSet() *kernel.UUID {
	return o.originalSetUUID
}

// FinishedSet returns the finished set reference reported at closure, or nil.
func (o *WorkOrder) FinishedSet() *kernel.UUID {
	return o.finishedSetUUID
}

// Comment returns the free-text comment attached to the order.
func (o *WorkOrder) Comment() string {
	return o.comment
}

// DesiredDate returns the requested completion date, or nil if none.
func (o *WorkOrder) DesiredDate() *time.Time {
	return o.desiredDate
}

// ModuleChoices returns a copy of the stage's module choices in position order.
func (o *WorkOrder) ModuleChoices() []ModuleChoice {
	choices := make([]ModuleChoice, len(o.moduleChoices))
	copy(choices, o.moduleChoices)
	return choices
}

// ModuleNames returns the names of the stage's module choices in position
// order, as carried into the submission document.
func (o *WorkOrder) ModuleNames() []string {
	names := make([]string, 0, len(o.moduleChoices))
	for _, c := range o.moduleChoices {
		names = append(names, c.Name())
	}
	return names
}

// Name returns the order's display name.
func (o *WorkOrder) Name() string {
	return fmt.Sprintf("Work Order %s", o.id)
}

// Pending reports whether the order's own configuration is still incomplete,
// i.e. the order has not yet been submitted, broken or closed.
func (o *WorkOrder) Pending() bool {
	return o.status != Active && o.status != Broken && o.status != Completed && o.status != Cancelled
}

// IsActive reports whether the order has been submitted and awaits closure.
func (o *WorkOrder) IsActive() bool {
	return o.status == Active
}

// Closed reports whether the order has been completed or cancelled.
func (o *WorkOrder) Closed() bool {
	return o.status.Closed()
}

// IsBroken reports whether the order suffered an unrecoverable failure.
func (o *WorkOrder) IsBroken() bool {
	return o.status == Broken
}

// SetWorkingSet attaches the working input set reference.
func (o *WorkOrder) SetWorkingSet(setUUID kernel.UUID) error {
	if err := setUUID.Validate(); err != nil {
		return err
	}
	o.setUUID = &setUUID
	return nil
}

// SetOriginalSet attaches the original (unlocked) set reference.
func (o *WorkOrder) SetOriginalSet(setUUID kernel.UUID) error {
	if err := setUUID.Validate(); err != nil {
		return err
	}
	o.originalSetUUID = &setUUID
	return nil
}

// SetFinishedSet attaches the finished set reference reported at closure.
func (o *WorkOrder) SetFinishedSet(setUUID kernel.UUID) error {
	if err := setUUID.Validate(); err != nil {
		return err
	}
	o.finishedSetUUID = &setUUID
	return nil
}

// SetComment attaches a free-text comment to the order.
func (o *WorkOrder) SetComment(comment string) {
	o.comment = comment
}

// SetDesiredDate attaches the requested completion date.
func (o *WorkOrder) SetDesiredDate(date time.Time) {
	o.desiredDate = &date
}

// SetModuleChoices replaces the stage's module choices. Choices are stored
// sorted by position; positions must be unique within the stage.
func (o *WorkOrder) SetModuleChoices(choices []ModuleChoice) error {
	sorted := make([]ModuleChoice, len(choices))
	copy(sorted, choices)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Position() < sorted[j].Position()
	})

	seen := make(map[int]bool, len(sorted))
	for _, c := range sorted {
		if err := c.Validate(); err != nil {
			return err
		}
		if seen[c.Position()] {
			return errs.NewValueIsInvalidErrorWithCause(
				"module choices are invalid",
				fmt.Errorf("position %d appears more than once", c.Position()),
			)
		}
		seen[c.Position()] = true
	}

	o.moduleChoices = sorted
	return nil
}

// Submit marks the order as submitted to the execution system.
//
// Business rules:
//   - The order must be in Queued status
//
// Returns an error wrapping ErrInvalidState if the transition is not allowed.
func (o *WorkOrder) Submit() error {
	newStatus, err := o.status.Submit()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Complete marks the order as completed after the execution system reported
// successful closure.
//
// Business rules:
//   - The order must be in Active status
//   - Completed is a final state with no further transitions
//
// Returns an error wrapping ErrInvalidState if the transition is not allowed.
func (o *WorkOrder) Complete() error {
	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Cancel marks the order as cancelled after the execution system reported
// cancellation.
//
// Business rules:
//   - The order must be in Active status
//   - Cancelled is a final state with no further transitions
//
// Returns an error wrapping ErrInvalidState if the transition is not allowed.
func (o *WorkOrder) Cancel() error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Break marks the order as broken after an unrecoverable processing failure.
// This is a one-way write with no side effects beyond the status flag;
// callers must not assume automatic compensation.
//
// Returns an error wrapping ErrInvalidState if the order is already terminal.
func (o *WorkOrder) Break() error {
	newStatus, err := o.status.Break()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Repair resets a broken order to a valid prior state. This is the manual
// administrative path; it is never invoked automatically.
//
// Parameters:
//   - target: The state to restore, Queued or Active only
//
// Returns an error wrapping ErrInvalidState if the order is not broken or
// the target is not a valid prior state.
func (o *WorkOrder) Repair(target Status) error {
	newStatus, err := o.status.Repair(target)
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// setID validates and sets the order's unique identifier.
// This is a private method used only during construction.
func (o *WorkOrder) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setPlanID validates and sets the owning plan reference.
// This is a private method used only during construction.
func (o *WorkOrder) setPlanID(planID kernel.UUID) error {
	if err := planID.Validate(); err != nil {
		return err
	}
	o.planID = planID
	return nil
}

// setStageIndex validates and sets the order's position within its plan.
// This is a private method used only during construction.
func (o *WorkOrder) setStageIndex(stageIndex int) error {
	if stageIndex < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"stage index is invalid",
			fmt.Errorf("%d is not greater than or equal to 0", stageIndex),
		)
	}
	o.stageIndex = stageIndex
	return nil
}

// setProcess validates and sets the stage's process reference.
// This is a private method used only during construction.
func (o *WorkOrder) setProcess(processID kernel.UUID, processName string) error {
	if err := processID.Validate(); err != nil {
		return err
	}
	if processName == "" {
		return errs.NewValueIsRequiredError("process name")
	}
	o.processID = processID
	o.processName = processName
	return nil
}
