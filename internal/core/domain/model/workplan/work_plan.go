package workplan

import (
	"errors"
	"fmt"
	"time"

	"workplans/internal/core/domain/model/kernel"
	"workplans/internal/core/domain/model/workorder"
	"workplans/internal/pkg/errs"
)

var (
	// ErrWorkPlanIsNotConstructed is returned when a WorkPlan instance was not
	// created through the NewWorkPlan factory method.
	ErrWorkPlanIsNotConstructed = errors.New("WorkPlan must be created via NewWorkPlan constructor")

	// ErrOrdersAlreadyAttached is returned when a second order set is attached
	// to a plan. Orders are attached exactly once, at dispatch.
	ErrOrdersAlreadyAttached = errors.New("work plan already has orders attached")

	// ErrPlanNotCancellable is returned when cancellation is attempted on a
	// plan that is neither active nor in construction.
	ErrPlanNotCancellable = errors.New("work plan cannot be cancelled in its current status")
)

// Wizard step names returned by WizardStep. After the wizard has been
// completed, revisiting it brings the user back to the dispatch step.
const (
	WizardStepSet                 = "set"
	WizardStepProject             = "project"
	WizardStepProduct             = "product"
	WizardStepDataReleaseStrategy = "data_release_strategy"
	WizardStepDispatch            = "dispatch"
)

// WorkPlan is the aggregate root for a sequence of work orders created for a
// particular product. It owns its orders exclusively: they are created in
// bulk at dispatch time and destroyed with the plan.
//
// WorkPlan follows these invariants:
//   - Must have a valid unique identifier and a sanitised owner email
//   - Status is derived from plan flags and child order states, never stored
//   - Orders are attached exactly once and keep their stage ordering
//   - Can only be created through the NewWorkPlan constructor
type WorkPlan struct {
	// id is the unique identifier for the plan
	id kernel.UUID

	// owner is the plan owner's sanitised email address
	owner kernel.Email

	// productID references the product in the catalogue (nil during wizard)
	productID *kernel.UUID

	// projectID references the funding project/proposal node (nil during wizard)
	projectID *int64

	// dataReleaseStrategyID references the selected data release strategy
	dataReleaseStrategyID *kernel.UUID

	// originalSetUUID references the unlocked input set chosen in the wizard
	originalSetUUID *kernel.UUID

	// lockedSetUUID references the locked clone created before dispatch
	lockedSetUUID *kernel.UUID

	// cancelledAt records plan cancellation; nil means not cancelled
	cancelledAt *time.Time

	// orders is the ordered collection of child work orders
	orders []*workorder.WorkOrder

	// isConstructed ensures the plan was created via NewWorkPlan
	isConstructed bool
}

// NewWorkPlan creates a new WorkPlan for the given owner. Plans start in
// construction with no product, project or orders; the wizard attaches
// references one step at a time.
func NewWorkPlan(id kernel.UUID, owner kernel.Email) (*WorkPlan, error) {
	plan := &WorkPlan{
		isConstructed: true,
	}

	if err := errors.Join(
		plan.setID(id),
		plan.setOwner(owner),
	); err != nil {
		return nil, err
	}

	return plan, nil
}

// RestoreWorkPlan reconstructs a WorkPlan from persisted state, including its
// complete set of child orders in stage order. It is used by repositories.
func RestoreWorkPlan(
	id kernel.UUID,
	owner kernel.Email,
	productID *kernel.UUID,
	projectID *int64,
	dataReleaseStrategyID *kernel.UUID,
	originalSetUUID *kernel.UUID,
	lockedSetUUID *kernel.UUID,
	cancelledAt *time.Time,
	orders []*workorder.WorkOrder,
) (*WorkPlan, error) {
	plan, err := NewWorkPlan(id, owner)
	if err != nil {
		return nil, err
	}

	plan.productID = productID
	plan.projectID = projectID
	plan.dataReleaseStrategyID = dataReleaseStrategyID
	plan.originalSetUUID = originalSetUUID
	plan.lockedSetUUID = lockedSetUUID
	plan.cancelledAt = cancelledAt

	if len(orders) > 0 {
		if err = plan.AttachOrders(orders); err != nil {
			return nil, err
		}
	}

	return plan, nil
}

// Validate ensures the WorkPlan instance was properly constructed through
// NewWorkPlan.
func (p *WorkPlan) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrWorkPlanIsNotConstructed
	}

	return nil
}

// IsEqual compares two plans by their unique identifiers.
func (p *WorkPlan) IsEqual(other *WorkPlan) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the plan's unique identifier.
func (p *WorkPlan) ID() kernel.UUID {
	return p.id
}

// Owner returns the plan owner's email address.
func (p *WorkPlan) Owner() kernel.Email {
	return p.owner
}

// ProductID returns the selected product reference, or nil during the wizard.
func (p *WorkPlan) ProductID() *kernel.UUID {
	return p.productID
}

// ProjectID returns the funding project reference, or nil during the wizard.
func (p *WorkPlan) ProjectID() *int64 {
	return p.projectID
}

// DataReleaseStrategyID returns the selected data release strategy, or nil.
func (p *WorkPlan) DataReleaseStrategyID() *kernel.UUID {
	return p.dataReleaseStrategyID
}

// OriginalSet returns the unlocked input set reference, or nil.
func (p *WorkPlan) OriginalSet() *kernel.UUID {
	return p.originalSetUUID
}

// LockedSet returns the locked working set reference, or nil if the locking
// step has not run.
func (p *WorkPlan) LockedSet() *kernel.UUID {
	return p.lockedSetUUID
}

// CancelledAt returns the cancellation time, or nil if the plan is not
// cancelled.
func (p *WorkPlan) CancelledAt() *time.Time {
	return p.cancelledAt
}

// Orders returns a copy of the plan's orders in stage order.
func (p *WorkPlan) Orders() []*workorder.WorkOrder {
	orders := make([]*workorder.WorkOrder, len(p.orders))
	copy(orders, p.orders)
	return orders
}

// HasOrders reports whether the plan has been dispatched.
func (p *WorkPlan) HasOrders() bool {
	return len(p.orders) > 0
}

// Name returns the plan's display name.
func (p *WorkPlan) Name() string {
	return fmt.Sprintf("Work plan %s", p.id)
}

// Status derives the plan's lifecycle status from its flags and the loaded
// child orders. The orders were loaded with the aggregate, so one evaluation
// never triggers further queries.
func (p *WorkPlan) Status() Status {
	statuses := make([]workorder.Status, 0, len(p.orders))
	for _, o := range p.orders {
		statuses = append(statuses, o.Status())
	}

	return DeriveStatus(p.cancelledAt != nil, p.projectID != nil, statuses)
}

// InConstruction reports whether the plan is still being set up.
func (p *WorkPlan) InConstruction() bool {
	return p.Status() == StatusConstruction
}

// Cancellable reports whether the plan may be cancelled: only active plans
// and plans in construction qualify.
func (p *WorkPlan) Cancellable() bool {
	status := p.Status()
	return status == StatusActive || status == StatusConstruction
}

// Cancel sets the plan's cancelled flag. Returns ErrPlanNotCancellable if
// the plan is closed, broken or already cancelled.
func (p *WorkPlan) Cancel(at time.Time) error {
	if !p.Cancellable() {
		return ErrPlanNotCancellable
	}

	p.cancelledAt = &at
	return nil
}

// ActiveStatusLine returns the human-readable progress line shown for plans
// underway: "<process> in progress" while an order is active, or
// "<process> completed"/"<process> cancelled" while the next order waits.
// Returns an empty string if neither applies.
func (p *WorkPlan) ActiveStatusLine() string {
	for _, o := range p.orders {
		if o.IsActive() {
			return o.ProcessName() + " in progress"
		}
	}

	for i := len(p.orders) - 1; i >= 0; i-- {
		if p.orders[i].Closed() {
			return fmt.Sprintf("%s %s", p.orders[i].ProcessName(), p.orders[i].Status())
		}
	}

	return ""
}

// WizardStep returns the step the owner has reached in the construction
// wizard. Completed plans return the dispatch step.
func (p *WorkPlan) WizardStep() string {
	switch {
	case p.originalSetUUID == nil:
		return WizardStepSet
	case p.projectID == nil:
		return WizardStepProject
	case p.productID == nil:
		return WizardStepProduct
	case p.dataReleaseStrategyID == nil:
		return WizardStepDataReleaseStrategy
	default:
		return WizardStepDispatch
	}
}

// SetProduct attaches the selected product reference.
func (p *WorkPlan) SetProduct(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	p.productID = &productID
	return nil
}

// SetProject attaches the funding project reference.
func (p *WorkPlan) SetProject(projectID int64) error {
	if projectID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"project id is invalid",
			fmt.Errorf("%d is not greater than 0", projectID),
		)
	}
	p.projectID = &projectID
	return nil
}

// SetDataReleaseStrategy attaches the selected data release strategy.
func (p *WorkPlan) SetDataReleaseStrategy(strategyID kernel.UUID) error {
	if err := strategyID.Validate(); err != nil {
		return err
	}
	p.dataReleaseStrategyID = &strategyID
	return nil
}

// SetOriginalSet attaches the unlocked input set chosen in the wizard.
func (p *WorkPlan) SetOriginalSet(setUUID kernel.UUID) error {
	if err := setUUID.Validate(); err != nil {
		return err
	}
	p.originalSetUUID = &setUUID
	return nil
}

// SetLockedSet attaches the locked clone created by the set locking step.
func (p *WorkPlan) SetLockedSet(setUUID kernel.UUID) error {
	if err := setUUID.Validate(); err != nil {
		return err
	}
	p.lockedSetUUID = &setUUID
	return nil
}

// AttachOrders attaches the dispatched order set to the plan. Orders may be
// attached exactly once; each order must belong to this plan and stage
// indexes must run 0..n-1 in slice order.
func (p *WorkPlan) AttachOrders(orders []*workorder.WorkOrder) error {
	if p.HasOrders() {
		return ErrOrdersAlreadyAttached
	}

	for i, o := range orders {
		if err := o.Validate(); err != nil {
			return err
		}
		if !o.PlanID().IsEqual(p.id) {
			return errs.NewValueIsInvalidErrorWithCause(
				"orders are invalid",
				fmt.Errorf("order %s belongs to plan %s", o.ID(), o.PlanID()),
			)
		}
		if o.StageIndex() != i {
			return errs.NewValueIsInvalidErrorWithCause(
				"orders are invalid",
				fmt.Errorf("order at position %d has stage index %d", i, o.StageIndex()),
			)
		}
	}

	p.orders = make([]*workorder.WorkOrder, len(orders))
	copy(p.orders, orders)
	return nil
}

// setID validates and sets the plan's unique identifier.
// This is a private method used only during construction.
func (p *WorkPlan) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

// setOwner validates and sets the plan owner.
// This is a private method used only during construction.
func (p *WorkPlan) setOwner(owner kernel.Email) error {
	if err := owner.Validate(); err != nil {
		return err
	}
	p.owner = owner
	return nil
}
