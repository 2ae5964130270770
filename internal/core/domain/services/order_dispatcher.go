package services

import (
	"errors"
	"fmt"
	"sort"

	"workplans/internal/core/domain/model/catalog"
	"workplans/internal/core/domain/model/kernel"
	"workplans/internal/core/domain/model/workorder"
	"workplans/internal/core/domain/model/workplan"
)

// ErrNoProductSelected is returned when dispatch is attempted for a plan that
// has no product selected, or with a product that does not match the plan's
// selection.
var ErrNoProductSelected = errors.New("no product selected for the work plan")

// ErrInvalidProcessOptions is returned when the per-stage module selections
// do not match the product definition: wrong number of stages, or a selected
// module that does not belong to its stage's process.
var ErrInvalidProcessOptions = errors.New("process options do not match the product definition")

// ModuleSelection is one user-selected module for a stage, with its optional
// parameter value.
type ModuleSelection struct {
	ModuleID      kernel.UUID
	SelectedValue *int
}

// OrderDispatcher is a domain service that instantiates the full ordered
// sequence of work orders for a plan from its product definition.
//
// Key responsibilities:
//   - Validating the plan and the module selections against the product
//   - Creating one work order per product process, in stage order
//   - Seeding the first stage with the plan's original and locked sets
//
// Business rules:
//   - A plan is dispatched at most once; repeat calls return the existing
//     orders unchanged
//   - Selections must provide exactly one (possibly empty) list per process
//   - Every selected module must belong to its stage's process
//
// Example usage:
//
//	dispatcher := NewOrderDispatcher()
//	orders, err := dispatcher.Dispatch(plan, product, selections, lockedSetUUID)
//	if errors.Is(err, ErrInvalidProcessOptions) {
//	    // selections don't fit the product
//	    return
//	}
type OrderDispatcher struct{}

// NewOrderDispatcher creates a new OrderDispatcher instance.
func NewOrderDispatcher() OrderDispatcher {
	return OrderDispatcher{}
}

// Dispatch creates and attaches the plan's work orders.
//
// Parameters:
//   - plan: The plan being dispatched (must have a product and locked set)
//   - product: The plan's product definition from the catalogue
//   - selections: One module-selection list per product process, in stage order
//   - lockedSetUUID: The locked clone of the plan's original set
//
// Returns the plan's orders. When the plan already has orders the call is an
// idempotent no-op returning the existing orders.
func (d OrderDispatcher) Dispatch(
	plan *workplan.WorkPlan,
	product *catalog.Product,
	selections [][]ModuleSelection,
	lockedSetUUID kernel.UUID,
) ([]*workorder.WorkOrder, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	if plan.HasOrders() {
		return plan.Orders(), nil
	}

	if plan.ProductID() == nil || product == nil {
		return nil, ErrNoProductSelected
	}
	if !plan.ProductID().IsEqual(product.ID) {
		return nil, fmt.Errorf("%w: product %s does not match the plan's selection", ErrNoProductSelected, product.ID)
	}
	if err := lockedSetUUID.Validate(); err != nil {
		return nil, err
	}

	processes := make([]catalog.Process, len(product.Processes))
	copy(processes, product.Processes)
	sort.Slice(processes, func(i, j int) bool { return processes[i].Stage < processes[j].Stage })

	if len(selections) != len(processes) {
		return nil, fmt.Errorf("%w: %d selection lists for %d processes",
			ErrInvalidProcessOptions, len(selections), len(processes))
	}

	orders := make([]*workorder.WorkOrder, 0, len(processes))
	for i, process := range processes {
		ord, err := d.buildOrder(plan, process, i, selections[i])
		if err != nil {
			return nil, err
		}
		orders = append(orders, ord)
	}

	// The first stage starts from the locked snapshot of the plan's set.
	// Later stages receive their sets as earlier stages complete.
	if original := plan.OriginalSet(); original != nil {
		if err := orders[0].SetOriginalSet(*original); err != nil {
			return nil, err
		}
	}
	if err := orders[0].SetWorkingSet(lockedSetUUID); err != nil {
		return nil, err
	}

	if err := plan.AttachOrders(orders); err != nil {
		return nil, err
	}

	return orders, nil
}

func (d OrderDispatcher) buildOrder(
	plan *workplan.WorkPlan,
	process catalog.Process,
	stageIndex int,
	selections []ModuleSelection,
) (*workorder.WorkOrder, error) {
	ord, err := workorder.NewWorkOrder(kernel.NewUUID(), plan.ID(), stageIndex, process.ID, process.Name)
	if err != nil {
		return nil, err
	}

	choices := make([]workorder.ModuleChoice, 0, len(selections))
	for pos, sel := range selections {
		module := moduleOf(process, sel.ModuleID)
		if module == nil {
			return nil, fmt.Errorf("%w: module %s is not part of process %q",
				ErrInvalidProcessOptions, sel.ModuleID, process.Name)
		}

		choice, err := workorder.NewModuleChoice(module.ID, module.Name, pos, sel.SelectedValue)
		if err != nil {
			return nil, err
		}
		choices = append(choices, choice)
	}
	if err = ord.SetModuleChoices(choices); err != nil {
		return nil, err
	}

	return ord, nil
}

func moduleOf(process catalog.Process, moduleID kernel.UUID) *catalog.ProcessModule {
	for i := range process.Modules {
		if process.Modules[i].ID.IsEqual(moduleID) {
			return &process.Modules[i]
		}
	}
	return nil
}
