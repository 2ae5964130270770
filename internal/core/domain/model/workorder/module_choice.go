package workorder

import (
	"errors"
	"fmt"

	"workplans/internal/core/domain/model/kernel"
	"workplans/internal/pkg/errs"
)

// ErrModuleChoiceIsNotConstructed is returned when a ModuleChoice was not
// created through the NewModuleChoice factory method.
var ErrModuleChoiceIsNotConstructed = errors.New("ModuleChoice must be created via NewModuleChoice constructor")

// ModuleChoice is a selected configuration option for one processing stage.
// Choices are created alongside their work order at dispatch time, one set
// per stage, and their position defines the submission order within the
// stage. A choice may carry a selected parameter value when the module
// requires one.
//
// ModuleChoice is an immutable value object.
type ModuleChoice struct {
	// moduleID references the process module in the catalogue
	moduleID kernel.UUID

	// name is the module's display name, carried into the submission document
	name string

	// position defines submission order within the stage (0-based)
	position int

	// selectedValue is the optional parameter selected for the module
	selectedValue *int

	// isConstructed ensures the choice was created via NewModuleChoice
	isConstructed bool
}

// NewModuleChoice creates a validated module choice.
//
// Parameters:
//   - moduleID: Catalogue identifier of the selected module (must be valid)
//   - name: Module display name (must not be empty)
//   - position: 0-based submission position within the stage
//   - selectedValue: Optional parameter value, nil when the module takes none
//
// Returns an error if any parameter is invalid.
func NewModuleChoice(moduleID kernel.UUID, name string, position int, selectedValue *int) (ModuleChoice, error) {
	if err := moduleID.Validate(); err != nil {
		return ModuleChoice{}, err
	}
	if name == "" {
		return ModuleChoice{}, errs.NewValueIsRequiredError("module name")
	}
	if position < 0 {
		return ModuleChoice{}, errs.NewValueIsInvalidErrorWithCause(
			"position is invalid",
			fmt.Errorf("%d is not greater than or equal to 0", position),
		)
	}

	return ModuleChoice{
		moduleID:      moduleID,
		name:          name,
		position:      position,
		selectedValue: selectedValue,
		isConstructed: true,
	}, nil
}

// Validate ensures the ModuleChoice was properly constructed through NewModuleChoice.
func (c ModuleChoice) Validate() error {
	if !c.isConstructed {
		return ErrModuleChoiceIsNotConstructed
	}
	return nil
}

// ModuleID returns the catalogue identifier of the selected module.
func (c ModuleChoice) ModuleID() kernel.UUID {
	return c.moduleID
}

// Name returns the module's display name.
func (c ModuleChoice) Name() string {
	return c.name
}

// Position returns the choice's 0-based submission position within the stage.
func (c ModuleChoice) Position() int {
	return c.position
}

// SelectedValue returns the optional parameter selected for the module,
// or nil when the module takes none.
func (c ModuleChoice) SelectedValue() *int {
	return c.selectedValue
}
