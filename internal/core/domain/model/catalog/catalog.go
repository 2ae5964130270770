// Package catalog provides the read-only product definition entities looked
// up during dispatch and export. Products, their ordered processes and the
// selectable process modules are defined by an external catalogue; the core
// never mutates them.
package catalog

import (
	"workplans/internal/core/domain/model/kernel"
)

// SequencescapeLIMSID identifies products whose catalogue submits to
// Sequencescape rather than a generic LIMS.
const SequencescapeLIMSID = "SQSC"

// Catalogue identifies the execution system that products belong to and the
// URL submission documents are delivered to.
type Catalogue struct {
	LIMSID string
	URL    string
}

// ProcessModule is one selectable configuration option for a process.
type ProcessModule struct {
	ID   kernel.UUID
	Name string
}

// Process is one product-defined processing stage. Stage holds the process's
// 0-based position within its product; Modules lists the selectable options.
type Process struct {
	ID      kernel.UUID
	Name    string
	Stage   int
	Modules []ProcessModule
}

// Product is a purchasable product definition: an ordered sequence of
// processes against one catalogue.
type Product struct {
	ID           kernel.UUID
	Name         string
	Version      int
	Availability bool
	Catalogue    Catalogue
	Processes    []Process
}

// FromSequencescape reports whether the product's catalogue submits to
// Sequencescape.
func (p *Product) FromSequencescape() bool {
	return p.Catalogue.LIMSID == SequencescapeLIMSID
}

// Module finds a process module by id across all of the product's processes.
// Returns nil when the module is not part of this product.
func (p *Product) Module(moduleID kernel.UUID) *ProcessModule {
	for i := range p.Processes {
		for j := range p.Processes[i].Modules {
			if p.Processes[i].Modules[j].ID.IsEqual(moduleID) {
				return &p.Processes[i].Modules[j]
			}
		}
	}
	return nil
}
