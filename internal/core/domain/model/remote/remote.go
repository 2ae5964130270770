// Package remote holds read-only snapshots of resources owned by other
// services: material sets, materials, containers and study tree nodes. The
// core fetches them through gateway ports, works on the snapshot, and never
// writes them back except through explicit gateway operations.
package remote

import (
	"strings"

	"workplans/internal/core/domain/model/kernel"
)

// Set is a named collection of materials held by the set service.
type Set struct {
	UUID        kernel.UUID
	Name        string
	Locked      bool
	MaterialIDs []string
}

// Size returns the number of materials in the set.
func (s *Set) Size() int {
	return len(s.MaterialIDs)
}

// Material is a snapshot of one material record. Attributes carries the raw
// key/value payload of the material service, which the export pipeline passes
// through without interpreting beyond availability.
type Material struct {
	ID         string
	Attributes map[string]any
}

// Available reports whether the material may be worked on. A missing
// attribute means unavailable.
func (m *Material) Available() bool {
	v, ok := m.Attributes["available"]
	if !ok {
		return false
	}
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return strings.EqualFold(t, "true")
	default:
		return false
	}
}

// Slot is a single addressed position in a container. MaterialID is empty for
// unoccupied slots.
type Slot struct {
	Address    string
	MaterialID string
}

// Container is a snapshot of a labware record holding materials in addressed
// slots.
type Container struct {
	Barcode string
	NumRows int
	NumCols int
	Slots   []Slot
}

// ProjectNode is one node of the study service's project tree. Proposals are
// leaf nodes carrying cost codes; subprojects substitute their parent node in
// exports while keeping their own cost code.
type ProjectNode struct {
	ID              int64
	UUID            kernel.UUID
	Name            string
	CostCode        string
	DataReleaseUUID string
	ParentID        *int64
	IsSubproject    bool
}
