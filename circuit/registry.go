package circuit

import (
	"github.com/wippyai/nandvm/errors"
)

// Registry is the fixed-capacity table of committed circuit definitions,
// keyed by id. Slots are write-once: redefinition is rejected and leaves
// the existing definition untouched. Definedness is tracked explicitly
// rather than inferred from zeroed counts.
type Registry struct {
	circuits [MaxCircuits]Circuit
	defined  [MaxCircuits]bool
}

// NewRegistry creates a registry holding only the NAND primitive at id 0.
func NewRegistry() *Registry {
	r := &Registry{}
	r.circuits[Primitive] = Circuit{Inputs: 2, Outputs: 1}
	r.defined[Primitive] = true
	return r
}

// Defined reports whether id holds a committed definition. Ids outside the
// registry range are never defined.
func (r *Registry) Defined(id int) bool {
	if id < 0 || id >= MaxCircuits {
		return false
	}
	return r.defined[id]
}

// Lookup returns the definition committed at id. The second result is
// false when the slot is empty; callers attach their own phase context.
func (r *Registry) Lookup(id int) (Circuit, bool) {
	if !r.Defined(id) {
		return Circuit{}, false
	}
	return r.circuits[id], true
}

// IDs returns the ids of all committed definitions in ascending order.
func (r *Registry) IDs() []int {
	var ids []int
	for id := range r.circuits {
		if r.defined[id] {
			ids = append(ids, id)
		}
	}
	return ids
}

// register commits a definition at id. Write-once per slot.
func (r *Registry) register(id int, c Circuit) error {
	if id < 0 || id >= MaxCircuits {
		return errors.Capacity(errors.PhaseDecode, "circuit id", id, MaxCircuits-1)
	}
	if r.defined[id] {
		return errors.Redefinition(id)
	}
	r.circuits[id] = c
	r.defined[id] = true
	return nil
}
