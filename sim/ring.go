package sim

import (
	"github.com/wippyai/nandvm/circuit"
	"github.com/wippyai/nandvm/errors"
)

// ring is the bounded circular queue of modules pending evaluation within
// one call. It is seeded from a circuit's module list and discarded when
// the call returns. Every operation checks the bookkeeping on entry and
// exit; a violation is an engine bug surfaced as an invariant error, never
// a user-facing condition.
type ring struct {
	modules [circuit.MaxModules]circuit.Module
	size    int
	begin   int
	end     int
}

// newRing snapshots a circuit's module list into a fresh ring.
func newRing(c circuit.Circuit) (ring, error) {
	if c.Inputs <= 0 || c.Outputs <= 0 || len(c.Modules) == 0 || len(c.Modules) > circuit.MaxModules {
		return ring{}, errors.Invariant("ring seeded from invalid circuit: %d in, %d out, %d modules",
			c.Inputs, c.Outputs, len(c.Modules))
	}

	r := ring{
		size:  len(c.Modules),
		begin: 0,
		end:   len(c.Modules) % circuit.MaxModules,
	}
	copy(r.modules[:], c.Modules)

	if err := r.check(); err != nil {
		return ring{}, err
	}
	return r, nil
}

// popFront removes and returns the earliest pending module.
func (r *ring) popFront() (circuit.Module, error) {
	if err := r.check(); err != nil {
		return circuit.Module{}, err
	}
	if r.size == 0 {
		return circuit.Module{}, errors.Invariant("pop from empty ring")
	}

	m := r.modules[r.begin]
	r.begin = (r.begin + 1) % circuit.MaxModules
	r.size--

	if err := r.check(); err != nil {
		return circuit.Module{}, err
	}
	return m, nil
}

// pushBack appends a deferred module at the end of the queue.
func (r *ring) pushBack(m circuit.Module) error {
	if err := r.check(); err != nil {
		return err
	}
	if r.size == circuit.MaxModules {
		return errors.Invariant("push to full ring")
	}

	r.modules[r.end] = m
	r.end = (r.end + 1) % circuit.MaxModules
	r.size++

	return r.check()
}

// check verifies the ring bookkeeping.
func (r *ring) check() error {
	if r.size < 0 || r.size > circuit.MaxModules {
		return errors.Invariant("ring size %d out of range", r.size)
	}
	if r.begin < 0 || r.begin >= circuit.MaxModules {
		return errors.Invariant("ring begin %d out of range", r.begin)
	}
	if r.end < 0 || r.end >= circuit.MaxModules {
		return errors.Invariant("ring end %d out of range", r.end)
	}
	return nil
}
