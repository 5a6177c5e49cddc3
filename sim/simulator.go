package sim

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/wippyai/nandvm/circuit"
	"github.com/wippyai/nandvm/errors"
)

// Stats reports evaluation effort counters.
type Stats struct {
	// NandEvals counts native NAND attempts, successful or not.
	NandEvals int
	// Retries counts deferred passes: each time a convergence loop starts
	// another sweep over its remaining modules, not each module attempt.
	Retries int
}

// Simulator evaluates committed circuits against concrete signal values.
// It owns the frame arena and never mutates the registry. A Simulator is
// single-threaded: recursion is strictly nested, so the frame at each
// depth belongs to exactly one in-flight call.
type Simulator struct {
	reg   *circuit.Registry
	stack *Stack
	stats Stats
}

// New creates a simulator over reg with a fresh frame arena.
func New(reg *circuit.Registry) *Simulator {
	return &Simulator{reg: reg, stack: NewStack()}
}

// Stack exposes the frame arena so a driver can seed signals and read
// results directly.
func (s *Simulator) Stack() *Stack {
	return s.stack
}

// Stats returns the effort counters accumulated since the last reset.
func (s *Simulator) Stats() Stats {
	return s.stats
}

// ResetStats clears the effort counters.
func (s *Simulator) ResetStats() {
	s.stats = Stats{}
}

// Run evaluates circuit id against the given input signals and returns its
// output signals. Frame 0 is cleared, seeded with the inputs at the
// circuit's input positions, and read back at its output positions. A
// stalled evaluation (an Undefined input or a wiring cycle) is returned as
// a distinguishable error.
func (s *Simulator) Run(id int, inputs []circuit.Signal) ([]circuit.Signal, error) {
	c, ok := s.reg.Lookup(id)
	if !ok {
		return nil, errors.UnknownCircuit(errors.PhaseSimulate, id)
	}
	if len(inputs) != c.Inputs {
		return nil, errors.InvalidInput(errors.PhaseSimulate,
			fmt.Sprintf("circuit wants %d inputs, got %d", c.Inputs, len(inputs)))
	}

	s.stack.clear(0)
	frame := s.stack.Frame(0)
	copy(frame, inputs)

	done, err := s.Evaluate(id, 0)
	if err != nil {
		return nil, err
	}
	if !done {
		return nil, errors.Stalled(id)
	}

	out := make([]circuit.Signal, c.Outputs)
	copy(out, frame[c.Inputs:c.Width()])
	return out, nil
}

// Evaluate runs circuit id against the signals already present in the
// frame at depth. It returns false, without error, when the circuit is not
// yet computable: some needed signal is Undefined. The caller may seed
// more signals and try again, or treat the stall as final.
func (s *Simulator) Evaluate(id, depth int) (bool, error) {
	if depth < 0 || depth >= circuit.StackDepth {
		return false, errors.Capacity(errors.PhaseSimulate, "frame depth", depth, circuit.StackDepth-1)
	}
	if !s.reg.Defined(id) {
		return false, errors.UnknownCircuit(errors.PhaseSimulate, id)
	}
	return s.evaluate(id, depth)
}

func (s *Simulator) evaluate(id, depth int) (bool, error) {
	if id == circuit.Primitive {
		return s.evaluateNand(depth), nil
	}

	c, ok := s.reg.Lookup(id)
	if !ok {
		return false, errors.UnknownCircuit(errors.PhaseSimulate, id)
	}

	child := depth + 1
	if child >= circuit.StackDepth {
		return false, errors.Capacity(errors.PhaseSimulate, "frame depth", child, circuit.StackDepth-1)
	}

	r, err := newRing(c)
	if err != nil {
		return false, err
	}

	parent := s.stack.Frame(depth)
	cf := s.stack.Frame(child)

	// Fixed-point iteration: every pass attempts each pending module once;
	// failed attempts are deferred to the back of the ring. A pass that
	// defers everything means no new signal can appear, so the evaluation
	// has stalled. Each non-stalling pass strictly shrinks the pending
	// set, bounding the loop at one pass per module.
	initial := r.size
	remaining := r.size
	for {
		m, err := r.popFront()
		if err != nil {
			return false, err
		}
		target, ok := s.reg.Lookup(m.Circuit)
		if !ok {
			return false, errors.UnknownCircuit(errors.PhaseSimulate, m.Circuit)
		}

		s.stack.clear(child)
		for i := 0; i < target.Inputs; i++ {
			cf[i] = parent[m.Wirings[i]]
		}

		done, err := s.evaluate(m.Circuit, child)
		if err != nil {
			return false, err
		}
		if !done {
			if err := r.pushBack(m); err != nil {
				return false, err
			}
		}

		// Outputs flow back even after a failed attempt; whatever the
		// sub-circuit managed to produce stays visible to its siblings.
		for i := target.Inputs; i < target.Width(); i++ {
			parent[m.Wirings[i]] = cf[i]
		}

		remaining--
		if remaining != 0 {
			continue
		}

		switch {
		case r.size == initial:
			return false, nil
		case r.size == 0:
			return true, nil
		case r.size > 0 && r.size < initial:
			remaining = r.size
			initial = r.size
			s.stats.Retries++
			logger().Debug("pass deferred, retrying",
				zap.Int("circuit", id),
				zap.Int("depth", depth),
				zap.Int("pending", r.size))
		default:
			return false, errors.Invariant("ring grew during a pass: size %d above initial %d", r.size, initial)
		}
	}
}

// evaluateNand computes the primitive at the given frame: slots 0 and 1 in,
// slot 2 out. Either input Undefined leaves the output Undefined and the
// attempt fails; the attempt is counted either way.
func (s *Simulator) evaluateNand(depth int) bool {
	f := s.stack.Frame(depth)

	out := circuit.Undefined
	a, b := f[0], f[1]
	if a.Defined() && b.Defined() {
		if a == circuit.On && b == circuit.On {
			out = circuit.Off
		} else {
			out = circuit.On
		}
	}
	f[2] = out
	s.stats.NandEvals++
	return out.Defined()
}
