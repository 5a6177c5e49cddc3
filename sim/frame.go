package sim

import (
	"github.com/wippyai/nandvm/circuit"
)

// Stack is the depth-indexed signal arena. One frame of MaxWires signals
// exists per recursion depth; the call evaluating at depth d owns frame d
// exclusively and sees its parent's frame only through a module's wiring.
type Stack struct {
	frames [circuit.StackDepth][circuit.MaxWires]circuit.Signal
}

// NewStack creates an arena with every signal Undefined.
func NewStack() *Stack {
	return &Stack{}
}

// Frame returns the signal slots at the given depth. The caller must keep
// depth within [0, StackDepth).
func (s *Stack) Frame(depth int) []circuit.Signal {
	return s.frames[depth][:]
}

// Reset sets every signal in the arena to Undefined.
func (s *Stack) Reset() {
	for d := range s.frames {
		s.clear(d)
	}
}

// clear resets one frame to Undefined. Pushing a frame for a recursive
// call starts from a clean slate so nothing leaks across evaluations at
// the same depth.
func (s *Stack) clear(depth int) {
	for i := range s.frames[depth] {
		s.frames[depth][i] = circuit.Undefined
	}
}
