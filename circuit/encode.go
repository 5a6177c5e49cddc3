package circuit

import (
	"github.com/wippyai/nandvm/circuit/internal/binary"
	"github.com/wippyai/nandvm/errors"
)

// ProgramBuilder emits instruction streams, the writer-side mirror of the
// decoder. It checks only what the byte format can express (id and wire
// ranges, boundary pairing); signature inference and validation stay with
// the decoder.
//
// The first error sticks: later calls become no-ops and Bytes reports it.
type ProgramBuilder struct {
	w      *binary.Writer
	openID int
	err    error
}

// NewProgram creates an empty program builder.
func NewProgram() *ProgramBuilder {
	return &ProgramBuilder{w: binary.NewWriter(), openID: -1}
}

// Define opens the definition of circuit id.
func (p *ProgramBuilder) Define(id int) *ProgramBuilder {
	if p.err != nil {
		return p
	}
	if p.openID >= 0 {
		p.err = errors.InvalidInput(errors.PhaseEncode, "definition already open")
		return p
	}
	if id < 0 || id >= MaxCircuits {
		p.err = errors.Capacity(errors.PhaseEncode, "circuit id", id, MaxCircuits-1)
		return p
	}
	p.openID = id
	p.w.Byte(DefineByte(id))
	return p
}

// Apply appends one application of target with the given parent-frame wire
// indices, input positions first, then output positions.
func (p *ProgramBuilder) Apply(target int, wires ...int) *ProgramBuilder {
	if p.err != nil {
		return p
	}
	if p.openID < 0 {
		p.err = errors.InvalidInput(errors.PhaseEncode, "apply outside a definition")
		return p
	}
	if target < 0 || target >= MaxCircuits {
		p.err = errors.Capacity(errors.PhaseEncode, "circuit id", target, MaxCircuits-1)
		return p
	}
	if len(wires) > MaxWires {
		p.err = errors.Capacity(errors.PhaseEncode, "argument count", len(wires), MaxWires)
		return p
	}
	p.w.Byte(ApplyByte(target))
	for _, w := range wires {
		if w < 0 || w >= MaxWires {
			p.err = errors.Capacity(errors.PhaseEncode, "wire index", w, MaxWires-1)
			return p
		}
		p.w.Byte(LiteralByte(w))
	}
	return p
}

// End closes the open definition with its matching boundary byte.
func (p *ProgramBuilder) End() *ProgramBuilder {
	if p.err != nil {
		return p
	}
	if p.openID < 0 {
		p.err = errors.InvalidInput(errors.PhaseEncode, "no open definition to close")
		return p
	}
	p.w.Byte(DefineByte(p.openID))
	p.openID = -1
	return p
}

// Bytes returns the encoded stream, or the first error the builder hit.
// An unclosed definition is an error.
func (p *ProgramBuilder) Bytes() ([]byte, error) {
	if p.err != nil {
		return nil, p.err
	}
	if p.openID >= 0 {
		return nil, errors.InvalidInput(errors.PhaseEncode, "definition left open")
	}
	return p.w.Bytes(), nil
}
