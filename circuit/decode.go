package circuit

import (
	"io"
	"strconv"

	"go.uber.org/zap"

	"github.com/wippyai/nandvm/circuit/internal/binary"
	"github.com/wippyai/nandvm/errors"
)

// decodeState enumerates the decoder's machine states. Transitions run
// through Decoder.step so the control flow stays a flat (state, byte) ->
// state table instead of mutually-referential handler functions.
type decodeState int

const (
	stateBegin decodeState = iota
	stateStartDefine
	stateDefineNextIter
	stateReadArgs
	stateAddInstruction
	stateEndDefine
	stateHalt
)

// Decoder turns an instruction stream into committed registry entries.
//
// A circuit's input/output signature is never declared in the stream; the
// decoder infers it from how wires are used across the definition's module
// applications. Three per-definition tallies track each wire: how often it
// appeared in an input position, how often in an output position, and
// whether it has been demoted to an internal wire. A wire seen in both
// roles is internal wiring, not part of the signature.
type Decoder struct {
	reg *Registry
	r   *binary.Reader
	b   byte

	// in-progress definition
	def   Circuit
	defID int

	// wire role tallies, reset per definition
	in  [MaxWires]int
	out [MaxWires]int
	med [MaxWires]bool

	// current module application
	applyID    int
	applyIn    int
	applyOut   int
	applyArgs  [MaxWires]int
	applyCount int
}

// NewDecoder creates a decoder committing definitions into reg.
func NewDecoder(reg *Registry) *Decoder {
	return &Decoder{reg: reg}
}

// Decode runs the state machine over a complete instruction stream. Any
// malformed condition aborts the run immediately; definitions committed
// before the fault remain in the registry, the in-progress definition is
// dropped. A Decoder may be reused across streams.
func (d *Decoder) Decode(program []byte) error {
	d.r = binary.NewReader(program)

	st := stateBegin
	for st != stateHalt {
		next, err := d.step(st)
		if err != nil {
			return err
		}
		st = next
	}
	return nil
}

func (d *Decoder) step(st decodeState) (decodeState, error) {
	switch st {
	case stateBegin:
		return d.begin()
	case stateStartDefine:
		return d.startDefine()
	case stateDefineNextIter:
		return d.defineNextIter()
	case stateReadArgs:
		return d.readArgs()
	case stateAddInstruction:
		return d.addInstruction()
	case stateEndDefine:
		return d.endDefine()
	}
	return stateHalt, errors.New(errors.PhaseDecode, errors.KindInvariant).
		Detail("unknown decoder state %d", st).
		Build()
}

// begin expects a define-boundary byte or a clean end of stream. Bare
// applies and lone literals have no meaning at the top level.
func (d *Decoder) begin() (decodeState, error) {
	b, err := d.r.ReadByte()
	if err == io.EOF {
		return stateHalt, nil
	}
	d.b = b

	if !IsOperation(b) {
		return 0, errors.MalformedStream(d.pos(), "literal outside a definition")
	}
	if !IsDefineBoundary(b) {
		return 0, errors.MalformedStream(d.pos(), "apply outside a definition")
	}
	return stateStartDefine, nil
}

func (d *Decoder) startDefine() (decodeState, error) {
	id := OperationID(d.b)
	if d.reg.Defined(id) {
		return 0, errors.Redefinition(id)
	}

	d.def = Circuit{}
	d.defID = id
	d.in = [MaxWires]int{}
	d.out = [MaxWires]int{}
	d.med = [MaxWires]bool{}

	return stateDefineNextIter, nil
}

// defineNextIter sits between module applications inside an open
// definition: the next byte either closes the definition or opens another
// application.
func (d *Decoder) defineNextIter() (decodeState, error) {
	b, err := d.r.ReadByte()
	if err == io.EOF {
		return 0, errors.Truncated(d.r.Position(), "inside a definition")
	}
	d.b = b

	if !IsOperation(b) {
		return 0, errors.MalformedStream(d.pos(), "literal between applications")
	}
	if IsDefineBoundary(b) {
		if id := OperationID(b); id != d.defID {
			return 0, errors.MalformedStream(d.pos(),
				"definition of circuit "+strconv.Itoa(d.defID)+" closed by boundary for circuit "+strconv.Itoa(id))
		}
		return stateEndDefine, nil
	}

	id := OperationID(b)
	target, ok := d.reg.Lookup(id)
	if !ok {
		return 0, errors.UnknownCircuit(errors.PhaseDecode, id)
	}
	if target.Width() > MaxWires {
		return 0, errors.Capacity(errors.PhaseDecode, "argument count", target.Width(), MaxWires)
	}

	d.applyID = id
	d.applyIn = target.Inputs
	d.applyOut = target.Outputs
	d.applyCount = 0

	return stateReadArgs, nil
}

// readArgs consumes one literal per step until the application's full
// argument count is captured, classifying each wire against the
// per-definition tallies as it goes.
func (d *Decoder) readArgs() (decodeState, error) {
	b, err := d.r.PeekByte()
	if err == io.EOF {
		return 0, errors.Truncated(d.r.Position(), "reading application arguments")
	}
	if IsOperation(b) {
		return 0, errors.MalformedStream(d.r.Position(), "operation byte inside an argument list")
	}
	d.r.ReadByte()
	d.b = b

	w := WireIndex(b)
	if w >= MaxWires {
		return 0, errors.Capacity(errors.PhaseDecode, "wire index", w, MaxWires-1)
	}

	if d.applyCount < d.applyIn {
		d.classifyInput(w)
	} else {
		d.classifyOutput(w)
	}

	d.applyArgs[d.applyCount] = w
	d.applyCount++

	if d.applyCount == d.applyIn+d.applyOut {
		return stateAddInstruction, nil
	}
	return stateReadArgs, nil
}

// classifyInput handles a wire observed in an input position. A wire
// previously tallied as an output feeds another module's input: that is
// internal wiring, so it is demoted and removed from the signature.
func (d *Decoder) classifyInput(w int) {
	switch {
	case d.med[w]:
		// already known internal, nothing to learn
	case d.out[w] != 0:
		d.out[w] = 0
		d.in[w] = 0
		d.med[w] = true
		d.def.Outputs--
	default:
		d.in[w]++
		if d.in[w] == 1 {
			d.def.Inputs++
		}
	}
}

// classifyOutput is the symmetric rule for output positions.
func (d *Decoder) classifyOutput(w int) {
	switch {
	case d.med[w]:
	case d.in[w] != 0:
		d.out[w] = 0
		d.in[w] = 0
		d.med[w] = true
		d.def.Inputs--
	default:
		d.out[w]++
		if d.out[w] == 1 {
			d.def.Outputs++
		}
	}
}

func (d *Decoder) addInstruction() (decodeState, error) {
	if len(d.def.Modules) >= MaxModules {
		return 0, errors.Capacity(errors.PhaseDecode, "module count", len(d.def.Modules)+1, MaxModules)
	}

	m := Module{Circuit: d.applyID}
	copy(m.Wirings[:], d.applyArgs[:d.applyIn+d.applyOut])
	d.def.Modules = append(d.def.Modules, m)

	return stateDefineNextIter, nil
}

func (d *Decoder) endDefine() (decodeState, error) {
	if err := d.validate(); err != nil {
		return 0, err
	}
	if err := d.reg.register(d.defID, d.def); err != nil {
		return 0, err
	}

	logger().Debug("circuit committed",
		zap.Int("id", d.defID),
		zap.Int("inputs", d.def.Inputs),
		zap.Int("outputs", d.def.Outputs),
		zap.Int("modules", len(d.def.Modules)))

	return stateBegin, nil
}

// validate checks the finished definition: counts are positive, the
// signature fits a frame, input indices occupy [0, inputs) and output
// indices occupy [inputs, inputs+outputs), each tallied in its exclusive
// role. Wires demoted to internal are excluded by construction.
func (d *Decoder) validate() error {
	c := d.def
	if c.Inputs <= 0 {
		return errors.SignatureGap(d.defID, "definition has no inputs")
	}
	if c.Outputs <= 0 {
		return errors.SignatureGap(d.defID, "definition has no outputs")
	}
	if len(c.Modules) == 0 {
		return errors.SignatureGap(d.defID, "definition has no module applications")
	}
	if c.Width() > MaxWires {
		return errors.Capacity(errors.PhaseValidate, "signature width", c.Width(), MaxWires)
	}
	for i := 0; i < c.Inputs; i++ {
		if d.in[i] == 0 {
			return errors.SignatureGap(d.defID, "wire "+strconv.Itoa(i)+" missing from the input range")
		}
	}
	for i := c.Inputs; i < c.Width(); i++ {
		if d.out[i] == 0 {
			return errors.SignatureGap(d.defID, "wire "+strconv.Itoa(i)+" missing from the output range")
		}
	}
	return nil
}

// pos is the position of the byte most recently consumed into d.b.
func (d *Decoder) pos() int {
	return d.r.Position() - 1
}
