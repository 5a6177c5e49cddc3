package nandvm

import (
	stderrors "errors"

	"go.uber.org/zap"

	"github.com/wippyai/nandvm/circuit"
	"github.com/wippyai/nandvm/errors"
	"github.com/wippyai/nandvm/sim"
)

// Machine owns the process-wide state of one virtual machine: the circuit
// registry and the simulator with its signal arena. All mutation flows
// through the Machine; there are no package-level tables.
type Machine struct {
	reg *circuit.Registry
	sim *sim.Simulator
	dec *circuit.Decoder
}

// New creates a machine holding only the NAND primitive.
func New() *Machine {
	reg := circuit.NewRegistry()
	return &Machine{
		reg: reg,
		sim: sim.New(reg),
		dec: circuit.NewDecoder(reg),
	}
}

// Load decodes an instruction stream, committing its definitions. On
// error the stream is abandoned; definitions committed before the fault
// remain available.
func (m *Machine) Load(program []byte) error {
	return m.dec.Decode(program)
}

// Registry exposes the committed definitions.
func (m *Machine) Registry() *circuit.Registry {
	return m.reg
}

// Evaluate runs circuit id against the given inputs and returns its
// output signals.
func (m *Machine) Evaluate(id int, inputs []circuit.Signal) ([]circuit.Signal, error) {
	return m.sim.Run(id, inputs)
}

// Stats returns the simulator's effort counters.
func (m *Machine) Stats() sim.Stats {
	return m.sim.Stats()
}

// Stalled reports whether err marks an evaluation that made no progress,
// as opposed to a malformed program or an engine fault.
func Stalled(err error) bool {
	return stderrors.Is(err, &errors.Error{Phase: errors.PhaseSimulate, Kind: errors.KindStalled})
}

// SetLogger configures logging for all nandvm packages.
func SetLogger(l *zap.Logger) {
	circuit.SetLogger(l)
	sim.SetLogger(l)
}
