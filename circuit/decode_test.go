package circuit_test

import (
	stderrors "errors"
	"testing"

	"github.com/wippyai/nandvm/circuit"
	"github.com/wippyai/nandvm/errors"
)

// Instruction streams written out byte by byte. 0xC0|id opens and closes a
// definition, 0x80|id applies a circuit, low bytes are wire indices.

func TestDecodeNot(t *testing.T) {
	// NOT a: NAND(a, a) -> out
	program := []byte{0xC1, 0x80, 0x00, 0x00, 0x01, 0xC1}

	reg := circuit.NewRegistry()
	if err := circuit.NewDecoder(reg).Decode(program); err != nil {
		t.Fatalf("decode: %v", err)
	}

	c, ok := reg.Lookup(1)
	if !ok {
		t.Fatal("circuit 1 not committed")
	}
	if c.Inputs != 1 || c.Outputs != 1 {
		t.Errorf("signature: got %d in, %d out, want 1 in, 1 out", c.Inputs, c.Outputs)
	}
	if len(c.Modules) != 1 {
		t.Fatalf("modules: got %d, want 1", len(c.Modules))
	}
	m := c.Modules[0]
	if m.Circuit != circuit.Primitive {
		t.Errorf("module target: got %d, want %d", m.Circuit, circuit.Primitive)
	}
	if m.Wirings[0] != 0 || m.Wirings[1] != 0 || m.Wirings[2] != 1 {
		t.Errorf("wirings: got %v", m.Wirings[:3])
	}
}

func TestDecodeAndDemotesInternalWire(t *testing.T) {
	// NOT, then AND a b: NOT(NAND(a, b)). Wire 3 carries the NAND result
	// into NOT, so it appears as both output and input: it must be
	// demoted out of the signature.
	program := []byte{
		0xC1, 0x80, 0x00, 0x00, 0x01, 0xC1,
		0xC2, 0x80, 0x00, 0x01, 0x03, 0x81, 0x03, 0x02, 0xC2,
	}

	reg := circuit.NewRegistry()
	if err := circuit.NewDecoder(reg).Decode(program); err != nil {
		t.Fatalf("decode: %v", err)
	}

	c, ok := reg.Lookup(2)
	if !ok {
		t.Fatal("circuit 2 not committed")
	}
	if c.Inputs != 2 || c.Outputs != 1 {
		t.Errorf("signature: got %d in, %d out, want 2 in, 1 out", c.Inputs, c.Outputs)
	}
	if len(c.Modules) != 2 {
		t.Errorf("modules: got %d, want 2", len(c.Modules))
	}
}

func TestDecodeInputDemotion(t *testing.T) {
	// Wire 2 is read by the first module and written by the second: an
	// input position seen first, then an output position. Both tallies
	// clear and the wire leaves the signature.
	program := []byte{
		0xC1,
		0x80, 0x00, 0x02, 0x01,
		0x80, 0x00, 0x00, 0x02,
		0xC1,
	}

	reg := circuit.NewRegistry()
	if err := circuit.NewDecoder(reg).Decode(program); err != nil {
		t.Fatalf("decode: %v", err)
	}

	c, ok := reg.Lookup(1)
	if !ok {
		t.Fatal("circuit 1 not committed")
	}
	if c.Inputs != 1 || c.Outputs != 1 {
		t.Errorf("signature: got %d in, %d out, want 1 in, 1 out", c.Inputs, c.Outputs)
	}
}

func TestDecodeMultipleDefinitions(t *testing.T) {
	// Two independent definitions in one stream; tallies must reset
	// between them.
	program := []byte{
		0xC1, 0x80, 0x00, 0x00, 0x01, 0xC1,
		0xC3, 0x81, 0x00, 0x01, 0xC3,
	}

	reg := circuit.NewRegistry()
	if err := circuit.NewDecoder(reg).Decode(program); err != nil {
		t.Fatalf("decode: %v", err)
	}

	for _, id := range []int{1, 3} {
		if !reg.Defined(id) {
			t.Errorf("circuit %d not committed", id)
		}
	}
	c, _ := reg.Lookup(3)
	if c.Inputs != 1 || c.Outputs != 1 {
		t.Errorf("circuit 3 signature: got %d in, %d out, want 1 in, 1 out", c.Inputs, c.Outputs)
	}
}

func TestDecodeEmptyStream(t *testing.T) {
	reg := circuit.NewRegistry()
	if err := circuit.NewDecoder(reg).Decode(nil); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := len(reg.IDs()); got != 1 {
		t.Errorf("registry ids: got %d, want just the primitive", got)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		program []byte
		kind    errors.Kind
	}{
		{
			name:    "literal at top level",
			program: []byte{0x00},
			kind:    errors.KindMalformedStream,
		},
		{
			name:    "apply at top level",
			program: []byte{0x80, 0x00, 0x01, 0x02},
			kind:    errors.KindMalformedStream,
		},
		{
			name:    "redefinition of the primitive",
			program: []byte{0xC0, 0x80, 0x00, 0x00, 0x01, 0xC0},
			kind:    errors.KindRedefinition,
		},
		{
			name: "redefinition within one stream",
			program: []byte{
				0xC1, 0x80, 0x00, 0x00, 0x01, 0xC1,
				0xC1, 0x80, 0x00, 0x00, 0x01, 0xC1,
			},
			kind: errors.KindRedefinition,
		},
		{
			name:    "truncated after boundary",
			program: []byte{0xC1},
			kind:    errors.KindMalformedStream,
		},
		{
			name:    "truncated argument list",
			program: []byte{0xC1, 0x80, 0x00, 0x00},
			kind:    errors.KindMalformedStream,
		},
		{
			name:    "operation byte in argument list",
			program: []byte{0xC1, 0x80, 0x00, 0xC1},
			kind:    errors.KindMalformedStream,
		},
		{
			name:    "mismatched closing boundary",
			program: []byte{0xC1, 0x80, 0x00, 0x00, 0x01, 0xC2},
			kind:    errors.KindMalformedStream,
		},
		{
			name:    "literal between applications",
			program: []byte{0xC1, 0x80, 0x00, 0x00, 0x01, 0x02, 0xC1},
			kind:    errors.KindMalformedStream,
		},
		{
			name:    "empty definition",
			program: []byte{0xC1, 0xC1},
			kind:    errors.KindSignatureGap,
		},
		{
			name:    "apply of undefined circuit",
			program: []byte{0xC1, 0x85, 0x00, 0x01, 0xC1},
			kind:    errors.KindUnknownCircuit,
		},
		{
			name:    "wire index above frame width",
			program: []byte{0xC1, 0x80, 0x20, 0x00, 0x01, 0xC1},
			kind:    errors.KindCapacity,
		},
		{
			name: "hole in the input range",
			// inputs at wires 0 and 2, output at 3: wire 1 is unused,
			// so the input range [0, 2) has a gap at 1.
			program: []byte{0xC1, 0x80, 0x00, 0x02, 0x03, 0xC1},
			kind:    errors.KindSignatureGap,
		},
		{
			name: "output below the input range",
			// input at wire 1, output at wire 0: the output range
			// [1, 2) has no tallied output wire.
			program: []byte{0xC1, 0x80, 0x01, 0x01, 0x00, 0xC1},
			kind:    errors.KindSignatureGap,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := circuit.NewRegistry()
			err := circuit.NewDecoder(reg).Decode(tt.program)
			if err == nil {
				t.Fatal("decode succeeded, want error")
			}
			if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseDecode, Kind: tt.kind}) &&
				!stderrors.Is(err, &errors.Error{Phase: errors.PhaseValidate, Kind: tt.kind}) {
				t.Errorf("error kind: got %v, want %s", err, tt.kind)
			}
		})
	}
}

func TestDecodeKeepsEarlierDefinitionsOnFault(t *testing.T) {
	// First definition commits, the second is truncated. The fault must
	// not roll back the committed one.
	program := []byte{
		0xC1, 0x80, 0x00, 0x00, 0x01, 0xC1,
		0xC2, 0x81, 0x00,
	}

	reg := circuit.NewRegistry()
	if err := circuit.NewDecoder(reg).Decode(program); err == nil {
		t.Fatal("decode succeeded, want error")
	}
	if !reg.Defined(1) {
		t.Error("circuit 1 lost after fault in a later definition")
	}
	if reg.Defined(2) {
		t.Error("faulted definition 2 leaked into the registry")
	}
}

func TestDecoderReuse(t *testing.T) {
	d := circuit.NewDecoder(circuit.NewRegistry())
	if err := d.Decode([]byte{0xC1, 0x80, 0x00, 0x00, 0x01, 0xC1}); err != nil {
		t.Fatalf("first decode: %v", err)
	}
	if err := d.Decode([]byte{0xC2, 0x81, 0x00, 0x01, 0xC2}); err != nil {
		t.Fatalf("second decode: %v", err)
	}
}
