package nandvm_test

import (
	"testing"

	"github.com/wippyai/nandvm"
	"github.com/wippyai/nandvm/circuit"
	"github.com/wippyai/nandvm/circuitlib"
)

func TestMachineEndToEnd(t *testing.T) {
	m := nandvm.New()

	// NOT, then AND built from it.
	program, err := circuit.NewProgram().
		Define(1).Apply(0, 0, 0, 1).End().
		Define(2).Apply(0, 0, 1, 3).Apply(1, 3, 2).End().
		Bytes()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if err := m.Load(program); err != nil {
		t.Fatalf("load: %v", err)
	}

	out, err := m.Evaluate(2, []circuit.Signal{circuit.On, circuit.On})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(out) != 1 || out[0] != circuit.On {
		t.Errorf("AND(1, 1): got %v, want [1]", out)
	}

	stats := m.Stats()
	if stats.NandEvals == 0 {
		t.Error("no nand evaluations recorded")
	}
}

func TestMachineLoadFaultKeepsEarlierWork(t *testing.T) {
	m := nandvm.New()

	good := []byte{0xC1, 0x80, 0x00, 0x00, 0x01, 0xC1}
	if err := m.Load(good); err != nil {
		t.Fatalf("load: %v", err)
	}

	bad := []byte{0xC2, 0x81, 0x00} // truncated
	if err := m.Load(bad); err == nil {
		t.Fatal("load succeeded on a truncated stream")
	}

	// The committed NOT still evaluates.
	out, err := m.Evaluate(1, []circuit.Signal{circuit.Off})
	if err != nil {
		t.Fatalf("evaluate after fault: %v", err)
	}
	if out[0] != circuit.On {
		t.Errorf("NOT(0): got %s, want 1", out[0])
	}
}

func TestStalled(t *testing.T) {
	m := nandvm.New()

	_, err := m.Evaluate(0, []circuit.Signal{circuit.Undefined, circuit.On})
	if err == nil {
		t.Fatal("evaluate succeeded on an undefined input")
	}
	if !nandvm.Stalled(err) {
		t.Errorf("Stalled(%v): got false", err)
	}

	_, err = m.Evaluate(9, []circuit.Signal{circuit.On})
	if err == nil {
		t.Fatal("evaluate succeeded on an unknown circuit")
	}
	if nandvm.Stalled(err) {
		t.Errorf("Stalled(%v): got true for unknown circuit", err)
	}
}

func TestMachineWithLibrary(t *testing.T) {
	m := nandvm.New()
	if err := circuitlib.Load(m.Registry()); err != nil {
		t.Fatalf("load library: %v", err)
	}

	// 7 + 5 + 1 = 13: 0111 + 0101 -> carry 0, sum 1101.
	in := []circuit.Signal{
		circuit.Off, circuit.On, circuit.On, circuit.On,
		circuit.Off, circuit.On, circuit.Off, circuit.On,
		circuit.On,
	}
	out, err := m.Evaluate(circuitlib.Adder4, in)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	got := 0
	for _, s := range out {
		got = got<<1 | s.Bit()
	}
	if got != 13 {
		t.Errorf("7 + 5 + 1: got %d, want 13", got)
	}
}
