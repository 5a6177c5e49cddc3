// Package circuitlib provides a small library of standard circuits built
// from the NAND primitive: the basic gates, a half and full adder, and a
// 4-bit ripple-carry adder.
//
// Load decodes the whole library into a registry:
//
//	reg := circuit.NewRegistry()
//	if err := circuitlib.Load(reg); err != nil {
//	    log.Fatal(err)
//	}
//	out, _ := sim.New(reg).Run(circuitlib.And, []circuit.Signal{circuit.On, circuit.On})
package circuitlib

import (
	"github.com/wippyai/nandvm/circuit"
)

// Circuit ids assigned by the library. Nand is the machine primitive.
const (
	Nand      = circuit.Primitive
	Not       = 1
	And       = 2
	Or        = 3
	Nor       = 4
	Xor       = 5
	HalfAdder = 6
	FullAdder = 7
	Adder4    = 8
)

// Name returns the library's name for id, or "" for ids the library
// does not define.
func Name(id int) string {
	switch id {
	case Nand:
		return "NAND"
	case Not:
		return "NOT"
	case And:
		return "AND"
	case Or:
		return "OR"
	case Nor:
		return "NOR"
	case Xor:
		return "XOR"
	case HalfAdder:
		return "HALF-ADDER"
	case FullAdder:
		return "FULL-ADDER"
	case Adder4:
		return "ADDER-4"
	}
	return ""
}

// Programs returns the library's instruction streams in definition order.
// Each stream defines one circuit; later streams apply earlier ids.
func Programs() ([][]byte, error) {
	specs := []struct {
		id   int
		apps []app
	}{
		// NOT a: NAND(a, a)
		{Not, []app{
			{Nand, []int{0, 0, 1}},
		}},
		// AND a b: NOT(NAND(a, b))
		{And, []app{
			{Nand, []int{0, 1, 3}},
			{Not, []int{3, 2}},
		}},
		// OR a b: NAND(NOT a, NOT b)
		{Or, []app{
			{Nand, []int{0, 0, 3}},
			{Nand, []int{1, 1, 4}},
			{Nand, []int{3, 4, 2}},
		}},
		// NOR a b: NOT(OR(a, b))
		{Nor, []app{
			{Or, []int{0, 1, 3}},
			{Not, []int{3, 2}},
		}},
		// XOR a b: NAND(NAND(a, n), NAND(b, n)) with n = NAND(a, b)
		{Xor, []app{
			{Nand, []int{0, 1, 3}},
			{Nand, []int{0, 3, 4}},
			{Nand, []int{1, 3, 5}},
			{Nand, []int{4, 5, 2}},
		}},
		// Half adder a b -> carry, sum
		{HalfAdder, []app{
			{Xor, []int{0, 1, 3}},
			{And, []int{0, 1, 2}},
		}},
		// Full adder a b cin -> carry, sum
		{FullAdder, []app{
			{Xor, []int{0, 1, 5}},
			{Xor, []int{5, 2, 4}},
			{And, []int{5, 2, 6}},
			{And, []int{0, 1, 7}},
			{Or, []int{6, 7, 3}},
		}},
		// 4-bit ripple-carry adder:
		// inputs a3..a0 = 0..3, b3..b0 = 4..7, carry-in = 8
		// outputs carry-out = 9, s3..s0 = 10..13
		// carries ripple through wires 14, 15, 16
		{Adder4, []app{
			{FullAdder, []int{3, 7, 8, 14, 13}},
			{FullAdder, []int{2, 6, 14, 15, 12}},
			{FullAdder, []int{1, 5, 15, 16, 11}},
			{FullAdder, []int{0, 4, 16, 9, 10}},
		}},
	}

	programs := make([][]byte, 0, len(specs))
	for _, sp := range specs {
		p := circuit.NewProgram().Define(sp.id)
		for _, a := range sp.apps {
			p.Apply(a.target, a.wires...)
		}
		prog, err := p.End().Bytes()
		if err != nil {
			return nil, err
		}
		programs = append(programs, prog)
	}
	return programs, nil
}

type app struct {
	target int
	wires  []int
}

// Load decodes the whole library into reg.
func Load(reg *circuit.Registry) error {
	programs, err := Programs()
	if err != nil {
		return err
	}
	d := circuit.NewDecoder(reg)
	for _, prog := range programs {
		if err := d.Decode(prog); err != nil {
			return err
		}
	}
	return nil
}
