// Package nandvm provides a minimal virtual machine for hierarchical
// boolean circuits built purely from the NAND gate.
//
// A compact binary instruction stream defines circuits as compositions of
// module applications; an execution engine evaluates any defined circuit
// against concrete signal values.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct
// responsibilities:
//
//	nandvm/          Root package with the Machine facade
//	├── circuit/     Data model, registry, instruction-stream codec
//	├── sim/         Frame arena, ring scheduler, recursive evaluator
//	├── circuitlib/  Standard circuits: gates, adders
//	├── asm/         Text netlist to instruction-stream compiler
//	├── errors/      Structured error types
//	└── cmd/nandsim  CLI driver with an interactive TUI
//
// # Quick Start
//
// Load a program and evaluate a circuit:
//
//	m := nandvm.New()
//	if err := m.Load(program); err != nil {
//	    log.Fatal(err)
//	}
//
//	out, err := m.Evaluate(2, []circuit.Signal{circuit.On, circuit.On})
//	fmt.Println(out) // [1]
//
// # Signals
//
// Wires carry tri-valued signals: Undefined, Off, On. Undefined marks a
// wire no evaluation has assigned yet; a module whose inputs include an
// Undefined signal is deferred and retried once other modules have run.
// Combining with Undefined always yields Undefined.
//
// # Concurrency
//
// A Machine is single-threaded. The registry and the signal arena are
// owned by one logical thread of control; recursion is strictly nested,
// so the frame at each depth belongs to exactly one in-flight call.
package nandvm
