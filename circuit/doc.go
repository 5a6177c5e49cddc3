// Package circuit provides the data model and binary instruction-stream
// codec for NAND-composition circuits.
//
// # Instruction Format
//
// Each instruction is a single byte:
//
//	0xxxxxxx  literal: wire index in the low bits
//	10xIIIII  apply: instantiate circuit I, followed by exactly
//	          (inputs+outputs of I) literal bytes
//	11xIIIII  define-boundary: open or close the definition of circuit I
//
// A definition is a define-boundary byte, one or more complete apply
// instructions, and the matching define-boundary byte. Circuit id 0 is the
// pre-registered NAND primitive and cannot be redefined.
//
// # Signature Inference
//
// A definition never declares its input/output counts. The decoder infers
// them: a wire used only in input positions across the whole definition is
// an input, a wire used only in output positions is an output, and a wire
// seen in both roles is internal wiring, excluded from the signature. A
// committed circuit's inputs occupy frame slots [0, inputs) and its
// outputs the slots [inputs, inputs+outputs).
//
// # Decoding
//
//	reg := circuit.NewRegistry()
//	if err := circuit.NewDecoder(reg).Decode(program); err != nil {
//	    log.Fatal(err)
//	}
//
// Any malformed byte aborts the whole run; previously committed
// definitions stay registered.
//
// # Encoding
//
// ProgramBuilder is the writer-side mirror:
//
//	p := circuit.NewProgram()
//	p.Define(2).
//	    Apply(circuit.Primitive, 0, 1, 3).
//	    Apply(1, 3, 2).
//	    End()
//	program, err := p.Bytes()
package circuit
