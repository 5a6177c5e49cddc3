// Package sim evaluates committed circuits against concrete signal values.
//
// Evaluation is recursive: a circuit at frame depth d runs each of its
// module applications in a child frame at depth d+1, copying inputs down
// through the module's wiring and outputs back up. Modules whose inputs
// are not yet available fail softly and are deferred to the back of a
// bounded ring; the evaluator sweeps the ring in passes until either every
// module has produced its outputs (success) or a full pass defers
// everything (stall). Dependencies between modules are never declared;
// the fixed point resolves them.
//
//	reg := circuit.NewRegistry()
//	circuit.NewDecoder(reg).Decode(program)
//
//	s := sim.New(reg)
//	out, err := s.Run(2, []circuit.Signal{circuit.On, circuit.On})
//
// A stalled top-level evaluation (an input the caller never seeded, or a
// true wiring cycle) is reported as an error of kind "stalled", never as
// an infinite loop.
package sim
