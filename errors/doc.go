// Package errors provides structured error types for the nandvm library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Kinds map directly onto the failure taxonomy of the machine:
// malformed streams, definition inconsistencies, capacity overflows, engine
// invariant violations, and stalled evaluations.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindMalformedStream).
//		Path("define", "read-args").
//		Detail("operation byte inside argument list").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Redefinition(5)
//	err := errors.Capacity(errors.PhaseDecode, "module count", 33, 32)
//
// All errors implement the standard error interface and support errors.Is/As;
// Is matches on the (Phase, Kind) pair so callers can distinguish the
// categories without inspecting messages.
package errors
