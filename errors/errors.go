package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseDecode   Phase = "decode"   // instruction-stream decoding
	PhaseEncode   Phase = "encode"   // program building
	PhaseValidate Phase = "validate" // definition validation
	PhaseSimulate Phase = "simulate" // circuit evaluation
	PhaseLoad     Phase = "load"     // program loading
	PhaseParse    Phase = "parse"    // netlist assembly parsing
)

// Kind categorizes the error
type Kind string

const (
	// KindMalformedStream covers truncated input, a literal outside an
	// apply context, a bare apply at the top level, or an operation
	// byte inside an argument list.
	KindMalformedStream Kind = "malformed_stream"

	// KindRedefinition is returned when a definition targets an id
	// already present in the registry.
	KindRedefinition Kind = "redefinition"

	// KindUnknownCircuit is returned when an apply references an id
	// with no committed definition.
	KindUnknownCircuit Kind = "unknown_circuit"

	// KindSignatureGap covers definition inconsistencies: input or
	// output indices not contiguous from their base, a wire whose role
	// never resolved to exactly one category, or zero counts.
	KindSignatureGap Kind = "signature_gap"

	// KindCapacity covers every fixed-bound overflow: modules per
	// circuit, arguments per application, registry slots, wire
	// indices, frame-stack depth.
	KindCapacity Kind = "capacity"

	// KindInvariant marks impossible internal states: broken ring
	// bookkeeping, an unreachable convergence-loop branch. These are
	// engine bugs, never user errors.
	KindInvariant Kind = "invariant"

	// KindStalled is returned when an evaluation makes no progress
	// over a full pass: some input needed by every pending module is
	// Undefined, either because the caller never seeded it or because
	// the circuit contains a dependency cycle.
	KindStalled Kind = "stalled"

	KindInvalidInput Kind = "invalid_input"
)

// Error is the structured error type used throughout the machine
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the location path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// MalformedStream creates a malformed-stream error at a byte position
func MalformedStream(pos int, detail string) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindMalformedStream,
		Detail: fmt.Sprintf("at byte %d: %s", pos, detail),
		Value:  pos,
	}
}

// Truncated creates a malformed-stream error for unexpected end of input
func Truncated(pos int, while string) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindMalformedStream,
		Detail: fmt.Sprintf("stream ended at byte %d while %s", pos, while),
		Value:  pos,
	}
}

// Redefinition creates a redefinition error for an already-registered id
func Redefinition(id int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindRedefinition,
		Detail: fmt.Sprintf("circuit %d is already defined", id),
		Value:  id,
	}
}

// UnknownCircuit creates an unknown-circuit error
func UnknownCircuit(phase Phase, id int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnknownCircuit,
		Detail: fmt.Sprintf("circuit %d is not defined", id),
		Value:  id,
	}
}

// SignatureGap creates a definition-inconsistency error
func SignatureGap(id int, detail string) *Error {
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindSignatureGap,
		Detail: detail,
		Value:  id,
	}
}

// Capacity creates a capacity-exceeded error
func Capacity(phase Phase, what string, value, limit int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindCapacity,
		Detail: fmt.Sprintf("%s %d exceeds limit %d", what, value, limit),
		Value:  value,
	}
}

// Invariant creates an engine-invariant-violation error
func Invariant(detail string, args ...any) *Error {
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}
	return &Error{
		Phase:  PhaseSimulate,
		Kind:   KindInvariant,
		Detail: detail,
	}
}

// Stalled creates a stalled-evaluation error
func Stalled(id int) *Error {
	return &Error{
		Phase:  PhaseSimulate,
		Kind:   KindStalled,
		Detail: fmt.Sprintf("evaluation of circuit %d made no progress", id),
		Value:  id,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
