package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseDecode,
				Kind:   KindMalformedStream,
				Path:   []string{"define", "read-args"},
				Detail: "operation byte inside argument list",
			},
			contains: []string{"[decode]", "malformed_stream", "define.read-args", "operation byte inside argument list"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseSimulate,
				Kind:  KindInvariant,
			},
			contains: []string{"[simulate]", "invariant"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseLoad,
				Kind:   KindInvalidInput,
				Detail: "bad program file",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[load]", "invalid_input", "bad program file", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseDecode,
		Kind:  KindMalformedStream,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}

	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := Redefinition(5)

	if !errors.Is(err, &Error{Phase: PhaseDecode, Kind: KindRedefinition}) {
		t.Error("Is should match on same phase and kind")
	}
	if errors.Is(err, &Error{Phase: PhaseDecode, Kind: KindUnknownCircuit}) {
		t.Error("Is should not match different kind")
	}
	if errors.Is(err, &Error{Phase: PhaseValidate, Kind: KindRedefinition}) {
		t.Error("Is should not match different phase")
	}
	if errors.Is(err, errors.New("plain")) {
		t.Error("Is should not match non-Error target")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("inner")
	err := New(PhaseValidate, KindSignatureGap).
		Path("circuit", "7").
		Value(7).
		Cause(cause).
		Detail("input %d was never tallied", 3).
		Build()

	if err.Phase != PhaseValidate || err.Kind != KindSignatureGap {
		t.Errorf("unexpected phase/kind: %s/%s", err.Phase, err.Kind)
	}
	if err.Detail != "input 3 was never tallied" {
		t.Errorf("unexpected detail: %q", err.Detail)
	}
	if !errors.Is(err, &Error{Phase: PhaseValidate, Kind: KindSignatureGap}) {
		t.Error("built error should match its phase/kind")
	}
	if !errors.Is(err, cause) {
		t.Error("built error should unwrap to cause")
	}
}

func TestConvenienceConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want Kind
	}{
		{"MalformedStream", MalformedStream(4, "lone literal"), KindMalformedStream},
		{"Truncated", Truncated(9, "reading arguments"), KindMalformedStream},
		{"Redefinition", Redefinition(2), KindRedefinition},
		{"UnknownCircuit", UnknownCircuit(PhaseDecode, 9), KindUnknownCircuit},
		{"SignatureGap", SignatureGap(3, "output indices not contiguous"), KindSignatureGap},
		{"Capacity", Capacity(PhaseDecode, "module count", 40, 32), KindCapacity},
		{"Invariant", Invariant("ring size %d exceeds capacity", 99), KindInvariant},
		{"Stalled", Stalled(8), KindStalled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Kind != tt.want {
				t.Errorf("got kind %s, want %s", tt.err.Kind, tt.want)
			}
			if tt.err.Error() == "" {
				t.Error("empty error message")
			}
		})
	}
}
