// Package asm compiles a small text netlist form into the binary
// instruction stream the circuit decoder consumes.
//
// The format is line oriented. A definition block is:
//
//	# AND from two NANDs
//	def 2
//	  use 0: 0 1 3
//	  use 1: 3 2
//	end
//
// `def N` opens the definition of circuit N, each `use N: w...` line
// applies circuit N with the given parent wires (input positions first,
// then output positions), and `end` closes the block. `#` starts a
// comment; blank lines are ignored. The compiler checks token shape only;
// signature inference and validation remain the decoder's job.
package asm

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/wippyai/nandvm/circuit"
)

// Compile translates netlist source into an instruction stream.
func Compile(src string) ([]byte, error) {
	p := circuit.NewProgram()
	open := false

	for n, line := range strings.Split(src, "\n") {
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "def":
			if open {
				return nil, lineError(n, "def inside an open definition")
			}
			if len(fields) != 2 {
				return nil, lineError(n, "def wants exactly one circuit id")
			}
			id, err := parseNum(fields[1])
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: def", n+1)
			}
			p.Define(id)
			open = true

		case "use":
			if !open {
				return nil, lineError(n, "use outside a definition")
			}
			target, wires, err := parseUse(strings.Join(fields[1:], " "))
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: use", n+1)
			}
			p.Apply(target, wires...)

		case "end":
			if !open {
				return nil, lineError(n, "end without an open definition")
			}
			if len(fields) != 1 {
				return nil, lineError(n, "end takes no arguments")
			}
			p.End()
			open = false

		default:
			return nil, lineError(n, "unknown directive %q", fields[0])
		}
	}

	if open {
		return nil, errors.New("definition left open at end of input")
	}

	out, err := p.Bytes()
	return out, errors.Wrap(err, "encode")
}

// parseUse splits "N: w w w" into a target id and wire list.
func parseUse(s string) (int, []int, error) {
	head, tail, found := strings.Cut(s, ":")
	if !found {
		return 0, nil, errors.New("missing ':' after circuit id")
	}
	target, err := parseNum(strings.TrimSpace(head))
	if err != nil {
		return 0, nil, err
	}

	fields := strings.Fields(tail)
	if len(fields) == 0 {
		return 0, nil, errors.New("missing wire list")
	}
	wires := make([]int, len(fields))
	for i, f := range fields {
		w, err := parseNum(f)
		if err != nil {
			return 0, nil, err
		}
		wires[i] = w
	}
	return target, wires, nil
}

func parseNum(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Errorf("expected a number, got %q", s)
	}
	if n < 0 {
		return 0, errors.Errorf("negative value %d", n)
	}
	return n, nil
}

func lineError(n int, msg string, args ...any) error {
	return errors.Errorf("line %d: "+msg, append([]any{n + 1}, args...)...)
}
