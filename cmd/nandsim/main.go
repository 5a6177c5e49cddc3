package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/nandvm"
	"github.com/wippyai/nandvm/asm"
	"github.com/wippyai/nandvm/circuit"
	"github.com/wippyai/nandvm/circuitlib"
)

func main() {
	var (
		progFile    = flag.String("prog", "", "Program file: raw instruction bytes, or .nand assembly")
		useLib      = flag.Bool("lib", false, "Preload the standard circuit library")
		evalID      = flag.Int("eval", -1, "Circuit id to evaluate")
		inBits      = flag.String("in", "", "Input bits, most significant first (e.g. 1011)")
		list        = flag.Bool("list", false, "List registered circuits and exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Enable debug logging")
	)
	flag.Parse()

	if *progFile == "" && !*useLib {
		fmt.Fprintln(os.Stderr, "Usage: nandsim [-lib] [-prog <file>] -eval <id> -in <bits>")
		fmt.Fprintln(os.Stderr, "       nandsim [-lib] [-prog <file>] -list")
		fmt.Fprintln(os.Stderr, "       nandsim [-lib] [-prog <file>] -i  (interactive mode)")
		os.Exit(1)
	}

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		nandvm.SetLogger(logger.With(zap.String("run", uuid.NewString())))
	}

	m, err := load(*progFile, *useLib)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(m); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *list {
		listCircuits(m)
		return
	}

	if *evalID < 0 {
		fmt.Fprintln(os.Stderr, "Error: nothing to do; pass -eval, -list or -i")
		os.Exit(1)
	}
	if err := evaluate(m, *evalID, *inBits); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func load(progFile string, useLib bool) (*nandvm.Machine, error) {
	m := nandvm.New()

	if useLib {
		if err := circuitlib.Load(m.Registry()); err != nil {
			return nil, fmt.Errorf("load library: %w", err)
		}
	}

	if progFile != "" {
		data, err := os.ReadFile(progFile)
		if err != nil {
			return nil, fmt.Errorf("read file: %w", err)
		}
		program := data
		if filepath.Ext(progFile) == ".nand" {
			program, err = asm.Compile(string(data))
			if err != nil {
				return nil, fmt.Errorf("assemble: %w", err)
			}
		}
		if err := m.Load(program); err != nil {
			return nil, fmt.Errorf("load program: %w", err)
		}
	}

	return m, nil
}

func listCircuits(m *nandvm.Machine) {
	fmt.Println("Registered circuits:")
	for _, id := range m.Registry().IDs() {
		c, _ := m.Registry().Lookup(id)
		kind := fmt.Sprintf("%d modules", len(c.Modules))
		if id == circuit.Primitive {
			kind = "primitive"
		}
		fmt.Printf("  %2d: %d in, %d out (%s)\n", id, c.Inputs, c.Outputs, kind)
	}
}

func evaluate(m *nandvm.Machine, id int, bits string) error {
	inputs, err := parseBits(bits)
	if err != nil {
		return err
	}

	out, err := m.Evaluate(id, inputs)
	if err != nil {
		return err
	}

	var b strings.Builder
	for _, s := range out {
		b.WriteString(s.String())
	}
	fmt.Printf("circuit %d(%s) = %s\n", id, bits, b.String())

	stats := m.Stats()
	fmt.Printf("nand evaluations: %d, retries: %d\n", stats.NandEvals, stats.Retries)
	return nil
}

func parseBits(bits string) ([]circuit.Signal, error) {
	if bits == "" {
		return nil, fmt.Errorf("no input bits; pass -in")
	}
	inputs := make([]circuit.Signal, 0, len(bits))
	for _, r := range bits {
		switch r {
		case '0':
			inputs = append(inputs, circuit.Off)
		case '1':
			inputs = append(inputs, circuit.On)
		case '?':
			inputs = append(inputs, circuit.Undefined)
		default:
			return nil, fmt.Errorf("bad input bit %q; want 0, 1 or ?", r)
		}
	}
	return inputs, nil
}
