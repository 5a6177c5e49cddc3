package circuit

// Signal is the tri-valued state of one wire. Undefined persists until an
// evaluation assigns the wire; any combination with Undefined yields
// Undefined.
type Signal uint8

const (
	Undefined Signal = iota
	Off
	On
)

// Defined reports whether the signal carries a concrete value.
func (s Signal) Defined() bool {
	return s != Undefined
}

func (s Signal) String() string {
	switch s {
	case Undefined:
		return "?"
	case Off:
		return "0"
	case On:
		return "1"
	}
	return "!"
}

// FromBit converts 0/1 to Off/On; any other value yields Undefined.
func FromBit(b int) Signal {
	switch b {
	case 0:
		return Off
	case 1:
		return On
	}
	return Undefined
}

// Bit converts Off/On to 0/1 and Undefined to -1.
func (s Signal) Bit() int {
	switch s {
	case Off:
		return 0
	case On:
		return 1
	}
	return -1
}

// Module is one instantiated application of a sub-circuit inside a parent
// definition. Wirings maps the target's input positions, then its output
// positions, to parent-frame signal indices. The fixed array keeps Module a
// pure value: the copy scheduled during evaluation never aliases the stored
// definition.
type Module struct {
	Circuit int
	Wirings [MaxWires]int
}

// NewModule builds a module application. Wire indices beyond the target's
// input+output count are ignored.
func NewModule(target int, wires ...int) Module {
	m := Module{Circuit: target}
	copy(m.Wirings[:], wires)
	return m
}

// Circuit is a committed definition: an inferred input/output signature and
// the ordered module applications that implement it. The primitive at id 0
// has an empty module list and is evaluated natively.
type Circuit struct {
	Inputs  int
	Outputs int
	Modules []Module
}

// Width returns the number of frame slots the circuit's signature spans.
func (c Circuit) Width() int {
	return c.Inputs + c.Outputs
}
