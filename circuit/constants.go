package circuit

// Fixed machine bounds. All capacities are set ahead of time and checked
// defensively; exceeding any of them is a contract violation, never a
// retryable condition.
const (
	// StackDepth is the number of signal frames in the evaluation arena.
	StackDepth = 8

	// MaxWires is the number of signal slots per frame, and therefore the
	// highest usable wire index plus one.
	MaxWires = 32

	// MaxCircuits is the number of registry slots. Circuit ids share the
	// five id bits of an operation byte, so this matches the id space.
	MaxCircuits = 32

	// MaxModules is the module capacity of a single circuit definition
	// and of the evaluation ring.
	MaxModules = 32
)

// Primitive is the id of the NAND gate, the only pre-registered circuit.
// It is evaluated natively rather than by recursive module execution.
const Primitive = 0

// Instruction byte layout. The top bit selects operation versus literal;
// on operation bytes the next bit selects define-boundary versus apply;
// the low five bits carry a circuit id. Literal bytes carry a wire index.
const (
	OperationBit byte = 0x80
	DefineBit    byte = 0x40
	IDMask       byte = 0x1F
	LiteralMask  byte = 0x7F
)

// IsOperation reports whether b is an operation byte (apply or boundary).
func IsOperation(b byte) bool {
	return b&OperationBit != 0
}

// IsDefineBoundary reports whether an operation byte opens or closes a
// definition. Only meaningful when IsOperation(b) is true.
func IsDefineBoundary(b byte) bool {
	return b&DefineBit != 0
}

// OperationID extracts the circuit id from an operation byte.
func OperationID(b byte) int {
	return int(b & IDMask)
}

// WireIndex extracts the wire index from a literal byte.
func WireIndex(b byte) int {
	return int(b & LiteralMask)
}

// DefineByte builds the define-boundary byte for a circuit id.
func DefineByte(id int) byte {
	return OperationBit | DefineBit | (byte(id) & IDMask)
}

// ApplyByte builds the apply byte for a circuit id.
func ApplyByte(id int) byte {
	return OperationBit | (byte(id) & IDMask)
}

// LiteralByte builds the literal byte for a wire index.
func LiteralByte(wire int) byte {
	return byte(wire) & LiteralMask
}
