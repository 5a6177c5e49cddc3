// Package binary provides the byte-level cursor for the instruction-stream
// format. Every instruction is a single byte, so the cursor is a plain
// position-tracked reader with peek support for argument scanning.
package binary

import (
	"fmt"
	"io"
)

// Reader is a position-tracking cursor over an instruction stream.
type Reader struct {
	data []byte
	pos  int
}

// NewReader creates a Reader over the given stream.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Position returns the current byte position.
func (r *Reader) Position() int {
	return r.pos
}

// Len returns the number of unread bytes.
func (r *Reader) Len() int {
	return len(r.data) - r.pos
}

// ReadByte returns the next byte and advances the position.
// Returns io.EOF at end of stream.
func (r *Reader) ReadByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

// PeekByte returns the next byte without advancing the position.
func (r *Reader) PeekByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	return r.data[r.pos], nil
}

// ParseError represents an error during stream decoding with position information.
type ParseError struct {
	Err      error
	Context  string
	Position int
}

func (e *ParseError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("stream: %s at position %d: %v", e.Context, e.Position, e.Err)
	}
	return fmt.Sprintf("stream: at position %d: %v", e.Position, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// WrapError creates a ParseError with the current position.
func (r *Reader) WrapError(context string, err error) error {
	return &ParseError{
		Position: r.pos,
		Context:  context,
		Err:      err,
	}
}
