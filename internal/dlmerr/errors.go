// Package dlmerr defines the error kinds raised by the core reading
// pipeline (spec §7). Sentinel errors are used where no extra context is
// needed; structured errors carry the fields callers need to act on,
// following the (Error()/Unwrap()) shape of oleg578-swiftcsv's ParseError.
package dlmerr

import (
	"errors"
	"fmt"
)

// Sentinel errors with no structured payload. Use errors.Is to test for
// them even when wrapped with extra context via fmt.Errorf("%w: ...").
var (
	// ErrInvalidConfig is raised at construction when an option combination
	// is rejected before any byte is read.
	ErrInvalidConfig = errors.New("dlm: invalid config")

	// ErrLineTooLong is raised when a record would need a chunk buffer
	// larger than the hard limit (2^36-1 bytes).
	ErrLineTooLong = errors.New("dlm: line too long")

	// ErrFieldTooLong is raised when a single field exceeds 2^24-1 bytes.
	ErrFieldTooLong = errors.New("dlm: field too long")

	// ErrEmptyHeader is raised when no column names are recoverable at the
	// header line.
	ErrEmptyHeader = errors.New("dlm: empty header")

	// ErrOverflow is raised when an integer field's shape passed the state
	// machine but its value does not fit in a signed 64-bit integer.
	ErrOverflow = errors.New("dlm: integer overflow")

	// ErrFloatParse is raised when a float-shaped field fails to parse.
	ErrFloatParse = errors.New("dlm: float parse error")
)

// UnexpectedColumnCountError is raised when a record has too many or too
// few cells for the table's column count.
type UnexpectedColumnCountError struct {
	Line     int64
	Expected int
	Got      int
}

func (e *UnexpectedColumnCountError) Error() string {
	return fmt.Sprintf("dlm: line %d: unexpected column count: expected %d, got %d", e.Line, e.Expected, e.Got)
}

// InvalidByteInFieldError is raised on quote misuse, a stray control byte,
// or malformed UTF-8 inside a field.
type InvalidByteInFieldError struct {
	Line   int64
	Column int
	Byte   byte
}

func (e *InvalidByteInFieldError) Error() string {
	return fmt.Sprintf("dlm: line %d, column %d: invalid byte 0x%02x in field", e.Line, e.Column, e.Byte)
}

// TypeInferenceConflictError is raised when cross-chunk type widening is
// impossible (spec §4.6 rule 3).
type TypeInferenceConflictError struct {
	Column   string
	OldType  string
	NewType  string
}

func (e *TypeInferenceConflictError) Error() string {
	return fmt.Sprintf(
		"dlm: column %q: cannot widen %s to %s across chunks; retry with a larger chunkbits value or chunkbits=0 for single-chunk mode",
		e.Column, e.OldType, e.NewType,
	)
}
