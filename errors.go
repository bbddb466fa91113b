package bytecursor

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is returned when an argument or a seek would move the cursor
// to an invalid position.
var ErrOutOfRange = errors.New("bytecursor: out of range")

// ErrInsufficientData is returned when fewer bytes remain than a read needs.
// The concrete error is an *InsufficientDataError.
var ErrInsufficientData = errors.New("bytecursor: insufficient data")

// ErrUnexpectedEndOfBuffer is returned when a varint is cut off before its
// terminal byte.
var ErrUnexpectedEndOfBuffer = errors.New("bytecursor: unexpected end of buffer")

// ErrVarintOverflow is returned when a varint has more continuation bytes
// than a 32-bit value can hold.
var ErrVarintOverflow = errors.New("bytecursor: varint overflow")

// ErrInvalidDecimal is returned by Decimal128.Validate for reserved flag bits
// or a scale above MaxDecimalScale.
var ErrInvalidDecimal = errors.New("bytecursor: invalid decimal")

// InsufficientDataError describes a read that needed more bytes than the
// buffer had left. It matches ErrInsufficientData with errors.Is.
type InsufficientDataError struct {
	Requested int // bytes the read needed
	Available int // bytes left at Offset
	Offset    int // cursor position when the read was attempted
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("%v: need %d bytes at offset %d, have %d",
		ErrInsufficientData, e.Requested, e.Offset, e.Available)
}

// Is reports whether target is ErrInsufficientData.
func (e *InsufficientDataError) Is(target error) bool {
	return target == ErrInsufficientData
}
