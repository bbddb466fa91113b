package bytecursor

import "fmt"

const (
	// varintContinuation marks a byte that is followed by another.
	varintContinuation = 0x80
	// varintPayloadMask selects the 7 data bits of a continuation byte.
	varintPayloadMask = 0x7F
	// varintMaxShift is the last shift a 32-bit varint may reach; a
	// continuation byte that pushes the shift beyond it is an overflow.
	varintMaxShift = 28

	// MaxVarintLen32 is the maximum encoded length of a 32-bit varint.
	MaxVarintLen32 = 5
)

// ReadUvarint32 decodes a LEB128 unsigned varint, least significant group
// first, of at most MaxVarintLen32 bytes. The terminal byte is used as-is, so
// bits of a fifth byte beyond the 32-bit range are discarded.
//
// Bytes consumed before a failure stay consumed. It fails with
// ErrUnexpectedEndOfBuffer if the buffer ends before a terminal byte and with
// ErrVarintOverflow on a fifth continuation byte.
func (c *Cursor) ReadUvarint32() (uint32, error) {
	start := c.pos
	var value uint32
	var shift uint
	for {
		b, ok := c.NextByte()
		if !ok {
			return 0, fmt.Errorf("%w: varint at offset %d truncated after %d bytes",
				ErrUnexpectedEndOfBuffer, start, c.pos-start)
		}
		if b&varintContinuation == 0 {
			value |= uint32(b) << shift
			return value, nil
		}
		value |= uint32(b&varintPayloadMask) << shift
		shift += 7
		if shift > varintMaxShift {
			return 0, fmt.Errorf("%w: varint at offset %d exceeds %d bytes",
				ErrVarintOverflow, start, MaxVarintLen32)
		}
	}
}

// ReadVarint32 decodes a zigzag-mapped signed varint.
func (c *Cursor) ReadVarint32() (int32, error) {
	v, err := c.ReadUvarint32()
	if err != nil {
		return 0, err
	}
	return zigzagDecode32(v), nil
}

// zigzagDecode32 decodes a zigzag integer back into a 32-bit integer.
func zigzagDecode32(v uint32) int32 {
	return int32((v >> 1) ^ uint32(-(int32(v & 1))))
}
