package bytecursor

import (
	"fmt"
	"io"
)

// Cursor is a bounds-checked read position over a borrowed byte buffer.
// A Cursor is not safe for concurrent use. Create multiple cursors over
// the same buffer if concurrent access is needed.
type Cursor struct {
	// buf is the borrowed input; it is never copied or written
	buf []byte

	// pos is the offset of the next unread byte. It may exceed len(buf)
	// after a forward Seek, or be negative from NewAt; reads then fail as if
	// the buffer had ended.
	pos int
}

var (
	_ io.Reader     = (*Cursor)(nil)
	_ io.ByteReader = (*Cursor)(nil)
)

// New returns a cursor positioned at the start of buf.
func New(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// NewAt returns a cursor positioned at start. The start position is not
// validated; outside [0, len(buf)] no data is available until a Seek or
// Reset moves it back.
func NewAt(buf []byte, start int) *Cursor {
	return &Cursor{buf: buf, pos: start}
}

// Reset moves the cursor back to the start of the buffer.
func (c *Cursor) Reset() {
	c.pos = 0
}

// Pos returns the current position.
func (c *Cursor) Pos() int {
	return c.pos
}

// Size returns the length of the underlying buffer.
func (c *Cursor) Size() int {
	return len(c.buf)
}

// Len returns the number of unread bytes.
func (c *Cursor) Len() int {
	if c.pos < 0 {
		return 0
	}
	return max(len(c.buf)-c.pos, 0)
}

// IsEnd reports whether no bytes are left to read.
func (c *Cursor) IsEnd() bool {
	return c.pos < 0 || c.pos >= len(c.buf)
}

// Seek moves the position by offset bytes relative to the current position.
// A result below zero fails with ErrOutOfRange and leaves the position
// unchanged. Seeking past the end is allowed; the next read reports the
// shortage.
func (c *Cursor) Seek(offset int) error {
	next := c.pos + offset
	if next < 0 {
		return fmt.Errorf("%w: seek by %d from offset %d", ErrOutOfRange, offset, c.pos)
	}
	c.pos = next
	return nil
}

// NextByte returns the next byte and advances by one. At the end of the
// buffer it returns (0, false) and leaves the position unchanged.
func (c *Cursor) NextByte() (byte, bool) {
	if c.IsEnd() {
		return 0, false
	}
	b := c.buf[c.pos]
	c.pos++
	return b, true
}

// ReadByte implements io.ByteReader. It returns io.EOF at the end of the buffer.
func (c *Cursor) ReadByte() (byte, error) {
	b, ok := c.NextByte()
	if !ok {
		return 0, io.EOF
	}
	return b, nil
}

// ReadExact returns the next n bytes and advances by n. The result aliases
// the underlying buffer. n must be at least 1. If fewer than n bytes remain
// it returns an *InsufficientDataError and the position is not changed.
func (c *Cursor) ReadExact(n int) ([]byte, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: read length %d (must be at least 1)", ErrOutOfRange, n)
	}
	if c.pos < 0 {
		return nil, fmt.Errorf("%w: read at negative offset %d", ErrOutOfRange, c.pos)
	}
	if avail := c.Len(); avail < n {
		return nil, &InsufficientDataError{Requested: n, Available: avail, Offset: c.pos}
	}
	start := c.pos
	c.pos += n
	return c.buf[start:c.pos:c.pos], nil
}

// ReadBestEffort returns up to n bytes, fewer if the buffer ends first, and
// advances by the number returned. It never fails. Panics if n is negative.
func (c *Cursor) ReadBestEffort(n int) []byte {
	if n < 0 {
		panic(fmt.Sprintf("bytecursor: invalid read length %d (cannot be negative)", n))
	}
	n = min(n, c.Len())
	if n == 0 {
		return c.buf[len(c.buf):]
	}
	start := c.pos
	c.pos += n
	return c.buf[start:c.pos:c.pos]
}

// ReadInto copies up to len(dst) bytes into dst, advances by the number
// copied and returns it. Bytes of dst past the copied count are untouched.
func (c *Cursor) ReadInto(dst []byte) int {
	if c.IsEnd() {
		return 0
	}
	n := copy(dst, c.buf[c.pos:])
	c.pos += n
	return n
}

// Read implements io.Reader on top of ReadInto.
func (c *Cursor) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	n := c.ReadInto(p)
	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}

// Remaining returns the unread tail of the buffer without moving the
// position. The result aliases the underlying buffer.
func (c *Cursor) Remaining() []byte {
	if c.IsEnd() {
		return c.buf[len(c.buf):]
	}
	return c.buf[c.pos:]
}
