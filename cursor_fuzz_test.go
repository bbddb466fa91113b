//go:build fuzz

package bytecursor

import (
	"encoding/binary"
	"errors"
	"testing"
)

// FuzzReadUvarint32 checks the decoder never panics and agrees with
// encoding/binary on minimal encodings that fit in 32 bits.
func FuzzReadUvarint32(f *testing.F) {
	f.Add([]byte{0x00})
	f.Add([]byte{0xAC, 0x02})
	f.Add([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0x0F})
	f.Add([]byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x01})

	f.Fuzz(func(t *testing.T, data []byte) {
		c := New(data)
		got, err := c.ReadUvarint32()
		if c.Pos() > len(data) {
			t.Fatalf("position %d beyond buffer of %d bytes", c.Pos(), len(data))
		}
		if err != nil {
			if !errors.Is(err, ErrUnexpectedEndOfBuffer) && !errors.Is(err, ErrVarintOverflow) {
				t.Fatalf("unexpected error %v", err)
			}
			return
		}

		want, n := binary.Uvarint(data)
		if n > 0 && want <= 0xFFFFFFFF && n == c.Pos() {
			if uint32(want) != got {
				t.Fatalf("decoded %d, encoding/binary decoded %d from %x", got, want, data[:n])
			}
		}
	})
}

// FuzzCursorReads drives a cursor with reads chosen by the input and checks
// that positions stay consistent and failed reads consume nothing.
func FuzzCursorReads(f *testing.F) {
	f.Add([]byte{1, 2, 3, 4, 5, 6, 7, 8}, []byte{4, 2, 1, 16})
	f.Add([]byte{}, []byte{1})

	f.Fuzz(func(t *testing.T, data, ops []byte) {
		c := New(data)
		for _, op := range ops {
			before := c.Pos()
			n := int(op%20) + 1
			out, err := c.ReadExact(n)
			switch {
			case err != nil:
				if c.Pos() != before {
					t.Fatalf("failed ReadExact(%d) moved position %d -> %d", n, before, c.Pos())
				}
				rest := c.ReadBestEffort(n)
				if len(rest) != len(data)-before {
					t.Fatalf("best effort read %d bytes, want %d", len(rest), len(data)-before)
				}
			case len(out) != n || c.Pos() != before+n:
				t.Fatalf("ReadExact(%d) returned %d bytes, position %d", n, len(out), c.Pos())
			}
		}
	})
}
