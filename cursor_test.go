package bytecursor

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Example demonstrates decoding a small record.
func Example() {
	buf := []byte{
		0x2A, 0x00, 0x00, 0x00, // int32 42
		0xAC, 0x02, // uvarint 300
		0x03, // zigzag varint -2
		0x01, // bool
	}
	c := New(buf)

	i, _ := c.ReadInt32()
	u, _ := c.ReadUvarint32()
	s, _ := c.ReadVarint32()
	b, _ := c.ReadBool()
	fmt.Println(i, u, s, b, c.IsEnd())

	// Output:
	// 42 300 -2 true true
}

// TestReadExactFromStart tests the basic zero-copy read.
func TestReadExactFromStart(t *testing.T) {
	assert := assert.New(t)

	buf := []byte{1, 2, 3, 4, 5}
	c := New(buf)

	got, err := c.ReadExact(2)
	assert.NoError(err)
	assert.Equal([]byte{1, 2}, got)
	assert.Equal(2, c.Pos())

	// The result aliases the input buffer
	buf[0] = 9
	assert.Equal(byte(9), got[0])
}

// TestReadExactScenario covers the start-at-2 scenarios.
func TestReadExactScenario(t *testing.T) {
	t.Run("exact tail", func(t *testing.T) {
		c := NewAt([]byte{1, 2, 3, 4, 5}, 2)
		got, err := c.ReadExact(3)
		require.NoError(t, err)
		assert.Equal(t, []byte{3, 4, 5}, got)
		assert.True(t, c.IsEnd())
	})

	t.Run("insufficient", func(t *testing.T) {
		c := NewAt([]byte{1, 2, 3, 4, 5}, 2)
		got, err := c.ReadExact(4)
		assert.Nil(t, got)
		require.ErrorIs(t, err, ErrInsufficientData)

		var insufficient *InsufficientDataError
		require.True(t, errors.As(err, &insufficient))
		assert.Equal(t, 4, insufficient.Requested)
		assert.Equal(t, 3, insufficient.Available)
		assert.Equal(t, 2, insufficient.Offset)
		assert.Equal(t, 2, c.Pos(), "position must not change on failure")
	})
}

// TestReadExactInvariant checks position and content for every start and length.
func TestReadExactInvariant(t *testing.T) {
	buf := make([]byte, 16)
	for i := range buf {
		buf[i] = byte(i * 3)
	}
	for p := 0; p <= len(buf); p++ {
		for n := 1; n <= len(buf)+1; n++ {
			c := NewAt(buf, p)
			got, err := c.ReadExact(n)
			if p+n > len(buf) {
				assert.ErrorIs(t, err, ErrInsufficientData, "p=%d n=%d", p, n)
				assert.Equal(t, p, c.Pos(), "p=%d n=%d", p, n)
				continue
			}
			require.NoError(t, err, "p=%d n=%d", p, n)
			assert.Equal(t, buf[p:p+n], got, "p=%d n=%d", p, n)
			assert.Equal(t, p+n, c.Pos(), "p=%d n=%d", p, n)
		}
	}
}

// TestReadExactInvalidLength tests the n >= 1 argument check.
func TestReadExactInvalidLength(t *testing.T) {
	c := New([]byte{1, 2, 3})
	for _, n := range []int{0, -1} {
		_, err := c.ReadExact(n)
		assert.ErrorIs(t, err, ErrOutOfRange, "n=%d", n)
		assert.Equal(t, 0, c.Pos())
	}
}

// TestReadExactCapacity ensures appending to a result cannot clobber the buffer.
func TestReadExactCapacity(t *testing.T) {
	buf := []byte{1, 2, 3, 4}
	c := New(buf)
	got, err := c.ReadExact(2)
	require.NoError(t, err)
	assert.Equal(t, 2, cap(got))
	_ = append(got, 0xFF)
	assert.Equal(t, byte(3), buf[2])
}

// TestReadBestEffort tests short reads at and past the end.
func TestReadBestEffort(t *testing.T) {
	tests := []struct {
		name    string
		start   int
		n       int
		want    []byte
		wantPos int
	}{
		{"full", 0, 3, []byte{1, 2, 3}, 3},
		{"short", 3, 10, []byte{4, 5}, 5},
		{"zero", 1, 0, []byte{}, 1},
		{"at end", 5, 4, []byte{}, 5},
		{"past end", 9, 4, []byte{}, 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewAt([]byte{1, 2, 3, 4, 5}, tt.start)
			got := c.ReadBestEffort(tt.n)
			assert.Len(t, got, len(tt.want))
			if len(tt.want) > 0 {
				assert.Equal(t, tt.want, got)
			}
			assert.Equal(t, tt.wantPos, c.Pos())
		})
	}

	assert.Panics(t, func() { New(nil).ReadBestEffort(-1) })
}

// TestReadInto tests copying into a caller buffer.
func TestReadInto(t *testing.T) {
	assert := assert.New(t)

	c := NewAt([]byte{1, 2, 3, 4, 5}, 3)
	dst := []byte{9, 9, 9, 9}
	n := c.ReadInto(dst)
	assert.Equal(2, n)
	assert.Equal([]byte{4, 5, 9, 9}, dst, "bytes past the copied count stay untouched")
	assert.Equal(5, c.Pos())

	assert.Equal(0, c.ReadInto(dst))

	// Past the end after a forward seek
	c = New([]byte{1})
	require.NoError(t, c.Seek(5))
	assert.Equal(0, c.ReadInto(dst))
	assert.Equal(5, c.Pos())
}

// TestReaderInterfaces tests the io.Reader and io.ByteReader adapters.
func TestReaderInterfaces(t *testing.T) {
	assert := assert.New(t)

	c := New([]byte{0xAC, 0x02, 7, 8, 9})

	// binary.ReadUvarint consumes through io.ByteReader
	v, err := binary.ReadUvarint(c)
	assert.NoError(err)
	assert.Equal(uint64(300), v)

	rest, err := io.ReadAll(c)
	assert.NoError(err)
	assert.Equal([]byte{7, 8, 9}, rest)

	_, err = c.ReadByte()
	assert.ErrorIs(err, io.EOF)

	n, err := c.Read(nil)
	assert.NoError(err)
	assert.Equal(0, n)
}

// TestNextByte tests the non-failing single byte read.
func TestNextByte(t *testing.T) {
	assert := assert.New(t)

	c := New([]byte{0x10, 0x20})
	b, ok := c.NextByte()
	assert.True(ok)
	assert.Equal(byte(0x10), b)
	b, ok = c.NextByte()
	assert.True(ok)
	assert.Equal(byte(0x20), b)

	_, ok = c.NextByte()
	assert.False(ok)
	assert.Equal(2, c.Pos(), "no-data result must not move the cursor")
}

// TestSeek tests relative seeking including the lazy past-the-end case.
func TestSeek(t *testing.T) {
	assert := assert.New(t)

	c := New([]byte{1, 2, 3, 4})
	assert.NoError(c.Seek(3))
	assert.Equal(3, c.Pos())
	assert.NoError(c.Seek(-2))
	assert.Equal(1, c.Pos())

	err := c.Seek(-2)
	assert.ErrorIs(err, ErrOutOfRange)
	assert.Equal(1, c.Pos())

	// Forward past the end is accepted, the next read fails
	assert.NoError(c.Seek(10))
	assert.Equal(11, c.Pos())
	assert.True(c.IsEnd())
	assert.Equal(0, c.Len())
	assert.Empty(c.Remaining())

	_, err = c.ReadExact(1)
	var insufficient *InsufficientDataError
	assert.True(errors.As(err, &insufficient))
	assert.Equal(0, insufficient.Available)
	assert.Equal(11, c.Pos())

	_, ok := c.NextByte()
	assert.False(ok)

	c.Reset()
	assert.Equal(0, c.Pos())
	assert.False(c.IsEnd())
}

// TestRemaining tests that tail inspection is idempotent.
func TestRemaining(t *testing.T) {
	assert := assert.New(t)

	c := NewAt([]byte{1, 2, 3, 4, 5}, 1)
	first := c.Remaining()
	second := c.Remaining()
	assert.Equal([]byte{2, 3, 4, 5}, first)
	assert.Equal(first, second)
	assert.Equal(1, c.Pos())
	assert.Equal(4, c.Len())
	assert.Equal(5, c.Size())

	_, err := c.ReadExact(2)
	require.NoError(t, err)
	assert.Equal([]byte{4, 5}, c.Remaining())
}

// TestEmptyBuffer tests a cursor over nil.
func TestEmptyBuffer(t *testing.T) {
	assert := assert.New(t)

	c := New(nil)
	assert.True(c.IsEnd())
	assert.Equal(0, c.Size())
	assert.Empty(c.Remaining())
	assert.Empty(c.ReadBestEffort(8))
	_, err := c.ReadExact(1)
	assert.ErrorIs(err, ErrInsufficientData)
}

// TestIndependentCursors tests two cursors over one buffer.
func TestIndependentCursors(t *testing.T) {
	buf := []byte{1, 2, 3, 4}
	a, b := New(buf), NewAt(buf, 2)

	x, err := a.ReadUint16()
	require.NoError(t, err)
	y, err := b.ReadUint16()
	require.NoError(t, err)

	assert.Equal(t, uint16(0x0201), x)
	assert.Equal(t, uint16(0x0403), y)
	assert.Equal(t, 2, a.Pos())
	assert.Equal(t, 4, b.Pos())
}

// TestNegativeStart tests that a cursor created before the buffer start
// reports no data instead of indexing out of range.
func TestNegativeStart(t *testing.T) {
	assert := assert.New(t)

	c := NewAt([]byte{1, 2, 3}, -1)
	assert.True(c.IsEnd())
	assert.Equal(0, c.Len())
	assert.Empty(c.Remaining())
	assert.Empty(c.ReadBestEffort(2))
	assert.Equal(0, c.ReadInto(make([]byte, 2)))

	_, ok := c.NextByte()
	assert.False(ok)

	_, err := c.ReadExact(1)
	assert.ErrorIs(err, ErrOutOfRange)
	_, err = c.ReadUint16()
	assert.ErrorIs(err, ErrOutOfRange)
	_, err = c.ReadUvarint32()
	assert.ErrorIs(err, ErrUnexpectedEndOfBuffer)
	_, err = c.ReadStreamVByte(nil, 1)
	assert.ErrorIs(err, ErrInsufficientData)
	_, err = c.Read(make([]byte, 1))
	assert.ErrorIs(err, io.EOF)
	assert.Equal(-1, c.Pos())

	require.NoError(t, c.Seek(1))
	b, err := c.ReadUint8()
	assert.NoError(err)
	assert.Equal(uint8(1), b)
}
