package bytecursor

import (
	"fmt"
	"math"
	"unsafe"

	"golang.org/x/sys/cpu"
)

// fixedWidth lists the element types the bulk readers decode.
type fixedWidth interface {
	~uint32 | ~int32 | ~uint64 | ~int64 | ~float32 | ~float64
}

// ReadUint32s reads n little-endian uint32 values into dst, which is
// resized (or reallocated when its capacity is too small) and returned.
// A short buffer fails with ErrInsufficientData and leaves the position
// unchanged.
func (c *Cursor) ReadUint32s(dst []uint32, n int) ([]uint32, error) {
	return readArray(c, dst, n, bo.Uint32)
}

// ReadInt32s reads n little-endian int32 values into dst.
func (c *Cursor) ReadInt32s(dst []int32, n int) ([]int32, error) {
	return readArray(c, dst, n, func(b []byte) int32 { return int32(bo.Uint32(b)) })
}

// ReadUint64s reads n little-endian uint64 values into dst.
func (c *Cursor) ReadUint64s(dst []uint64, n int) ([]uint64, error) {
	return readArray(c, dst, n, bo.Uint64)
}

// ReadInt64s reads n little-endian int64 values into dst.
func (c *Cursor) ReadInt64s(dst []int64, n int) ([]int64, error) {
	return readArray(c, dst, n, func(b []byte) int64 { return int64(bo.Uint64(b)) })
}

// ReadFloat32s reads n little-endian IEEE-754 single precision values into dst.
func (c *Cursor) ReadFloat32s(dst []float32, n int) ([]float32, error) {
	return readArray(c, dst, n, func(b []byte) float32 { return math.Float32frombits(bo.Uint32(b)) })
}

// ReadFloat64s reads n little-endian IEEE-754 double precision values into dst.
func (c *Cursor) ReadFloat64s(dst []float64, n int) ([]float64, error) {
	return readArray(c, dst, n, func(b []byte) float64 { return math.Float64frombits(bo.Uint64(b)) })
}

// readArray reads n elements with a single ReadExact. On little-endian hosts
// the wire layout equals the in-memory layout and the bytes are copied
// straight into dst.
func readArray[T fixedWidth](c *Cursor, dst []T, n int, decode func([]byte) T) ([]T, error) {
	var zero T
	width := int(unsafe.Sizeof(zero))
	if n < 0 || n > math.MaxInt/width {
		return nil, fmt.Errorf("%w: invalid element count %d", ErrOutOfRange, n)
	}
	if n == 0 {
		return dst[:0], nil
	}
	raw, err := c.ReadExact(n * width)
	if err != nil {
		return nil, err
	}
	dst = ensureCap(dst, n)
	if !cpu.IsBigEndian {
		copy(unsafe.Slice((*byte)(unsafe.Pointer(&dst[0])), len(raw)), raw)
		return dst, nil
	}
	decodeArrayPortable(dst, raw, width, decode)
	return dst, nil
}

// decodeArrayPortable decodes element by element, independent of host byte order.
func decodeArrayPortable[T fixedWidth](dst []T, raw []byte, width int, decode func([]byte) T) {
	for i := range dst {
		dst[i] = decode(raw[i*width:])
	}
}

// ensureCap returns dst with length n, reallocating when its capacity is too small.
func ensureCap[T any](dst []T, n int) []T {
	if cap(dst) >= n {
		return dst[:n]
	}
	return make([]T, n)
}
