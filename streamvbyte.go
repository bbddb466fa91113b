// StreamVByte block decoding.
//
// A StreamVByte run of count uint32 values is laid out as (count+3)/4 control
// bytes followed by the data bytes. Each control byte holds four 2-bit codes,
// lowest bits first; code+1 is the little-endian byte length of one value.

package bytecursor

import (
	"fmt"

	"github.com/mhr3/streamvbyte"
)

// svbControlBlockSizeLUT is a precomputed lookup table for StreamVByte control byte sizes.
// Entry i = sum of byte lengths for all 4 values encoded in control byte i.
var svbControlBlockSizeLUT [256]uint8

func init() {
	for ctrl := 0; ctrl < 256; ctrl++ {
		// Sum of (code+1) for all 4 values
		size := (ctrl & 0x03) + ((ctrl >> 2) & 0x03) + ((ctrl >> 4) & 0x03) + (ctrl >> 6) + 4
		svbControlBlockSizeLUT[ctrl] = uint8(size)
	}
}

// svbControlBlockSize returns the total data bytes for a StreamVByte control byte.
func svbControlBlockSize(ctrl byte) int {
	return int(svbControlBlockSizeLUT[ctrl])
}

// svbControlBytes returns the number of control bytes for count values,
// (count+3)/4 without overflowing near math.MaxInt.
func svbControlBytes(count int) int {
	return count>>2 + ((count&0x03)+3)>>2
}

// StreamVByteLen returns the number of data bytes described by the control
// bytes of a count value run. Codes past count in the last control byte are
// ignored. ctrl must hold at least (count+3)/4 bytes.
func StreamVByteLen(ctrl []byte, count int) int {
	full := count >> 2
	n := 0
	for i := 0; i < full; i++ {
		n += svbControlBlockSize(ctrl[i])
	}
	if tail := count & 0x03; tail > 0 {
		last := ctrl[full]
		for i := 0; i < tail; i++ {
			n += int((last>>(i*2))&0x03) + 1
		}
	}
	return n
}

// StreamVByteBlock is a zero-copy view of an encoded StreamVByte run.
type StreamVByteBlock struct {
	data  []byte // control bytes followed by data bytes
	count int
}

// Len returns the number of encoded values.
func (b StreamVByteBlock) Len() int {
	return b.count
}

// Bytes returns the encoded run, aliasing the cursor's buffer.
func (b StreamVByteBlock) Bytes() []byte {
	return b.data
}

// Decode decodes all values into dst (resized or reallocated as needed).
func (b StreamVByteBlock) Decode(dst []uint32) []uint32 {
	if b.count == 0 {
		return dst[:0]
	}
	dst = ensureCap(dst, b.count)
	return streamvbyte.DecodeUint32(b.data, b.count, &streamvbyte.DecodeOptions[uint32]{
		Buffer: dst,
	})
}

// Get decodes only the value at index. It walks the control bytes before
// index and reads no other data bytes.
func (b StreamVByteBlock) Get(index int) (uint32, error) {
	if index < 0 || index >= b.count {
		return 0, fmt.Errorf("%w: index %d (count %d)", ErrOutOfRange, index, b.count)
	}
	numControlBytes := svbControlBytes(b.count)
	controlBytes := b.data[:numControlBytes]
	dataBytes := b.data[numControlBytes:]

	blockIndex := index >> 2   // index / 4
	posInBlock := index & 0x03 // index % 4

	dataOffset := 0
	for i := 0; i < blockIndex; i++ {
		dataOffset += svbControlBlockSize(controlBytes[i])
	}

	ctrl := controlBytes[blockIndex]
	for i := 0; i < posInBlock; i++ {
		dataOffset += int((ctrl>>(i*2))&0x03) + 1
	}
	byteLen := int((ctrl>>(posInBlock*2))&0x03) + 1
	return svbReadValue(dataBytes[dataOffset:], byteLen), nil
}

// svbReadValue reads a variable-length encoded value (1-4 bytes).
func svbReadValue(data []byte, byteLen int) uint32 {
	switch byteLen {
	case 1:
		return uint32(data[0])
	case 2:
		return uint32(bo.Uint16(data))
	case 3:
		return uint32(data[0]) | uint32(data[1])<<8 | uint32(data[2])<<16
	case 4:
		return bo.Uint32(data)
	}
	return 0
}

// ReadStreamVByteBlock reads a run of count StreamVByte encoded values
// without decoding it. The control and data bytes are taken with a single
// ReadExact, so a truncated run leaves the position unchanged.
func (c *Cursor) ReadStreamVByteBlock(count int) (StreamVByteBlock, error) {
	if count < 0 {
		return StreamVByteBlock{}, fmt.Errorf("%w: invalid value count %d", ErrOutOfRange, count)
	}
	if count == 0 {
		return StreamVByteBlock{}, nil
	}
	ctrlLen := svbControlBytes(count)
	tail := c.Remaining()
	if len(tail) < ctrlLen {
		return StreamVByteBlock{}, &InsufficientDataError{Requested: ctrlLen, Available: len(tail), Offset: c.pos}
	}
	data, err := c.ReadExact(ctrlLen + StreamVByteLen(tail[:ctrlLen], count))
	if err != nil {
		return StreamVByteBlock{}, err
	}
	return StreamVByteBlock{data: data, count: count}, nil
}

// ReadStreamVByte reads and decodes a run of count StreamVByte encoded
// values into dst.
func (c *Cursor) ReadStreamVByte(dst []uint32, count int) ([]uint32, error) {
	blk, err := c.ReadStreamVByteBlock(count)
	if err != nil {
		return nil, err
	}
	return blk.Decode(dst), nil
}
