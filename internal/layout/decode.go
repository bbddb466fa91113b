package layout

import (
	"encoding/hex"
	"fmt"

	bytecursor "github.com/Akron/bytecursor-go"
)

// Value is one decoded field.
type Value struct {
	Field  Field
	Offset int // cursor position before the field was read
	Raw    any
}

// String renders the value for display. Byte runs print as hex.
func (v Value) String() string {
	switch raw := v.Raw.(type) {
	case []byte:
		return hex.EncodeToString(raw)
	case bytecursor.Decimal128:
		return raw.String()
	case nil:
		return ""
	default:
		return fmt.Sprint(raw)
	}
}

// Decode reads every field of l from c in order. On failure it returns the
// values decoded so far and an error naming the field and its offset; the
// cursor is left where the failing read left it.
func Decode(c *bytecursor.Cursor, l Layout) (values []Value, err error) {
	defer Error.WrapP(&err)

	values = make([]Value, 0, len(l.Fields))
	for _, f := range l.Fields {
		offset := c.Pos()
		raw, err := decodeField(c, f)
		if err != nil {
			return values, fmt.Errorf("field %q (%s) at offset %d: %w", f.Name, f.Kind, offset, err)
		}
		values = append(values, Value{Field: f, Offset: offset, Raw: raw})
	}
	return values, nil
}

// decodeField reads a single field of the given kind.
func decodeField(c *bytecursor.Cursor, f Field) (any, error) {
	switch f.Kind {
	case Bool:
		return c.ReadBool()
	case Int8:
		return c.ReadInt8()
	case Uint8:
		return c.ReadUint8()
	case Int16:
		return c.ReadInt16()
	case Uint16:
		return c.ReadUint16()
	case Int32:
		return c.ReadInt32()
	case Uint32:
		return c.ReadUint32()
	case Int64:
		return c.ReadInt64()
	case Uint64:
		return c.ReadUint64()
	case Float32:
		return c.ReadFloat32()
	case Float64:
		return c.ReadFloat64()
	case Uvarint32:
		return c.ReadUvarint32()
	case Varint32:
		return c.ReadVarint32()
	case Decimal:
		return c.ReadDecimal()
	case Bytes:
		return c.ReadExact(f.Size)
	case Skip:
		return nil, c.Seek(f.Size)
	case Rest:
		return c.ReadBestEffort(c.Len()), nil
	case StreamVByte:
		return c.ReadStreamVByte(nil, f.Size)
	}
	return nil, fmt.Errorf("unknown kind %q", f.Kind)
}
