// Package layout decodes a sequence of named, typed fields from a cursor.
//
// A layout is written inline as "name:kind,name:kind[N],..." or loaded from
// YAML:
//
//	name: header
//	fields:
//	  - {name: magic, kind: bytes, size: 4}
//	  - {name: version, kind: uint16}
//	  - {name: count, kind: uvarint32}
//	  - {name: price, kind: decimal}
package layout

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/zeebo/errs"
	"gopkg.in/yaml.v3"
)

// Error is the error class for layout parsing and decoding.
var Error = errs.Class("layout")

// Kind names the wire type of a field.
type Kind string

// Field kinds. Bytes, Skip and StreamVByte take a size: a byte count, a
// relative seek offset and a value count respectively.
const (
	Bool        Kind = "bool"
	Int8        Kind = "int8"
	Uint8       Kind = "uint8"
	Int16       Kind = "int16"
	Uint16      Kind = "uint16"
	Int32       Kind = "int32"
	Uint32      Kind = "uint32"
	Int64       Kind = "int64"
	Uint64      Kind = "uint64"
	Float32     Kind = "float32"
	Float64     Kind = "float64"
	Uvarint32   Kind = "uvarint32"
	Varint32    Kind = "varint32"
	Decimal     Kind = "decimal"
	Bytes       Kind = "bytes"
	Skip        Kind = "skip"
	Rest        Kind = "rest"
	StreamVByte Kind = "svb"
)

var knownKinds = map[Kind]bool{
	Bool: false, Int8: false, Uint8: false, Int16: false, Uint16: false,
	Int32: false, Uint32: false, Int64: false, Uint64: false,
	Float32: false, Float64: false, Uvarint32: false, Varint32: false,
	Decimal: false, Rest: false,
	Bytes: true, Skip: true, StreamVByte: true,
}

// Sized reports whether the kind requires a size.
func (k Kind) Sized() bool {
	return knownKinds[k]
}

// Field is one named entry of a layout.
type Field struct {
	Name string `yaml:"name"`
	Kind Kind   `yaml:"kind"`
	Size int    `yaml:"size,omitempty"`
}

// String formats the field the way Parse accepts it.
func (f Field) String() string {
	if f.Kind.Sized() {
		return fmt.Sprintf("%s:%s[%d]", f.Name, f.Kind, f.Size)
	}
	return fmt.Sprintf("%s:%s", f.Name, f.Kind)
}

// Layout is an ordered list of fields.
type Layout struct {
	Name   string  `yaml:"name"`
	Fields []Field `yaml:"fields"`
}

// Validate checks field kinds and sizes.
func (l Layout) Validate() error {
	if len(l.Fields) == 0 {
		return Error.New("layout %q has no fields", l.Name)
	}
	for i, f := range l.Fields {
		sized, ok := knownKinds[f.Kind]
		switch {
		case !ok:
			return Error.New("field %d %q: unknown kind %q", i, f.Name, f.Kind)
		case f.Name == "":
			return Error.New("field %d: missing name", i)
		case f.Kind == Bytes && f.Size < 1:
			return Error.New("field %q: bytes size must be at least 1, got %d", f.Name, f.Size)
		case f.Kind == StreamVByte && f.Size < 0:
			return Error.New("field %q: svb count cannot be negative, got %d", f.Name, f.Size)
		case !sized && f.Size != 0:
			return Error.New("field %q: kind %q takes no size", f.Name, f.Kind)
		}
	}
	return nil
}

// Parse reads an inline layout such as "id:uint32,tag:bytes[4],pad:skip[2]".
// A field without a name is named after its position.
func Parse(inline string) (Layout, error) {
	var l Layout
	for i, part := range strings.Split(inline, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, kind, found := strings.Cut(part, ":")
		if !found {
			name, kind = fmt.Sprintf("f%d", i), part
		}
		f := Field{Name: strings.TrimSpace(name)}
		kind = strings.TrimSpace(kind)
		if open := strings.IndexByte(kind, '['); open >= 0 {
			if !strings.HasSuffix(kind, "]") {
				return Layout{}, Error.New("field %q: unterminated size in %q", f.Name, kind)
			}
			size, err := strconv.Atoi(kind[open+1 : len(kind)-1])
			if err != nil {
				return Layout{}, Error.New("field %q: invalid size in %q", f.Name, kind)
			}
			f.Size = size
			kind = kind[:open]
		}
		f.Kind = Kind(strings.ToLower(kind))
		l.Fields = append(l.Fields, f)
	}
	if err := l.Validate(); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// Load reads a YAML layout.
func Load(r io.Reader) (Layout, error) {
	var l Layout
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&l); err != nil {
		return Layout{}, Error.Wrap(fmt.Errorf("decode yaml: %w", err))
	}
	if err := l.Validate(); err != nil {
		return Layout{}, err
	}
	return l, nil
}
