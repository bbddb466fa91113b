package bytecursor

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// decimalBytes is the encoded size: lo, mid, hi, flags.
	decimalBytes = 16

	// -----------------------------------------------------------------------------
	// Flags word layout
	// -----------------------------------------------------------------------------
	//
	//	Bits  0-15:  reserved, must be zero
	//	Bits 16-23:  scale (0-28), the power of ten dividing the mantissa
	//	Bits 24-30:  reserved, must be zero
	//	Bit  31:     sign (1 = negative)
	decimalScaleShift = 16
	decimalScaleMask  = 0xFF
	decimalSignFlag   = uint32(1 << 31)
	decimalUsedBits   = decimalSignFlag | decimalScaleMask<<decimalScaleShift

	// MaxDecimalScale is the largest scale a valid Decimal128 may carry.
	MaxDecimalScale = 28
)

// Decimal128 is a 128-bit scaled decimal: a 96-bit unsigned mantissa split
// into three little-endian words, and a flags word holding sign and scale.
// Its value is (-1)^sign * mantissa / 10^scale.
type Decimal128 struct {
	Lo    uint32
	Mid   uint32
	Hi    uint32
	Flags uint32
}

// ReadDecimal reads a 16-byte Decimal128. The words are read in the order
// lo, mid, hi, flags. Reserved bits are not checked; see Validate.
func (c *Cursor) ReadDecimal() (Decimal128, error) {
	b, err := c.ReadExact(decimalBytes)
	if err != nil {
		return Decimal128{}, err
	}
	return Decimal128{
		Lo:    bo.Uint32(b[0:4]),
		Mid:   bo.Uint32(b[4:8]),
		Hi:    bo.Uint32(b[8:12]),
		Flags: bo.Uint32(b[12:16]),
	}, nil
}

// Negative reports whether the sign bit is set.
func (d Decimal128) Negative() bool {
	return d.Flags&decimalSignFlag != 0
}

// Scale returns the power of ten the mantissa is divided by.
func (d Decimal128) Scale() uint8 {
	return uint8((d.Flags >> decimalScaleShift) & decimalScaleMask)
}

// Mantissa returns hi*2^64 + mid*2^32 + lo.
func (d Decimal128) Mantissa() *big.Int {
	m := new(big.Int).SetUint64(uint64(d.Hi))
	m.Lsh(m, 64)
	m.Or(m, new(big.Int).SetUint64(uint64(d.Mid)<<32|uint64(d.Lo)))
	return m
}

// IsZero reports whether the mantissa is zero, regardless of sign and scale.
func (d Decimal128) IsZero() bool {
	return d.Lo|d.Mid|d.Hi == 0
}

// Validate reports ErrInvalidDecimal if reserved flag bits are set or the
// scale exceeds MaxDecimalScale. Decoding itself never rejects these.
func (d Decimal128) Validate() error {
	if reserved := d.Flags &^ decimalUsedBits; reserved != 0 {
		return fmt.Errorf("%w: reserved flag bits set (0x%08X)", ErrInvalidDecimal, reserved)
	}
	if s := d.Scale(); s > MaxDecimalScale {
		return fmt.Errorf("%w: scale %d exceeds maximum %d", ErrInvalidDecimal, s, MaxDecimalScale)
	}
	return nil
}

// signedMantissa returns the mantissa with the sign applied.
func (d Decimal128) signedMantissa() *big.Int {
	m := d.Mantissa()
	if d.Negative() {
		m.Neg(m)
	}
	return m
}

// Rat returns the exact value as a rational number.
func (d Decimal128) Rat() *big.Rat {
	den := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(d.Scale())), nil)
	return new(big.Rat).SetFrac(d.signedMantissa(), den)
}

// Decimal converts to an arbitrary precision shopspring decimal.
func (d Decimal128) Decimal() decimal.Decimal {
	return decimal.NewFromBigInt(d.signedMantissa(), -int32(d.Scale()))
}

// Float64 returns the nearest float64 and whether it is exact.
func (d Decimal128) Float64() (float64, bool) {
	return d.Rat().Float64()
}

// String formats the exact value with as many fractional digits as the
// scale, e.g. "123456789.987654321". Negative zero prints without a sign.
func (d Decimal128) String() string {
	digits := d.Mantissa().String()
	scale := int(d.Scale())

	var sb strings.Builder
	if d.Negative() && !d.IsZero() {
		sb.WriteByte('-')
	}
	if scale == 0 {
		sb.WriteString(digits)
		return sb.String()
	}
	if pad := scale + 1 - len(digits); pad > 0 {
		digits = strings.Repeat("0", pad) + digits
	}
	point := len(digits) - scale
	sb.WriteString(digits[:point])
	sb.WriteByte('.')
	sb.WriteString(digits[point:])
	return sb.String()
}
