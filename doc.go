// Package bytecursor implements a bounds-checked cursor for decoding binary
// data from an immutable byte buffer.
//
// A Cursor borrows the caller's buffer and tracks a read position. It decodes
// fixed-width little-endian integers and IEEE-754 floats, 32-bit LEB128
// varints (plain and zigzag), a 16-byte scaled decimal (Decimal128), bulk
// little-endian arrays and StreamVByte runs. Every read advances the position;
// a failed fixed-width read leaves it unchanged, so a caller that receives
// ErrInsufficientData can wait for more bytes and retry from the same offset.
//
// Slices returned by ReadExact, ReadBestEffort and Remaining alias the input
// buffer. The buffer must not be modified while they are in use. The package
// performs no I/O, never allocates for fixed-width reads and maintains no
// global mutable state.
package bytecursor
