package encoding

import (
	"fmt"

	"github.com/arloliu/wpilog/endian"
	"github.com/arloliu/wpilog/errs"
)

// Cursor reads sequentially from an immutable byte buffer.
//
// Every read is exact and atomic: it either returns the requested number of
// bytes and advances, or fails with errs.ErrOutOfData and leaves the position
// unchanged. Returned slices alias the underlying buffer.
//
// Note: The Cursor is NOT thread-safe.
type Cursor struct {
	data   []byte
	pos    int
	base   int
	engine endian.EndianEngine
}

// NewCursor creates a cursor positioned at the start of data.
func NewCursor(data []byte) *Cursor {
	return &Cursor{
		data:   data,
		engine: endian.GetLittleEndianEngine(),
	}
}

// Read returns the next n bytes and advances the position by n.
//
// Parameters:
//   - n: Number of bytes to read, must not be negative
//
// Returns:
//   - []byte: Slice of the underlying buffer, length n
//   - error: errs.ErrOutOfData if fewer than n bytes remain
func (c *Cursor) Read(n int) ([]byte, error) {
	if n < 0 || n > len(c.data)-c.pos {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, %d remaining",
			errs.ErrOutOfData, n, c.Offset(), c.Remaining())
	}

	b := c.data[c.pos : c.pos+n : c.pos+n]
	c.pos += n

	return b, nil
}

// ReadSized reads n bytes where n comes from a 32-bit length field.
func (c *Cursor) ReadSized(n uint32) ([]byte, error) {
	if uint64(n) > uint64(c.Remaining()) {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, %d remaining",
			errs.ErrOutOfData, n, c.Offset(), c.Remaining())
	}

	return c.Read(int(n))
}

// ReadByte reads a single byte.
func (c *Cursor) ReadByte() (byte, error) {
	b, err := c.Read(1)
	if err != nil {
		return 0, err
	}

	return b[0], nil
}

// ReadUint16 reads a little-endian uint16.
func (c *Cursor) ReadUint16() (uint16, error) {
	b, err := c.Read(2)
	if err != nil {
		return 0, err
	}

	return c.engine.Uint16(b), nil
}

// ReadUint32 reads a little-endian uint32.
func (c *Cursor) ReadUint32() (uint32, error) {
	b, err := c.Read(4)
	if err != nil {
		return 0, err
	}

	return c.engine.Uint32(b), nil
}

// ReadPrefixed reads a uint32 length followed by that many bytes.
//
// The read is atomic: when the length field or the data is short, the
// position is restored to where the length field started.
func (c *Cursor) ReadPrefixed() ([]byte, error) {
	start := c.pos

	n, err := c.ReadUint32()
	if err != nil {
		return nil, err
	}

	b, err := c.ReadSized(n)
	if err != nil {
		c.pos = start
		return nil, err
	}

	return b, nil
}

// Sub consumes the next n bytes and returns a cursor bounded to them.
//
// Offsets reported by the returned cursor stay relative to the parent buffer.
func (c *Cursor) Sub(n uint32) (*Cursor, error) {
	start := c.Offset()

	b, err := c.ReadSized(n)
	if err != nil {
		return nil, err
	}

	return &Cursor{data: b, base: start, engine: c.engine}, nil
}

// Offset returns the absolute position of the cursor.
func (c *Cursor) Offset() int {
	return c.base + c.pos
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.data) - c.pos
}

// Empty reports whether every byte has been consumed.
func (c *Cursor) Empty() bool {
	return c.pos >= len(c.data)
}
