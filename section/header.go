package section

import (
	"fmt"
	"unicode/utf8"

	"github.com/arloliu/wpilog/encoding"
	"github.com/arloliu/wpilog/errs"
)

// Header is the file header of a WPILOG stream.
type Header struct {
	// Version is the format version, always SupportedVersion once parsed.
	Version uint16
	// Extra is the free-form header string.
	Extra string
}

// ParseHeader reads and validates the header at the cursor position.
//
// Parameters:
//   - c: Cursor positioned at the start of the stream
//
// Returns:
//   - Header: Parsed header
//   - error: errs.ErrInvalidHeader for a bad magic, a short header or a non
//     UTF-8 extra string; errs.ErrUnsupportedVersion for any version other
//     than SupportedVersion
func ParseHeader(c *encoding.Cursor) (Header, error) {
	magic, err := c.Read(MagicSize)
	if err != nil {
		return Header{}, fmt.Errorf("%w: magic: %w", errs.ErrInvalidHeader, err)
	}
	if string(magic) != Magic {
		return Header{}, fmt.Errorf("%w: bad magic %q", errs.ErrInvalidHeader, magic)
	}

	version, err := c.ReadUint16()
	if err != nil {
		return Header{}, fmt.Errorf("%w: version: %w", errs.ErrInvalidHeader, err)
	}
	if version != SupportedVersion {
		return Header{}, fmt.Errorf("%w: 0x%04x", errs.ErrUnsupportedVersion, version)
	}

	extra, err := c.ReadPrefixed()
	if err != nil {
		return Header{}, fmt.Errorf("%w: extra string: %w", errs.ErrInvalidHeader, err)
	}
	if !utf8.Valid(extra) {
		return Header{}, fmt.Errorf("%w: extra string is not valid UTF-8", errs.ErrInvalidHeader)
	}

	return Header{Version: version, Extra: string(extra)}, nil
}

// ParseHeaderBytes parses the header at the start of data.
//
// Returns:
//   - Header: Parsed header
//   - int: Number of bytes consumed by the header
//   - error: Same errors as ParseHeader
func ParseHeaderBytes(data []byte) (Header, int, error) {
	c := encoding.NewCursor(data)

	h, err := ParseHeader(c)
	if err != nil {
		return Header{}, 0, err
	}

	return h, c.Offset(), nil
}

// Size returns the encoded size of the header in bytes.
func (h Header) Size() int {
	return HeaderFixedSize + len(h.Extra)
}

// VersionString returns the version as "major.minor".
func (h Header) VersionString() string {
	return fmt.Sprintf("%d.%d", h.Version>>8, h.Version&0xFF)
}
