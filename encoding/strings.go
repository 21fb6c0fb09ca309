package encoding

import (
	"fmt"
	"unicode/utf8"
)

// ReadString reads a uint32 length-prefixed UTF-8 string.
//
// Truncation is reported as errs.ErrOutOfData. Invalid UTF-8 is reported as
// the given kind, since its classification depends on where the string lives
// (header, control record or value payload).
//
// Parameters:
//   - c: Cursor positioned at the length field
//   - invalid: Error kind to wrap when the bytes are not valid UTF-8
//
// Returns:
//   - string: Decoded string (copied out of the buffer)
//   - error: errs.ErrOutOfData or the invalid kind
func ReadString(c *Cursor, invalid error) (string, error) {
	start := c.Offset()

	b, err := c.ReadPrefixed()
	if err != nil {
		return "", err
	}

	if !utf8.Valid(b) {
		return "", fmt.Errorf("%w: string at offset %d is not valid UTF-8", invalid, start)
	}

	return string(b), nil
}
