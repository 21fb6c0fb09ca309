package section

import (
	"fmt"

	"github.com/arloliu/wpilog/encoding"
	"github.com/arloliu/wpilog/endian"
)

// FrameFlag is the first byte of every record; it packs the widths of the
// entry id, payload size and timestamp fields.
type FrameFlag uint8

// NewFrameFlag packs the given field widths into a frame flag.
//
// Parameters:
//   - idWidth: Entry id width in bytes (1-4)
//   - sizeWidth: Payload size width in bytes (1-4)
//   - tsWidth: Timestamp width in bytes (1-8)
//
// Returns:
//   - FrameFlag: The packed flag
//   - error: If any width is out of range
func NewFrameFlag(idWidth, sizeWidth, tsWidth int) (FrameFlag, error) {
	if idWidth < 1 || idWidth > MaxEntryIDWidth {
		return 0, fmt.Errorf("entry id width %d out of range [1,%d]", idWidth, MaxEntryIDWidth)
	}
	if sizeWidth < 1 || sizeWidth > MaxPayloadSizeWidth {
		return 0, fmt.Errorf("payload size width %d out of range [1,%d]", sizeWidth, MaxPayloadSizeWidth)
	}
	if tsWidth < 1 || tsWidth > MaxTimestampWidth {
		return 0, fmt.Errorf("timestamp width %d out of range [1,%d]", tsWidth, MaxTimestampWidth)
	}

	return FrameFlag(idWidth-1) |
		FrameFlag(sizeWidth-1)<<PayloadSizeWidthShift |
		FrameFlag(tsWidth-1)<<TimestampWidthShift, nil
}

// EntryIDWidth returns the width of the entry id field in bytes.
func (f FrameFlag) EntryIDWidth() int {
	return int(f&EntryIDWidthMask) + 1
}

// PayloadSizeWidth returns the width of the payload size field in bytes.
func (f FrameFlag) PayloadSizeWidth() int {
	return int(f&PayloadSizeWidthMask)>>PayloadSizeWidthShift + 1
}

// TimestampWidth returns the width of the timestamp field in bytes.
func (f FrameFlag) TimestampWidth() int {
	return int(f&TimestampWidthMask)>>TimestampWidthShift + 1
}

// Reserved reports whether the reserved high bit is set. Readers ignore it.
func (f FrameFlag) Reserved() bool {
	return f&ReservedFrameMask != 0
}

// FrameHeader holds the decoded fields that precede a record payload.
type FrameHeader struct {
	Flag        FrameFlag
	EntryID     uint32
	PayloadSize uint32
	// Timestamp is in microseconds since log start.
	Timestamp uint64
	// Offset is the absolute byte offset of the frame flag.
	Offset int
}

// IsControl reports whether the frame introduces a control record.
func (h FrameHeader) IsControl() bool {
	return h.EntryID == ControlEntryID
}

// Size returns the encoded size of the frame header in bytes.
func (h FrameHeader) Size() int {
	return 1 + h.Flag.EntryIDWidth() + h.Flag.PayloadSizeWidth() + h.Flag.TimestampWidth()
}

// ReadFrameHeader reads one frame header from the cursor.
//
// The caller must have checked that the cursor is not empty; any short read
// here means the record is truncated. The cursor is left at the first payload
// byte on success.
//
// Returns:
//   - FrameHeader: Decoded frame fields
//   - error: errs.ErrOutOfData when a field is cut short
func ReadFrameHeader(c *encoding.Cursor) (FrameHeader, error) {
	h := FrameHeader{Offset: c.Offset()}

	flag, err := c.ReadByte()
	if err != nil {
		return h, err
	}
	h.Flag = FrameFlag(flag)

	id, err := c.Read(h.Flag.EntryIDWidth())
	if err != nil {
		return h, fmt.Errorf("entry id: %w", err)
	}
	h.EntryID = endian.Widen32(id)

	size, err := c.Read(h.Flag.PayloadSizeWidth())
	if err != nil {
		return h, fmt.Errorf("payload size: %w", err)
	}
	h.PayloadSize = endian.Widen32(size)

	ts, err := c.Read(h.Flag.TimestampWidth())
	if err != nil {
		return h, fmt.Errorf("timestamp: %w", err)
	}
	h.Timestamp = endian.Widen64(ts)

	return h, nil
}
