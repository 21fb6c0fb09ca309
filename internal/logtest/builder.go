// Package logtest builds WPILOG byte streams for tests.
//
// The builder writes the narrowest frame widths by default, and exposes
// lower-level helpers for crafting deliberately broken input.
package logtest

import (
	"math"

	"github.com/arloliu/wpilog/endian"
)

const (
	magic   = "WPILOG"
	version = 0x0100
)

// Control record subtypes.
const (
	ControlStart       byte = 0
	ControlFinish      byte = 1
	ControlSetMetadata byte = 2
)

var engine = endian.GetLittleEndianEngine()

// Builder accumulates a WPILOG stream.
type Builder struct {
	buf []byte
}

// NewBuilder starts a stream with a valid header and an empty extra string.
func NewBuilder() *Builder {
	return NewBuilderWithHeader(magic, version, nil)
}

// NewBuilderWithExtra starts a stream with a valid header and the given extra string.
func NewBuilderWithExtra(extra string) *Builder {
	return NewBuilderWithHeader(magic, version, []byte(extra))
}

// NewBuilderWithHeader starts a stream with arbitrary header fields.
func NewBuilderWithHeader(m string, v uint16, extra []byte) *Builder {
	return &Builder{buf: HeaderBytes(m, v, extra)}
}

// HeaderBytes encodes a header.
func HeaderBytes(m string, v uint16, extra []byte) []byte {
	b := make([]byte, 0, len(m)+6+len(extra))
	b = append(b, m...)
	b = engine.AppendUint16(b, v)
	b = engine.AppendUint32(b, uint32(len(extra))) //nolint:gosec
	b = append(b, extra...)

	return b
}

// Start appends a Start control record.
func (b *Builder) Start(ts uint64, id uint32, name, typ, metadata string) *Builder {
	return b.Control(ts, StartPayload(id, name, typ, metadata))
}

// Finish appends a Finish control record.
func (b *Builder) Finish(ts uint64, id uint32) *Builder {
	return b.Control(ts, FinishPayload(id))
}

// SetMetadata appends a SetMetadata control record.
func (b *Builder) SetMetadata(ts uint64, id uint32, metadata string) *Builder {
	return b.Control(ts, SetMetadataPayload(id, metadata))
}

// Control appends a control record carrying an arbitrary payload.
func (b *Builder) Control(ts uint64, payload []byte) *Builder {
	return b.Record(0, ts, payload)
}

// Record appends a record using the narrowest frame widths.
func (b *Builder) Record(id uint32, ts uint64, payload []byte) *Builder {
	b.buf = AppendFrame(b.buf, id, uint32(len(payload)), ts) //nolint:gosec
	b.buf = append(b.buf, payload...)

	return b
}

// RecordWidths appends a record using explicit frame field widths.
func (b *Builder) RecordWidths(id uint32, ts uint64, payload []byte, idWidth, sizeWidth, tsWidth int) *Builder {
	b.buf = AppendFrameWidths(b.buf, FrameFlag(idWidth, sizeWidth, tsWidth), id, uint32(len(payload)), ts) //nolint:gosec
	b.buf = append(b.buf, payload...)

	return b
}

// Frame appends only a frame header declaring size payload bytes.
func (b *Builder) Frame(id, size uint32, ts uint64) *Builder {
	b.buf = AppendFrame(b.buf, id, size, ts)
	return b
}

// Raw appends arbitrary bytes.
func (b *Builder) Raw(p ...byte) *Builder {
	b.buf = append(b.buf, p...)
	return b
}

// Len returns the number of bytes written so far.
func (b *Builder) Len() int {
	return len(b.buf)
}

// Bytes returns the stream.
func (b *Builder) Bytes() []byte {
	return b.buf
}

// FrameFlag packs field widths into a frame flag byte.
func FrameFlag(idWidth, sizeWidth, tsWidth int) byte {
	return byte(idWidth-1) | byte(sizeWidth-1)<<2 | byte(tsWidth-1)<<4 //nolint:gosec
}

// AppendFrame encodes a frame header with the narrowest widths.
func AppendFrame(b []byte, id, size uint32, ts uint64) []byte {
	flag := FrameFlag(width(uint64(id)), width(uint64(size)), width(ts))
	return AppendFrameWidths(b, flag, id, size, ts)
}

// AppendFrameWidths encodes a frame header with the widths packed in flag.
func AppendFrameWidths(b []byte, flag byte, id, size uint32, ts uint64) []byte {
	b = append(b, flag)
	b = appendN(b, uint64(id), int(flag&0x03)+1)
	b = appendN(b, uint64(size), int(flag&0x0C)>>2+1)
	b = appendN(b, ts, int(flag&0x70)>>4+1)

	return b
}

// StartPayload encodes the fields of a Start control record.
func StartPayload(id uint32, name, typ, metadata string) []byte {
	b := []byte{ControlStart}
	b = engine.AppendUint32(b, id)
	b = AppendString(b, name)
	b = AppendString(b, typ)
	b = AppendString(b, metadata)

	return b
}

// FinishPayload encodes the fields of a Finish control record.
func FinishPayload(id uint32) []byte {
	return engine.AppendUint32([]byte{ControlFinish}, id)
}

// SetMetadataPayload encodes the fields of a SetMetadata control record.
func SetMetadataPayload(id uint32, metadata string) []byte {
	b := engine.AppendUint32([]byte{ControlSetMetadata}, id)
	return AppendString(b, metadata)
}

// AppendString appends a uint32 length-prefixed string.
func AppendString(b []byte, s string) []byte {
	b = engine.AppendUint32(b, uint32(len(s))) //nolint:gosec
	return append(b, s...)
}

// Int64 encodes int64 values.
func Int64(values ...int64) []byte {
	var b []byte
	for _, v := range values {
		b = engine.AppendUint64(b, uint64(v)) //nolint:gosec
	}

	return b
}

// Float32 encodes float32 values.
func Float32(values ...float32) []byte {
	var b []byte
	for _, v := range values {
		b = engine.AppendUint32(b, math.Float32bits(v))
	}

	return b
}

// Float64 encodes float64 values.
func Float64(values ...float64) []byte {
	var b []byte
	for _, v := range values {
		b = engine.AppendUint64(b, math.Float64bits(v))
	}

	return b
}

// Strings encodes a string array payload.
func Strings(values ...string) []byte {
	b := engine.AppendUint32(nil, uint32(len(values))) //nolint:gosec
	for _, v := range values {
		b = AppendString(b, v)
	}

	return b
}

func appendN(b []byte, v uint64, n int) []byte {
	for range n {
		b = append(b, byte(v))
		v >>= 8
	}

	return b
}

func width(v uint64) int {
	w := 1
	for v > 0xFF {
		v >>= 8
		w++
	}

	return w
}
