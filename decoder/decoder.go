// Package decoder turns a WPILOG byte stream into typed records.
//
// A Decoder parses the file header on construction, then frames one record
// at a time. Control records (entry id 0) drive the entry registry; every
// other record is resolved against the registry and its payload decoded per
// the declared type of the applicable binding.
//
// # Basic Usage
//
//	dec, err := decoder.New(data, decoder.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	log, err := dec.Decode()
//
// Streaming consumers iterate instead of buffering the whole record list; the
// records and the error point are identical to Decode:
//
//	for rec, err := range dec.All() {
//	    if err != nil {
//	        return err
//	    }
//	    handle(rec)
//	}
//
// Note: The Decoder is NOT thread-safe and NOT reusable. It owns its registry
// for the lifetime of one decode pass.
package decoder

import (
	"errors"
	"fmt"
	"io"
	"iter"

	"go.uber.org/zap"

	"github.com/arloliu/wpilog/compress"
	"github.com/arloliu/wpilog/encoding"
	"github.com/arloliu/wpilog/entry"
	"github.com/arloliu/wpilog/errs"
	"github.com/arloliu/wpilog/format"
	"github.com/arloliu/wpilog/internal/options"
	"github.com/arloliu/wpilog/record"
	"github.com/arloliu/wpilog/section"
)

// Decoder reads records from a fully buffered WPILOG stream.
type Decoder struct {
	data     []byte
	cursor   *encoding.Cursor
	header   section.Header
	registry *entry.Registry
	ordinal  uint32 // number of records produced so far
	err      error  // terminal state: io.EOF after a clean end, else the fatal error

	logger         *zap.Logger
	compression    format.CompressionType
	compressionSet bool
	strictControl  bool
	maxRecords     int
}

// New creates a decoder over data and parses the file header.
//
// Parameters:
//   - data: Complete log image; it must not be modified while records are in use
//   - opts: Optional configuration (WithLogger, WithCompression, ...)
//
// Without WithCompression, self-identifying compressed input (zstd frames)
// is detected and decompressed; anything else is decoded as is.
//
// Returns:
//   - *Decoder: Decoder positioned at the first record
//   - error: Option errors, decompression errors, errs.ErrInvalidHeader or
//     errs.ErrUnsupportedVersion
func New(data []byte, opts ...Option) (*Decoder, error) {
	d := &Decoder{
		registry:    entry.NewRegistry(),
		logger:      zap.NewNop(),
		compression: format.CompressionNone,
	}

	if err := options.Apply(d, opts...); err != nil {
		return nil, err
	}

	if !d.compressionSet {
		d.compression = compress.Detect(data)
	}

	if d.compression != format.CompressionNone {
		raw, err := compress.Decompress(d.compression, data)
		if err != nil {
			return nil, err
		}
		d.logger.Debug("input decompressed",
			zap.Stringer("compression", d.compression),
			zap.Int("compressed_bytes", len(data)),
			zap.Int("bytes", len(raw)))
		data = raw
	}

	d.data = data
	d.cursor = encoding.NewCursor(data)

	header, err := section.ParseHeader(d.cursor)
	if err != nil {
		return nil, err
	}
	d.header = header

	d.logger.Debug("header parsed",
		zap.String("version", header.VersionString()),
		zap.String("extra", header.Extra))

	return d, nil
}

// Header returns the parsed file header.
func (d *Decoder) Header() section.Header {
	return d.header
}

// Registry returns a read-only view of the entry registry as of the last
// decoded record.
func (d *Decoder) Registry() entry.Reader {
	return d.registry
}

// Count returns the number of records decoded so far.
func (d *Decoder) Count() uint32 {
	return d.ordinal
}

// Next decodes the next record.
//
// Returns:
//   - record.Record: The decoded record
//   - error: io.EOF when the stream ends cleanly at a record boundary,
//     otherwise a *errs.RecordError. Once an error is returned, every
//     following call returns the same error.
func (d *Decoder) Next() (record.Record, error) {
	if d.err != nil {
		return record.Record{}, d.err
	}

	rec, err := d.next()
	if err != nil {
		d.err = err
		if errors.Is(err, io.EOF) {
			d.logger.Info("decode finished",
				zap.Uint32("records", d.ordinal),
				zap.Int("entries", d.registry.Len()),
				zap.Int("bytes", len(d.data)))
		}

		return record.Record{}, err
	}
	d.ordinal++

	return rec, nil
}

// All returns an iterator over the remaining records. Iteration stops after
// the first error is yielded; a clean end yields nothing.
func (d *Decoder) All() iter.Seq2[record.Record, error] {
	return func(yield func(record.Record, error) bool) {
		for {
			rec, err := d.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(rec, err) || err != nil {
				return
			}
		}
	}
}

// Decode decodes every remaining record.
//
// Returns:
//   - *Log: The decoded log. On failure it holds the records decoded before
//     the failing one.
//   - error: The first fatal error, nil on a clean end of stream
func (d *Decoder) Decode() (*Log, error) {
	log := &Log{
		Header:   d.header,
		registry: d.registry,
	}

	for rec, err := range d.All() {
		if err != nil {
			return log, err
		}
		log.Records = append(log.Records, rec)
	}

	return log, nil
}

func (d *Decoder) next() (record.Record, error) {
	if d.cursor.Empty() {
		return record.Record{}, io.EOF
	}

	if d.maxRecords > 0 && int(d.ordinal) >= d.maxRecords {
		frame := section.FrameHeader{Offset: d.cursor.Offset()}
		return record.Record{}, d.recordError(frame, fmt.Errorf("%w: limit %d", errs.ErrTooManyRecords, d.maxRecords))
	}

	frame, err := section.ReadFrameHeader(d.cursor)
	if err != nil {
		return record.Record{}, d.recordError(frame, truncated(err))
	}

	if frame.Flag.Reserved() {
		d.logger.Debug("reserved frame bit set",
			zap.Uint32("ordinal", d.ordinal),
			zap.Int("offset", frame.Offset))
	}

	payload, err := d.cursor.Sub(frame.PayloadSize)
	if err != nil {
		return record.Record{}, d.recordError(frame, truncated(fmt.Errorf("payload: %w", err)))
	}

	var body record.Body
	if frame.IsControl() {
		body, err = d.decodeControl(payload)
	} else {
		body, err = d.decodeValue(frame.EntryID, payload)
	}
	if err != nil {
		return record.Record{}, d.recordError(frame, err)
	}

	return record.Record{
		EntryID:         frame.EntryID,
		TimestampMicros: frame.Timestamp,
		Ordinal:         d.ordinal,
		Body:            body,
	}, nil
}

func (d *Decoder) decodeValue(id uint32, payload *encoding.Cursor) (record.Body, error) {
	binding, err := d.registry.Resolve(id, d.ordinal)
	if err != nil {
		return nil, err
	}

	raw, err := payload.Read(payload.Remaining())
	if err != nil {
		return nil, err
	}

	return encoding.DecodeValue(binding.Type, raw)
}

func (d *Decoder) recordError(frame section.FrameHeader, err error) error {
	return &errs.RecordError{
		Ordinal: d.ordinal,
		EntryID: frame.EntryID,
		Offset:  frame.Offset,
		Err:     err,
	}
}

func truncated(err error) error {
	return fmt.Errorf("%w: %w", errs.ErrTruncated, err)
}
