// Package wpilog decodes WPILOG binary data logs, the telemetry format written
// by robot controllers.
//
// A WPILOG stream is a short header followed by a flat sequence of records.
// Records with entry id 0 are control records that start, finish or annotate
// an entry; every other record carries one value of the type declared when its
// entry was started.
//
// # Core Features
//
//   - Buffered (Decode) and streaming (decoder.Decoder.Next / All) decoding
//   - Typed values: scalars, arrays, strings, JSON and opaque struct payloads
//   - Entry lifecycle tracking with restart support and per-record binding lookup
//   - Compressed inputs (zstd, s2, lz4) inferred from the file extension
//   - Structured logging through go.uber.org/zap
//
// # Basic Usage
//
//	log, err := wpilog.Open("match.wpilog", decoder.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//
//	for _, rec := range log.RecordsFor("/drive/pose") {
//	    fmt.Printf("t=%v %v\n", rec.Timestamp(), rec.Body)
//	}
//
// # Package Structure
//
// This package provides top-level wrappers around the decoder package. Use
// decoder.New directly for streaming or fine-grained control.
package wpilog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/arloliu/wpilog/compress"
	"github.com/arloliu/wpilog/decoder"
	"github.com/arloliu/wpilog/errs"
	"github.com/arloliu/wpilog/format"
)

// Decode decodes a complete in-memory log.
//
// On failure the returned log holds the records decoded before the failing
// one; it is nil only when the header could not be parsed.
func Decode(data []byte, opts ...decoder.Option) (*decoder.Log, error) {
	dec, err := decoder.New(data, opts...)
	if err != nil {
		return nil, err
	}

	return dec.Decode()
}

// ReadFile loads the raw bytes of a log file.
//
// Returns:
//   - []byte: File contents
//   - error: errs.ErrFileUnavailable if the file does not exist or cannot be
//     opened, errs.ErrReadFailure if reading it failed
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		return data, nil
	}

	var pathErr *fs.PathError
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) ||
		(errors.As(err, &pathErr) && pathErr.Op == "open") {
		return nil, fmt.Errorf("%w: %w", errs.ErrFileUnavailable, err)
	}

	return nil, fmt.Errorf("%w: %w", errs.ErrReadFailure, err)
}

// Open reads and decodes a log file.
//
// The compression is inferred from the file extension (".zst", ".s2", ".lz4");
// an explicit decoder.WithCompression in opts takes precedence.
func Open(path string, opts ...decoder.Option) (*decoder.Log, error) {
	data, err := ReadFile(path)
	if err != nil {
		return nil, err
	}

	if ct := compress.ForPath(path); ct != format.CompressionNone {
		opts = append([]decoder.Option{decoder.WithCompression(ct)}, opts...)
	}

	return Decode(data, opts...)
}
