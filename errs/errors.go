// Package errs defines the error kinds reported while reading a WPILOG stream.
//
// Every failure is fatal to a decode pass. Callers classify failures with
// errors.Is against the sentinels below; record level failures are wrapped in
// a *RecordError that carries the position of the offending record.
package errs

import (
	"errors"
	"fmt"
)

// Collaborator layer (file acquisition).
var (
	ErrFileUnavailable = errors.New("log file unavailable")
	ErrReadFailure     = errors.New("failed to read log file")
)

// Framing and header errors.
var (
	ErrOutOfData          = errors.New("out of data")
	ErrTruncated          = errors.New("truncated record")
	ErrInvalidHeader      = errors.New("invalid header")
	ErrUnsupportedVersion = errors.New("unsupported version")
	ErrInvalidRecord      = errors.New("invalid record")
	ErrMalformedData      = errors.New("malformed data")
	ErrTooManyRecords     = errors.New("too many records")
)

// Entry lifecycle errors.
var (
	ErrUseOfEntryIDWithoutStart = errors.New("use of entry id without start")
	ErrUseOfEntryIDAfterFinish  = errors.New("use of entry id after finish")
	ErrEntryAlreadyStarted      = errors.New("entry id already started")
	ErrFinishWithoutStart       = errors.New("finish of entry id without start")
	ErrFinishAfterFinish        = errors.New("finish of entry id after finish")
	ErrSetMetadataWithoutStart  = errors.New("set metadata of entry id without start")
	ErrSetMetadataAfterFinish   = errors.New("set metadata of entry id after finish")
)

// Decompression errors.
var (
	ErrUnsupportedCompression = errors.New("unsupported compression")
	ErrDecompression          = errors.New("decompression failed")
)

// RecordError describes a fatal failure at a specific record of the stream.
type RecordError struct {
	// Ordinal is the 0-based position of the record in the stream.
	Ordinal uint32
	// EntryID is the identifier from the record frame, 0 for control records
	// and for failures that happened before the identifier was read.
	EntryID uint32
	// Offset is the byte offset of the record's framing byte.
	Offset int
	// Err is the underlying error kind.
	Err error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record %d (entry %d, offset %d): %v", e.Ordinal, e.EntryID, e.Offset, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// AsRecordError returns the *RecordError wrapped in err, if any.
func AsRecordError(err error) (*RecordError, bool) {
	var re *RecordError
	if errors.As(err, &re) {
		return re, true
	}

	return nil, false
}
