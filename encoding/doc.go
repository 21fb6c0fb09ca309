// Package encoding provides the low-level readers used by the decoder.
//
// A Cursor walks a byte slice with bounds-checked, atomic reads: a read
// that cannot be satisfied fails with errs.ErrOutOfData and leaves the
// cursor where it was. Sub carves a bounded cursor for one record payload,
// so field parsing can never run into the next record.
//
// DecodeValue turns a value payload into a record.Body according to the
// declared type of its entry:
//
//	body, err := encoding.DecodeValue(format.ParseTypeTag("double[]"), payload)
//	if err != nil {
//	    return err // errs.ErrMalformedData for a bad length or bad UTF-8
//	}
//
// All multi-byte values are little-endian regardless of the host byte order.
package encoding
