// Package endian provides byte order utilities for decoding WPILOG data.
//
// All multi-byte integers in a WPILOG stream are little-endian. Fixed fields
// (header version, string lengths, control record fields) are decoded through
// the EndianEngine returned by GetLittleEndianEngine. Record frame fields have
// a variable width of 1 to 8 bytes and are decoded with Widen32 and Widen64,
// which zero-extend the short little-endian slice to the target integer size.
//
// # Basic Usage
//
//	engine := endian.GetLittleEndianEngine()
//	version := engine.Uint16(buf[6:8])
//
//	entryID := endian.Widen32(buf[1:3]) // 2-byte identifier
//	ts := endian.Widen64(buf[4:9])      // 5-byte timestamp
//
// # Thread Safety
//
// All functions in this package are pure and safe for concurrent use.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian from
// the standard library.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// Widen32 interprets b as a little-endian unsigned integer of len(b) bytes
// and zero-extends it to 32 bits.
//
// Parameters:
//   - b: 1 to 4 bytes, least significant byte first
//
// Returns:
//   - uint32: The zero-extended value
//
// Passing more than 4 bytes is a programming error and panics.
func Widen32(b []byte) uint32 {
	if len(b) > 4 {
		panic("endian: Widen32 width exceeds 4 bytes")
	}

	var v uint32
	for i := len(b) - 1; i >= 0; i-- {
		v = v<<8 | uint32(b[i])
	}

	return v
}

// Widen64 interprets b as a little-endian unsigned integer of len(b) bytes
// and zero-extends it to 64 bits.
//
// Parameters:
//   - b: 1 to 8 bytes, least significant byte first
//
// Returns:
//   - uint64: The zero-extended value
//
// Passing more than 8 bytes is a programming error and panics.
func Widen64(b []byte) uint64 {
	if len(b) > 8 {
		panic("endian: Widen64 width exceeds 8 bytes")
	}

	var v uint64
	for i := len(b) - 1; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}

	return v
}
