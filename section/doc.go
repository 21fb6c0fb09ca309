// Package section defines the binary structures and constants of the WPILOG
// container: the file header and the per-record frame header.
//
// # Layout
//
//	┌──────────────────────────────────────────────────────────┐
//	│ Header                                                   │
//	│  - Magic "WPILOG" (6 bytes)                              │
//	│  - Version (2 bytes, 0x0100)                             │
//	│  - Extra length (4 bytes) + extra string (UTF-8)         │
//	├──────────────────────────────────────────────────────────┤
//	│ Record 0                                                 │
//	│  - Frame flag (1 byte): field widths                     │
//	│  - Entry id (1-4 bytes)                                  │
//	│  - Payload size (1-4 bytes)                              │
//	│  - Timestamp (1-8 bytes, microseconds)                   │
//	│  - Payload (payload size bytes)                          │
//	├──────────────────────────────────────────────────────────┤
//	│ Record 1 ...                                             │
//	└──────────────────────────────────────────────────────────┘
//
// All integers are little-endian.
//
// # Frame Flag
//
//	Bits | Field
//	-----|--------------------------------------------
//	0-1  | entry id width - 1
//	2-3  | payload size width - 1
//	4-6  | timestamp width - 1
//	7    | reserved
//
// A record whose entry id is 0 is a control record; its payload holds the
// control fields (Start, Finish or SetMetadata) instead of a value.
package section
