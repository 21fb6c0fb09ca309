package section

const (
	Magic            = "WPILOG" // Magic is the literal file signature.
	SupportedVersion = 0x0100   // SupportedVersion is the only understood header version (1.0).
	ControlEntryID   = 0        // ControlEntryID is the entry id reserved for control records.
)

// sizes of the fixed header fields in bytes
const (
	MagicSize       = 6
	VersionSize     = 2
	ExtraLengthSize = 4
	HeaderFixedSize = MagicSize + VersionSize + ExtraLengthSize
)

// Frame flag bit masks and shifts.
const (
	EntryIDWidthMask      = 0x03
	PayloadSizeWidthMask  = 0x0C
	PayloadSizeWidthShift = 2
	TimestampWidthMask    = 0x70
	TimestampWidthShift   = 4
	ReservedFrameMask     = 0x80

	MaxEntryIDWidth     = 4
	MaxPayloadSizeWidth = 4
	MaxTimestampWidth   = 8
)
