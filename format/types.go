package format

import "strings"

type (
	ValueKind       uint8
	ControlType     uint8
	CompressionType uint8
)

const (
	KindRaw          ValueKind = 0x1  // KindRaw is an uninterpreted byte payload.
	KindBoolean      ValueKind = 0x2  // KindBoolean is a single 0/1 byte.
	KindInteger      ValueKind = 0x3  // KindInteger is a signed 64-bit integer.
	KindFloat        ValueKind = 0x4  // KindFloat is an IEEE-754 binary32.
	KindDouble       ValueKind = 0x5  // KindDouble is an IEEE-754 binary64.
	KindString       ValueKind = 0x6  // KindString is UTF-8 text.
	KindBooleanArray ValueKind = 0x7  // KindBooleanArray is a packed array of booleans.
	KindIntegerArray ValueKind = 0x8  // KindIntegerArray is a packed array of int64.
	KindFloatArray   ValueKind = 0x9  // KindFloatArray is a packed array of float32.
	KindDoubleArray  ValueKind = 0xA  // KindDoubleArray is a packed array of float64.
	KindStringArray  ValueKind = 0xB  // KindStringArray is a counted array of length-prefixed strings.
	KindJSON         ValueKind = 0xC  // KindJSON is a JSON document, possibly empty.
	KindMessagePack  ValueKind = 0xD  // KindMessagePack is an opaque MessagePack payload.
	KindStruct       ValueKind = 0xE  // KindStruct is an opaque named struct payload.
	KindStructArray  ValueKind = 0xF  // KindStructArray is an opaque array of named structs.
	KindPhotonStruct ValueKind = 0x10 // KindPhotonStruct is an opaque PhotonVision struct payload.
	KindProtoBuff    ValueKind = 0x11 // KindProtoBuff is an opaque protobuf message payload.

	ControlStart       ControlType = 0x0 // ControlStart binds an entry id.
	ControlFinish      ControlType = 0x1 // ControlFinish closes the open binding of an entry id.
	ControlSetMetadata ControlType = 0x2 // ControlSetMetadata rewrites the metadata of an open binding.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 block compression.
)

// Type string prefixes that carry a sub-type name.
const (
	PrefixStruct       = "struct:"
	PrefixProto        = "proto:"
	PrefixPhotonStruct = "photonstruct:"
	SuffixArray        = "[]"
)

var kindNames = map[ValueKind]string{
	KindRaw:          "raw",
	KindBoolean:      "boolean",
	KindInteger:      "int64",
	KindFloat:        "float",
	KindDouble:       "double",
	KindString:       "string",
	KindBooleanArray: "boolean[]",
	KindIntegerArray: "int64[]",
	KindFloatArray:   "float[]",
	KindDoubleArray:  "double[]",
	KindStringArray:  "string[]",
	KindJSON:         "json",
	KindMessagePack:  "msgpack",
}

var simpleKinds = func() map[string]ValueKind {
	m := make(map[string]ValueKind, len(kindNames))
	for k, name := range kindNames {
		m[name] = k
	}

	return m
}()

func (k ValueKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	switch k {
	case KindStruct:
		return "struct"
	case KindStructArray:
		return "struct[]"
	case KindPhotonStruct:
		return "photonstruct"
	case KindProtoBuff:
		return "proto"
	default:
		return "unknown"
	}
}

// IsNamed reports whether values of this kind carry a sub-type name.
func (k ValueKind) IsNamed() bool {
	return k == KindStruct || k == KindStructArray || k == KindPhotonStruct || k == KindProtoBuff
}

// IsOpaque reports whether payloads of this kind are handed back undecoded.
func (k ValueKind) IsOpaque() bool {
	return k == KindMessagePack || k.IsNamed()
}

func (c ControlType) String() string {
	switch c {
	case ControlStart:
		return "Start"
	case ControlFinish:
		return "Finish"
	case ControlSetMetadata:
		return "SetMetadata"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// TypeTag is the declared type of an entry binding.
//
// Name is only set for the named kinds (struct, struct array, photonstruct
// and proto) and holds the sub-type name recovered from the type string.
type TypeTag struct {
	Kind ValueKind
	Name string
}

// Raw returns the tag for uninterpreted payloads.
func Raw() TypeTag { return TypeTag{Kind: KindRaw} }

// Struct returns the tag for a named struct.
func Struct(name string) TypeTag { return TypeTag{Kind: KindStruct, Name: name} }

// StructArray returns the tag for an array of named structs.
func StructArray(name string) TypeTag { return TypeTag{Kind: KindStructArray, Name: name} }

// PhotonStruct returns the tag for a named PhotonVision struct.
func PhotonStruct(name string) TypeTag { return TypeTag{Kind: KindPhotonStruct, Name: name} }

// ProtoBuff returns the tag for a named protobuf message.
func ProtoBuff(name string) TypeTag { return TypeTag{Kind: KindProtoBuff, Name: name} }

// ParseTypeTag maps a type string from a Start control record to its TypeTag.
//
// Exact type names ("int64", "double[]", "json", ...) map to their kind.
// The prefixed forms "struct:<name>", "struct:<name>[]", "proto:<name>" and
// "photonstruct:<name>" map to named kinds. Anything else decays to Raw.
//
// Parameters:
//   - s: The type string as written in the Start record
//
// Returns:
//   - TypeTag: The parsed tag, never an error
func ParseTypeTag(s string) TypeTag {
	if kind, ok := simpleKinds[s]; ok {
		return TypeTag{Kind: kind}
	}

	if name, ok := strings.CutPrefix(s, PrefixStruct); ok {
		if elem, isArray := strings.CutSuffix(name, SuffixArray); isArray {
			return StructArray(elem)
		}

		return Struct(name)
	}
	if name, ok := strings.CutPrefix(s, PrefixProto); ok {
		return ProtoBuff(name)
	}
	if name, ok := strings.CutPrefix(s, PrefixPhotonStruct); ok {
		return PhotonStruct(name)
	}

	return Raw()
}

// String returns the canonical type string of the tag.
func (t TypeTag) String() string {
	switch t.Kind {
	case KindStruct:
		return PrefixStruct + t.Name
	case KindStructArray:
		return PrefixStruct + t.Name + SuffixArray
	case KindPhotonStruct:
		return PrefixPhotonStruct + t.Name
	case KindProtoBuff:
		return PrefixProto + t.Name
	default:
		return t.Kind.String()
	}
}
