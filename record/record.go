// Package record defines the decoded form of WPILOG records.
//
// A Record pairs the frame fields (entry id, timestamp, ordinal) with a Body.
// Body is a closed sum type: the control variants Start, Finish and
// SetMetadata, and one value variant per declared value type. Consumers
// branch on it with a type switch:
//
//	switch v := rec.Body.(type) {
//	case record.Double:
//	    fmt.Println(float64(v))
//	case record.Opaque:
//	    fmt.Println(v.Type.Name, len(v.Data))
//	}
//
// Byte slices held by Raw and Opaque alias the decoded input buffer.
package record

import (
	"math"
	"time"

	"github.com/valyala/fastjson"

	"github.com/arloliu/wpilog/format"
)

// Record is one decoded record of the stream.
type Record struct {
	// EntryID is the identifier from the record frame; 0 marks a control record.
	EntryID uint32
	// TimestampMicros is the record timestamp in microseconds since log start.
	TimestampMicros uint64
	// Ordinal is the 0-based position of the record in the stream.
	Ordinal uint32
	// Body is the decoded payload.
	Body Body
}

// Timestamp returns the record timestamp as a duration, saturating at the
// largest representable duration.
func (r Record) Timestamp() time.Duration {
	if r.TimestampMicros > uint64(math.MaxInt64/int64(time.Microsecond)) {
		return time.Duration(math.MaxInt64)
	}

	return time.Duration(r.TimestampMicros) * time.Microsecond //nolint:gosec
}

// IsControl reports whether the record is a control record.
func (r Record) IsControl() bool {
	return r.EntryID == 0
}

// Body is the payload of a Record.
type Body interface {
	isBody()
}

// Start binds EntryID to a name, a declared type and optional metadata.
type Start struct {
	EntryID  uint32
	Name     string
	Type     format.TypeTag
	Metadata *fastjson.Value // nil when the record carried no metadata
}

// Finish closes the open binding of EntryID.
type Finish struct {
	EntryID uint32
}

// SetMetadata replaces the metadata of the open binding of EntryID.
type SetMetadata struct {
	EntryID  uint32
	Metadata *fastjson.Value // nil when the record carried no metadata
}

type (
	Raw          []byte
	Boolean      bool
	Integer      int64
	Float        float32
	Double       float64
	String       string
	BooleanArray []bool
	IntegerArray []int64
	FloatArray   []float32
	DoubleArray  []float64
	StringArray  []string
)

// JSON is a json value; Value is nil for an empty payload.
type JSON struct {
	Value *fastjson.Value
}

// Opaque is an undecoded payload of a msgpack, struct, struct array,
// photonstruct or proto entry. Type carries the kind and sub-type name so
// collaborators can pick a decoder for Data.
type Opaque struct {
	Type format.TypeTag
	Data []byte
}

func (Start) isBody()        {}
func (Finish) isBody()       {}
func (SetMetadata) isBody()  {}
func (Raw) isBody()          {}
func (Boolean) isBody()      {}
func (Integer) isBody()      {}
func (Float) isBody()        {}
func (Double) isBody()       {}
func (String) isBody()       {}
func (BooleanArray) isBody() {}
func (IntegerArray) isBody() {}
func (FloatArray) isBody()   {}
func (DoubleArray) isBody()  {}
func (StringArray) isBody()  {}
func (JSON) isBody()         {}
func (Opaque) isBody()       {}

// Kind returns the value kind a body decodes to. Control bodies report
// ok=false.
func Kind(b Body) (kind format.ValueKind, ok bool) {
	switch v := b.(type) {
	case Raw:
		return format.KindRaw, true
	case Boolean:
		return format.KindBoolean, true
	case Integer:
		return format.KindInteger, true
	case Float:
		return format.KindFloat, true
	case Double:
		return format.KindDouble, true
	case String:
		return format.KindString, true
	case BooleanArray:
		return format.KindBooleanArray, true
	case IntegerArray:
		return format.KindIntegerArray, true
	case FloatArray:
		return format.KindFloatArray, true
	case DoubleArray:
		return format.KindDoubleArray, true
	case StringArray:
		return format.KindStringArray, true
	case JSON:
		return format.KindJSON, true
	case Opaque:
		return v.Type.Kind, true
	default:
		return 0, false
	}
}
