package encoding

import (
	"errors"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/valyala/fastjson"

	"github.com/arloliu/wpilog/endian"
	"github.com/arloliu/wpilog/errs"
	"github.com/arloliu/wpilog/format"
	"github.com/arloliu/wpilog/record"
)

// Element sizes of the fixed-width value kinds.
const (
	BooleanSize = 1
	IntegerSize = 8
	FloatSize   = 4
	DoubleSize  = 8
)

// DecodeValue decodes the payload of a value record according to its declared type.
//
// Scalars must have exactly their element size; arrays must be a whole number
// of elements. Opaque kinds (msgpack and the named struct/proto kinds) are
// returned as record.Opaque without inspecting the payload.
//
// Parameters:
//   - tag: Declared type of the binding that applies to the record
//   - payload: Raw payload bytes of the record
//
// Returns:
//   - record.Body: Decoded value variant
//   - error: errs.ErrMalformedData when the payload does not match the type
func DecodeValue(tag format.TypeTag, payload []byte) (record.Body, error) {
	engine := endian.GetLittleEndianEngine()

	switch tag.Kind {
	case format.KindBoolean:
		if err := expectSize(tag, payload, BooleanSize); err != nil {
			return nil, err
		}
		v, err := decodeBoolean(payload)
		if err != nil {
			return nil, err
		}

		return record.Boolean(v), nil
	case format.KindInteger:
		if err := expectSize(tag, payload, IntegerSize); err != nil {
			return nil, err
		}

		return record.Integer(int64(engine.Uint64(payload))), nil //nolint:gosec
	case format.KindFloat:
		if err := expectSize(tag, payload, FloatSize); err != nil {
			return nil, err
		}

		return record.Float(math.Float32frombits(engine.Uint32(payload))), nil
	case format.KindDouble:
		if err := expectSize(tag, payload, DoubleSize); err != nil {
			return nil, err
		}

		return record.Double(math.Float64frombits(engine.Uint64(payload))), nil
	case format.KindString:
		if !utf8.Valid(payload) {
			return nil, fmt.Errorf("%w: string payload is not valid UTF-8", errs.ErrMalformedData)
		}

		return record.String(payload), nil
	case format.KindBooleanArray:
		v, err := decodeArray(tag, payload, BooleanSize, decodeBoolean)
		if err != nil {
			return nil, err
		}

		return record.BooleanArray(v), nil
	case format.KindIntegerArray:
		v, err := decodeArray(tag, payload, IntegerSize, func(b []byte) (int64, error) {
			return int64(engine.Uint64(b)), nil //nolint:gosec
		})
		if err != nil {
			return nil, err
		}

		return record.IntegerArray(v), nil
	case format.KindFloatArray:
		v, err := decodeArray(tag, payload, FloatSize, func(b []byte) (float32, error) {
			return math.Float32frombits(engine.Uint32(b)), nil
		})
		if err != nil {
			return nil, err
		}

		return record.FloatArray(v), nil
	case format.KindDoubleArray:
		v, err := decodeArray(tag, payload, DoubleSize, func(b []byte) (float64, error) {
			return math.Float64frombits(engine.Uint64(b)), nil
		})
		if err != nil {
			return nil, err
		}

		return record.DoubleArray(v), nil
	case format.KindStringArray:
		v, err := decodeStringArray(payload)
		if err != nil {
			return nil, err
		}

		return record.StringArray(v), nil
	case format.KindJSON:
		v, err := ParseJSON(payload)
		if err != nil {
			return nil, err
		}

		return record.JSON{Value: v}, nil
	case format.KindMessagePack, format.KindStruct, format.KindStructArray,
		format.KindPhotonStruct, format.KindProtoBuff:
		return record.Opaque{Type: tag, Data: payload}, nil
	default:
		return record.Raw(payload), nil
	}
}

// ParseJSON parses a JSON document. An empty payload yields a nil value.
//
// Returns:
//   - *fastjson.Value: Parsed document, nil for an empty payload
//   - error: errs.ErrMalformedData if the payload is not valid JSON
func ParseJSON(payload []byte) (*fastjson.Value, error) {
	if len(payload) == 0 {
		return nil, nil
	}

	v, err := fastjson.ParseBytes(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrMalformedData, err)
	}

	return v, nil
}

func expectSize(tag format.TypeTag, payload []byte, size int) error {
	if len(payload) != size {
		return fmt.Errorf("%w: %s payload is %d bytes, want %d", errs.ErrMalformedData, tag, len(payload), size)
	}

	return nil
}

func decodeBoolean(b []byte) (bool, error) {
	switch b[0] {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("%w: boolean byte 0x%02x", errs.ErrMalformedData, b[0])
	}
}

func decodeArray[T any](tag format.TypeTag, payload []byte, size int, decode func([]byte) (T, error)) ([]T, error) {
	if len(payload)%size != 0 {
		return nil, fmt.Errorf("%w: %s payload of %d bytes leaves %d trailing bytes",
			errs.ErrMalformedData, tag, len(payload), len(payload)%size)
	}

	out := make([]T, 0, len(payload)/size)
	for off := 0; off < len(payload); off += size {
		v, err := decode(payload[off : off+size])
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}

	return out, nil
}

func decodeStringArray(payload []byte) ([]string, error) {
	c := NewCursor(payload)

	count, err := c.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("%w: string array count: %w", errs.ErrMalformedData, err)
	}

	// every element needs at least its 4-byte length
	capacity := min(uint64(count), uint64(c.Remaining()/4))
	out := make([]string, 0, capacity)
	for i := range count {
		s, err := ReadString(c, errs.ErrMalformedData)
		if errors.Is(err, errs.ErrMalformedData) {
			return nil, err
		}
		if err != nil {
			return nil, fmt.Errorf("%w: string array element %d: %w", errs.ErrMalformedData, i, err)
		}
		out = append(out, s)
	}

	return out, nil
}
