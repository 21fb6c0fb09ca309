package decoder

import (
	"errors"
	"fmt"

	"github.com/valyala/fastjson"
	"go.uber.org/zap"

	"github.com/arloliu/wpilog/encoding"
	"github.com/arloliu/wpilog/errs"
	"github.com/arloliu/wpilog/format"
	"github.com/arloliu/wpilog/record"
)

// decodeControl parses a control record payload and applies it to the registry.
//
// The payload cursor is bounded to the declared payload size, so no field can
// read past it; running short is reported as errs.ErrInvalidRecord.
func (d *Decoder) decodeControl(payload *encoding.Cursor) (record.Body, error) {
	subtype, err := payload.ReadByte()
	if err != nil {
		return nil, controlOverrun("subtype", err)
	}

	var body record.Body
	switch format.ControlType(subtype) {
	case format.ControlStart:
		body, err = d.decodeStart(payload)
	case format.ControlFinish:
		body, err = d.decodeFinish(payload)
	case format.ControlSetMetadata:
		body, err = d.decodeSetMetadata(payload)
	default:
		return nil, fmt.Errorf("%w: unknown control subtype %d", errs.ErrInvalidRecord, subtype)
	}
	if err != nil {
		return nil, err
	}

	if !payload.Empty() {
		if d.strictControl {
			return nil, fmt.Errorf("%w: %d trailing bytes after %s control fields",
				errs.ErrInvalidRecord, payload.Remaining(), format.ControlType(subtype))
		}
		d.logger.Debug("skipping trailing control bytes",
			zap.Uint32("ordinal", d.ordinal),
			zap.Int("bytes", payload.Remaining()))
	}

	return body, nil
}

func (d *Decoder) decodeStart(payload *encoding.Cursor) (record.Body, error) {
	id, err := payload.ReadUint32()
	if err != nil {
		return nil, controlOverrun("start entry id", err)
	}

	name, err := encoding.ReadString(payload, errs.ErrInvalidRecord)
	if err != nil {
		return nil, controlOverrun("start name", err)
	}

	typ, err := encoding.ReadString(payload, errs.ErrInvalidRecord)
	if err != nil {
		return nil, controlOverrun("start type", err)
	}

	metadata, err := readMetadata(payload)
	if err != nil {
		return nil, err
	}

	tag := format.ParseTypeTag(typ)
	if err := d.registry.Start(id, d.ordinal, name, tag, metadata); err != nil {
		return nil, err
	}

	d.logger.Debug("entry started",
		zap.Uint32("entry_id", id),
		zap.String("name", name),
		zap.Stringer("type", tag),
		zap.Uint32("ordinal", d.ordinal))

	return record.Start{EntryID: id, Name: name, Type: tag, Metadata: metadata}, nil
}

func (d *Decoder) decodeFinish(payload *encoding.Cursor) (record.Body, error) {
	id, err := payload.ReadUint32()
	if err != nil {
		return nil, controlOverrun("finish entry id", err)
	}

	if err := d.registry.Finish(id, d.ordinal); err != nil {
		return nil, err
	}

	d.logger.Debug("entry finished", zap.Uint32("entry_id", id), zap.Uint32("ordinal", d.ordinal))

	return record.Finish{EntryID: id}, nil
}

func (d *Decoder) decodeSetMetadata(payload *encoding.Cursor) (record.Body, error) {
	id, err := payload.ReadUint32()
	if err != nil {
		return nil, controlOverrun("set metadata entry id", err)
	}

	metadata, err := readMetadata(payload)
	if err != nil {
		return nil, err
	}

	if err := d.registry.SetMetadata(id, metadata); err != nil {
		return nil, err
	}

	d.logger.Debug("entry metadata set", zap.Uint32("entry_id", id), zap.Uint32("ordinal", d.ordinal))

	return record.SetMetadata{EntryID: id, Metadata: metadata}, nil
}

func readMetadata(payload *encoding.Cursor) (*fastjson.Value, error) {
	raw, err := payload.ReadPrefixed()
	if err != nil {
		return nil, controlOverrun("metadata", err)
	}

	return encoding.ParseJSON(raw)
}

// controlOverrun classifies a failed control field read. Running out of the
// declared payload makes the record invalid; it is not a truncated stream.
func controlOverrun(field string, err error) error {
	if errors.Is(err, errs.ErrOutOfData) {
		return fmt.Errorf("%w: %s exceeds declared payload: %v", errs.ErrInvalidRecord, field, err) //nolint:errorlint
	}

	return err
}
