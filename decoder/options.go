package decoder

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/arloliu/wpilog/format"
	"github.com/arloliu/wpilog/internal/options"
)

// Option configures a Decoder.
type Option = options.Option[*Decoder]

// WithLogger sets the logger used for lifecycle and progress messages.
// A nil logger disables logging.
func WithLogger(logger *zap.Logger) Option {
	return options.NoError(func(d *Decoder) {
		if logger == nil {
			logger = zap.NewNop()
		}
		d.logger = logger
	})
}

// WithCompression declares that the input is compressed with the given algorithm.
// It disables detection; CompressionNone forces the input to be read as is.
func WithCompression(compression format.CompressionType) Option {
	return options.New(func(d *Decoder) error {
		switch compression {
		case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
			d.compression = compression
			d.compressionSet = true

			return nil
		default:
			return fmt.Errorf("invalid input compression: %s", compression)
		}
	})
}

// WithStrictControlLength rejects control records whose declared payload is
// longer than their fields. By default trailing control bytes are skipped.
func WithStrictControlLength(strict bool) Option {
	return options.NoError(func(d *Decoder) {
		d.strictControl = strict
	})
}

// WithMaxRecords bounds the number of records a decode pass may produce.
// Zero means unlimited.
func WithMaxRecords(n int) Option {
	return options.New(func(d *Decoder) error {
		if n < 0 {
			return fmt.Errorf("max records must not be negative, got %d", n)
		}
		d.maxRecords = n

		return nil
	})
}
