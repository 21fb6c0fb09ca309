package compress

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arloliu/wpilog/errs"
	"github.com/arloliu/wpilog/format"
)

// Compressor compresses a complete log image.
type Compressor interface {
	// Compress compresses the input data and returns the compressed result.
	//
	// Memory management:
	//   - Returned slice is newly allocated and owned by the caller
	//   - Input slice is not modified
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a compressed log image so it can be decoded.
//
// Example:
//
//	codec, _ := compress.GetCodec(format.CompressionZstd)
//	raw, err := codec.Decompress(fileBytes)
//	if err != nil {
//	    return fmt.Errorf("decompression failed: %w", err)
//	}
//
// Thread Safety: all built-in decompressors are safe for concurrent use.
type Decompressor interface {
	// Decompress decompresses the input data and returns the original bytes.
	//
	// Error conditions:
	//   - Returns error if input data is corrupted or invalid
	//   - Returns error if data was compressed with an incompatible algorithm
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// zstdFrameMagic starts every Zstandard frame.
var zstdFrameMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}

var extensions = map[string]format.CompressionType{
	".zst":  format.CompressionZstd,
	".zstd": format.CompressionZstd,
	".s2":   format.CompressionS2,
	".lz4":  format.CompressionLZ4,
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves a built-in Codec for the specified compression type.
//
// Returns:
//   - Codec: Shared codec instance
//   - error: errs.ErrUnsupportedCompression for an unknown type
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedCompression, compressionType)
}

// Decompress decompresses data with the codec of the given type.
//
// Decompression failures are wrapped in errs.ErrDecompression.
func Decompress(compressionType format.CompressionType, data []byte) ([]byte, error) {
	codec, err := GetCodec(compressionType)
	if err != nil {
		return nil, err
	}

	out, err := codec.Decompress(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", errs.ErrDecompression, compressionType, err)
	}

	return out, nil
}

// ForPath infers the compression of a log file from its extension, e.g.
// "match.wpilog.zst". Unknown extensions map to CompressionNone.
func ForPath(path string) format.CompressionType {
	ext := strings.ToLower(filepath.Ext(path))
	if c, ok := extensions[ext]; ok {
		return c
	}

	return format.CompressionNone
}

// Detect sniffs self-identifying compressed data. Only Zstandard frames carry
// a magic number; everything else reports CompressionNone.
func Detect(data []byte) format.CompressionType {
	if bytes.HasPrefix(data, zstdFrameMagic) {
		return format.CompressionZstd
	}

	return format.CompressionNone
}
