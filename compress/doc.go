// Package compress provides codecs for compressed WPILOG files.
//
// Logs are frequently archived compressed ("match.wpilog.zst"). A compressed
// image is restored in memory before decoding; the codec is chosen from the
// file extension (ForPath), by sniffing (Detect, Zstandard only) or
// explicitly by the caller.
//
// Supported algorithms:
//   - None: pass-through
//   - Zstd: klauspost/compress/zstd, or valyala/gozstd with the "gozstd" build tag
//   - S2: klauspost/compress/s2 block format
//   - LZ4: pierrec/lz4 block format
//
// Example:
//
//	raw, err := compress.Decompress(compress.ForPath(path), fileBytes)
//	if err != nil {
//	    return err
//	}
package compress
