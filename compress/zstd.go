package compress

// ZstdCompressor handles Zstandard compressed logs, the usual format for
// archived ".wpilog.zst" files.
//
// The default build uses the pure Go decoder from klauspost/compress; build
// with the "gozstd" tag (and cgo) to use the libzstd binding instead.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd codec.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
