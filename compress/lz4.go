package compress

import (
	"bytes"
	"errors"
	"sync"

	"github.com/pierrec/lz4/v4"

	"github.com/arloliu/wpilog/internal/pool"
)

const (
	// maxLZ4Output bounds the adaptive output buffer; a log image larger than
	// this is treated as corrupt input.
	maxLZ4Output = 128 * 1024 * 1024 // 128MB

	// maxLZ4Ratio is the largest expansion a single LZ4 block can encode.
	maxLZ4Ratio = 255
)

var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Compressor handles LZ4 block compressed logs.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 codec.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress compresses data as a single LZ4 block.
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	dst := make([]byte, lz4.CompressBlockBound(len(data)))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst)
	if err != nil {
		return nil, err
	}

	return dst[:n], nil
}

// Decompress decompresses a single LZ4 block.
//
// LZ4 blocks do not record their decompressed size, so decoding runs in a
// pooled scratch buffer that starts at 4x the input and doubles on
// ErrInvalidSourceShortBuffer. The buffer never exceeds the largest output
// the input could encode (maxLZ4Ratio per byte), capped at maxLZ4Output.
// The result is copied out of the scratch buffer.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	scratch := pool.GetScratch()
	defer pool.PutScratch(scratch)

	limit := lz4OutputLimit(len(data))
	bufSize := min(len(data)*4, limit)
	for {
		buf := scratch.Resize(bufSize)
		n, err := lz4.UncompressBlock(data, buf)
		if err == nil {
			return bytes.Clone(buf[:n]), nil
		}
		if !errors.Is(err, lz4.ErrInvalidSourceShortBuffer) || bufSize >= limit {
			return nil, err
		}
		bufSize = min(bufSize*2, limit)
	}
}

// lz4OutputLimit returns the largest decompressed size an n-byte block can
// legitimately produce.
func lz4OutputLimit(n int) int {
	if n > maxLZ4Output/maxLZ4Ratio {
		return maxLZ4Output
	}

	return n*maxLZ4Ratio + 64
}
