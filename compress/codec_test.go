package compress

import (
	"bytes"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/wpilog/errs"
	"github.com/arloliu/wpilog/format"
	"github.com/arloliu/wpilog/internal/logtest"
)

var allTypes = []format.CompressionType{
	format.CompressionNone,
	format.CompressionZstd,
	format.CompressionS2,
	format.CompressionLZ4,
}

func sampleLog() []byte {
	b := logtest.NewBuilderWithExtra("compress test").
		Start(0, 1, "/drive/speed", "double", `{"unit":"m/s"}`)
	for i := range 500 {
		b.Record(1, uint64(i)*20_000, logtest.Float64(float64(i%17)*0.25))
	}

	return b.Bytes()
}

func TestGetCodec(t *testing.T) {
	for _, ct := range allTypes {
		codec, err := GetCodec(ct)
		require.NoError(t, err)
		require.NotNil(t, codec)
	}

	_, err := GetCodec(format.CompressionType(0x7F))
	require.ErrorIs(t, err, errs.ErrUnsupportedCompression)
}

func TestAllCodecs_RoundTrip(t *testing.T) {
	data := sampleLog()
	for _, ct := range allTypes {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			compressed, err := codec.Compress(data)
			require.NoError(t, err)
			if ct != format.CompressionNone {
				require.Less(t, len(compressed), len(data))
			}

			restored, err := Decompress(ct, compressed)
			require.NoError(t, err)
			require.True(t, bytes.Equal(data, restored))
		})
	}
}

func TestAllCodecs_EmptyData(t *testing.T) {
	for _, ct := range allTypes {
		t.Run(ct.String(), func(t *testing.T) {
			restored, err := Decompress(ct, nil)
			require.NoError(t, err)
			require.Empty(t, restored)
		})
	}
}

func TestAllCodecs_InvalidData(t *testing.T) {
	garbage := []byte{0xFF, 0xFE, 0xFD, 0xFC, 0xFB, 0xFA, 0xF9}
	for _, ct := range []format.CompressionType{format.CompressionZstd, format.CompressionS2, format.CompressionLZ4} {
		t.Run(ct.String(), func(t *testing.T) {
			_, err := Decompress(ct, garbage)
			require.ErrorIs(t, err, errs.ErrDecompression)
		})
	}
}

func TestLZ4_CorruptBlockBoundedAllocation(t *testing.T) {
	// a literal run longer than the block makes every buffer size look short
	corrupt := []byte{0xF0, 0, 0, 0, 0, 0, 0, 0, 0, 0}

	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	_, err := Decompress(format.CompressionLZ4, corrupt)
	runtime.ReadMemStats(&after)

	require.ErrorIs(t, err, errs.ErrDecompression)
	require.Less(t, after.TotalAlloc-before.TotalAlloc, uint64(1<<20), "corrupt input must not grow the buffer to the global cap")
}

func TestLZ4OutputLimit(t *testing.T) {
	require.Equal(t, 10*maxLZ4Ratio+64, lz4OutputLimit(10))
	require.Equal(t, maxLZ4Output, lz4OutputLimit(maxLZ4Output))
	require.LessOrEqual(t, lz4OutputLimit(maxLZ4Output/maxLZ4Ratio), maxLZ4Output+64)
}

func TestLZ4_LargeExpansionRatio(t *testing.T) {
	data := bytes.Repeat([]byte{0}, 1<<20)
	codec := NewLZ4Compressor()

	compressed, err := codec.Compress(data)
	require.NoError(t, err)
	require.Less(t, len(compressed)*4, len(data), "needs several buffer doublings")

	restored, err := codec.Decompress(compressed)
	require.NoError(t, err)
	require.Equal(t, len(data), len(restored))
}

func TestAllCodecs_ConcurrentUsage(t *testing.T) {
	data := sampleLog()
	for _, ct := range allTypes {
		codec, err := GetCodec(ct)
		require.NoError(t, err)
		compressed, err := codec.Compress(data)
		require.NoError(t, err)

		var wg sync.WaitGroup
		errCh := make(chan error, 8)
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				restored, err := codec.Decompress(compressed)
				if err == nil && !bytes.Equal(data, restored) {
					err = errs.ErrDecompression
				}
				errCh <- err
			}()
		}
		wg.Wait()
		close(errCh)
		for err := range errCh {
			require.NoError(t, err, ct.String())
		}
	}
}

func TestForPath(t *testing.T) {
	tests := []struct {
		path string
		want format.CompressionType
	}{
		{"match.wpilog", format.CompressionNone},
		{"/logs/match.wpilog.zst", format.CompressionZstd},
		{"MATCH.WPILOG.ZSTD", format.CompressionZstd},
		{"a.wpilog.s2", format.CompressionS2},
		{"a.wpilog.lz4", format.CompressionLZ4},
		{"a.wpilog.gz", format.CompressionNone},
		{"", format.CompressionNone},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, ForPath(tt.path), tt.path)
	}
}

func TestDetect(t *testing.T) {
	data := sampleLog()
	require.Equal(t, format.CompressionNone, Detect(data))

	compressed, err := NewZstdCompressor().Compress(data)
	require.NoError(t, err)
	require.Equal(t, format.CompressionZstd, Detect(compressed))
	require.Equal(t, format.CompressionNone, Detect(nil))
}

func BenchmarkZstdDecompress(b *testing.B) {
	compressed, err := NewZstdCompressor().Compress(sampleLog())
	require.NoError(b, err)

	for b.Loop() {
		_, _ = Decompress(format.CompressionZstd, compressed)
	}
}
