package section

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/wpilog/encoding"
	"github.com/arloliu/wpilog/errs"
	"github.com/arloliu/wpilog/internal/logtest"
)

func TestFrameFlag_Widths(t *testing.T) {
	tests := []struct {
		flag            FrameFlag
		idW, sizeW, tsW int
	}{
		{0x00, 1, 1, 1},
		{0x03, 4, 1, 1},
		{0x0C, 1, 4, 1},
		{0x70, 1, 1, 8},
		{0x7F, 4, 4, 8},
		{0xFF, 4, 4, 8}, // reserved bit ignored
		{0x25, 2, 2, 3},
	}
	for _, tt := range tests {
		require.Equal(t, tt.idW, tt.flag.EntryIDWidth(), "flag 0x%02x", uint8(tt.flag))
		require.Equal(t, tt.sizeW, tt.flag.PayloadSizeWidth(), "flag 0x%02x", uint8(tt.flag))
		require.Equal(t, tt.tsW, tt.flag.TimestampWidth(), "flag 0x%02x", uint8(tt.flag))
	}
}

func TestFrameFlag_Reserved(t *testing.T) {
	require.False(t, FrameFlag(0x7F).Reserved())
	require.True(t, FrameFlag(0x80).Reserved())
	require.True(t, FrameFlag(0xFF).Reserved())
}

func TestNewFrameFlag(t *testing.T) {
	flag, err := NewFrameFlag(2, 2, 3)
	require.NoError(t, err)
	require.Equal(t, FrameFlag(0x25), flag)

	_, err = NewFrameFlag(0, 1, 1)
	require.Error(t, err)
	_, err = NewFrameFlag(1, 5, 1)
	require.Error(t, err)
	_, err = NewFrameFlag(1, 1, 9)
	require.Error(t, err)
}

func maxForWidth(w int) uint64 {
	if w == 8 {
		return ^uint64(0)
	}

	return 1<<(8*uint(w)) - 1
}

func TestReadFrameHeader_AllWidths(t *testing.T) {
	for idW := 1; idW <= MaxEntryIDWidth; idW++ {
		for sizeW := 1; sizeW <= MaxPayloadSizeWidth; sizeW++ {
			for tsW := 1; tsW <= MaxTimestampWidth; tsW++ {
				flag, err := NewFrameFlag(idW, sizeW, tsW)
				require.NoError(t, err)

				id := uint32(maxForWidth(idW) - 1)
				size := uint32(maxForWidth(sizeW) >> 1)
				ts := maxForWidth(tsW) - 2

				data := logtest.AppendFrameWidths([]byte{0xEE}, byte(flag), id, size, ts)
				c := encoding.NewCursor(data)
				_, err = c.Read(1)
				require.NoError(t, err)

				h, err := ReadFrameHeader(c)
				require.NoError(t, err)
				require.Equal(t, flag, h.Flag)
				require.Equal(t, id, h.EntryID)
				require.Equal(t, size, h.PayloadSize)
				require.Equal(t, ts, h.Timestamp)
				require.Equal(t, 1, h.Offset)
				require.Equal(t, 1+idW+sizeW+tsW, h.Size())
				require.True(t, c.Empty())
			}
		}
	}
}

func TestReadFrameHeader_Control(t *testing.T) {
	data := logtest.AppendFrame(nil, 0, 5, 1000)
	h, err := ReadFrameHeader(encoding.NewCursor(data))
	require.NoError(t, err)
	require.True(t, h.IsControl())
	require.Equal(t, uint32(5), h.PayloadSize)
	require.Equal(t, uint64(1000), h.Timestamp)
}

func TestReadFrameHeader_Truncated(t *testing.T) {
	full := logtest.AppendFrameWidths(nil, logtest.FrameFlag(2, 2, 4), 300, 400, 500)
	for n := range len(full) {
		_, err := ReadFrameHeader(encoding.NewCursor(full[:n]))
		require.ErrorIs(t, err, errs.ErrOutOfData, "length %d", n)
	}
}
