package section

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/wpilog/encoding"
	"github.com/arloliu/wpilog/errs"
	"github.com/arloliu/wpilog/internal/logtest"
)

func TestParseHeader(t *testing.T) {
	t.Run("Valid header", func(t *testing.T) {
		for _, extra := range []string{"", "team=254", "ünïcode ✓"} {
			data := logtest.HeaderBytes(Magic, SupportedVersion, []byte(extra))
			data = append(data, 0xAA) // first byte of a record

			h, n, err := ParseHeaderBytes(data)
			require.NoError(t, err)
			require.Equal(t, uint16(SupportedVersion), h.Version)
			require.Equal(t, extra, h.Extra)
			require.Equal(t, len(data)-1, n)
			require.Equal(t, n, h.Size())
			require.Equal(t, "1.0", h.VersionString())
		}
	})

	t.Run("Invalid magic", func(t *testing.T) {
		data := logtest.HeaderBytes("WPILOX", SupportedVersion, nil)
		_, _, err := ParseHeaderBytes(data)
		require.ErrorIs(t, err, errs.ErrInvalidHeader)
	})

	t.Run("Unsupported version", func(t *testing.T) {
		for _, v := range []uint16{0x0000, 0x0001, 0x0101, 0x0200, 0xFFFF} {
			data := logtest.HeaderBytes(Magic, v, nil)
			_, _, err := ParseHeaderBytes(data)
			require.ErrorIs(t, err, errs.ErrUnsupportedVersion, "version 0x%04x", v)
		}
	})

	t.Run("Invalid UTF-8 extra", func(t *testing.T) {
		data := logtest.HeaderBytes(Magic, SupportedVersion, []byte{0xC3, 0x28})
		_, _, err := ParseHeaderBytes(data)
		require.ErrorIs(t, err, errs.ErrInvalidHeader)
	})

	t.Run("Too short", func(t *testing.T) {
		full := logtest.HeaderBytes(Magic, SupportedVersion, []byte("abc"))
		for n := range len(full) {
			_, _, err := ParseHeaderBytes(full[:n])
			require.ErrorIs(t, err, errs.ErrInvalidHeader, "length %d", n)
			require.ErrorIs(t, err, errs.ErrOutOfData, "length %d", n)
		}
	})

	t.Run("Cursor advances past header", func(t *testing.T) {
		data := logtest.NewBuilderWithExtra("x").Finish(1, 1).Bytes()
		c := encoding.NewCursor(data)

		_, err := ParseHeader(c)
		require.NoError(t, err)
		require.Equal(t, HeaderFixedSize+1, c.Offset())
	})
}
