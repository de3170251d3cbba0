package frame

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChecksum(t *testing.T) {
	var f RawFrame
	require.Equal(t, byte(0xfc), f.Checksum())
	require.False(t, f.ChecksumValid())
	f.Seal()
	require.True(t, f.ChecksumValid())

	for i := 0; i < ChecksumIndex; i++ {
		f[i] = byte(i * 7)
	}
	f.Seal()
	sum := ChecksumBias
	for i := 0; i < ChecksumIndex; i++ {
		sum += int(f[i])
	}
	require.Equal(t, byte(sum%256), f[ChecksumIndex])
	require.True(t, f.ChecksumValid())
}

func TestChecksumBitFlip(t *testing.T) {
	f := NewBuilder().
		MessageID(0x31).
		Timer(0xbeef).
		Gyro(1, -2, 3).
		Accel(-400, 500, -600).
		Mag(7000, -8000, 9000).
		Temp(-1, 0, 1).
		Frame()
	require.True(t, f.ChecksumValid())
	for i := 0; i < ChecksumIndex; i++ {
		for bit := uint(0); bit < 8; bit++ {
			corrupted := f
			corrupted[i] ^= 1 << bit
			require.Falsef(t, corrupted.ChecksumValid(), "byte[%d] bit %d", i, bit)
			require.Falsef(t, Decode(corrupted).ChecksumValid, "byte[%d] bit %d", i, bit)
		}
	}
}

func TestBuilder(t *testing.T) {
	b := NewBuilder().MessageID(2).Timer(0x0102).Gyro(0x1000, -1, 0x7fff).Temp(-32768, 0, 0)
	f := b.Frame()
	require.Equal(t, byte(2), f[0])
	require.Equal(t, []byte{0x01, 0x02}, f[3:5])
	require.Equal(t, []byte{0x10, 0x00, 0xff, 0xff, 0x7f, 0xff}, f[9:15])
	require.Equal(t, []byte{0x80, 0x00}, f[27:29])

	wire := b.Bytes()
	require.Len(t, wire, SyncLen+Size)
	require.Equal(t, []byte{0xff, 0xff, 0xff, 0xff}, wire[:SyncLen])
	require.Equal(t, f[:], wire[SyncLen:])
}
