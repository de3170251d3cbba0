package frame

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToInt16(t *testing.T) {
	testCases := []struct {
		msb, lsb byte
		expect   int16
	}{
		{0x00, 0x00, 0},
		{0xff, 0xff, -1},
		{0x7f, 0xff, 32767},
		{0x80, 0x00, -32768},
		{0x10, 0x00, 4096},
		{0x00, 0x80, 128},
	}
	for _, tc := range testCases {
		require.Equalf(t, tc.expect, ToInt16(tc.msb, tc.lsb), "%#02x %#02x", tc.msb, tc.lsb)
	}
}

func TestScaled(t *testing.T) {
	require.Equal(t, 56.25, Scaled(0x10, 0x00, GyroRange))
	require.Equal(t, -450.0, Scaled(0x80, 0x00, GyroRange))
	require.Equal(t, 0.0, Scaled(0, 0, AccelRange))
	require.Equal(t, 3.0*0.5, Scaled(0x40, 0x00, AccelRange))
	require.Equal(t, 25.0, Temperature(0, 0))
	require.InDelta(t, 25.0+5.0/0.0084, Temperature(0x7f, 0xff)+5.0/32768.0/0.0084, 1e-9)
}

func TestDecodeCalibrationFrame(t *testing.T) {
	var f RawFrame
	f[3], f[4] = 0x01, 0x02
	f.Seal()
	s := Decode(f)
	require.Equal(t, Sample{
		SampleTimer:   258,
		TempX:         25.0,
		TempY:         25.0,
		TempZ:         25.0,
		ChecksumValid: true,
	}, s)
}

func TestDecodeGyro(t *testing.T) {
	f := NewBuilder().Gyro(0x1000, 0, -0x1000).Frame()
	s := Decode(f)
	require.InDelta(t, 0.9817, s.GyroX, 1e-4)
	require.Equal(t, Scaled(0x10, 0x00, GyroRange)*degToRad, s.GyroX)
	require.InDelta(t, 56.25*math.Pi/180, s.GyroX, 1e-15)
	require.Equal(t, 0.0, s.GyroY)
	require.Equal(t, -s.GyroX, s.GyroZ)
}

func TestDecodeFields(t *testing.T) {
	f := NewBuilder().
		MessageID(0xc2).
		Timer(0xfffe).
		Accel(0x4000, -0x4000, 0).
		Mag(0, 0x4000, 0).
		Temp(0, 0, 0x0100).
		Frame()
	s := Decode(f)
	require.Equal(t, uint8(0xc2), s.MessageID)
	require.Equal(t, uint16(0xfffe), s.SampleTimer)
	require.Equal(t, 1.5, s.AccelX)
	require.Equal(t, -1.5, s.AccelY)
	require.Equal(t, 0.0, s.AccelZ)
	require.InDelta(t, 1.9/2*1.5/2, s.MagY, 1e-12)
	require.InDelta(t, 256*5.0/32768/0.0084+25, s.TempZ, 1e-12)
	require.True(t, s.ChecksumValid)
}

func TestDecodeIsPure(t *testing.T) {
	var f RawFrame
	for i := range f {
		f[i] = byte(i*37 + 11)
	}
	orig := f
	require.Equal(t, Decode(f), Decode(f))
	require.Equal(t, orig, f)
}
