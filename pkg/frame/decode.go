package frame

import "math"

// Sensor full-scale ranges.
const (
	GyroRange  = 600.0 // deg/s
	AccelRange = 4.0
	MagRange   = 1.9
)

var degToRad = float64(math.Pi) / 180

// ToInt16 combines two bytes big-endian into a two's-complement int16.
func ToInt16(msb, lsb byte) int16 {
	return int16(uint16(msb)<<8 | uint16(lsb))
}

// Scaled converts a raw reading to physical units for a sensor with the
// given full-scale range.
func Scaled(msb, lsb byte, fullScale float64) float64 {
	return float64(ToInt16(msb, lsb)) * (fullScale / 2.0 * 1.5) / 32768.0
}

// Temperature converts a raw temperature reading to degrees Celsius.
func Temperature(msb, lsb byte) float64 {
	v := float64(ToInt16(msb, lsb)) * 5.0 / 32768.0
	return v/0.0084 + 25.0
}

// Decode converts a frame into a Sample. It is a pure function of f.
func Decode(f RawFrame) Sample {
	s := Sample{
		MessageID:     f[offMessageID],
		SampleTimer:   uint16(f[offTimer])<<8 | uint16(f[offTimer+1]),
		ChecksumValid: f.ChecksumValid(),
	}
	s.GyroX, s.GyroY, s.GyroZ = f.scaled3(offGyro, GyroRange)
	s.GyroX *= degToRad
	s.GyroY *= degToRad
	s.GyroZ *= degToRad
	s.AccelX, s.AccelY, s.AccelZ = f.scaled3(offAccel, AccelRange)
	s.MagX, s.MagY, s.MagZ = f.scaled3(offMag, MagRange)
	s.TempX = Temperature(f[offTemp], f[offTemp+1])
	s.TempY = Temperature(f[offTemp+2], f[offTemp+3])
	s.TempZ = Temperature(f[offTemp+4], f[offTemp+5])
	return s
}

func (f *RawFrame) scaled3(off int, fullScale float64) (x, y, z float64) {
	return Scaled(f[off], f[off+1], fullScale),
		Scaled(f[off+2], f[off+3], fullScale),
		Scaled(f[off+4], f[off+5], fullScale)
}
