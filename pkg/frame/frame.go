package frame

// Protocol constants.
const (
	// SyncByte is the value repeated to form the sync marker.
	SyncByte byte = 0xff
	// SyncLen is the number of consecutive SyncBytes forming the marker.
	SyncLen = 4
	// Size is the payload length following the sync marker.
	Size = 34
	// ChecksumIndex is the offset of the checksum byte.
	ChecksumIndex = Size - 1
	// ChecksumBias is the contribution of the sync marker to the checksum.
	ChecksumBias = int(SyncByte) * SyncLen
)

// Field offsets in the payload. Each sensor block is three consecutive
// big-endian int16 values in x, y, z order.
const (
	offMessageID = 0
	offTimer     = 3
	offGyro      = 9
	offAccel     = 15
	offMag       = 21
	offTemp      = 27
)

// RawFrame is the payload of one frame as read from the device.
type RawFrame [Size]byte

// Checksum computes the expected checksum byte of the frame.
func (f RawFrame) Checksum() byte {
	return Checksum(f[:ChecksumIndex])
}

// ChecksumValid reports whether the trailing byte matches the computed checksum.
func (f RawFrame) ChecksumValid() bool {
	return f[ChecksumIndex] == f.Checksum()
}

// Seal stores the computed checksum into the trailing byte.
func (f *RawFrame) Seal() {
	f[ChecksumIndex] = f.Checksum()
}

// Checksum sums payload modulo 256 including the sync marker bias.
func Checksum(payload []byte) byte {
	sum := uint(ChecksumBias)
	for _, b := range payload {
		sum += uint(b)
	}
	return byte(sum)
}

// Builder composes device-exact frames from raw readings.
type Builder struct {
	frame RawFrame
}

// NewBuilder creates a Builder with an all-zero payload.
func NewBuilder() *Builder {
	return &Builder{}
}

// MessageID sets the message id byte.
func (b *Builder) MessageID(id byte) *Builder {
	b.frame[offMessageID] = id
	return b
}

// Timer sets the sample timer.
func (b *Builder) Timer(t uint16) *Builder {
	b.frame[offTimer], b.frame[offTimer+1] = byte(t>>8), byte(t)
	return b
}

// Gyro sets raw gyro readings.
func (b *Builder) Gyro(x, y, z int16) *Builder {
	return b.put3(offGyro, x, y, z)
}

// Accel sets raw accelerometer readings.
func (b *Builder) Accel(x, y, z int16) *Builder {
	return b.put3(offAccel, x, y, z)
}

// Mag sets raw magnetometer readings.
func (b *Builder) Mag(x, y, z int16) *Builder {
	return b.put3(offMag, x, y, z)
}

// Temp sets raw temperature readings.
func (b *Builder) Temp(x, y, z int16) *Builder {
	return b.put3(offTemp, x, y, z)
}

// Frame returns the sealed frame.
func (b *Builder) Frame() RawFrame {
	f := b.frame
	f.Seal()
	return f
}

// Bytes returns the sync marker followed by the sealed frame, exactly as
// the device puts it on the wire.
func (b *Builder) Bytes() []byte {
	f := b.Frame()
	out := make([]byte, 0, SyncLen+Size)
	for i := 0; i < SyncLen; i++ {
		out = append(out, SyncByte)
	}
	return append(out, f[:]...)
}

func (b *Builder) put3(off int, x, y, z int16) *Builder {
	for i, v := range [3]int16{x, y, z} {
		b.frame[off+i*2], b.frame[off+i*2+1] = byte(uint16(v)>>8), byte(v)
	}
	return b
}
