package msgs

import (
	"github.com/golang/protobuf/proto"

	"github.com/robotalks/imu.go/pkg/frame"
)

// Sample is the wire message carrying one decoded sample.
type Sample struct {
	MessageId     uint32  `protobuf:"varint,1,opt,name=message_id,json=messageId,proto3" json:"message_id"`
	SampleTimer   uint32  `protobuf:"varint,2,opt,name=sample_timer,json=sampleTimer,proto3" json:"sample_timer"`
	GyroX         float64 `protobuf:"fixed64,3,opt,name=gyro_x,json=gyroX,proto3" json:"gyro_x"`
	GyroY         float64 `protobuf:"fixed64,4,opt,name=gyro_y,json=gyroY,proto3" json:"gyro_y"`
	GyroZ         float64 `protobuf:"fixed64,5,opt,name=gyro_z,json=gyroZ,proto3" json:"gyro_z"`
	AccelX        float64 `protobuf:"fixed64,6,opt,name=accel_x,json=accelX,proto3" json:"accel_x"`
	AccelY        float64 `protobuf:"fixed64,7,opt,name=accel_y,json=accelY,proto3" json:"accel_y"`
	AccelZ        float64 `protobuf:"fixed64,8,opt,name=accel_z,json=accelZ,proto3" json:"accel_z"`
	MagX          float64 `protobuf:"fixed64,9,opt,name=mag_x,json=magX,proto3" json:"mag_x"`
	MagY          float64 `protobuf:"fixed64,10,opt,name=mag_y,json=magY,proto3" json:"mag_y"`
	MagZ          float64 `protobuf:"fixed64,11,opt,name=mag_z,json=magZ,proto3" json:"mag_z"`
	TempX         float64 `protobuf:"fixed64,12,opt,name=temp_x,json=tempX,proto3" json:"temp_x"`
	TempY         float64 `protobuf:"fixed64,13,opt,name=temp_y,json=tempY,proto3" json:"temp_y"`
	TempZ         float64 `protobuf:"fixed64,14,opt,name=temp_z,json=tempZ,proto3" json:"temp_z"`
	ChecksumValid bool    `protobuf:"varint,15,opt,name=checksum_valid,json=checksumValid,proto3" json:"checksum_valid"`
	Device        string  `protobuf:"bytes,16,opt,name=device,proto3" json:"device,omitempty"`
	SyncBytes     uint32  `protobuf:"varint,17,opt,name=sync_bytes,json=syncBytes,proto3" json:"sync_bytes,omitempty"`
}

// Reset implements proto.Message.
func (m *Sample) Reset() { *m = Sample{} }

// String implements proto.Message.
func (m *Sample) String() string { return proto.CompactTextString(m) }

// ProtoMessage implements proto.Message.
func (*Sample) ProtoMessage() {}

// NewSample creates the wire message of a sample from device.
func NewSample(device string, s frame.Sample) *Sample {
	return &Sample{
		MessageId:     uint32(s.MessageID),
		SampleTimer:   uint32(s.SampleTimer),
		GyroX:         s.GyroX,
		GyroY:         s.GyroY,
		GyroZ:         s.GyroZ,
		AccelX:        s.AccelX,
		AccelY:        s.AccelY,
		AccelZ:        s.AccelZ,
		MagX:          s.MagX,
		MagY:          s.MagY,
		MagZ:          s.MagZ,
		TempX:         s.TempX,
		TempY:         s.TempY,
		TempZ:         s.TempZ,
		ChecksumValid: s.ChecksumValid,
		Device:        device,
		SyncBytes:     uint32(s.SyncBytes),
	}
}

// Frame converts the message back into a frame.Sample.
func (m *Sample) Frame() frame.Sample {
	return frame.Sample{
		MessageID:     uint8(m.MessageId),
		SampleTimer:   uint16(m.SampleTimer),
		GyroX:         m.GyroX,
		GyroY:         m.GyroY,
		GyroZ:         m.GyroZ,
		AccelX:        m.AccelX,
		AccelY:        m.AccelY,
		AccelZ:        m.AccelZ,
		MagX:          m.MagX,
		MagY:          m.MagY,
		MagZ:          m.MagZ,
		TempX:         m.TempX,
		TempY:         m.TempY,
		TempZ:         m.TempZ,
		ChecksumValid: m.ChecksumValid,
		SyncBytes:     int(m.SyncBytes),
	}
}
