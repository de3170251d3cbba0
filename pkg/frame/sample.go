package frame

import "fmt"

// Sample is one decoded frame in physical units.
// When ChecksumValid is false the values are still decoded but untrusted.
type Sample struct {
	MessageID   uint8  `json:"message_id"`
	SampleTimer uint16 `json:"sample_timer"`

	GyroX float64 `json:"gyro_x"` // rad/s
	GyroY float64 `json:"gyro_y"`
	GyroZ float64 `json:"gyro_z"`

	AccelX float64 `json:"accel_x"` // g
	AccelY float64 `json:"accel_y"`
	AccelZ float64 `json:"accel_z"`

	MagX float64 `json:"mag_x"`
	MagY float64 `json:"mag_y"`
	MagZ float64 `json:"mag_z"`

	TempX float64 `json:"temp_x"` // °C
	TempY float64 `json:"temp_y"`
	TempZ float64 `json:"temp_z"`

	ChecksumValid bool `json:"checksum_valid"`

	// SyncBytes is the number of bytes consumed to find the sync marker
	// preceding this frame, zero when decoded directly from a RawFrame.
	SyncBytes int `json:"sync_bytes,omitempty"`
}

// String formats the sample for display.
func (s Sample) String() string {
	valid := "ok"
	if !s.ChecksumValid {
		valid = "BAD"
	}
	return fmt.Sprintf("id=%d t=%d gyro=[%.4f %.4f %.4f] accel=[%.4f %.4f %.4f] mag=[%.4f %.4f %.4f] temp=[%.2f %.2f %.2f] checksum=%s",
		s.MessageID, s.SampleTimer,
		s.GyroX, s.GyroY, s.GyroZ,
		s.AccelX, s.AccelY, s.AccelZ,
		s.MagX, s.MagY, s.MagZ,
		s.TempX, s.TempY, s.TempZ,
		valid)
}
