// Package frame decodes the binary sample stream of the serial IMU.
package frame

// The device emits fixed-size frames back to back over a raw 115200 8N1 link.
// Each frame is preceded by a sync marker of four 0xFF bytes and carries
// 34 bytes of payload:
//
//	offset  size  content
//	0       1     message id
//	3       2     sample timer (big-endian, unsigned)
//	9       6     gyro x/y/z (big-endian int16)
//	15      6     accel x/y/z
//	21      6     mag x/y/z
//	27      6     temperature x/y/z
//	33      1     checksum
//
// The checksum is the modulo-256 sum of payload bytes 0..32 plus the four
// sync bytes, which are not part of the payload and are added back as a
// constant bias.
//
// Producer: IMU firmware
// Consumer: this package, through a Decoder owning a single Source.
