// Package msgs defines how decoded samples travel beyond the device link.
package msgs

// Samples are published as a single protobuf message or its JSON
// equivalent, chosen by Format. Field numbers are stable:
//
//	1  message_id      varint
//	2  sample_timer    varint
//	3  gyro_x ... 5    double (rad/s)
//	6  accel_x ... 8   double (g)
//	9  mag_x ... 11    double
//	12 temp_x ... 14   double (°C)
//	15 checksum_valid  bool
//	16 device          string
//	17 sync_bytes      varint
//
// Producer: imud
// Consumer: imumon, websocket clients and any MQTT subscriber
