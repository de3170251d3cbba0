package msgs

import (
	"encoding/json"
	"testing"

	"github.com/golang/protobuf/proto"
	"github.com/stretchr/testify/require"

	"github.com/robotalks/imu.go/pkg/frame"
)

func testSample() frame.Sample {
	s := frame.Decode(frame.NewBuilder().
		MessageID(3).
		Timer(258).
		Gyro(0x1000, -5, 7).
		Accel(100, 200, -300).
		Mag(1, 2, 3).
		Temp(0, 10, -10).
		Frame())
	s.SyncBytes = 9
	return s
}

func TestFormatRoundTrip(t *testing.T) {
	for _, format := range []Format{FormatProto, FormatJSON} {
		t.Run(string(format), func(t *testing.T) {
			data, err := format.Encode("left", testSample())
			require.NoError(t, err)
			msg, err := format.Decode(data)
			require.NoError(t, err)
			require.Equal(t, "left", msg.Device)
			require.Equal(t, testSample(), msg.Frame())
		})
	}
}

func TestProtoWireLayout(t *testing.T) {
	data, err := proto.Marshal(&Sample{MessageId: 1, SampleTimer: 258, ChecksumValid: true, Device: "a"})
	require.NoError(t, err)
	require.Equal(t, []byte{
		0x08, 0x01,
		0x10, 0x82, 0x02,
		0x78, 0x01,
		0x82, 0x01, 0x01, 'a',
	}, data)

	// field 99, varint, must be skipped.
	data = append(data, 0x98, 0x06, 0x2a)
	msg, err := FormatProto.Decode(data)
	require.NoError(t, err)
	require.Equal(t, uint32(258), msg.SampleTimer)
	require.Equal(t, "a", msg.Device)
}

func TestJSONKeys(t *testing.T) {
	data, err := FormatJSON.Encode("", frame.Sample{SampleTimer: 1, TempX: 25})
	require.NoError(t, err)
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &m))
	require.Equal(t, 1.0, m["sample_timer"])
	require.Equal(t, 25.0, m["temp_x"])
	require.Equal(t, false, m["checksum_valid"])
	require.NotContains(t, m, "device")
	require.NotContains(t, m, "sync_bytes")
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" JSON")
	require.NoError(t, err)
	require.Equal(t, FormatJSON, f)
	_, err = ParseFormat("xml")
	require.Error(t, err)
	_, err = Format("xml").Encode("", frame.Sample{})
	require.IsType(t, &ErrUnknownFormat{}, err)
	_, err = Format("xml").Decode(nil)
	require.IsType(t, &ErrUnknownFormat{}, err)
}
