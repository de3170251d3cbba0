package msgs

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/golang/protobuf/proto"

	"github.com/robotalks/imu.go/pkg/frame"
)

// Format selects the payload encoding.
type Format string

// Supported formats.
const (
	FormatProto Format = "proto"
	FormatJSON  Format = "json"
)

// ErrUnknownFormat indicates an unsupported Format.
type ErrUnknownFormat struct {
	Format Format
}

// Error implements error.
func (e *ErrUnknownFormat) Error() string {
	return fmt.Sprintf("unknown format: %q", string(e.Format))
}

// ParseFormat parses a format name, case insensitive.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	switch f {
	case FormatProto, FormatJSON:
		return f, nil
	}
	return f, &ErrUnknownFormat{Format: Format(name)}
}

// Encode encodes a sample from device.
func (f Format) Encode(device string, s frame.Sample) ([]byte, error) {
	msg := NewSample(device, s)
	switch f {
	case FormatProto:
		return proto.Marshal(msg)
	case FormatJSON:
		return json.Marshal(msg)
	}
	return nil, &ErrUnknownFormat{Format: f}
}

// Decode decodes a payload into the wire message.
func (f Format) Decode(data []byte) (*Sample, error) {
	var msg Sample
	var err error
	switch f {
	case FormatProto:
		err = proto.Unmarshal(data, &msg)
	case FormatJSON:
		err = json.Unmarshal(data, &msg)
	default:
		return nil, &ErrUnknownFormat{Format: f}
	}
	if err != nil {
		return nil, err
	}
	return &msg, nil
}
