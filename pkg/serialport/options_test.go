package serialport

import (
	"context"
	"testing"
	"time"

	jacobsa "github.com/jacobsa/go-serial/serial"
	"github.com/stretchr/testify/require"
	bugst "go.bug.st/serial"

	"github.com/robotalks/imu.go/pkg/frame"
)

func TestNormalize(t *testing.T) {
	testCases := []struct {
		name   string
		in     Options
		expect Options
		err    bool
	}{
		{
			name:   "defaults",
			in:     Options{Device: "/dev/ttyS0"},
			expect: Options{Device: "/dev/ttyS0", Driver: DriverJacobsa, BaudRate: 115200, DataBits: 8, StopBits: 1, MinimumReadSize: 1},
		},
		{
			name:   "jacobsa keeps a polling read with a timeout",
			in:     Options{Device: "/dev/ttyS0", ReadTimeout: 100 * time.Millisecond},
			expect: Options{Device: "/dev/ttyS0", Driver: DriverJacobsa, BaudRate: 115200, DataBits: 8, StopBits: 1, ReadTimeout: 100 * time.Millisecond},
		},
		{
			name:   "bugst gets a read timeout",
			in:     Options{Device: "/dev/ttyS0", Driver: " BUGST "},
			expect: Options{Device: "/dev/ttyS0", Driver: DriverBugst, BaudRate: 115200, DataBits: 8, StopBits: 1, ReadTimeout: 100 * time.Millisecond},
		},
		{
			name:   "sim needs no device",
			in:     Options{Driver: DriverSim, BaudRate: 9600},
			expect: Options{Driver: DriverSim, BaudRate: 9600, DataBits: 8, StopBits: 1},
		},
		{name: "unknown driver", in: Options{Device: "x", Driver: "usb"}, err: true},
		{name: "missing device", in: Options{}, err: true},
		{name: "bad data bits", in: Options{Device: "x", DataBits: 9}, err: true},
		{name: "bad stop bits", in: Options{Device: "x", StopBits: 3}, err: true},
		{name: "bad min read", in: Options{Device: "x", MinimumReadSize: 256}, err: true},
		{name: "bad timeout", in: Options{Device: "x", ReadTimeout: -time.Second}, err: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			opts, err := tc.in.Normalize()
			if tc.err {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expect, opts)
		})
	}
}

func TestOpenOptions(t *testing.T) {
	opts, err := Options{Device: "/dev/ttyUSB1", MinimumReadSize: 60, ReadTimeout: 100 * time.Millisecond}.OpenOptions()
	require.NoError(t, err)
	require.Equal(t, jacobsa.OpenOptions{
		PortName:              "/dev/ttyUSB1",
		BaudRate:              115200,
		DataBits:              8,
		StopBits:              1,
		ParityMode:            jacobsa.PARITY_NONE,
		MinimumReadSize:       60,
		InterCharacterTimeout: 100,
	}, opts)
}

func TestMode(t *testing.T) {
	mode, err := Options{Device: "/dev/ttyUSB1", StopBits: 2}.Mode()
	require.NoError(t, err)
	require.Equal(t, &bugst.Mode{
		BaudRate: 115200,
		DataBits: 8,
		Parity:   bugst.NoParity,
		StopBits: bugst.TwoStopBits,
	}, mode)

	_, err = Options{Device: "/dev/ttyUSB1", Driver: "nope"}.Mode()
	require.Error(t, err)
}

func TestOpenSim(t *testing.T) {
	port, err := (&Options{Driver: DriverSim}).Open()
	require.NoError(t, err)
	defer port.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s, err := frame.NewDecoder(port).Next(ctx)
	require.NoError(t, err)
	require.True(t, s.ChecksumValid)
	require.Equal(t, uint16(0), s.SampleTimer)
}
