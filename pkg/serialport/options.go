package serialport

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	jacobsa "github.com/jacobsa/go-serial/serial"
	bugst "go.bug.st/serial"
)

// Supported drivers.
const (
	// DriverJacobsa opens the port with github.com/jacobsa/go-serial.
	// Reads block, so the port is driven by a frame.Pump.
	DriverJacobsa = "jacobsa"
	// DriverBugst opens the port with go.bug.st/serial using a read
	// timeout and asserts RTS after opening.
	DriverBugst = "bugst"
	// DriverSim runs the in-process simulated IMU, Device is ignored.
	DriverSim = "sim"
)

// Options describes how to open the IMU device.
type Options struct {
	Device          string
	Driver          string
	BaudRate        int
	DataBits        int
	StopBits        int
	MinimumReadSize int
	// ReadTimeout is the inter-character timeout (jacobsa) or the read
	// timeout (bugst).
	ReadTimeout time.Duration
}

var defaultOptions = Options{
	Device:          "/dev/ttyUSB0",
	Driver:          DriverJacobsa,
	BaudRate:        115200,
	DataBits:        8,
	StopBits:        1,
	MinimumReadSize: 1,
	ReadTimeout:     100 * time.Millisecond,
}

func init() {
	if val := os.Getenv("IMU_DEVICE"); val != "" {
		defaultOptions.Device = val
	}
	if val := os.Getenv("IMU_DRIVER"); val != "" {
		defaultOptions.Driver = val
	}
	if val := os.Getenv("IMU_BAUD"); val != "" {
		if baud, err := strconv.Atoi(val); err == nil {
			defaultOptions.BaudRate = baud
		}
	}
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultOptions.Device, "device", defaultOptions.Device, "IMU serial device.")
	flag.StringVar(&defaultOptions.Driver, "driver", defaultOptions.Driver, "Serial driver: jacobsa, bugst or sim.")
	flag.IntVar(&defaultOptions.BaudRate, "baud", defaultOptions.BaudRate, "Baud rate.")
	flag.IntVar(&defaultOptions.MinimumReadSize, "min-read", defaultOptions.MinimumReadSize, "Minimum read size hint.")
	flag.DurationVar(&defaultOptions.ReadTimeout, "read-timeout", defaultOptions.ReadTimeout, "Serial read timeout.")
}

// Default gets the default options.
func Default() *Options {
	return &defaultOptions
}

// NewOptions creates Options with defaults.
func NewOptions() *Options {
	opts := defaultOptions
	return &opts
}

// Normalize validates the options and applies defaults for unset values.
func (o Options) Normalize() (Options, error) {
	opts := o
	opts.Driver = strings.ToLower(strings.TrimSpace(opts.Driver))
	if opts.Driver == "" {
		opts.Driver = DriverJacobsa
	}
	switch opts.Driver {
	case DriverJacobsa, DriverBugst, DriverSim:
	default:
		return opts, fmt.Errorf("unknown serial driver %q", o.Driver)
	}
	if opts.Driver != DriverSim && opts.Device == "" {
		return opts, fmt.Errorf("serial device required")
	}
	if opts.BaudRate <= 0 {
		opts.BaudRate = 115200
	}
	if opts.DataBits == 0 {
		opts.DataBits = 8
	}
	if opts.DataBits < 5 || opts.DataBits > 8 {
		return opts, fmt.Errorf("invalid data bits %d: must be between 5 and 8", opts.DataBits)
	}
	if opts.StopBits == 0 {
		opts.StopBits = 1
	}
	if opts.StopBits != 1 && opts.StopBits != 2 {
		return opts, fmt.Errorf("invalid stop bits %d: supported values are 1 or 2", opts.StopBits)
	}
	if opts.MinimumReadSize < 0 || opts.MinimumReadSize > 255 {
		return opts, fmt.Errorf("invalid minimum read size %d", opts.MinimumReadSize)
	}
	if opts.ReadTimeout < 0 {
		return opts, fmt.Errorf("invalid read timeout %v", opts.ReadTimeout)
	}
	// jacobsa with VMIN=0 and VTIME=0 returns immediately with no data.
	if opts.Driver == DriverJacobsa && opts.MinimumReadSize == 0 && opts.ReadTimeout == 0 {
		opts.MinimumReadSize = 1
	}
	if opts.ReadTimeout == 0 && opts.Driver == DriverBugst {
		opts.ReadTimeout = defaultOptions.ReadTimeout
	}
	return opts, nil
}

// OpenOptions converts to github.com/jacobsa/go-serial options.
// Hardware flow control is always disabled.
func (o Options) OpenOptions() (jacobsa.OpenOptions, error) {
	opts, err := o.Normalize()
	if err != nil {
		return jacobsa.OpenOptions{}, err
	}
	return jacobsa.OpenOptions{
		PortName:              opts.Device,
		BaudRate:              uint(opts.BaudRate),
		DataBits:              uint(opts.DataBits),
		StopBits:              uint(opts.StopBits),
		ParityMode:            jacobsa.PARITY_NONE,
		RTSCTSFlowControl:     false,
		MinimumReadSize:       uint(opts.MinimumReadSize),
		InterCharacterTimeout: uint(opts.ReadTimeout / time.Millisecond),
	}, nil
}

// Mode converts to go.bug.st/serial mode.
func (o Options) Mode() (*bugst.Mode, error) {
	opts, err := o.Normalize()
	if err != nil {
		return nil, err
	}
	mode := &bugst.Mode{
		BaudRate: opts.BaudRate,
		DataBits: opts.DataBits,
		Parity:   bugst.NoParity,
		StopBits: bugst.OneStopBit,
	}
	if opts.StopBits == 2 {
		mode.StopBits = bugst.TwoStopBits
	}
	return mode, nil
}
