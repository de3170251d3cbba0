package serialport

import (
	"fmt"
	"io"
	"log"

	"github.com/golang/glog"
	jacobsa "github.com/jacobsa/go-serial/serial"
	bugst "go.bug.st/serial"

	"github.com/robotalks/imu.go/pkg/frame"
	"github.com/robotalks/imu.go/pkg/sim"
)

// Port is an opened IMU device ready to be decoded.
type Port interface {
	frame.Source
	io.Closer
}

// Open opens the device described by the options.
func (o *Options) Open() (Port, error) {
	opts, err := o.Normalize()
	if err != nil {
		return nil, err
	}
	switch opts.Driver {
	case DriverSim:
		glog.Infof("opening simulated IMU")
		return frame.NewPump(sim.NewDevice(sim.DefaultConfig())), nil
	case DriverBugst:
		return openBugst(opts)
	default:
		return openJacobsa(opts)
	}
}

// MustOpen opens the device and fails on error.
func (o *Options) MustOpen() Port {
	port, err := o.Open()
	if err != nil {
		log.Fatalln(err)
	}
	return port
}

func openJacobsa(opts Options) (Port, error) {
	openOpts, err := opts.OpenOptions()
	if err != nil {
		return nil, err
	}
	rwc, err := jacobsa.Open(openOpts)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", opts.Device, err)
	}
	glog.Infof("IMU opened on %s at %d baud (jacobsa)", opts.Device, opts.BaudRate)
	return frame.NewPump(rwc), nil
}

func openBugst(opts Options) (Port, error) {
	mode, err := opts.Mode()
	if err != nil {
		return nil, err
	}
	port, err := bugst.Open(opts.Device, mode)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", opts.Device, err)
	}
	if err = port.SetReadTimeout(opts.ReadTimeout); err != nil {
		port.Close()
		return nil, fmt.Errorf("set read timeout on %s: %w", opts.Device, err)
	}
	if err = port.SetRTS(true); err != nil {
		glog.Warningf("%s: unable to assert RTS: %v", opts.Device, err)
	}
	glog.Infof("IMU opened on %s at %d baud (bugst)", opts.Device, opts.BaudRate)
	return frame.NewTimeoutSource(port), nil
}
