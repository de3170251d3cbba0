package stream

import (
	"flag"
	"time"
)

// Config provides options for a Reader.
type Config struct {
	DropInvalid  bool
	FrameTimeout time.Duration
	ReopenDelay  time.Duration
}

var defaultConfig = Config{
	FrameTimeout: time.Second,
	ReopenDelay:  DefaultReopenDelay,
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.BoolVar(&defaultConfig.DropInvalid, "drop-invalid", defaultConfig.DropInvalid, "Drop samples failing the checksum.")
	flag.DurationVar(&defaultConfig.FrameTimeout, "frame-timeout", defaultConfig.FrameTimeout, "Maximum time to receive a frame, 0 waits forever.")
	flag.DurationVar(&defaultConfig.ReopenDelay, "reopen-delay", defaultConfig.ReopenDelay, "Delay before reopening a failed device, negative to exit instead.")
}

// Default gets the default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a Config with defaults.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// NewReader creates a Reader with the config.
func (c *Config) NewReader(device string, open OpenFunc) *Reader {
	r := NewReader(device, open)
	r.DropInvalid = c.DropInvalid
	r.FrameTimeout = c.FrameTimeout
	r.ReopenDelay = c.ReopenDelay
	return r
}
