package sh

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/imu.go/pkg/frame"
	"github.com/robotalks/imu.go/pkg/msgs"
	"github.com/robotalks/imu.go/pkg/serialport"
	"github.com/robotalks/imu.go/pkg/stream"
)

// Shell provides ishell backed interactive shell over an IMU.
type Shell struct {
	Interactive bool
	OutputJSON  bool
	AutoOpen    bool
	// SampleTimeout bounds the wait for each sample in read.
	SampleTimeout time.Duration

	Shell   *ishell.Shell
	Options *serialport.Options
	Conn    *Conn
}

// Conn is an opened device.
type Conn struct {
	Device string
	Port   serialport.Port
	Reader *stream.Reader
}

const (
	shellKey       = "$shell"
	closedPrompt   = "[none] > "
	defaultTimeout = 2 * time.Second
)

var (
	// flags

	evalOnly   bool
	outputJSON bool

	// commands
	commands = []*ishell.Cmd{
		&OpenCmd,
		&CloseCmd,
		&ReadCmd,
		&StatsCmd,
		&LastCmd,
	}

	errNotOpened = fmt.Errorf("device not opened")
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
	flag.BoolVar(&outputJSON, "json", outputJSON, "Print output in JSON.")
}

// AddCmds is used by other commands providers during init func.
func AddCmds(cmds ...*ishell.Cmd) {
	commands = append(commands, cmds...)
}

// New creates a new shell.
func New(opts *serialport.Options) *Shell {
	s := &Shell{
		Interactive:   !evalOnly,
		OutputJSON:    outputJSON,
		SampleTimeout: defaultTimeout,

		Shell:   ishell.New(),
		Options: opts,
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt(closedPrompt)
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// MustBeOpened wraps command func requires an opened device.
func MustBeOpened(fn func(c *ishell.Context)) func(c *ishell.Context) {
	return func(c *ishell.Context) {
		if ShellFrom(c).Conn == nil {
			c.Err(errNotOpened)
			return
		}
		fn(c)
	}
}

// WithAutoOpen sets AutoOpen.
func (s *Shell) WithAutoOpen(en bool) *Shell {
	s.AutoOpen = en
	return s
}

// Open opens device, or the configured one when device is empty.
// The current device is closed first.
func (s *Shell) Open(device string) error {
	opts := *s.Options
	if device != "" {
		opts.Device = device
	}
	port, err := opts.Open()
	if err != nil {
		return err
	}
	s.Close()
	name := opts.Device
	if opts.Driver == serialport.DriverSim {
		name = serialport.DriverSim
	}
	s.Conn = &Conn{
		Device: name,
		Port:   port,
		Reader: stream.NewReader(name, nil),
	}
	s.setPrompt(name + " > ")
	return nil
}

// Close closes the current device.
func (s *Shell) Close() {
	if s.Conn != nil {
		s.Conn.Port.Close()
		s.Conn = nil
		s.setPrompt(closedPrompt)
	}
}

func (s *Shell) setPrompt(prompt string) {
	if s.Shell != nil {
		s.Shell.SetPrompt(prompt)
	}
}

// Read decodes n samples from the opened device, calling fn on each.
func (s *Shell) Read(ctx context.Context, n int, fn func(frame.Sample) error) error {
	if s.Conn == nil {
		return errNotOpened
	}
	timeout := s.SampleTimeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	for i := 0; i < n; i++ {
		readCtx, cancel := context.WithTimeout(ctx, timeout)
		sample, err := s.Conn.Reader.ReadOne(readCtx, s.Conn.Port)
		cancel()
		if err != nil {
			return err
		}
		if err = fn(sample); err != nil {
			return err
		}
	}
	return nil
}

// FormatSample renders a sample for display.
func (s *Shell) FormatSample(sample frame.Sample) (string, error) {
	if !s.OutputJSON {
		return sample.String(), nil
	}
	device := ""
	if s.Conn != nil {
		device = s.Conn.Device
	}
	out, err := msgs.FormatJSON.Encode(device, sample)
	return string(out), err
}

// Last renders the last decoded sample, ok is false when there is none.
func (s *Shell) Last() (out string, ok bool, err error) {
	if s.Conn == nil {
		return "", false, errNotOpened
	}
	sample, ok := s.Conn.Reader.Latest()
	if !ok {
		return "", false, nil
	}
	out, err = s.FormatSample(sample)
	return out, err == nil, err
}

// FormatStats renders reader stats for display.
func (s *Shell) FormatStats(stats stream.Snapshot) (string, error) {
	if s.OutputJSON {
		out, err := json.Marshal(stats)
		return string(out), err
	}
	return fmt.Sprintf("frames=%d checksum-failures=%d sync-noise=%d noise-bytes=%d source-failures=%d",
		stats.Frames, stats.ChecksumFailures, stats.SyncNoise, stats.NoiseBytes, stats.SourceFailures), nil
}

// Run runs the shell.
func (s *Shell) Run(args ...string) {
	if s.AutoOpen {
		if s.Interactive {
			s.Shell.Printf("Opening %s ...\n", s.Options.Device)
		}
		if err := s.Open(""); err != nil {
			log.Fatalf("open %q failed: %v", s.Options.Device, err)
		}
	}
	defer s.Close()

	if len(args) > 0 {
		if err := s.Shell.Process(args...); err != nil {
			log.Fatalln(err)
		}
		return
	}
	if s.Interactive {
		s.Shell.Run()
		return
	}
	log.Fatalln("command expected")
}

func printSample(c *ishell.Context, s *Shell) func(frame.Sample) error {
	return func(sample frame.Sample) error {
		out, err := s.FormatSample(sample)
		if err != nil {
			return err
		}
		c.Println(out)
		return nil
	}
}

var (
	// OpenCmd opens a device.
	OpenCmd = ishell.Cmd{
		Name:    "open",
		Aliases: []string{"o"},
		Help:    "[DEVICE]",
		Func: func(c *ishell.Context) {
			var device string
			if len(c.Args) > 0 {
				device = c.Args[0]
			}
			if err := ShellFrom(c).Open(device); err != nil {
				c.Err(err)
			}
		},
	}

	// CloseCmd closes current device.
	CloseCmd = ishell.Cmd{
		Name:    "close",
		Aliases: []string{"c"},
		Help:    "",
		Func: func(c *ishell.Context) {
			ShellFrom(c).Close()
		},
	}

	// ReadCmd reads samples.
	ReadCmd = ishell.Cmd{
		Name:    "read",
		Aliases: []string{"r"},
		Help:    "[N]",
		Func: MustBeOpened(func(c *ishell.Context) {
			n := 1
			if len(c.Args) > 0 {
				val, err := strconv.Atoi(c.Args[0])
				if err != nil || val <= 0 {
					c.Err(fmt.Errorf("invalid count %q", c.Args[0]))
					return
				}
				n = val
			}
			s := ShellFrom(c)
			if err := s.Read(context.Background(), n, printSample(c, s)); err != nil {
				c.Err(err)
			}
		}),
	}

	// StatsCmd prints decoding counters.
	StatsCmd = ishell.Cmd{
		Name: "stats",
		Help: "",
		Func: MustBeOpened(func(c *ishell.Context) {
			s := ShellFrom(c)
			out, err := s.FormatStats(s.Conn.Reader.Stats())
			if err != nil {
				c.Err(err)
				return
			}
			c.Println(out)
		}),
	}

	// LastCmd prints the last decoded sample.
	LastCmd = ishell.Cmd{
		Name: "last",
		Help: "",
		Func: MustBeOpened(func(c *ishell.Context) {
			out, ok, err := ShellFrom(c).Last()
			if err != nil {
				c.Err(err)
				return
			}
			if !ok {
				c.Println("No samples")
				return
			}
			c.Println(out)
		}),
	}
)

// Main is a helper to provide a single call in main.
func Main() {
	serialport.SetupFlags()
	flag.Parse()
	New(serialport.NewOptions()).WithAutoOpen(true).Run(flag.Args()...)
}
