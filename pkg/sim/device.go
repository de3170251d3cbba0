package sim

import (
	"io"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/robotalks/imu.go/pkg/frame"
)

// Config defines the behavior of a simulated IMU.
type Config struct {
	// Interval between frames, zero emits as fast as the reader consumes.
	Interval time.Duration
	// MessageID is stamped on every frame.
	MessageID byte
	// NoiseEvery inserts a random noise burst before every Nth frame.
	NoiseEvery int
	// CorruptEvery flips the checksum of every Nth frame.
	CorruptEvery int
	// Seed seeds the noise generator.
	Seed int64
}

// DefaultConfig emits 100 frames per second without noise.
func DefaultConfig() Config {
	return Config{Interval: 10 * time.Millisecond, MessageID: 0x31}
}

// Frame builds the wire bytes of the nth frame, sync marker included.
// The readings follow slow sine waves so successive samples differ.
func (c Config) Frame(n int) []byte {
	phase := float64(n) / 50
	wave := func(amp float64, shift float64) int16 {
		return int16(amp * math.Sin(phase+shift))
	}
	wire := frame.NewBuilder().
		MessageID(c.MessageID).
		Timer(uint16(n)).
		Gyro(wave(2000, 0), wave(2000, 1), wave(2000, 2)).
		Accel(wave(300, 0.5), wave(300, 1.5), 10923).
		Mag(wave(8000, 0.2), wave(8000, 1.2), wave(8000, 2.2)).
		Temp(wave(50, 0), wave(50, 0), wave(50, 0)).
		Bytes()
	if c.CorruptEvery > 0 && n%c.CorruptEvery == c.CorruptEvery-1 {
		wire[len(wire)-1] ^= 0x5a
	}
	return wire
}

// Device is a simulated IMU exposing its serial output as an io.ReadCloser.
type Device struct {
	config Config
	reader *io.PipeReader
	writer *io.PipeWriter

	closeOnce sync.Once
	stopCh    chan struct{}
}

// NewDevice creates and starts a simulated device.
func NewDevice(config Config) *Device {
	d := &Device{config: config, stopCh: make(chan struct{})}
	d.reader, d.writer = io.Pipe()
	go d.run()
	return d
}

// Read implements io.Reader.
func (d *Device) Read(p []byte) (int, error) {
	return d.reader.Read(p)
}

// Close implements io.Closer.
func (d *Device) Close() error {
	d.closeOnce.Do(func() {
		close(d.stopCh)
		d.reader.Close()
	})
	return nil
}

func (d *Device) run() {
	defer d.writer.Close()
	rnd := rand.New(rand.NewSource(d.config.Seed))
	var tick <-chan time.Time
	if d.config.Interval > 0 {
		ticker := time.NewTicker(d.config.Interval)
		defer ticker.Stop()
		tick = ticker.C
	}
	for n := 0; ; n++ {
		if tick != nil {
			select {
			case <-d.stopCh:
				return
			case <-tick:
			}
		}
		if d.config.NoiseEvery > 0 && n%d.config.NoiseEvery == d.config.NoiseEvery-1 {
			noise := make([]byte, 1+rnd.Intn(8))
			for i := range noise {
				// never a sync byte so the burst can not fake a marker.
				noise[i] = byte(rnd.Intn(int(frame.SyncByte)))
			}
			if _, err := d.writer.Write(noise); err != nil {
				return
			}
		}
		if _, err := d.writer.Write(d.config.Frame(n)); err != nil {
			return
		}
	}
}
