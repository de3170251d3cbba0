package stream

import (
	"sync/atomic"

	"github.com/robotalks/imu.go/pkg/frame"
)

// Stats counts what a Reader has seen. It implements frame.Observer.
// A Stats embedded in a struct must be 8-byte aligned on 32-bit platforms,
// e.g. placed as the first field.
type Stats struct {
	frames           uint64
	checksumFailures uint64
	syncNoise        uint64
	noiseBytes       uint64
	sourceFailures   uint64
}

// Snapshot is a point-in-time copy of Stats.
type Snapshot struct {
	Frames           uint64 `json:"frames"`
	ChecksumFailures uint64 `json:"checksum_failures"`
	SyncNoise        uint64 `json:"sync_noise"`
	NoiseBytes       uint64 `json:"noise_bytes"`
	SourceFailures   uint64 `json:"source_failures"`
}

// SyncNoise implements frame.Observer.
func (s *Stats) SyncNoise(consumed int) {
	atomic.AddUint64(&s.syncNoise, 1)
	atomic.AddUint64(&s.noiseBytes, uint64(consumed-frame.SyncLen))
}

// ChecksumMismatch implements frame.Observer.
func (s *Stats) ChecksumMismatch(frame.RawFrame) {
	atomic.AddUint64(&s.checksumFailures, 1)
}

func (s *Stats) frameDecoded() {
	atomic.AddUint64(&s.frames, 1)
}

func (s *Stats) sourceFailed() {
	atomic.AddUint64(&s.sourceFailures, 1)
}

// Snapshot reads all counters.
func (s *Stats) Snapshot() Snapshot {
	return Snapshot{
		Frames:           atomic.LoadUint64(&s.frames),
		ChecksumFailures: atomic.LoadUint64(&s.checksumFailures),
		SyncNoise:        atomic.LoadUint64(&s.syncNoise),
		NoiseBytes:       atomic.LoadUint64(&s.noiseBytes),
		SourceFailures:   atomic.LoadUint64(&s.sourceFailures),
	}
}
