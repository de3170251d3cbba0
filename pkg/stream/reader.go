package stream

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/imu.go/pkg/frame"
)

// OpenFunc opens the byte source of a Reader.
type OpenFunc func() (frame.Source, error)

// Reader owns one IMU source and delivers decoded samples to handlers
// in the order their frames arrived.
type Reader struct {
	// stats must stay the first field: its 64-bit atomics need 8-byte
	// alignment on 32-bit platforms.
	stats Stats

	Device   string
	Open     OpenFunc
	Handlers []SampleHandler
	// DropInvalid discards samples failing the checksum.
	DropInvalid bool
	// FrameTimeout bounds each frame attempt, see frame.Decoder.
	FrameTimeout time.Duration
	// ReopenDelay is the pause before reopening the source after a
	// failure. Negative disables reopening and Run returns the failure.
	ReopenDelay time.Duration

	latest frame.Sample
	seen   bool
	lock   sync.RWMutex
}

// DefaultReopenDelay is the default ReopenDelay.
const DefaultReopenDelay = time.Second

// NewReader creates a Reader.
func NewReader(device string, open OpenFunc) *Reader {
	return &Reader{Device: device, Open: open, ReopenDelay: DefaultReopenDelay}
}

// AddHandlers appends handlers.
func (r *Reader) AddHandlers(handlers ...SampleHandler) *Reader {
	r.Handlers = append(r.Handlers, handlers...)
	return r
}

// Name implements framework.Named.
func (r *Reader) Name() string {
	return r.Device
}

// Stats returns counters collected so far.
func (r *Reader) Stats() Snapshot {
	return r.stats.Snapshot()
}

// Latest returns the last delivered sample.
func (r *Reader) Latest() (frame.Sample, bool) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return r.latest, r.seen
}

// Run implements Runnable. It returns when ctx is done, when a handler
// fails, or when the source fails and reopening is disabled.
func (r *Reader) Run(ctx context.Context) error {
	for {
		err := r.runOnce(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !isDeviceFailure(err) {
			return err
		}
		r.stats.sourceFailed()
		if r.ReopenDelay < 0 {
			return err
		}
		glog.Warningf("%s: %v, reopen in %v", r.Device, err, r.ReopenDelay)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.ReopenDelay):
		}
	}
}

func (r *Reader) runOnce(ctx context.Context) error {
	src, err := r.Open()
	if err != nil {
		return &frame.SourceError{Op: "open", Err: err}
	}
	if closer, ok := src.(io.Closer); ok {
		defer closer.Close()
	}
	return r.decodeFrom(ctx, src)
}

// isDeviceFailure tells source failures and stalled frames, which are
// worth a reopen, from handler errors.
func isDeviceFailure(err error) bool {
	var srcErr *frame.SourceError
	return errors.As(err, &srcErr) || err == context.DeadlineExceeded
}

// ReadOne decodes a single sample from src without invoking handlers.
func (r *Reader) ReadOne(ctx context.Context, src frame.Source) (frame.Sample, error) {
	s, err := r.decoder(src).Next(ctx)
	if err == nil {
		r.record(s)
	}
	return s, err
}

func (r *Reader) decoder(src frame.Source) *frame.Decoder {
	dec := frame.NewDecoder(src)
	dec.Observer = &r.stats
	dec.FrameTimeout = r.FrameTimeout
	return dec
}

func (r *Reader) record(s frame.Sample) {
	r.stats.frameDecoded()
	r.lock.Lock()
	r.latest, r.seen = s, true
	r.lock.Unlock()
}

func (r *Reader) decodeFrom(ctx context.Context, src frame.Source) error {
	dec := r.decoder(src)
	for {
		s, err := dec.Next(ctx)
		if err != nil {
			return err
		}
		r.record(s)
		if !s.ChecksumValid && r.DropInvalid {
			continue
		}
		if glog.V(4) {
			glog.Infof("%s: %s", r.Device, s)
		}
		for _, h := range r.Handlers {
			if err = h.HandleSample(ctx, s); err != nil {
				return err
			}
		}
	}
}
