package frame

import (
	"context"
	"time"

	"github.com/golang/glog"
)

// Observer receives non-fatal conditions found while decoding.
type Observer interface {
	// SyncNoise is called when more than SyncLen bytes were consumed to
	// find a sync marker.
	SyncNoise(consumed int)
	// ChecksumMismatch is called for every frame failing the checksum.
	ChecksumMismatch(RawFrame)
}

// Decoder runs sync, assembly, validation and decoding over a Source,
// one frame at a time.
type Decoder struct {
	Source   Source
	Observer Observer
	// FrameTimeout bounds a whole frame attempt when positive.
	FrameTimeout time.Duration

	scanner Scanner
}

// NewDecoder creates a Decoder reading from src.
func NewDecoder(src Source) *Decoder {
	return &Decoder{Source: src}
}

// Next blocks until the next frame is decoded.
// A failed checksum is reported through Sample.ChecksumValid, not as an
// error. Errors are either the context error or a *SourceError.
func (d *Decoder) Next(ctx context.Context) (Sample, error) {
	if d.FrameTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.FrameTimeout)
		defer cancel()
	}

	consumed, err := d.scanner.Scan(ctx, d.Source)
	if err != nil {
		return Sample{}, sourceError("sync", err)
	}
	if d.scanner.Noisy() {
		glog.V(2).Infof("imu sync took %d bytes", consumed)
		if o := d.Observer; o != nil {
			o.SyncNoise(consumed)
		}
	}

	raw, err := Assemble(ctx, d.Source)
	if err != nil {
		return Sample{}, sourceError("frame", err)
	}

	s := Decode(raw)
	s.SyncBytes = consumed
	if !s.ChecksumValid {
		glog.Warningf("imu checksum mismatch: got %#02x, expect %#02x", raw[ChecksumIndex], raw.Checksum())
		if o := d.Observer; o != nil {
			o.ChecksumMismatch(raw)
		}
	}
	return s, nil
}
