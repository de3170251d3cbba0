package frame

import (
	"context"
	"io"
	"os"
	"sync"
)

// Source is a byte source whose reads can be abandoned through a context.
// It may return fewer bytes than requested, including zero.
// A Source is owned by a single Decoder and must not be read concurrently.
type Source interface {
	ReadContext(ctx context.Context, p []byte) (int, error)
}

// SourceFunc is func type of Source.
type SourceFunc func(context.Context, []byte) (int, error)

// ReadContext implements Source.
func (f SourceFunc) ReadContext(ctx context.Context, p []byte) (int, error) {
	return f(ctx, p)
}

// DefaultChunkSize is the read size used by Pump.
const DefaultChunkSize = 64

// Pump adapts a blocking io.Reader into a Source.
// A background goroutine keeps reading from the reader, so a canceled
// ReadContext returns immediately while the device read stays pending.
// Bytes received after a cancellation are kept and served to the next call.
type Pump struct {
	Reader    io.Reader
	ChunkSize int

	startOnce sync.Once
	stopOnce  sync.Once
	dataCh    chan []byte
	errCh     chan error
	stopCh    chan struct{}

	pending []byte
	err     error
}

// NewPump creates a Pump over r.
func NewPump(r io.Reader) *Pump {
	return &Pump{Reader: r, ChunkSize: DefaultChunkSize}
}

// ReadContext implements Source.
func (p *Pump) ReadContext(ctx context.Context, b []byte) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	p.startOnce.Do(p.start)
	if len(p.pending) == 0 {
		if p.err != nil {
			return 0, p.err
		}
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-p.stopCh:
			return 0, ErrClosed
		case chunk := <-p.dataCh:
			p.pending = chunk
		case err := <-p.errCh:
			p.err = err
			return 0, err
		}
	}
	n := copy(b, p.pending)
	p.pending = p.pending[n:]
	return n, nil
}

// Close stops the pump and closes the reader if it is an io.Closer.
// Closing the reader is what unblocks a pending device read.
func (p *Pump) Close() error {
	p.startOnce.Do(p.init)
	p.stopOnce.Do(func() { close(p.stopCh) })
	if closer, ok := p.Reader.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func (p *Pump) init() {
	p.dataCh = make(chan []byte)
	p.errCh = make(chan error, 1)
	p.stopCh = make(chan struct{})
}

func (p *Pump) start() {
	p.init()
	go p.readLoop()
}

func (p *Pump) readLoop() {
	size := p.ChunkSize
	if size <= 0 {
		size = DefaultChunkSize
	}
	var buf []byte
	for {
		if buf == nil {
			buf = make([]byte, size)
		}
		n, err := p.Reader.Read(buf)
		if n > 0 {
			select {
			case p.dataCh <- buf[:n]:
				buf = nil
			case <-p.stopCh:
				return
			}
		}
		if err != nil {
			p.errCh <- err
			return
		}
	}
}

// TimeoutSource adapts a reader which returns periodically on its own,
// either with zero bytes or a timeout error, such as a serial port with a
// read timeout configured. The context is checked between reads.
type TimeoutSource struct {
	Reader io.Reader
}

// NewTimeoutSource creates a TimeoutSource over r.
func NewTimeoutSource(r io.Reader) *TimeoutSource {
	return &TimeoutSource{Reader: r}
}

// ReadContext implements Source.
func (s *TimeoutSource) ReadContext(ctx context.Context, p []byte) (int, error) {
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		n, err := s.Reader.Read(p)
		if err != nil {
			if os.IsTimeout(err) {
				if n > 0 {
					return n, nil
				}
				continue
			}
			return n, err
		}
		if n > 0 {
			return n, nil
		}
	}
}

// Close closes the reader if it is an io.Closer.
func (s *TimeoutSource) Close() error {
	if closer, ok := s.Reader.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
