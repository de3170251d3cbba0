package frame

import "context"

// Scanner locates sync markers in the byte stream.
// Its state only lives for one search; Scan resets it before reading.
type Scanner struct {
	run      int
	consumed int
	buf      [1]byte
}

// Reset clears the run counter and the consumed byte count.
func (s *Scanner) Reset() {
	s.run, s.consumed = 0, 0
}

// Feed consumes one byte and reports whether the sync marker is complete.
func (s *Scanner) Feed(b byte) bool {
	s.consumed++
	if b == SyncByte {
		s.run++
	} else {
		s.run = 0
	}
	return s.run >= SyncLen
}

// Consumed returns the number of bytes examined since the last Reset.
func (s *Scanner) Consumed() int {
	return s.consumed
}

// Noisy reports whether more bytes than the marker itself were consumed.
// This is a diagnostic heuristic only.
func (s *Scanner) Noisy() bool {
	return s.consumed > SyncLen
}

// Scan reads one byte at a time until a complete sync marker was seen.
// It returns the number of bytes consumed, including the marker.
func (s *Scanner) Scan(ctx context.Context, src Source) (int, error) {
	s.Reset()
	for {
		n, err := src.ReadContext(ctx, s.buf[:])
		if err != nil {
			return s.consumed, err
		}
		if n == 0 {
			if err = ctx.Err(); err != nil {
				return s.consumed, err
			}
			continue
		}
		if s.Feed(s.buf[0]) {
			return s.consumed, nil
		}
	}
}
