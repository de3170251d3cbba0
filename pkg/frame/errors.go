package frame

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrClosed indicates the source was closed while reading.
	ErrClosed = errors.New("source closed")
)

// SourceError wraps a failure reported by the byte source.
// The frame attempt in progress is abandoned and nothing is retried.
type SourceError struct {
	// Op is the stage which was reading: "sync" or "frame".
	Op  string
	Err error
}

// Error implements error.
func (e *SourceError) Error() string {
	return fmt.Sprintf("imu source failure during %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *SourceError) Unwrap() error {
	return e.Err
}

func sourceError(op string, err error) error {
	if err == context.Canceled || err == context.DeadlineExceeded {
		return err
	}
	return &SourceError{Op: op, Err: err}
}
