package stream

import (
	"context"

	"github.com/robotalks/imu.go/pkg/frame"
)

// SampleHandler is called for every sample delivered by a Reader.
type SampleHandler interface {
	HandleSample(context.Context, frame.Sample) error
}

// HandleSampleFunc is func type of SampleHandler.
type HandleSampleFunc func(context.Context, frame.Sample) error

// HandleSample implements SampleHandler.
func (f HandleSampleFunc) HandleSample(ctx context.Context, s frame.Sample) error {
	return f(ctx, s)
}
