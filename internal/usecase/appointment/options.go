package appointment

import (
	"time"

	"github.com/BruksfildServices01/registrar-queue/internal/metrics"
	"github.com/BruksfildServices01/registrar-queue/internal/timezone"
)

type options struct {
	now     func() time.Time
	metrics metrics.Recorder
}

type Option func(*options)

// WithClock replaces the wall clock used to stamp createdAt and updatedAt.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func WithMetrics(rec metrics.Recorder) Option {
	return func(o *options) {
		if rec != nil {
			o.metrics = rec
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		now:     timezone.Now,
		metrics: metrics.Nop{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
