package gplot

import "runtime"

// Option configures a generator call.
//
// Example:
//
//	// Larger budget, quadrant evaluation spread over 8 workers
//	cells := gplot.Generate2DImplicit(e, view, 256,
//	    gplot.WithMaxCells(200_000),
//	    gplot.WithWorkers(8))
type Option func(*options)

// options holds the optional configuration of a generator call.
type options struct {
	maxCells int
	workers  int
}

// minMaxCells is the smallest default cell budget, whatever the resolution.
const minMaxCells = 1024

// DefaultMaxCells returns the implicit generator's cell budget for a
// resolution: resolution² cells, but never fewer than 1024.
//
// A curve crossing the viewport needs on the order of resolution cells at the
// finest level, so the default leaves room for many components before the
// search is truncated.
func DefaultMaxCells(resolution int) int {
	return max(minMaxCells, resolution*resolution)
}

// newOptions applies opts over the defaults for resolution.
func newOptions(resolution int, opts []Option) options {
	o := options{
		maxCells: DefaultMaxCells(resolution),
		workers:  1,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithMaxCells sets the implicit generator's cell budget. The search stops
// once the queue holds more than n cells. Values <= 0 keep the default.
func WithMaxCells(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxCells = n
		}
	}
}

// WithWorkers evaluates strips (explicit) or quadrants (implicit) on n
// goroutines. The output is identical to the serial run.
// n == 0 or 1 runs serially; n < 0 uses GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		switch {
		case n < 0:
			o.workers = runtime.GOMAXPROCS(0)
		case n == 0:
			o.workers = 1
		default:
			o.workers = n
		}
	}
}
