package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/gplot"
	"github.com/gogpu/gplot/compile"
	"github.com/gogpu/gplot/interval"
	"github.com/gogpu/gplot/rpn"
)

var (
	ErrInvalidViewport   = errors.New("viewport must be xmin,ymin,xmax,ymax with xmin < xmax and ymin < ymax")
	ErrInvalidResolution = errors.New("resolution must be positive")
)

// curveSamples is the number of point samples per resolution step used to
// draw explicit curves.
const curveSamples = 8

// Plot is a computed plot ready for printing or rendering.
type Plot struct {
	Formula  *compile.Formula
	Viewport gplot.Rectangle
	Cells    []gplot.Rectangle
	// Curve holds point samples of an explicit formula; nil for implicit ones.
	Curve []gplot.Point
}

// PlotFlags are the options shared by every command that computes a plot.
type PlotFlags struct {
	Viewport   string `help:"Viewport as xmin,ymin,xmax,ymax" default:"-2,-2,2,2"`
	Resolution int    `help:"Subdivisions across the viewport width" default:"64" short:"r"`
	MaxCells   int    `help:"Cell budget for implicit curves (0 uses the default)" default:"0"`
	Workers    int    `help:"Worker goroutines (0 runs serially, -1 uses every CPU)" default:"0"`
}

// options converts the flags into generator options.
func (f PlotFlags) options() []gplot.Option {
	return []gplot.Option{gplot.WithMaxCells(f.MaxCells), gplot.WithWorkers(f.Workers)}
}

// parseViewport parses "xmin,ymin,xmax,ymax".
func parseViewport(s string) (gplot.Rectangle, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return gplot.Rectangle{}, fmt.Errorf("%w: %q", ErrInvalidViewport, s)
	}
	v := make([]float64, 4)
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return gplot.Rectangle{}, fmt.Errorf("%w: %q", ErrInvalidViewport, s)
		}
		v[i] = f
	}
	return viewportFromSlice(v)
}

// viewportFromSlice builds a viewport from [xmin, ymin, xmax, ymax].
func viewportFromSlice(v []float64) (gplot.Rectangle, error) {
	if len(v) != 4 || !(v[0] < v[2]) || !(v[1] < v[3]) {
		return gplot.Rectangle{}, fmt.Errorf("%w: %v", ErrInvalidViewport, v)
	}
	return gplot.Rectangle{XStart: v[0], YStart: v[1], XEnd: v[2], YEnd: v[3]}, nil
}

// computePlot compiles src and covers it inside viewport.
func computePlot(src string, viewport gplot.Rectangle, resolution int, opts ...gplot.Option) (*Plot, error) {
	if resolution <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidResolution, resolution)
	}
	f, err := compile.Parse(src)
	if err != nil {
		return nil, err
	}

	p := &Plot{Formula: f, Viewport: viewport}
	ranges := compile.Build(f, interval.Domain{})
	switch f.Mode() {
	case rpn.Explicit:
		p.Cells = gplot.Generate2D(ranges, viewport, resolution, opts...)
		p.Curve = gplot.SamplePolyline(compile.Build(f, rpn.Float{}), viewport, resolution*curveSamples+1)
	default:
		p.Cells = gplot.Generate2DImplicit(ranges, viewport, resolution, opts...)
	}
	return p, nil
}
