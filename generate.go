package gplot

import (
	"log/slog"
	"math"

	"github.com/gogpu/gplot/internal/parallel"
	"github.com/gogpu/gplot/interval"
	"github.com/gogpu/gplot/rpn"
)

// EvalExplicit range-evaluates an explicit curve y = f(x) over x and returns
// every y the curve can take there, possibly as several disjoint pieces.
// The y coordinate of the input is fixed at 0, as in point evaluation.
func EvalExplicit(e *rpn.Expression[interval.Set], x interval.Interval) interval.Set {
	return e.Eval(rpn.Input[interval.Set]{
		X: interval.Of(x),
		Y: interval.Singleton(0),
	})
}

// EvalImplicit range-evaluates f(x, y) over the box x × y.
func EvalImplicit(e *rpn.Expression[interval.Set], x, y interval.Interval) interval.Set {
	return e.Eval(rpn.Input[interval.Set]{
		X: interval.Of(x),
		Y: interval.Of(y),
	})
}

// Generate2D covers the explicit curve y = f(x) inside viewport with
// rectangles.
//
// The x range is split into resolution strips of equal width. Each strip is
// range-evaluated once; every resulting y piece that reaches into the
// viewport becomes one rectangle spanning the strip, with its y bounds
// clipped to the viewport. Pieces wholly above or below the viewport are
// dropped. Strips are emitted left to right, pieces bottom to top.
//
// The viewport must have positive width and height. A non-positive
// resolution yields nil.
func Generate2D(e *rpn.Expression[interval.Set], viewport Rectangle, resolution int, opts ...Option) []Rectangle {
	if resolution <= 0 {
		return nil
	}
	o := newOptions(resolution, opts)
	step := viewport.Width() / float64(resolution)

	strip := func(i int) []Rectangle {
		x0 := viewport.XStart + float64(i)*step
		x1 := viewport.XStart + float64(i+1)*step
		if i == resolution-1 {
			x1 = viewport.XEnd
		}
		return clipStrip(EvalExplicit(e, interval.New(x0, x1)), x0, x1, viewport)
	}

	var strips [][]Rectangle
	if o.workers > 1 {
		strips = make([][]Rectangle, resolution)
		pool := parallel.NewWorkerPool(o.workers)
		pool.For(resolution, func(i int) { strips[i] = strip(i) })
		pool.Close()
	}

	rects := make([]Rectangle, 0, resolution)
	for i := range resolution {
		if strips != nil {
			rects = append(rects, strips[i]...)
		} else {
			rects = append(rects, strip(i)...)
		}
	}

	Logger().Debug("gplot: explicit plot generated",
		slog.Int("strips", resolution),
		slog.Int("rects", len(rects)),
		slog.Int("workers", o.workers))
	return rects
}

// clipStrip turns the y pieces of one strip into viewport-clipped rectangles.
func clipStrip(ys interval.Set, x0, x1 float64, viewport Rectangle) []Rectangle {
	var out []Rectangle
	for _, iv := range ys.Intervals() {
		if iv.Lo > viewport.YEnd || iv.Hi < viewport.YStart {
			continue
		}
		out = append(out, Rectangle{
			XStart: x0,
			YStart: clamp(iv.Lo, viewport.YStart, viewport.YEnd),
			XEnd:   x1,
			YEnd:   clamp(iv.Hi, viewport.YStart, viewport.YEnd),
		})
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
