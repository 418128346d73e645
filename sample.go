package gplot

import (
	"log/slog"

	"github.com/gogpu/gplot/rpn"
)

// SamplePolyline point-evaluates the explicit curve y = f(x) at count
// equally spaced x values from viewport.XStart to viewport.XEnd inclusive.
//
// Samples where f is undefined (NaN or ±Inf) are skipped, so consecutive
// points may straddle a gap in the curve. Samples outside the viewport's y
// range are kept; clipping belongs to the renderer.
func SamplePolyline(e *rpn.Expression[float64], viewport Rectangle, count int) []Point {
	if count <= 0 {
		return nil
	}
	pts := make([]Point, 0, count)
	for i := range count {
		x := viewport.XStart
		if count > 1 {
			x += viewport.Width() * float64(i) / float64(count-1)
		}
		p := Point{X: x, Y: e.Eval(rpn.Input[float64]{X: x})}
		if p.IsFinite() {
			pts = append(pts, p)
		}
	}
	Logger().Debug("gplot: polyline sampled",
		slog.Int("samples", count),
		slog.Int("points", len(pts)))
	return pts
}
