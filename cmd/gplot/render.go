package main

import (
	"fmt"
	"math"
	"strconv"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/gplot"
)

// Colours used by the renderer.
var (
	backgroundColor = gg.White
	cellColor       = gg.Hex("#4f86c6")
	curveColor      = gg.Hex("#c0392b")
	axisColor       = gg.RGB(0.45, 0.45, 0.45)
	labelColor      = gg.RGB(0.2, 0.2, 0.2)
)

const labelSize = 12

// RenderOptions controls image output.
type RenderOptions struct {
	Width  int
	Height int
	Axes   bool
}

// transform maps viewport coordinates to pixels, y pointing down.
type transform struct {
	view gplot.Rectangle
	m    gg.Matrix
}

func newTransform(view gplot.Rectangle, width, height int) transform {
	sx := float64(width) / view.Width()
	sy := float64(height) / view.Height()
	return transform{
		view: view,
		m:    gg.Scale(sx, -sy).Multiply(gg.Translate(-view.XStart, -view.YEnd)),
	}
}

func (t transform) pixel(x, y float64) (float64, float64) {
	p := t.m.TransformPoint(gg.Pt(x, y))
	return p.X, p.Y
}

// drawPlot renders p onto a new context. The caller closes the context.
func drawPlot(p *Plot, opts RenderOptions) (*gg.Context, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("image size must be positive, got %dx%d", opts.Width, opts.Height)
	}
	dc := gg.NewContext(opts.Width, opts.Height)
	dc.ClearWithColor(backgroundColor)
	tr := newTransform(p.Viewport, opts.Width, opts.Height)

	if opts.Axes {
		if err := drawAxes(dc, tr, opts); err != nil {
			_ = dc.Close()
			return nil, err
		}
	}

	if err := drawCells(dc, tr, p.Cells); err != nil {
		_ = dc.Close()
		return nil, err
	}
	if err := drawCurve(dc, tr, p.Curve); err != nil {
		_ = dc.Close()
		return nil, err
	}
	return dc, nil
}

// drawCells fills every cell, widened to at least one pixel so fine cells
// stay visible.
func drawCells(dc *gg.Context, tr transform, cells []gplot.Rectangle) error {
	if len(cells) == 0 {
		return nil
	}
	dc.SetColor(cellColor)
	for _, c := range cells {
		x0, y0 := tr.pixel(c.XStart, c.YEnd)
		x1, y1 := tr.pixel(c.XEnd, c.YStart)
		dc.DrawRectangle(x0, y0, math.Max(x1-x0, 1), math.Max(y1-y0, 1))
	}
	return dc.Fill()
}

// drawCurve strokes the sampled explicit curve. The polyline is broken where
// samples leave the viewport's neighbourhood or where undefined samples were
// skipped, so poles and domain gaps are not bridged.
func drawCurve(dc *gg.Context, tr transform, pts []gplot.Point) error {
	if len(pts) < 2 {
		return nil
	}
	view := tr.view
	lo, hi := view.YStart-view.Height(), view.YEnd+view.Height()
	step := (pts[len(pts)-1].X - pts[0].X) / float64(len(pts)-1)

	dc.SetColor(curveColor)
	dc.SetLineWidth(1.5)
	pen := false
	for i, p := range pts {
		if p.Y < lo || p.Y > hi {
			pen = false
			continue
		}
		if i > 0 && p.X-pts[i-1].X > 1.5*step {
			pen = false
		}
		x, y := tr.pixel(p.X, p.Y)
		if pen {
			dc.LineTo(x, y)
		} else {
			dc.MoveTo(x, y)
			pen = true
		}
	}
	return dc.Stroke()
}

// drawAxes draws the coordinate axes that cross the viewport and labels the
// viewport bounds.
func drawAxes(dc *gg.Context, tr transform, opts RenderOptions) error {
	view := tr.view
	w, h := float64(opts.Width), float64(opts.Height)

	dc.SetColor(axisColor)
	dc.SetLineWidth(1)
	if view.XStart <= 0 && 0 <= view.XEnd {
		x, _ := tr.pixel(0, 0)
		dc.DrawLine(x, 0, x, h)
	}
	if view.YStart <= 0 && 0 <= view.YEnd {
		_, y := tr.pixel(0, 0)
		dc.DrawLine(0, y, w, y)
	}
	if err := dc.Stroke(); err != nil {
		return err
	}

	src, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return fmt.Errorf("failed to load label font: %w", err)
	}
	defer src.Close()

	dc.SetFont(src.Face(labelSize))
	dc.SetColor(labelColor)
	const pad = 4
	dc.DrawStringAnchored(formatTick(view.XStart), pad, h-pad, 0, 0)
	dc.DrawStringAnchored(formatTick(view.XEnd), w-pad, h-pad, 1, 0)
	dc.DrawStringAnchored(formatTick(view.YEnd), pad, pad, 0, 1)
	return nil
}

func formatTick(v float64) string {
	return strconv.FormatFloat(v, 'g', 4, 64)
}

// renderPNG draws p and writes it to path.
func renderPNG(p *Plot, path string, opts RenderOptions) error {
	dc, err := drawPlot(p, opts)
	if err != nil {
		return err
	}
	defer dc.Close()

	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
