package gplot

import "fmt"

// Rectangle is an axis-aligned box in world coordinates with
// XStart <= XEnd and YStart <= YEnd.
//
// The explicit generator emits vertical strips clipped to the viewport; the
// implicit generator emits cells that may contain part of the zero set.
type Rectangle struct {
	XStart, YStart float64
	XEnd, YEnd     float64
}

// Rect returns the rectangle spanning the two corners, normalized so that
// start <= end on both axes.
func Rect(x0, y0, x1, y1 float64) Rectangle {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	return Rectangle{XStart: x0, YStart: y0, XEnd: x1, YEnd: y1}
}

// Width returns XEnd - XStart.
func (r Rectangle) Width() float64 { return r.XEnd - r.XStart }

// Height returns YEnd - YStart.
func (r Rectangle) Height() float64 { return r.YEnd - r.YStart }

// Center returns the midpoint of the rectangle.
func (r Rectangle) Center() Point {
	return Point{X: (r.XStart + r.XEnd) / 2, Y: (r.YStart + r.YEnd) / 2}
}

// Contains reports whether p lies inside r, boundary included.
func (r Rectangle) Contains(p Point) bool {
	return p.X >= r.XStart && p.X <= r.XEnd && p.Y >= r.YStart && p.Y <= r.YEnd
}

// Quadrants splits r at its center.
// The order is north-east, north-west, south-west, south-east (y up).
func (r Rectangle) Quadrants() [4]Rectangle {
	xh := (r.XStart + r.XEnd) / 2
	yh := (r.YStart + r.YEnd) / 2
	return [4]Rectangle{
		{XStart: xh, YStart: yh, XEnd: r.XEnd, YEnd: r.YEnd},
		{XStart: r.XStart, YStart: yh, XEnd: xh, YEnd: r.YEnd},
		{XStart: r.XStart, YStart: r.YStart, XEnd: xh, YEnd: yh},
		{XStart: xh, YStart: r.YStart, XEnd: r.XEnd, YEnd: yh},
	}
}

func (r Rectangle) String() string {
	return fmt.Sprintf("[%g, %g]x[%g, %g]", r.XStart, r.XEnd, r.YStart, r.YEnd)
}
