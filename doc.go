// Package gplot approximates the graph of a relation over a bounded viewport
// with a set of axis-aligned rectangles that conservatively cover the curve.
//
// # Overview
//
// Two kinds of relation are supported:
//   - explicit curves y = f(x), covered strip by strip with [Generate2D]
//   - implicit curves f(x, y) = 0, covered by breadth-first quadtree
//     subdivision with [Generate2DImplicit]
//
// Both generators rely on range evaluation: the formula is evaluated over a
// whole interval or box at once with conservative interval arithmetic
// (package interval), so a region is only discarded when the curve provably
// does not pass through it. Extra rectangles are possible; missing ones are
// not.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/gplot"
//	    "github.com/gogpu/gplot/compile"
//	    "github.com/gogpu/gplot/interval"
//	)
//
//	f, err := compile.Parse("x^2 + y^2 = 1")
//	if err != nil {
//	    return err
//	}
//	e := compile.Build(f, interval.Domain{})
//	cells := gplot.Generate2DImplicit(e, gplot.Rect(-2, -2, 2, 2), 64)
//
// # Programs
//
// Formulas are postfix programs for a small stack machine (package rpn).
// The same program shape is built once per value type: float64 for point
// sampling ([SamplePolyline]) and interval.Set for the generators.
//
// # Coordinate System
//
// All rectangles are in world (plot) coordinates with y increasing upward.
// Mapping them to screen space is left to the renderer.
//
// # Concurrency
//
// Generators are pure functions of their arguments and share no mutable
// state. [WithWorkers] spreads range evaluation over a worker pool without
// changing the output.
package gplot

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
