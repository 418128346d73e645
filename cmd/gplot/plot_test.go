package main

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/gplot"
	"github.com/gogpu/gplot/compile"
	"github.com/gogpu/gplot/interval"
	"github.com/gogpu/gplot/rpn"
)

func TestParseViewport(t *testing.T) {
	v, err := parseViewport("-2, -1, 3, 4.5")
	require.NoError(t, err)
	assert.Equal(t, gplot.Rectangle{XStart: -2, YStart: -1, XEnd: 3, YEnd: 4.5}, v)

	for _, bad := range []string{"", "1,2,3", "a,b,c,d", "2,0,1,1", "0,1,1,1", "0,0,1,1,1"} {
		_, err := parseViewport(bad)
		assert.ErrorIs(t, err, ErrInvalidViewport, "%q", bad)
	}
}

func TestComputePlot_Explicit(t *testing.T) {
	view := gplot.Rect(-2, -2, 2, 2)
	p, err := computePlot("x^2", view, 4)
	require.NoError(t, err)
	assert.Equal(t, rpn.Explicit, p.Formula.Mode())
	assert.Len(t, p.Cells, 4)
	assert.Len(t, p.Curve, 4*curveSamples+1)
	for _, pt := range p.Curve {
		assert.InDelta(t, pt.X*pt.X, pt.Y, 1e-12)
	}
}

func TestComputePlot_Implicit(t *testing.T) {
	view := gplot.Rect(-2, -2, 2, 2)
	p, err := computePlot("x^2 + y^2 = 1", view, 16)
	require.NoError(t, err)
	assert.Equal(t, rpn.Implicit, p.Formula.Mode())
	assert.Nil(t, p.Curve)
	require.NotEmpty(t, p.Cells)

	want := gplot.Generate2DImplicit(compile.Build(p.Formula, interval.Domain{}), view, 16)
	assert.Equal(t, want, p.Cells)
}

func TestComputePlot_Errors(t *testing.T) {
	view := gplot.Rect(-1, -1, 1, 1)
	_, err := computePlot("x^2", view, 0)
	assert.ErrorIs(t, err, ErrInvalidResolution)

	_, err = computePlot("z + 1", view, 8)
	assert.ErrorIs(t, err, compile.ErrUnknownIdentifier)
}

func TestDrawPlot_FillsCells(t *testing.T) {
	p, err := computePlot("x", gplot.Rect(-2, -2, 2, 2), 4)
	require.NoError(t, err)

	dc, err := drawPlot(p, RenderOptions{Width: 200, Height: 200})
	require.NoError(t, err)
	defer dc.Close()

	img := dc.Image()
	// Strip [-2, -1] covers y in [-2, -1]: the bottom-left 50x50 pixels.
	r, g, b, _ := img.At(25, 175).RGBA()
	assert.False(t, r == 0xffff && g == 0xffff && b == 0xffff, "cell pixel is background")

	// Strip [1, 2] covers y in [1, 2]; its lower half stays empty.
	r, g, b, _ = img.At(175, 175).RGBA()
	assert.True(t, r == 0xffff && g == 0xffff && b == 0xffff, "empty pixel is painted")
}

func TestDrawPlot_InvalidSize(t *testing.T) {
	p, err := computePlot("x", gplot.Rect(-1, -1, 1, 1), 4)
	require.NoError(t, err)
	_, err = drawPlot(p, RenderOptions{Width: 0, Height: 10})
	assert.Error(t, err)
}

func TestRenderPNG(t *testing.T) {
	p, err := computePlot("x^2 + y^2 = 1", gplot.Rect(-2, -2, 2, 2), 32)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "circle.png")
	require.NoError(t, renderPNG(p, path, RenderOptions{Width: 120, Height: 90, Axes: true}))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 120, img.Bounds().Dx())
	assert.Equal(t, 90, img.Bounds().Dy())
}

func TestTransform(t *testing.T) {
	tr := newTransform(gplot.Rect(-2, -1, 2, 1), 400, 100)
	x, y := tr.pixel(-2, 1)
	assert.Equal(t, 0.0, x)
	assert.Equal(t, 0.0, y)
	x, y = tr.pixel(0, 0)
	assert.Equal(t, 200.0, x)
	assert.Equal(t, 50.0, y)
	x, y = tr.pixel(2, -1)
	assert.Equal(t, 400.0, x)
	assert.Equal(t, 100.0, y)
}
