package main

import (
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml"

	"github.com/gogpu/gplot"
)

var ErrUnknownFormat = errors.New("unknown output format")

// RenderCmd renders a formula to a PNG image.
type RenderCmd struct {
	Formula string `arg:"" help:"Formula, e.g. 'x^2 + y^2 = 1' or 'sin(x)'"`

	PlotFlags `embed:""`

	Width  int    `help:"Image width in pixels" default:"800"`
	Height int    `help:"Image height in pixels" default:"800"`
	Output string `help:"Output PNG file" default:"plot.png" short:"o"`
	NoAxes bool   `help:"Do not draw axes and bound labels"`
}

// Run executes the render command
func (cmd *RenderCmd) Run(ctx *Context) error {
	viewport, err := parseViewport(cmd.Viewport)
	if err != nil {
		return err
	}
	p, err := computePlot(cmd.Formula, viewport, cmd.Resolution, cmd.options()...)
	if err != nil {
		return err
	}
	opts := RenderOptions{Width: cmd.Width, Height: cmd.Height, Axes: !cmd.NoAxes}
	if err := renderPNG(p, cmd.Output, opts); err != nil {
		return err
	}
	ctx.success("Rendered %s (%s, %d cells) to %s", p.Formula, p.Formula.Mode(), len(p.Cells), cmd.Output)
	return nil
}

// CellsCmd prints the rectangles covering a formula.
type CellsCmd struct {
	Formula string `arg:"" help:"Formula to cover"`

	PlotFlags `embed:""`

	Format string `help:"Output format" enum:"text,yaml" default:"text" short:"f"`
}

// cellDump is the YAML form of a plot.
type cellDump struct {
	Formula  string       `yaml:"formula"`
	Mode     string       `yaml:"mode"`
	Postfix  string       `yaml:"postfix"`
	Viewport [4]float64   `yaml:"viewport"`
	Cells    [][4]float64 `yaml:"cells"`
}

func corners(r gplot.Rectangle) [4]float64 {
	return [4]float64{r.XStart, r.YStart, r.XEnd, r.YEnd}
}

// Run executes the cells command
func (cmd *CellsCmd) Run(ctx *Context) error {
	viewport, err := parseViewport(cmd.Viewport)
	if err != nil {
		return err
	}
	p, err := computePlot(cmd.Formula, viewport, cmd.Resolution, cmd.options()...)
	if err != nil {
		return err
	}
	return writeCells(ctx.Stdout, p, cmd.Format)
}

func writeCells(w io.Writer, p *Plot, format string) error {
	switch format {
	case "text":
		for _, c := range p.Cells {
			if _, err := fmt.Fprintln(w, c); err != nil {
				return err
			}
		}
		return nil
	case "yaml":
		dump := cellDump{
			Formula:  p.Formula.String(),
			Mode:     p.Formula.Mode().String(),
			Postfix:  p.Formula.Postfix(),
			Viewport: corners(p.Viewport),
			Cells:    make([][4]float64, len(p.Cells)),
		}
		for i, c := range p.Cells {
			dump.Cells[i] = corners(c)
		}
		data, err := yaml.Marshal(dump)
		if err != nil {
			return fmt.Errorf("failed to encode cells: %w", err)
		}
		_, err = w.Write(data)
		return err
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// RunCmd renders every job of a YAML file.
type RunCmd struct {
	Config string `help:"Job file" default:"plots.yaml" short:"c"`
}

// Run executes the run command
func (cmd *RunCmd) Run(ctx *Context) error {
	config, err := LoadConfig(cmd.Config)
	if err != nil {
		return err
	}
	failed := 0
	for _, job := range config.Jobs {
		if err := runJob(job); err != nil {
			ctx.failure("%s: %v", job.Name, err)
			failed++
			continue
		}
		ctx.success("%s: %s -> %s", job.Name, job.Formula, job.Output)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d jobs failed", failed, len(config.Jobs))
	}
	return nil
}

func runJob(job Job) error {
	viewport, err := viewportFromSlice(job.Viewport)
	if err != nil {
		return err
	}
	p, err := computePlot(job.Formula, viewport, job.Resolution,
		gplot.WithMaxCells(job.MaxCells), gplot.WithWorkers(job.Workers))
	if err != nil {
		return err
	}
	return renderPNG(p, job.Output, RenderOptions{
		Width:  job.Width,
		Height: job.Height,
		Axes:   job.Axes == nil || *job.Axes,
	})
}

// VersionCmd shows version information.
type VersionCmd struct{}

// Run executes the version command
func (cmd *VersionCmd) Run(ctx *Context) error {
	fmt.Fprintf(ctx.Stdout, "gplot version %s (%s)\n", gplot.Version, runtime.Version())
	return nil
}

// success prints a green status line unless quiet.
func (ctx *Context) success(format string, args ...any) {
	if ctx.Quiet {
		return
	}
	color.New(color.FgGreen).Fprintf(ctx.Stdout, format+"\n", args...)
}

// failure prints a red status line, even when quiet.
func (ctx *Context) failure(format string, args ...any) {
	color.New(color.FgRed).Fprintf(ctx.Stderr, format+"\n", args...)
}
