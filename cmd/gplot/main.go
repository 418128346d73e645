// Command gplot plots explicit and implicit curves with interval arithmetic.
//
// Usage:
//
//	gplot render 'x^2 + y^2 = 1' --viewport=-2,-2,2,2 -r 128 -o circle.png
//	gplot render 'sin(x) * x' --viewport=-10,-10,10,10
//	gplot cells 'y = 1/x' --format=yaml
//	gplot run --config=plots.yaml
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/gogpu/gplot"
)

// Context represents the global context for commands
type Context struct {
	Verbose bool
	Quiet   bool

	Stdout io.Writer
	Stderr io.Writer
}

var CLI struct {
	Verbose bool `help:"Log generator diagnostics to stderr" short:"v"`
	Quiet   bool `help:"Suppress status output" short:"q"`

	Render  RenderCmd  `cmd:"" help:"Render a formula to a PNG image"`
	Cells   CellsCmd   `cmd:"" help:"Print the rectangles covering a formula"`
	Run     RunCmd     `cmd:"" help:"Render every job of a YAML file"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("gplot"),
		kong.Description("Plot explicit and implicit curves with interval arithmetic."),
		kong.UsageOnError(),
	)

	if CLI.Verbose {
		gplot.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	appCtx := &Context{
		Verbose: CLI.Verbose,
		Quiet:   CLI.Quiet,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
