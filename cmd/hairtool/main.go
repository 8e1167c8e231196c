// hairtool is a CLI utility for HGL guide assets and offline hair runs.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/guptarohit/asciigraph"
	"go.uber.org/zap"

	"github.com/VincentWang001/hairgl/internal/config"
	"github.com/VincentWang001/hairgl/internal/hair"
	"github.com/VincentWang001/hairgl/internal/logger"
	"github.com/VincentWang001/hairgl/internal/snapshot"
	"github.com/VincentWang001/hairgl/pkg/formats"
	"github.com/VincentWang001/hairgl/pkg/math"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "gen":
		cmdGen(args)
	case "simulate", "sim":
		cmdSimulate(args)
	case "converge":
		cmdConverge(args)
	case "render":
		cmdRender(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`hairtool - guide hair asset and simulation utility

Usage:
  hairtool <command> [options]

Commands:
  info <file.hgl>                Show asset information
  gen <out.hgl>                  Write a generated grid of guides
  simulate [-ticks N]            Run the simulation and print per-tick stats
  converge [-max N]              Plot stretch error against solver iterations
  render <out.png> [-ticks N]    Simulate and rasterize the last frame

Common options (simulate, converge, render):
  -config <file.yaml>  Settings file (defaults otherwise)
  -asset <file.hgl>    Guide asset (generated grid otherwise)
  -debug               Enable debug logging

Examples:
  hairtool gen -columns 16 -rows 16 patch.hgl
  hairtool info patch.hgl
  hairtool simulate -asset patch.hgl -ticks 300 -wind 1,0,0
  hairtool converge -max 16
  hairtool render -guides -ticks 60 hair.png`)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: hairtool info <file.hgl>")
		os.Exit(1)
	}

	h, err := formats.ParseHGLFile(args[0])
	if err != nil {
		fatalf("%v", err)
	}
	a, err := hair.AssetFromHGL(h)
	if err != nil {
		fatalf("%v", err)
	}

	b := a.Bounds()
	fmt.Printf("Asset:     %s\n", args[0])
	fmt.Printf("Guides:    %d\n", a.GuidesCount)
	fmt.Printf("Points:    %d per guide (%d total)\n", a.SegmentsCount, len(a.Positions))
	fmt.Printf("Triangles: %d\n", len(a.Triangles))
	fmt.Printf("Bounds:    (%.3f, %.3f, %.3f) - (%.3f, %.3f, %.3f)\n", b[0], b[1], b[2], b[3], b[4], b[5])

	if len(a.Triangles) == 0 {
		fmt.Println("Growth:    none (one render strand per guide root)")
		return
	}
	roots := a.Roots()
	mesh := hair.NewTriangleMesh(roots, a.Triangles)
	density := hair.DefaultInstanceSettings().Visualization.Density
	samples, err := mesh.Samples(density)
	if err != nil {
		fmt.Printf("Growth:    invalid (%v)\n", err)
		return
	}
	fmt.Printf("Growth:    area %.4f, %d strands at density %g\n", mesh.Area(), len(samples), density)
}

func cmdGen(args []string) {
	grid := config.Default().Asset.Grid

	fs := flag.NewFlagSet("gen", flag.ExitOnError)
	fs.IntVar(&grid.Columns, "columns", grid.Columns, "Guides along X")
	fs.IntVar(&grid.Rows, "rows", grid.Rows, "Guides along Z")
	fs.IntVar(&grid.Vertices, "vertices", grid.Vertices, "Control points per guide")
	spacing := fs.Float64("spacing", float64(grid.Spacing), "Distance between roots")
	length := fs.Float64("length", float64(grid.Length), "Strand length")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: hairtool gen [options] <out.hgl>")
		os.Exit(1)
	}
	grid.Spacing = float32(*spacing)
	grid.Length = float32(*length)

	h, err := formats.NewGridHGL(grid.Spec())
	if err != nil {
		fatalf("%v", err)
	}
	if err := formats.WriteHGLFile(fs.Arg(0), h); err != nil {
		fatalf("%v", err)
	}
	fmt.Printf("Wrote: %s (%d guides, %d triangles)\n", fs.Arg(0), h.GuidesCount, len(h.Triangles))
}

func cmdSimulate(args []string) {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	common := registerCommon(fs)
	ticks := fs.Int("ticks", 0, "Ticks to run (0 = config runtime.ticks)")
	every := fs.Int("every", 10, "Print stats every N ticks")
	fs.Parse(args)

	r := common.setup()
	defer logger.Sync()
	n := r.cfg.Runtime.Ticks
	if *ticks > 0 {
		n = *ticks
	}

	fmt.Printf("%6s %8s %10s %12s %12s\n", "tick", "strands", "vertices", "stretch", "tip_drift")
	var frame *hair.Frame
	for i := 0; i < n; i++ {
		var err error
		if frame, err = r.inst.Tick(r.cfg.Hair); err != nil {
			fatalf("%v", err)
		}
		if (*every > 0 && (i+1)%*every == 0) || i == n-1 {
			stretch, drift := r.stats()
			fmt.Printf("%6d %8d %10d %12.6f %12.6f\n",
				frame.Tick, len(frame.Strands), frame.VertexCount(), stretch, drift)
		}
	}
	logger.Info("simulation finished",
		zap.Int("ticks", n),
		zap.Uint64("instance_ticks", r.inst.Ticks()),
	)
}

func cmdConverge(args []string) {
	fs := flag.NewFlagSet("converge", flag.ExitOnError)
	common := registerCommon(fs)
	maxIter := fs.Int("max", 16, "Largest iteration count to try")
	ticks := fs.Int("ticks", 30, "Ticks to run per iteration count")
	fs.Parse(args)

	r := common.setup()
	defer logger.Sync()
	if *maxIter < 1 {
		fatalf("-max must be at least 1")
	}

	errs := make([]float64, 0, *maxIter)
	for k := 1; k <= *maxIter; k++ {
		inst, err := hair.Bind(r.asset, r.cfg.Hair, r.options(k)...)
		if err != nil {
			fatalf("%v", err)
		}
		probe := &run{cfg: r.cfg, asset: r.asset, inst: inst}
		for i := 0; i < *ticks; i++ {
			if _, err := inst.Tick(r.cfg.Hair); err != nil {
				fatalf("%v", err)
			}
		}
		stretch, _ := probe.stats()
		errs = append(errs, float64(stretch))
		fmt.Printf("iterations %3d: stretch error %.6g\n", k, stretch)
	}

	fmt.Println()
	fmt.Println(asciigraph.Plot(errs,
		asciigraph.Height(12),
		asciigraph.Width(60),
		asciigraph.Caption(fmt.Sprintf("max stretch error after %d ticks vs solver iterations", *ticks)),
	))
}

func cmdRender(args []string) {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	common := registerCommon(fs)
	ticks := fs.Int("ticks", 0, "Ticks to run before capturing (0 = config runtime.ticks)")
	guides := fs.Bool("guides", false, "Draw guides instead of render strands")
	mesh := fs.Bool("mesh", false, "Overlay the growth mesh")
	fs.Parse(args)

	r := common.setup()
	defer logger.Sync()

	out := r.cfg.Snapshot.Output
	if fs.NArg() > 0 {
		out = fs.Arg(0)
	}
	n := r.cfg.Runtime.Ticks
	if *ticks > 0 {
		n = *ticks
	}
	settings := r.cfg.Hair
	if *guides {
		settings.Visualization.VisualizeGuides = true
	}
	if *mesh {
		settings.Visualization.VisualizeGrowthMesh = true
	}

	opts := snapshot.DefaultOptions()
	opts.Width = r.cfg.Snapshot.Width
	opts.Height = r.cfg.Snapshot.Height
	opts.Scale = r.cfg.Snapshot.Scale
	opts.StrokeScale = r.cfg.Snapshot.StrokeScale
	b := r.asset.Bounds()
	opts.Center = settings.Visualization.ModelMatrix.TransformPoint(math.Vec3{
		X: (b[0] + b[3]) / 2,
		Y: (b[1] + b[4]) / 2,
		Z: (b[2] + b[5]) / 2,
	})

	backend, err := snapshot.New(opts)
	if err != nil {
		fatalf("%v", err)
	}
	defer backend.Close()

	var frame *hair.Frame
	for i := 0; i < max(n, 1); i++ {
		if frame, err = r.inst.Tick(settings); err != nil {
			fatalf("%v", err)
		}
	}
	if err := backend.Submit(frame); err != nil {
		fatalf("%v", err)
	}
	if err := backend.SavePNG(out); err != nil {
		fatalf("%v", err)
	}
	fmt.Printf("Rendered: %s (tick %d, %s, %d strands)\n", out, frame.Tick, frame.Kind, len(frame.Strands))
}
