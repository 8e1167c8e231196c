package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/VincentWang001/hairgl/internal/assets"
	"github.com/VincentWang001/hairgl/internal/config"
	"github.com/VincentWang001/hairgl/internal/hair"
	"github.com/VincentWang001/hairgl/internal/logger"
	"github.com/VincentWang001/hairgl/pkg/math"
)

// commonFlags are shared by the commands that run a simulation.
type commonFlags struct {
	config     *string
	asset      *string
	debug      *bool
	iterations *int
	workers    *int
	wind       *string
}

func registerCommon(fs *flag.FlagSet) *commonFlags {
	return &commonFlags{
		config:     fs.String("config", "", "Path to config file"),
		asset:      fs.String("asset", "", "Path to .hgl guide asset"),
		debug:      fs.Bool("debug", false, "Enable debug logging"),
		iterations: fs.Int("iterations", 0, "Solver iterations per tick"),
		workers:    fs.Int("workers", -1, "Goroutines per stage (0 = GOMAXPROCS)"),
		wind:       fs.String("wind", "", "Wind direction as x,y,z"),
	}
}

// run is a bound instance together with the settings it was built from.
type run struct {
	cfg   *config.Config
	asset *hair.Asset
	inst  *hair.Instance
}

// setup loads config and asset and binds an instance, exiting on error.
func (c *commonFlags) setup() *run {
	cfg, err := config.LoadFile(*c.config)
	if err != nil {
		fatalf("%v", err)
	}
	if *c.debug {
		cfg.Logging.Level = "debug"
	}
	if *c.asset != "" {
		cfg.Asset.Path = *c.asset
	}
	if *c.iterations > 0 {
		cfg.Runtime.Iterations = *c.iterations
	}
	if *c.workers >= 0 {
		cfg.Runtime.Workers = *c.workers
	}
	if *c.wind != "" {
		w, err := parseVec3(*c.wind)
		if err != nil {
			fatalf("-wind: %v", err)
		}
		cfg.Hair.Simulation.Wind = w
		if cfg.Hair.Simulation.WindMagnitude == 0 {
			cfg.Hair.Simulation.WindMagnitude = 1
		}
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fatalf("initializing logger: %v", err)
	}

	mgr := assets.NewManager()
	defer mgr.Close()

	var a *hair.Asset
	if cfg.Asset.Path != "" {
		a, err = mgr.Load(cfg.Asset.Path)
	} else {
		a, err = mgr.Generate(cfg.Asset.Grid.Spec())
	}
	if err != nil {
		fatalf("%v", err)
	}

	r := &run{cfg: cfg, asset: a}
	if r.inst, err = hair.Bind(a, cfg.Hair, r.options(cfg.Runtime.Iterations)...); err != nil {
		fatalf("%v", err)
	}
	return r
}

func (r *run) options(iterations int) []hair.Option {
	return []hair.Option{
		hair.WithLogger(logger.Named("hair")),
		hair.WithTimeStep(r.cfg.Runtime.TimeStep),
		hair.WithIterations(iterations),
		hair.WithWorkers(r.cfg.Runtime.Workers),
	}
}

// stats returns the worst stretch error and the largest tip displacement
// from the rest pose over all guides, in world space.
func (r *run) stats() (stretch, drift float32) {
	state := r.inst.State()
	m := r.cfg.Hair.Visualization.ModelMatrix
	n := int(r.asset.SegmentsCount)
	rest := make([]math.Vec3, n)
	for g := 0; g < int(r.asset.GuidesCount); g++ {
		for i := range rest {
			rest[i] = m.TransformPoint(r.asset.Position(g, i))
		}
		guide := state.Guide(g)
		stretch = max(stretch, hair.StretchError(guide, rest))
		drift = max(drift, guide[n-1].Distance(rest[n-1]))
	}
	return stretch, drift
}

func parseVec3(s string) (math.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return math.Vec3{}, fmt.Errorf("expected x,y,z, got %q", s)
	}
	var v [3]float32
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return math.Vec3{}, fmt.Errorf("parsing %q: %w", p, err)
		}
		v[i] = float32(f)
	}
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}, nil
}
