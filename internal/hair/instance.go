package hair

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/VincentWang001/hairgl/pkg/math"
)

// DefaultTimeStep is the fixed simulation step used when none is configured.
const DefaultTimeStep float32 = 1.0 / 60.0

// Option configures an Instance at bind time.
type Option func(*options)

type options struct {
	logger     *zap.Logger
	workers    int
	timeStep   float32
	iterations int
	growth     GrowthMesh
}

// WithLogger sets the logger for bind and tick diagnostics. The default
// discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithWorkers bounds the goroutines used per stage. 0 means GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithTimeStep sets the fixed timestep in seconds.
func WithTimeStep(dt float32) Option {
	return func(o *options) { o.timeStep = dt }
}

// WithIterations sets the solver iteration count. 0 selects DefaultIterations.
func WithIterations(n int) Option {
	return func(o *options) { o.iterations = n }
}

// WithGrowthMesh overrides the surface render strands grow from. By default
// the asset's triangles are used, or one strand per guide root when it has
// none.
func WithGrowthMesh(m GrowthMesh) Option {
	return func(o *options) { o.growth = m }
}

// Instance is one simulated hair asset. It is not safe for concurrent use:
// callers serialize Tick.
type Instance struct {
	asset *Asset
	log   *zap.Logger

	integrator Integrator
	solver     Solver
	dispatch   dispatcher

	state   *GuideState // committed
	scratch *GuideState // stages write here; swapped in on success

	// Per-tick rest data, guide-major.
	world   []math.Vec3
	restLen []float32
	bendH0  []float32

	growth GrowthMesh
	interp *interpolator

	ticks uint64
}

// Bind validates asset and settings, allocates the guide state and places
// every guide at rest under the settings' model matrix.
func Bind(asset *Asset, settings InstanceSettings, opts ...Option) (*Instance, error) {
	o := options{
		logger:   zap.NewNop(),
		timeStep: DefaultTimeStep,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if asset == nil {
		return nil, fmt.Errorf("%w: nil asset", ErrAssetShape)
	}
	if err := asset.validate(); err != nil {
		return nil, err
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if !(o.timeStep > 0) {
		return nil, fmt.Errorf("%w: time_step must be > 0, got %v", ErrInvalidSettings, o.timeStep)
	}
	if o.iterations < 0 {
		return nil, fmt.Errorf("%w: iterations must be >= 0, got %d", ErrInvalidSettings, o.iterations)
	}
	if o.iterations == 0 {
		o.iterations = DefaultIterations
	}
	if o.workers < 0 {
		return nil, fmt.Errorf("%w: workers must be >= 0, got %d", ErrInvalidSettings, o.workers)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}

	roots := asset.Roots()
	if o.growth == nil {
		if len(asset.Triangles) > 0 {
			o.growth = NewTriangleMesh(roots, asset.Triangles)
		} else {
			o.growth = &RootMesh{Roots: roots}
		}
	}

	n := len(asset.Positions)
	guides := int(asset.GuidesCount)
	segs := int(asset.SegmentsCount)
	state := newGuideState(asset, settings.Visualization.ModelMatrix)

	in := &Instance{
		asset:      asset,
		log:        o.logger,
		integrator: Integrator{TimeStep: o.timeStep},
		solver:     Solver{Iterations: o.iterations, TimeStep: o.timeStep},
		dispatch:   newDispatcher(o.workers),
		state:      state,
		scratch:    state.Clone(),
		world:      make([]math.Vec3, n),
		restLen:    make([]float32, guides*(segs-1)),
		bendH0:     make([]float32, n),
		growth:     o.growth,
		interp:     newInterpolator(roots),
	}

	in.log.Debug("hair instance bound",
		zap.Int("guides", guides),
		zap.Int("segments", segs),
		zap.Int("triangles", len(asset.Triangles)),
		zap.Float32("time_step", o.timeStep),
		zap.Int("iterations", o.iterations),
		zap.Int("workers", in.dispatch.workers),
	)
	return in, nil
}

// Asset returns the bound asset.
func (in *Instance) Asset() *Asset { return in.asset }

// Ticks returns the number of committed ticks.
func (in *Instance) Ticks() uint64 { return in.ticks }

// State returns a copy of the committed guide state.
func (in *Instance) State() *GuideState { return in.state.Clone() }

// Reset places every guide back at rest under the settings' model matrix.
// The tick counter and growth bindings are kept.
func (in *Instance) Reset(settings InstanceSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	in.state = newGuideState(in.asset, settings.Visualization.ModelMatrix)
	in.scratch = in.state.Clone()
	return nil
}

// strand returns guide g's view into the scratch state and rest buffers.
func (in *Instance) strand(g int) strand {
	segs := in.scratch.Segments
	lo, hi := g*segs, (g+1)*segs
	return strand{
		pos:     in.scratch.Position[lo:hi],
		prev:    in.scratch.Previous[lo:hi],
		twist:   in.scratch.Twist[lo:hi],
		rest:    in.asset.Positions[lo:hi],
		world:   in.world[lo:hi],
		restLen: in.restLen[g*(segs-1) : (g+1)*(segs-1)],
		bendH0:  in.bendH0[lo:hi],
	}
}

// Tick advances the simulation by one timestep and returns the render frame.
// On error the committed state and tick counter are unchanged.
func (in *Instance) Tick(settings InstanceSettings) (*Frame, error) {
	frame, err := in.tick(&settings)
	if err != nil {
		in.log.Warn("hair tick failed", zap.Uint64("tick", in.ticks+1), zap.Error(err))
		return nil, fmt.Errorf("tick %d: %w", in.ticks+1, err)
	}
	return frame, nil
}

func (in *Instance) tick(settings *InstanceSettings) (*Frame, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	model := settings.Visualization.ModelMatrix
	sim := &settings.Simulation
	bias := sim.bendBias()
	guides := in.scratch.Guides

	in.scratch.copyFrom(in.state)

	err := in.dispatch.run(guides, func(g int) error {
		s := in.strand(g)
		prepareRest(&s, model, bias)
		in.integrator.Step(&s, sim)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("integrate: %w", err)
	}

	err = in.dispatch.run(guides, func(g int) error {
		s := in.strand(g)
		in.solver.Relax(&s, sim)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}

	frame, err := in.interpolate(settings)
	if err != nil {
		return nil, fmt.Errorf("interpolate: %w", err)
	}

	in.state, in.scratch = in.scratch, in.state
	in.ticks++
	frame.Tick = in.ticks

	in.log.Debug("hair tick",
		zap.Uint64("tick", in.ticks),
		zap.Stringer("kind", frame.Kind),
		zap.Int("strands", len(frame.Strands)),
		zap.Int("vertices", frame.VertexCount()),
	)
	return frame, nil
}

// interpolate builds the frame from the scratch state.
func (in *Instance) interpolate(settings *InstanceSettings) (*Frame, error) {
	vis := &settings.Visualization
	frame := &Frame{
		Kind:     FrameHair,
		Material: settings.Material,
	}

	switch {
	case vis.VisualizeGuides:
		frame.Kind = FrameGuides
		frame.Strands = make([]RenderStrand, in.scratch.Guides)
		err := in.dispatch.run(len(frame.Strands), func(g int) error {
			frame.Strands[g] = guideStrand(g, in.scratch, settings.Shape)
			return nil
		})
		if err != nil {
			return nil, err
		}

	case vis.RenderHair:
		samples, err := in.growth.Samples(vis.Density)
		if err != nil {
			return nil, err
		}
		in.interp.bind(samples, vis.Density)

		frame.Strands = make([]RenderStrand, len(samples))
		err = in.dispatch.run(len(samples), func(i int) error {
			frame.Strands[i] = in.interp.strand(samples[i], in.scratch, settings)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	if vis.VisualizeGrowthMesh {
		lines := in.growth.Wireframe()
		frame.GrowthMesh = make([]math.Vec3, len(lines))
		for i, p := range lines {
			frame.GrowthMesh[i] = vis.ModelMatrix.TransformPoint(p)
		}
	}
	return frame, nil
}
