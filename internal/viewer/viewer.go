// Package viewer implements the interactive hair viewer loop.
package viewer

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/chewxy/math32"
	"github.com/sqweek/dialog"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/VincentWang001/hairgl/internal/assets"
	"github.com/VincentWang001/hairgl/internal/config"
	"github.com/VincentWang001/hairgl/internal/engine/camera"
	"github.com/VincentWang001/hairgl/internal/engine/debug"
	"github.com/VincentWang001/hairgl/internal/engine/input"
	"github.com/VincentWang001/hairgl/internal/engine/renderer"
	"github.com/VincentWang001/hairgl/internal/engine/window"
	"github.com/VincentWang001/hairgl/internal/hair"
	"github.com/VincentWang001/hairgl/internal/logger"
	"github.com/VincentWang001/hairgl/internal/snapshot"
)

// maxTicksPerFrame bounds catch-up after a stall.
const maxTicksPerFrame = 4

// Viewer owns the window, the GL backend and one bound hair instance.
type Viewer struct {
	cfg      *config.Config
	settings hair.InstanceSettings
	running  bool
	paused   bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.OrbitCamera
	assets   *assets.Manager

	instance  *hair.Instance
	assetPath string
	frame     *hair.Frame
	wind      float32 // magnitude restored when wind is toggled back on

	pendingPath chan string
}

// New creates the window and renderer. No asset is bound until Open.
func New(cfg *config.Config) (*Viewer, error) {
	logger.Info("initializing viewer",
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	v := &Viewer{
		cfg:         cfg,
		settings:    cfg.Hair,
		wind:        cfg.Hair.Simulation.WindMagnitude,
		assets:      assets.NewManager(),
		camera:      camera.NewOrbitCamera(),
		input:       input.New(),
		pendingPath: make(chan string, 1),
	}
	if v.wind == 0 {
		v.wind = 1
	}

	var err error
	v.window, err = window.New(window.Config{
		Title:      "hairgl",
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The GL context must exist before the renderer.
	width, height := v.window.DrawableSize()
	v.renderer, err = renderer.New(renderer.Config{Width: width, Height: height})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	logger.Info("viewer initialized successfully")
	return v, nil
}

// Open binds the asset at path, or a generated grid when path is empty.
// The previous instance is kept if binding fails.
func (v *Viewer) Open(path string) error {
	var (
		a   *hair.Asset
		err error
	)
	if path != "" {
		a, err = v.assets.Load(path)
	} else {
		a, err = v.assets.Generate(v.cfg.Asset.Grid.Spec())
	}
	if err != nil {
		return err
	}

	inst, err := hair.Bind(a, v.settings,
		hair.WithLogger(logger.Named("hair")),
		hair.WithTimeStep(v.cfg.Runtime.TimeStep),
		hair.WithIterations(v.cfg.Runtime.Iterations),
		hair.WithWorkers(v.cfg.Runtime.Workers),
	)
	if err != nil {
		return fmt.Errorf("binding %s: %w", displayName(path), err)
	}

	v.instance = inst
	v.assetPath = path
	v.frame = nil

	bounds := debug.TransformBounds(a.Bounds(), v.settings.Visualization.ModelMatrix)
	v.camera.FitToBounds(bounds)
	v.renderer.SetBounds(debug.BBoxWireframe(debug.Pad(bounds, 0.01)))
	v.updateTitle()

	logger.Info("asset opened",
		zap.String("path", displayName(path)),
		zap.Uint32("guides", a.GuidesCount),
		zap.Uint32("points", a.SegmentsCount),
		zap.Int("triangles", len(a.Triangles)),
	)
	return nil
}

// OpenDialog asks for an asset with a native file dialog. The choice is
// picked up by the main loop since SDL and GL calls must stay on the main
// thread.
func (v *Viewer) OpenDialog() {
	go func() {
		filename, err := dialog.File().
			Filter("Hair guides", "hgl").
			Filter("All Files", "*").
			Title("Open Hair Asset").
			Load()
		if err != nil {
			if !errors.Is(err, dialog.ErrCancelled) {
				logger.Warn("file dialog failed", zap.Error(err))
			}
			return
		}
		select {
		case v.pendingPath <- filename:
		default:
		}
	}()
}

// Run starts the main loop.
func (v *Viewer) Run() error {
	v.running = true

	lastTime := time.Now()
	var acc float32
	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting viewer loop")

	for v.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		if v.input.Update() {
			v.running = false
			break
		}
		v.handleEvents()

		select {
		case path := <-v.pendingPath:
			if err := v.Open(path); err != nil {
				logger.Error("failed to open asset", zap.String("path", path), zap.Error(err))
			}
		default:
		}

		if v.instance != nil && !v.paused {
			acc += dt
			step := v.cfg.Runtime.TimeStep
			for n := 0; acc >= step && n < maxTicksPerFrame; n++ {
				if err := v.tick(); err != nil {
					logger.Error("tick failed", zap.Error(err))
					v.paused = true
					break
				}
				acc -= step
			}
			acc = min(acc, step)
		}

		v.render()
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			strands, vertices := v.renderer.Stats()
			logger.Debug("fps",
				zap.Int("count", frameCount),
				zap.Float32("dt_ms", dt*1000),
				zap.Int("strands", strands),
				zap.Int("vertices", vertices),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (v *Viewer) tick() error {
	f, err := v.instance.Tick(v.settings)
	if err != nil {
		return err
	}
	v.frame = f
	return v.renderer.Submit(f)
}

func (v *Viewer) render() {
	aspect := v.renderer.Aspect()
	v.renderer.SetCamera(v.camera.ViewMatrix(), v.camera.ProjectionMatrix(aspect), v.camera.Position())
	v.renderer.Draw()
}

func (v *Viewer) handleEvents() {
	for _, event := range v.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			width, height := v.window.DrawableSize()
			v.renderer.Resize(width, height)
		case input.EventDropFile:
			if err := v.Open(event.Path); err != nil {
				logger.Error("failed to open asset", zap.String("path", event.Path), zap.Error(err))
			}
		case input.EventKeyDown:
			v.handleKey(event.Key)
		}
	}

	if dx, dy := v.input.Drag(); dx != 0 || dy != 0 {
		v.camera.HandleDrag(dx, dy)
	}
	if w := v.input.Wheel(); w != 0 {
		v.camera.HandleZoom(w)
	}
}

func (v *Viewer) handleKey(key sdl.Scancode) {
	vis := &v.settings.Visualization
	switch key {
	case sdl.SCANCODE_ESCAPE:
		v.running = false
	case sdl.SCANCODE_G:
		vis.VisualizeGuides = !vis.VisualizeGuides
	case sdl.SCANCODE_M:
		vis.VisualizeGrowthMesh = !vis.VisualizeGrowthMesh
	case sdl.SCANCODE_H:
		vis.RenderHair = !vis.RenderHair
	case sdl.SCANCODE_W:
		v.toggleWind()
	case sdl.SCANCODE_SPACE:
		v.paused = !v.paused
	case sdl.SCANCODE_EQUALS, sdl.SCANCODE_KP_PLUS:
		vis.Density *= 2
	case sdl.SCANCODE_MINUS, sdl.SCANCODE_KP_MINUS:
		vis.Density = max(vis.Density/2, 0.25)
	case sdl.SCANCODE_R:
		if v.instance != nil {
			if err := v.instance.Reset(v.settings); err != nil {
				logger.Error("reset failed", zap.Error(err))
			}
		}
	case sdl.SCANCODE_O:
		v.OpenDialog()
	case sdl.SCANCODE_F:
		if err := v.window.ToggleFullscreen(); err != nil {
			logger.Warn("fullscreen toggle failed", zap.Error(err))
		}
	case sdl.SCANCODE_F12:
		if err := v.Snapshot(v.cfg.Snapshot.Output); err != nil {
			logger.Error("snapshot failed", zap.Error(err))
		}
	default:
		return
	}
	v.updateTitle()
}

func (v *Viewer) toggleWind() {
	sim := &v.settings.Simulation
	if sim.WindMagnitude != 0 {
		v.wind = sim.WindMagnitude
		sim.WindMagnitude = 0
		return
	}
	sim.WindMagnitude = v.wind
	if sim.Wind.LengthSquared() == 0 {
		sim.Wind.X = 1
	}
}

// Snapshot rasterizes the current frame from the camera's point of view.
func (v *Viewer) Snapshot(path string) error {
	if v.frame == nil {
		return snapshot.ErrNoFrame
	}
	opts := snapshot.DefaultOptions()
	opts.Width = v.cfg.Snapshot.Width
	opts.Height = v.cfg.Snapshot.Height
	opts.StrokeScale = v.cfg.Snapshot.StrokeScale
	opts.View = v.camera.ViewMatrix()
	opts.Eye = v.camera.Position().Sub(v.camera.Center).Normalize()
	// Match the perspective framing at the orbit center.
	extent := 2 * v.camera.Distance * math32.Tan(v.camera.FovY/2)
	opts.Scale = float32(opts.Height) / extent

	r, err := snapshot.New(opts)
	if err != nil {
		return err
	}
	defer r.Close()
	if err := r.Submit(v.frame); err != nil {
		return err
	}
	if err := r.SavePNG(path); err != nil {
		return err
	}
	logger.Info("snapshot saved", zap.String("path", path), zap.Uint64("tick", v.frame.Tick))
	return nil
}

func (v *Viewer) updateTitle() {
	vis := v.settings.Visualization
	mode := "hair"
	switch {
	case vis.VisualizeGuides:
		mode = "guides"
	case !vis.RenderHair:
		mode = "off"
	}
	title := fmt.Sprintf("hairgl - %s [%s, density %g]", displayName(v.assetPath), mode, vis.Density)
	if v.paused {
		title += " (paused)"
	}
	v.window.SetTitle(title)
}

// Close releases viewer resources.
func (v *Viewer) Close() {
	logger.Info("closing viewer")

	v.assets.Close()
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}

func displayName(path string) string {
	if path == "" {
		return "generated grid"
	}
	return filepath.Base(path)
}
