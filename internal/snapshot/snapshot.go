// Package snapshot renders hair frames offline to PNG images.
package snapshot

import (
	"errors"
	"fmt"
	"io"

	"github.com/gogpu/gg"

	"github.com/VincentWang001/hairgl/internal/engine/lighting"
	"github.com/VincentWang001/hairgl/internal/hair"
	"github.com/VincentWang001/hairgl/pkg/math"
)

// ErrNoFrame is returned when saving before any frame was submitted.
var ErrNoFrame = errors.New("snapshot: no frame submitted")

// Options configures the orthographic projection and styling.
type Options struct {
	Width, Height int
	Scale         float32   // pixels per world unit
	StrokeScale   float32   // pixels per unit of strand width
	Center        math.Vec3 // world point at the image center
	View          math.Mat4 // applied before dropping Z

	Light lighting.Light
	Eye   math.Vec3 // world direction toward the viewer, for highlights

	Background gg.RGBA
	GuideColor gg.RGBA
	MeshColor  gg.RGBA
}

// DefaultOptions returns a front view on a white background.
func DefaultOptions() Options {
	return Options{
		Width:       800,
		Height:      800,
		Scale:       300,
		StrokeScale: 1000,
		View:        math.Identity(),
		Light:       lighting.DefaultLight(),
		Eye:         math.Vec3{Z: 1},
		Background:  gg.RGB(1, 1, 1),
		GuideColor:  gg.RGB(0.85, 0.1, 0.1),
		MeshColor:   gg.RGBA2(0.2, 0.4, 0.9, 0.6),
	}
}

// minStroke keeps sub-pixel strands visible.
const minStroke = 1.0

// Renderer is a hair.Backend that rasterizes each submitted frame into an
// image, replacing the previous one.
type Renderer struct {
	opts   Options
	ctx    *gg.Context
	frames int
}

// New creates a renderer with its own canvas.
func New(opts Options) (*Renderer, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("snapshot: invalid size %dx%d", opts.Width, opts.Height)
	}
	if !(opts.Scale > 0) {
		return nil, fmt.Errorf("snapshot: invalid scale %v", opts.Scale)
	}
	return &Renderer{
		opts: opts,
		ctx:  gg.NewContext(opts.Width, opts.Height),
	}, nil
}

// Submit draws f.
func (r *Renderer) Submit(f *hair.Frame) error {
	r.ctx.ClearWithColor(r.opts.Background)
	r.ctx.SetLineCap(gg.LineCapRound)

	if len(f.GrowthMesh) > 0 {
		c := r.opts.MeshColor
		r.ctx.SetRGBA(c.R, c.G, c.B, c.A)
		r.ctx.SetLineWidth(minStroke)
		for i := 0; i+1 < len(f.GrowthMesh); i += 2 {
			ax, ay := r.project(f.GrowthMesh[i])
			bx, by := r.project(f.GrowthMesh[i+1])
			r.ctx.DrawLine(ax, ay, bx, by)
		}
		if err := r.ctx.Stroke(); err != nil {
			return fmt.Errorf("snapshot: growth mesh: %w", err)
		}
	}

	shade := f.Kind == hair.FrameHair
	if !shade {
		c := r.opts.GuideColor
		r.ctx.SetRGBA(c.R, c.G, c.B, c.A)
	}

	for i := range f.Strands {
		if err := r.drawStrand(&f.Strands[i], f.Material, shade); err != nil {
			return fmt.Errorf("snapshot: strand %d: %w", f.Strands[i].Index, err)
		}
	}

	r.frames++
	return nil
}

// drawStrand strokes every segment at the mean width of its end vertices,
// lit with the material when shade is set.
func (r *Renderer) drawStrand(s *hair.RenderStrand, m hair.MaterialConfig, shade bool) error {
	alpha := float64(m.Color.W)
	if alpha <= 0 {
		alpha = 1
	}
	for i := 0; i+1 < len(s.Vertices); i++ {
		a, b := &s.Vertices[i], &s.Vertices[i+1]
		ax, ay := r.project(a.Position)
		bx, by := r.project(b.Position)

		if shade {
			c := lighting.ShadeStrand(m, r.opts.Light, b.Position.Sub(a.Position).Normalize(), r.opts.Eye)
			r.ctx.SetRGBA(float64(c.X), float64(c.Y), float64(c.Z), alpha)
		}

		w := float64((a.Width + b.Width) / 2 * r.opts.StrokeScale)
		r.ctx.SetLineWidth(max(w, minStroke))
		r.ctx.DrawLine(ax, ay, bx, by)
		if err := r.ctx.Stroke(); err != nil {
			return err
		}
	}
	return nil
}

// project maps a world point to pixel coordinates, Y up.
func (r *Renderer) project(p math.Vec3) (x, y float64) {
	v := r.opts.View.TransformPoint(p).Sub(r.opts.Center)
	x = float64(r.opts.Width)/2 + float64(v.X*r.opts.Scale)
	y = float64(r.opts.Height)/2 - float64(v.Y*r.opts.Scale)
	return x, y
}

// Frames returns the number of frames drawn.
func (r *Renderer) Frames() int { return r.frames }

// SavePNG writes the last frame to path.
func (r *Renderer) SavePNG(path string) error {
	if r.frames == 0 {
		return ErrNoFrame
	}
	return r.ctx.SavePNG(path)
}

// EncodePNG writes the last frame to w.
func (r *Renderer) EncodePNG(w io.Writer) error {
	if r.frames == 0 {
		return ErrNoFrame
	}
	return r.ctx.EncodePNG(w)
}

// Close releases the canvas.
func (r *Renderer) Close() error {
	return r.ctx.Close()
}
