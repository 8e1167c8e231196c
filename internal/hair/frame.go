package hair

import (
	"github.com/VincentWang001/hairgl/pkg/math"
)

// FrameKind tells the backend what the strands in a frame represent.
type FrameKind int

const (
	FrameHair   FrameKind = iota // interpolated render strands
	FrameGuides                  // raw simulated guides
)

// String returns a human-readable kind name.
func (k FrameKind) String() string {
	switch k {
	case FrameHair:
		return "hair"
	case FrameGuides:
		return "guides"
	default:
		return "unknown"
	}
}

// RenderVertex is one tessellated strand vertex.
type RenderVertex struct {
	Position math.Vec3
	Tangent  math.Vec3
	Width    float32
	Fraction float32 // normalized arc length, 0 at root, 1 at tip
	Twist    float32
}

// RenderStrand is a densified strand. Index is the growth sample index for
// hair frames and the guide index for guide frames.
type RenderStrand struct {
	Index    uint32
	Vertices []RenderVertex
}

// Frame is the render-ready output of one tick.
type Frame struct {
	Tick       uint64
	Kind       FrameKind
	Strands    []RenderStrand
	GrowthMesh []math.Vec3 // line list, world space; empty unless visualized
	Material   MaterialConfig
}

// VertexCount returns the total number of strand vertices.
func (f *Frame) VertexCount() int {
	n := 0
	for i := range f.Strands {
		n += len(f.Strands[i].Vertices)
	}
	return n
}

// Backend consumes frames. The core issues no draw calls itself.
type Backend interface {
	Submit(frame *Frame) error
}

// buildVertices attaches tangents, arc-length fractions and widths to a
// polyline.
func buildVertices(points []math.Vec3, twist []float32, shape ShapeConfig) []RenderVertex {
	n := len(points)
	verts := make([]RenderVertex, n)
	if n == 0 {
		return verts
	}

	cum := make([]float32, n)
	for i := 1; i < n; i++ {
		cum[i] = cum[i-1] + points[i].Distance(points[i-1])
	}
	total := cum[n-1]

	for i := range verts {
		var frac float32
		switch {
		case i == n-1:
			frac = 1
		case total > 0:
			frac = cum[i] / total
		case n > 1:
			frac = float32(i) / float32(n-1)
		}

		prev, next := max(i-1, 0), min(i+1, n-1)
		verts[i] = RenderVertex{
			Position: points[i],
			Tangent:  points[next].Sub(points[prev]).Normalize(),
			Width:    shape.Width(frac),
			Fraction: frac,
			Twist:    twist[i],
		}
	}
	return verts
}
