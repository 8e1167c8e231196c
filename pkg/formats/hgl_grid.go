package formats

import (
	"fmt"

	"github.com/VincentWang001/hairgl/pkg/math"
)

// GridSpec describes a synthetic patch of straight guides.
type GridSpec struct {
	Columns  int     // guides along X
	Rows     int     // guides along Z
	Vertices int     // control points per guide
	Spacing  float32 // distance between neighbouring roots
	Length   float32 // strand length, hanging along -Y
}

// NewGridHGL builds a rows x columns patch of straight guides rooted on the
// XZ plane, with two root triangles per grid cell.
func NewGridHGL(spec GridSpec) (*HGL, error) {
	if spec.Columns < 1 || spec.Rows < 1 {
		return nil, fmt.Errorf("%w: grid %dx%d", ErrInvalidHGLHeader, spec.Columns, spec.Rows)
	}
	if spec.Vertices < 2 {
		return nil, fmt.Errorf("%w: %d vertices per strand", ErrInvalidHGLHeader, spec.Vertices)
	}

	guides := spec.Columns * spec.Rows
	h := &HGL{
		GuidesCount:   uint32(guides),
		SegmentsCount: uint32(spec.Vertices - 1),
		Vertices:      make([]math.Vec3, 0, guides*spec.Vertices),
	}

	step := spec.Length / float32(spec.Vertices-1)
	for row := 0; row < spec.Rows; row++ {
		for col := 0; col < spec.Columns; col++ {
			root := math.Vec3{X: float32(col) * spec.Spacing, Z: float32(row) * spec.Spacing}
			for v := 0; v < spec.Vertices; v++ {
				h.Vertices = append(h.Vertices, math.Vec3{X: root.X, Y: -float32(v) * step, Z: root.Z})
			}
		}
	}

	for row := 0; row+1 < spec.Rows; row++ {
		for col := 0; col+1 < spec.Columns; col++ {
			a := uint32(row*spec.Columns + col)
			b := a + 1
			c := a + uint32(spec.Columns)
			d := c + 1
			h.Triangles = append(h.Triangles, [3]uint32{a, b, c}, [3]uint32{b, d, c})
		}
	}

	return h, nil
}

// Bounds returns the axis-aligned box around all vertices as
// [minX, minY, minZ, maxX, maxY, maxZ].
func (h *HGL) Bounds() [6]float32 {
	if len(h.Vertices) == 0 {
		return [6]float32{}
	}
	v0 := h.Vertices[0]
	b := [6]float32{v0.X, v0.Y, v0.Z, v0.X, v0.Y, v0.Z}
	for _, v := range h.Vertices[1:] {
		b[0] = min(b[0], v.X)
		b[1] = min(b[1], v.Y)
		b[2] = min(b[2], v.Z)
		b[3] = max(b[3], v.X)
		b[4] = max(b[4], v.Y)
		b[5] = max(b[5], v.Z)
	}
	return b
}
