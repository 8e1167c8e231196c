package debug

import (
	"github.com/VincentWang001/hairgl/internal/hair"
	"github.com/VincentWang001/hairgl/pkg/math"
)

// StrandVertexFloats is the per-vertex layout of StrandBatch.Vertices:
// position xyz, tangent xyz, arc-length fraction, width.
const StrandVertexFloats = 8

// StrandBatch is a frame flattened for one multi-draw of line strips.
type StrandBatch struct {
	Vertices []float32
	Firsts   []int32 // first vertex of each strip
	Counts   []int32 // vertices per strip
}

// Reset empties the batch, keeping its storage.
func (b *StrandBatch) Reset() {
	b.Vertices = b.Vertices[:0]
	b.Firsts = b.Firsts[:0]
	b.Counts = b.Counts[:0]
}

// Pack appends every strand of f with at least two vertices.
func (b *StrandBatch) Pack(f *hair.Frame) {
	for i := range f.Strands {
		verts := f.Strands[i].Vertices
		if len(verts) < 2 {
			continue
		}
		b.Firsts = append(b.Firsts, int32(len(b.Vertices)/StrandVertexFloats))
		b.Counts = append(b.Counts, int32(len(verts)))
		for _, v := range verts {
			b.Vertices = append(b.Vertices,
				v.Position.X, v.Position.Y, v.Position.Z,
				v.Tangent.X, v.Tangent.Y, v.Tangent.Z,
				v.Fraction, v.Width)
		}
	}
}

// VertexCount returns the number of packed vertices.
func (b *StrandBatch) VertexCount() int {
	return len(b.Vertices) / StrandVertexFloats
}

// FlattenLines converts a point line list into [x, y, z] floats.
func FlattenLines(points []math.Vec3) []float32 {
	out := make([]float32, 0, len(points)*3)
	for _, p := range points {
		out = append(out, p.X, p.Y, p.Z)
	}
	return out
}
