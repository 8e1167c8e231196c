package hair

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/VincentWang001/hairgl/pkg/math"
)

// GrowthSample is one point on the growth mesh where a render strand is rooted.
// Index is stable across frames for the same mesh and density.
type GrowthSample struct {
	Index    uint32
	Position math.Vec3 // model space
	Normal   math.Vec3
}

// GrowthMesh is the surface render strands grow from.
type GrowthMesh interface {
	// Samples returns the strand roots for the given density (strands per
	// unit area).
	Samples(density float32) ([]GrowthSample, error)

	// Wireframe returns the mesh edges as a line list in model space
	// (two points per edge).
	Wireframe() []math.Vec3
}

// TriangleMesh is a growth mesh triangulated over the guide roots, as stored
// in HGL files.
type TriangleMesh struct {
	Vertices  []math.Vec3
	Triangles [][3]uint32
	Seed      uint32

	cachedDensity float32
	cached        []GrowthSample
}

// NewTriangleMesh builds a growth mesh. Indices are checked when sampling.
func NewTriangleMesh(vertices []math.Vec3, triangles [][3]uint32) *TriangleMesh {
	return &TriangleMesh{Vertices: vertices, Triangles: triangles}
}

// Area returns the total surface area.
func (m *TriangleMesh) Area() float32 {
	var area float32
	for _, tri := range m.Triangles {
		if a, b, c, ok := m.corners(tri); ok {
			area += triangleArea(a, b, c)
		}
	}
	return area
}

// Samples distributes density*area strand roots over the triangles. Each
// triangle receives floor(density*area + carry) samples, carrying the
// fractional remainder to the next triangle, and places them with a stable
// integer hash of (triangle, sample) so repeated calls agree exactly.
func (m *TriangleMesh) Samples(density float32) ([]GrowthSample, error) {
	if m.cached != nil && m.cachedDensity == density {
		return m.cached, nil
	}

	var samples []GrowthSample
	var carry float32
	for t, tri := range m.Triangles {
		a, b, c, ok := m.corners(tri)
		if !ok {
			return nil, fmt.Errorf("%w: triangle %d indices %v out of range (%d vertices)",
				ErrMalformedGrowthMesh, t, tri, len(m.Vertices))
		}
		cross := b.Sub(a).Cross(c.Sub(a))
		area := cross.Length() / 2
		if area == 0 || math32.IsNaN(area) || math32.IsInf(area, 0) {
			return nil, fmt.Errorf("%w: triangle %d is degenerate", ErrMalformedGrowthMesh, t)
		}
		normal := cross.Scale(1 / (2 * area))

		exact := density*area + carry
		count := int(math32.Floor(exact))
		carry = exact - float32(count)

		for k := 0; k < count; k++ {
			u := hashUnit(m.Seed, uint32(t), uint32(k), 0)
			v := hashUnit(m.Seed, uint32(t), uint32(k), 1)
			if u+v > 1 {
				u, v = 1-u, 1-v
			}
			samples = append(samples, GrowthSample{
				Index:    uint32(len(samples)),
				Position: a.Add(b.Sub(a).Scale(u)).Add(c.Sub(a).Scale(v)),
				Normal:   normal,
			})
		}
	}

	m.cachedDensity = density
	m.cached = samples
	return samples, nil
}

// Wireframe returns the triangle edges as a line list.
func (m *TriangleMesh) Wireframe() []math.Vec3 {
	lines := make([]math.Vec3, 0, len(m.Triangles)*6)
	for _, tri := range m.Triangles {
		a, b, c, ok := m.corners(tri)
		if !ok {
			continue
		}
		lines = append(lines, a, b, b, c, c, a)
	}
	return lines
}

func (m *TriangleMesh) corners(tri [3]uint32) (a, b, c math.Vec3, ok bool) {
	n := uint32(len(m.Vertices))
	if tri[0] >= n || tri[1] >= n || tri[2] >= n {
		return a, b, c, false
	}
	return m.Vertices[tri[0]], m.Vertices[tri[1]], m.Vertices[tri[2]], true
}

// RootMesh grows exactly one strand at every guide root. It is the fallback
// for assets that carry no triangles; density is ignored.
type RootMesh struct {
	Roots []math.Vec3
}

// Samples returns one sample per root, indexed by guide.
func (m *RootMesh) Samples(float32) ([]GrowthSample, error) {
	samples := make([]GrowthSample, len(m.Roots))
	for i, r := range m.Roots {
		samples[i] = GrowthSample{Index: uint32(i), Position: r, Normal: math.Vec3{Y: 1}}
	}
	return samples, nil
}

// Wireframe returns nothing: a root set has no edges.
func (m *RootMesh) Wireframe() []math.Vec3 { return nil }

func triangleArea(a, b, c math.Vec3) float32 {
	return b.Sub(a).Cross(c.Sub(a)).Length() / 2
}

// hash32 is a murmur-style finalizer; stable across platforms and releases.
func hash32(x uint32) uint32 {
	x ^= x >> 16
	x *= 0x7feb352d
	x ^= x >> 15
	x *= 0x846ca68b
	x ^= x >> 16
	return x
}

// hashUnit maps (seed, a, b, c) to [0, 1).
func hashUnit(seed, a, b, c uint32) float32 {
	h := seed
	h ^= a * 0x9e3779b1
	h = hash32(h)
	h ^= b * 0x85ebca6b
	h = hash32(h)
	h ^= c * 0xc2b2ae35
	h = hash32(h)
	return float32(h>>8) / (1 << 24)
}
