package hair

import (
	"errors"
	"testing"

	"github.com/VincentWang001/hairgl/pkg/math"
)

// unitSquare is two right triangles of area 0.5 in the XZ plane.
func unitSquare() *TriangleMesh {
	return NewTriangleMesh(
		[]math.Vec3{{}, {X: 1}, {X: 1, Z: 1}, {Z: 1}},
		[][3]uint32{{0, 1, 2}, {0, 2, 3}},
	)
}

func TestTriangleMesh_Area(t *testing.T) {
	if got := unitSquare().Area(); abs(got-1) > 1e-6 {
		t.Errorf("expected area 1, got %v", got)
	}
}

func TestTriangleMesh_SampleCount(t *testing.T) {
	tests := []struct {
		name    string
		density float32
		want    int
	}{
		{"zero density", 0, 0},
		{"fractional carry", 3, 3}, // 1.5 -> 1, then 1.5 + 0.5 -> 2
		{"default density", 16, 16},
		{"high density", 100, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			samples, err := unitSquare().Samples(tt.density)
			if err != nil {
				t.Fatalf("Samples failed: %v", err)
			}
			if len(samples) != tt.want {
				t.Errorf("expected %d samples, got %d", tt.want, len(samples))
			}
			for i, s := range samples {
				if s.Index != uint32(i) {
					t.Errorf("sample %d has index %d", i, s.Index)
				}
			}
		})
	}
}

func TestTriangleMesh_SamplesInsideTriangles(t *testing.T) {
	samples, err := unitSquare().Samples(200)
	if err != nil {
		t.Fatalf("Samples failed: %v", err)
	}

	const eps = 1e-5
	for _, s := range samples {
		p := s.Position
		if p.Y != 0 || p.X < -eps || p.X > 1+eps || p.Z < -eps || p.Z > 1+eps {
			t.Errorf("sample %d outside the square: %v", s.Index, p)
		}
		if abs(s.Normal.Length()-1) > 1e-5 {
			t.Errorf("sample %d normal not unit: %v", s.Index, s.Normal)
		}
	}
}

func TestTriangleMesh_Deterministic(t *testing.T) {
	a, err := unitSquare().Samples(64)
	if err != nil {
		t.Fatalf("Samples failed: %v", err)
	}
	b, err := unitSquare().Samples(64)
	if err != nil {
		t.Fatalf("Samples failed: %v", err)
	}

	if len(a) != len(b) {
		t.Fatalf("sample counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("sample %d differs: %v vs %v", i, a[i], b[i])
		}
	}

	// Placements are not all the same point.
	if a[0].Position == a[1].Position {
		t.Errorf("samples 0 and 1 coincide at %v", a[0].Position)
	}
}

func TestTriangleMesh_Malformed(t *testing.T) {
	tests := []struct {
		name string
		mesh *TriangleMesh
	}{
		{"index out of range", NewTriangleMesh([]math.Vec3{{}, {X: 1}, {Z: 1}}, [][3]uint32{{0, 1, 3}})},
		{"degenerate", NewTriangleMesh([]math.Vec3{{}, {X: 1}, {X: 2}}, [][3]uint32{{0, 1, 2}})},
		{"repeated vertex", NewTriangleMesh([]math.Vec3{{}, {X: 1}, {Z: 1}}, [][3]uint32{{0, 0, 2}})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.mesh.Samples(16)
			if !errors.Is(err, ErrMalformedGrowthMesh) {
				t.Errorf("expected ErrMalformedGrowthMesh, got %v", err)
			}
		})
	}
}

func TestTriangleMesh_Wireframe(t *testing.T) {
	lines := unitSquare().Wireframe()
	if len(lines) != 12 {
		t.Fatalf("expected 12 line points, got %d", len(lines))
	}
	if lines[0] != (math.Vec3{}) || lines[1] != (math.Vec3{X: 1}) {
		t.Errorf("unexpected first edge: %v -> %v", lines[0], lines[1])
	}
}

func TestRootMesh(t *testing.T) {
	m := &RootMesh{Roots: []math.Vec3{{X: 1}, {X: 2}}}

	samples, err := m.Samples(1000)
	if err != nil {
		t.Fatalf("Samples failed: %v", err)
	}
	if len(samples) != 2 {
		t.Fatalf("expected one sample per root, got %d", len(samples))
	}
	if samples[1].Index != 1 || samples[1].Position != (math.Vec3{X: 2}) {
		t.Errorf("unexpected sample: %+v", samples[1])
	}
	if m.Wireframe() != nil {
		t.Error("root mesh should have no wireframe")
	}
}

func TestHashUnitRange(t *testing.T) {
	for i := uint32(0); i < 1000; i++ {
		u := hashUnit(7, i, i*3, 1)
		if u < 0 || u >= 1 {
			t.Fatalf("hashUnit out of range: %v", u)
		}
	}
}
