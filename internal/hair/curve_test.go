package hair

import (
	"testing"

	"github.com/VincentWang001/hairgl/pkg/math"
)

func TestSubdivisions(t *testing.T) {
	tests := []struct {
		factor float32
		want   int
	}{
		{0, 1},
		{0.4, 1},
		{1, 1},
		{1.4, 1},
		{1.5, 2},
		{3, 3},
		{7.6, 8},
	}

	for _, tt := range tests {
		if got := subdivisions(tt.factor); got != tt.want {
			t.Errorf("subdivisions(%v): expected %d, got %d", tt.factor, tt.want, got)
		}
	}
}

func TestTessellate_Count(t *testing.T) {
	points := verticalRest(4)
	twist := make([]float32, 4)

	for _, sub := range []int{1, 2, 3, 8} {
		p, tw := tessellate(points, twist, sub)
		want := 3*sub + 1
		if len(p) != want || len(tw) != want {
			t.Errorf("sub=%d: expected %d points, got %d (twist %d)", sub, want, len(p), len(tw))
		}
	}
}

func TestTessellate_PassesThroughControlPoints(t *testing.T) {
	points := []math.Vec3{{}, {X: 0.3, Y: 1}, {X: -0.2, Y: 2, Z: 0.5}, {X: 1, Y: 2.5}}
	twist := []float32{0, 0.1, 0.2, 0.4}
	const sub = 4

	p, tw := tessellate(points, twist, sub)
	for i := range points {
		if p[i*sub] != points[i] {
			t.Errorf("control point %d: expected %v, got %v", i, points[i], p[i*sub])
		}
		if tw[i*sub] != twist[i] {
			t.Errorf("twist %d: expected %v, got %v", i, twist[i], tw[i*sub])
		}
	}
}

func TestTessellate_StraightLineStaysStraight(t *testing.T) {
	p, _ := tessellate(verticalRest(3), make([]float32, 3), 4)

	for i, v := range p {
		if v.X != 0 || v.Z != 0 {
			t.Errorf("point %d left the line: %v", i, v)
		}
		if want := float32(i) / 4; abs(v.Y-want) > 1e-5 {
			t.Errorf("point %d: expected y %v, got %v", i, want, v.Y)
		}
	}
}

func TestTessellate_NoSubdivisionCopies(t *testing.T) {
	points := verticalRest(3)
	p, _ := tessellate(points, make([]float32, 3), 1)

	p[0] = math.Vec3{X: 9}
	if points[0] != (math.Vec3{}) {
		t.Error("tessellate must not alias its input")
	}
}
