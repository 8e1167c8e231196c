package hair

import (
	"testing"

	"github.com/VincentWang001/hairgl/pkg/math"
)

func TestBindSample_OnRoot(t *testing.T) {
	roots := []math.Vec3{{X: 0}, {X: 1}, {X: 2}, {X: 3}}
	b := bindSample(math.Vec3{X: 2}, roots)

	if b.count != 1 || b.guides[0] != 2 || b.weights[0] != 1 {
		t.Errorf("expected sole binding to guide 2, got %+v", b)
	}
}

func TestBindSample_Nearest(t *testing.T) {
	roots := []math.Vec3{{X: 10}, {X: 1}, {X: -2}, {X: 0.5}, {X: 20}}
	b := bindSample(math.Vec3{}, roots)

	if b.count != 3 {
		t.Fatalf("expected 3 guides, got %d", b.count)
	}
	want := [3]int{3, 1, 2}
	if b.guides != want {
		t.Errorf("expected guides %v, got %v", want, b.guides)
	}

	var sum float32
	for k := 0; k < b.count; k++ {
		sum += b.weights[k]
	}
	if abs(sum-1) > 1e-6 {
		t.Errorf("weights should sum to 1, got %v", sum)
	}
	// Inverse squared distance: 4 : 1 : 0.25
	if abs(b.weights[0]/b.weights[1]-4) > 1e-4 || abs(b.weights[1]/b.weights[2]-4) > 1e-4 {
		t.Errorf("unexpected weights %v", b.weights)
	}
}

func TestBindSample_TiesByGuideIndex(t *testing.T) {
	roots := []math.Vec3{{Z: -1}, {X: 1}, {X: -1}, {Z: 1}}
	b := bindSample(math.Vec3{}, roots)

	if b.guides != [3]int{0, 1, 2} {
		t.Errorf("ties should keep the lowest guide indices, got %v", b.guides)
	}
	for k := 0; k < 3; k++ {
		if abs(b.weights[k]-1.0/3) > 1e-6 {
			t.Errorf("weight %d: expected 1/3, got %v", k, b.weights[k])
		}
	}
}

func TestBindSample_FewGuides(t *testing.T) {
	b := bindSample(math.Vec3{X: 0.5}, []math.Vec3{{}, {X: 1}})
	if b.count != 2 {
		t.Fatalf("expected 2 guides, got %d", b.count)
	}
	if abs(b.weights[0]-0.5) > 1e-6 || abs(b.weights[1]-0.5) > 1e-6 {
		t.Errorf("expected equal weights, got %v", b.weights)
	}
}

func TestInterpolator_Strand(t *testing.T) {
	a := straightAsset(t, 2, 3)
	state := newGuideState(a, math.Identity())
	// Bend guide 1 sideways at the tip.
	state.Position[state.Offset(1, 2)] = math.Vec3{X: 2, Y: 2}

	ip := newInterpolator(a.Roots())
	sample := GrowthSample{Index: 7, Position: math.Vec3{X: 0.5, Z: 1}}
	ip.bind([]GrowthSample{sample}, 1)

	settings := DefaultInstanceSettings()
	rs := ip.strand(sample, state, &settings)

	if rs.Index != 7 {
		t.Errorf("expected index 7, got %d", rs.Index)
	}
	if len(rs.Vertices) != 3 {
		t.Fatalf("expected 3 vertices, got %d", len(rs.Vertices))
	}
	if rs.Vertices[0].Position != sample.Position {
		t.Errorf("strand root: expected %v, got %v", sample.Position, rs.Vertices[0].Position)
	}
	// Equal weights: tip offset is the mean of (0,2,0) and (1,2,0).
	tip := rs.Vertices[2].Position
	want := math.Vec3{X: 1, Y: 2, Z: 1}
	if tip.Distance(want) > 1e-5 {
		t.Errorf("tip: expected %v, got %v", want, tip)
	}
}

func TestInterpolator_StrandTessellatedAndPlaced(t *testing.T) {
	a := straightAsset(t, 1, 4)
	state := newGuideState(a, math.Translate(0, 5, 0))

	ip := newInterpolator(a.Roots())
	sample := GrowthSample{Index: 0}
	ip.bind([]GrowthSample{sample}, 1)

	settings := DefaultInstanceSettings()
	settings.Visualization.ModelMatrix = math.Translate(0, 5, 0)
	settings.Visualization.TesselationFactor = 3
	rs := ip.strand(sample, state, &settings)

	if len(rs.Vertices) != 10 {
		t.Fatalf("expected 10 vertices, got %d", len(rs.Vertices))
	}
	if rs.Vertices[0].Position != (math.Vec3{Y: 5}) {
		t.Errorf("root should follow the model matrix, got %v", rs.Vertices[0].Position)
	}
	if rs.Vertices[9].Position != (math.Vec3{Y: 8}) {
		t.Errorf("tip: expected (0, 8, 0), got %v", rs.Vertices[9].Position)
	}
}

func TestInterpolator_BindingIsCached(t *testing.T) {
	ip := newInterpolator([]math.Vec3{{}, {X: 1}})
	ip.bind([]GrowthSample{{Index: 0, Position: math.Vec3{}}}, 1)

	// A later frame offering a different position for the same index keeps
	// the first binding.
	ip.bind([]GrowthSample{{Index: 0, Position: math.Vec3{X: 1}}}, 1)
	if b := ip.bindings[0]; b.count != 1 || b.guides[0] != 0 {
		t.Errorf("binding changed: %+v", b)
	}
}

func TestInterpolator_DensityChangeRebinds(t *testing.T) {
	ip := newInterpolator([]math.Vec3{{}, {X: 1}})
	ip.bind([]GrowthSample{{Index: 0, Position: math.Vec3{}}}, 1)
	ip.bind([]GrowthSample{{Index: 0, Position: math.Vec3{X: 1}}}, 2)

	if b := ip.bindings[0]; b.count != 1 || b.guides[0] != 1 {
		t.Errorf("expected rebinding to guide 1, got %+v", b)
	}
}

func TestGuideStrand(t *testing.T) {
	a := straightAsset(t, 3, 4)
	state := newGuideState(a, math.Identity())

	rs := guideStrand(2, state, DefaultInstanceSettings().Shape)
	if rs.Index != 2 || len(rs.Vertices) != 4 {
		t.Fatalf("unexpected guide strand: index %d, %d vertices", rs.Index, len(rs.Vertices))
	}
	if rs.Vertices[3].Position != (math.Vec3{X: 2, Y: 3}) {
		t.Errorf("guide tip: got %v", rs.Vertices[3].Position)
	}
}
