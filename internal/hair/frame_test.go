package hair

import (
	"testing"

	"github.com/VincentWang001/hairgl/pkg/math"
)

func TestFrameKind_String(t *testing.T) {
	tests := []struct {
		kind FrameKind
		want string
	}{
		{FrameHair, "hair"},
		{FrameGuides, "guides"},
		{FrameKind(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("FrameKind(%d): expected %q, got %q", tt.kind, tt.want, got)
		}
	}
}

func TestFrame_VertexCount(t *testing.T) {
	f := &Frame{Strands: []RenderStrand{
		{Vertices: make([]RenderVertex, 3)},
		{Vertices: make([]RenderVertex, 5)},
	}}
	if got := f.VertexCount(); got != 8 {
		t.Errorf("expected 8 vertices, got %d", got)
	}
}

func TestBuildVertices(t *testing.T) {
	shape := DefaultInstanceSettings().Shape
	points := verticalRest(5)
	twist := []float32{0, 0, 0, 0, 0.5}

	verts := buildVertices(points, twist, shape)
	if len(verts) != 5 {
		t.Fatalf("expected 5 vertices, got %d", len(verts))
	}

	if verts[0].Fraction != 0 || verts[4].Fraction != 1 {
		t.Errorf("fractions should span [0, 1]: %v .. %v", verts[0].Fraction, verts[4].Fraction)
	}
	if verts[2].Fraction != 0.5 {
		t.Errorf("middle fraction: expected 0.5, got %v", verts[2].Fraction)
	}
	if verts[0].Width != shape.RootWidth || verts[4].Width != shape.TipWidth {
		t.Errorf("widths: root %v tip %v", verts[0].Width, verts[4].Width)
	}
	if verts[4].Twist != 0.5 {
		t.Errorf("twist not carried: %v", verts[4].Twist)
	}
	for i, v := range verts {
		if v.Tangent != (math.Vec3{Y: 1}) {
			t.Errorf("vertex %d tangent: expected +Y, got %v", i, v.Tangent)
		}
		if v.Position != points[i] {
			t.Errorf("vertex %d position: got %v", i, v.Position)
		}
	}
}

func TestBuildVertices_Collapsed(t *testing.T) {
	points := []math.Vec3{{}, {}, {}}
	verts := buildVertices(points, make([]float32, 3), DefaultInstanceSettings().Shape)

	if verts[1].Fraction != 0.5 || verts[2].Fraction != 1 {
		t.Errorf("collapsed strand should fall back to index fractions: %v %v", verts[1].Fraction, verts[2].Fraction)
	}
	if verts[1].Tangent != (math.Vec3{}) {
		t.Errorf("collapsed tangent should be zero, got %v", verts[1].Tangent)
	}
}
