package debug

import (
	"testing"

	"github.com/VincentWang001/hairgl/internal/hair"
	"github.com/VincentWang001/hairgl/pkg/math"
)

func TestBBoxWireframe(t *testing.T) {
	verts := BBoxWireframe([6]float32{-1, -2, -3, 1, 2, 3})
	if len(verts) != BBoxWireframeVertexCount*3 {
		t.Fatalf("expected %d floats, got %d", BBoxWireframeVertexCount*3, len(verts))
	}
	for i := 0; i < len(verts); i += 3 {
		x, y, z := verts[i], verts[i+1], verts[i+2]
		if (x != -1 && x != 1) || (y != -2 && y != 2) || (z != -3 && z != 3) {
			t.Errorf("vertex %d is not a box corner: (%v, %v, %v)", i/3, x, y, z)
		}
	}
}

func TestTransformBounds(t *testing.T) {
	b := TransformBounds([6]float32{0, -1, 0, 1, 0, 2}, math.Translate(10, 0, 0))
	want := [6]float32{10, -1, 0, 11, 0, 2}
	if b != want {
		t.Errorf("expected %v, got %v", want, b)
	}

	// A half turn about Y swaps the X and Z extents' signs.
	b = TransformBounds([6]float32{0, 0, 0, 1, 1, 2}, math.Scale(-1, 1, -1))
	want = [6]float32{-1, 0, -2, 0, 1, 0}
	if b != want {
		t.Errorf("expected %v, got %v", want, b)
	}
}

func TestPad(t *testing.T) {
	b := Pad([6]float32{0, 0, 0, 1, 1, 1}, 0.5)
	if b != [6]float32{-0.5, -0.5, -0.5, 1.5, 1.5, 1.5} {
		t.Errorf("unexpected padded box %v", b)
	}
}

func TestStrandBatch_Pack(t *testing.T) {
	f := &hair.Frame{Strands: []hair.RenderStrand{
		{Vertices: []hair.RenderVertex{{Position: math.Vec3{X: 1}}, {Position: math.Vec3{X: 2}, Tangent: math.Vec3{Y: 1}, Fraction: 1, Width: 0.5}}},
		{Vertices: []hair.RenderVertex{{}}}, // too short to draw
		{Vertices: make([]hair.RenderVertex, 3)},
	}}

	var b StrandBatch
	b.Pack(f)

	if b.VertexCount() != 5 {
		t.Fatalf("expected 5 vertices, got %d", b.VertexCount())
	}
	if len(b.Firsts) != 2 || b.Firsts[0] != 0 || b.Firsts[1] != 2 {
		t.Errorf("unexpected firsts %v", b.Firsts)
	}
	if len(b.Counts) != 2 || b.Counts[0] != 2 || b.Counts[1] != 3 {
		t.Errorf("unexpected counts %v", b.Counts)
	}
	second := b.Vertices[StrandVertexFloats : 2*StrandVertexFloats]
	if second[0] != 2 || second[4] != 1 || second[6] != 1 || second[7] != 0.5 {
		t.Errorf("unexpected second vertex %v", second)
	}

	b.Reset()
	if b.VertexCount() != 0 || len(b.Firsts) != 0 {
		t.Error("Reset should empty the batch")
	}
}

func TestFlattenLines(t *testing.T) {
	out := FlattenLines([]math.Vec3{{X: 1, Y: 2, Z: 3}, {X: 4, Y: 5, Z: 6}})
	want := []float32{1, 2, 3, 4, 5, 6}
	if len(out) != len(want) {
		t.Fatalf("expected %d floats, got %d", len(want), len(out))
	}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("float %d: expected %v, got %v", i, want[i], out[i])
		}
	}
}
