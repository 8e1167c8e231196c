package formats

import (
	"errors"
	"testing"
)

func TestNewGridHGL(t *testing.T) {
	h, err := NewGridHGL(GridSpec{Columns: 4, Rows: 3, Vertices: 8, Spacing: 1, Length: 7})
	if err != nil {
		t.Fatalf("NewGridHGL failed: %v", err)
	}

	if h.GuidesCount != 12 {
		t.Errorf("expected 12 guides, got %d", h.GuidesCount)
	}
	if h.SegmentsCount != 7 {
		t.Errorf("expected 7 segments, got %d", h.SegmentsCount)
	}
	if len(h.Vertices) != 96 {
		t.Errorf("expected 96 vertices, got %d", len(h.Vertices))
	}
	// (cols-1)*(rows-1)*2
	if len(h.Triangles) != 12 {
		t.Errorf("expected 12 triangles, got %d", len(h.Triangles))
	}

	// Each segment is Length/(Vertices-1) long
	if d := h.Vertices[1].Distance(h.Vertices[0]); d != 1 {
		t.Errorf("expected segment length 1, got %f", d)
	}

	for i, tri := range h.Triangles {
		for _, idx := range tri {
			if idx >= h.GuidesCount {
				t.Errorf("triangle %d references guide %d of %d", i, idx, h.GuidesCount)
			}
		}
	}
}

func TestNewGridHGL_Invalid(t *testing.T) {
	tests := []struct {
		name string
		spec GridSpec
	}{
		{"no columns", GridSpec{Columns: 0, Rows: 1, Vertices: 4}},
		{"single vertex", GridSpec{Columns: 1, Rows: 1, Vertices: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewGridHGL(tt.spec); !errors.Is(err, ErrInvalidHGLHeader) {
				t.Errorf("expected ErrInvalidHGLHeader, got %v", err)
			}
		})
	}
}

func TestHGL_Bounds(t *testing.T) {
	h, err := NewGridHGL(GridSpec{Columns: 2, Rows: 2, Vertices: 3, Spacing: 2, Length: 4})
	if err != nil {
		t.Fatalf("NewGridHGL failed: %v", err)
	}

	got := h.Bounds()
	want := [6]float32{0, -4, 0, 2, 0, 2}
	if got != want {
		t.Errorf("Bounds: got %v, want %v", got, want)
	}
}
