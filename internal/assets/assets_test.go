package assets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/VincentWang001/hairgl/pkg/formats"
)

func writeGrid(t *testing.T, path string) {
	t.Helper()
	h, err := formats.NewGridHGL(formats.GridSpec{Columns: 2, Rows: 2, Vertices: 4, Spacing: 0.5, Length: 1})
	if err != nil {
		t.Fatalf("NewGridHGL failed: %v", err)
	}
	if err := formats.WriteHGLFile(path, h); err != nil {
		t.Fatalf("WriteHGLFile failed: %v", err)
	}
}

func TestManager_LoadFromSearchDir(t *testing.T) {
	low, high := t.TempDir(), t.TempDir()
	writeGrid(t, filepath.Join(low, "scalp.hgl"))
	writeGrid(t, filepath.Join(high, "scalp.hgl"))

	m := NewManager()
	defer m.Close()
	for _, dir := range []string{low, high} {
		if err := m.AddSearchDir(dir); err != nil {
			t.Fatalf("AddSearchDir failed: %v", err)
		}
	}

	resolved, err := m.resolve("scalp.hgl")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if filepath.Dir(resolved) != high {
		t.Errorf("expected last added dir to win, got %s", resolved)
	}

	a, err := m.Load("scalp.hgl")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if a.GuidesCount != 4 || a.SegmentsCount != 4 {
		t.Errorf("unexpected asset shape: %d guides, %d points", a.GuidesCount, a.SegmentsCount)
	}
	if len(a.Triangles) != 2 {
		t.Errorf("expected 2 root triangles, got %d", len(a.Triangles))
	}

	again, err := m.Load("scalp.hgl")
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if again != a {
		t.Error("second Load should return the cached asset")
	}
	if hits, misses := m.cache.Stats(); hits != 1 || misses != 1 {
		t.Errorf("expected 1 hit and 1 miss, got %d and %d", hits, misses)
	}
}

func TestManager_LoadErrors(t *testing.T) {
	dir := t.TempDir()
	m := NewManager()
	if err := m.AddSearchDir(dir); err != nil {
		t.Fatalf("AddSearchDir failed: %v", err)
	}

	if _, err := m.Load("missing.hgl"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	bad := filepath.Join(dir, "bad.hgl")
	if err := os.WriteFile(bad, []byte{1, 0, 0}, 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	if _, err := m.Load(bad); !errors.Is(err, formats.ErrTruncatedHGLData) {
		t.Errorf("expected ErrTruncatedHGLData, got %v", err)
	}

	if err := m.AddSearchDir(bad); err == nil {
		t.Error("expected error adding a file as search dir")
	}
}

func TestManager_Generate(t *testing.T) {
	m := NewManager()
	spec := formats.GridSpec{Columns: 3, Rows: 2, Vertices: 5, Spacing: 0.1, Length: 1}

	a, err := m.Generate(spec)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if a.GuidesCount != 6 || a.SegmentsCount != 5 {
		t.Errorf("unexpected asset shape: %d guides, %d points", a.GuidesCount, a.SegmentsCount)
	}

	b, err := m.Generate(spec)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if a != b {
		t.Error("identical grid specs should share one asset")
	}

	spec.Vertices = 1
	if _, err := m.Generate(spec); !errors.Is(err, formats.ErrInvalidHGLHeader) {
		t.Errorf("expected ErrInvalidHGLHeader, got %v", err)
	}
}
