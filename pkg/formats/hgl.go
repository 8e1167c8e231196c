package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/VincentWang001/hairgl/pkg/math"
)

// HGL format errors.
var (
	ErrTruncatedHGLData   = errors.New("truncated HGL data")
	ErrInvalidHGLHeader   = errors.New("invalid HGL header")
	ErrInvalidHGLTriangle = errors.New("HGL triangle references unknown guide")
)

// hglHeaderSize is three little-endian int32 counts.
const hglHeaderSize = 12

// Upper bounds that keep a corrupt header from triggering huge allocations.
const (
	maxHGLGuides    = 1 << 20
	maxHGLSegments  = 1 << 12
	maxHGLTriangles = 1 << 22
)

// HGL is a parsed HairGL guide file.
//
// Layout (all little-endian):
//
//	int32   guidesCount
//	int32   segmentsCount      (vertices per strand - 1)
//	int32   trianglesCount
//	float32 x, y, z            guidesCount * (segmentsCount+1) times, guide-major
//	int32   a, b, c            trianglesCount times, indices into the guide list
//
// The triangles are the growth mesh: a triangulation over the guide roots.
type HGL struct {
	GuidesCount   uint32
	SegmentsCount uint32
	Vertices      []math.Vec3
	Triangles     [][3]uint32
}

// VerticesPerStrand returns the number of control points stored per guide.
func (h *HGL) VerticesPerStrand() uint32 {
	return h.SegmentsCount + 1
}

// Root returns the first vertex of the given guide.
func (h *HGL) Root(guide int) math.Vec3 {
	return h.Vertices[guide*int(h.VerticesPerStrand())]
}

// ParseHGL parses an HGL file from raw bytes.
func ParseHGL(data []byte) (*HGL, error) {
	if len(data) < hglHeaderSize {
		return nil, ErrTruncatedHGLData
	}

	r := bytes.NewReader(data)

	var header [3]int32
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("%w: reading header", ErrTruncatedHGLData)
	}
	guides, segments, triangles := header[0], header[1], header[2]

	if guides <= 0 || guides > maxHGLGuides {
		return nil, fmt.Errorf("%w: guides count %d", ErrInvalidHGLHeader, guides)
	}
	if segments <= 0 || segments > maxHGLSegments {
		return nil, fmt.Errorf("%w: segments count %d", ErrInvalidHGLHeader, segments)
	}
	if triangles < 0 || triangles > maxHGLTriangles {
		return nil, fmt.Errorf("%w: triangles count %d", ErrInvalidHGLHeader, triangles)
	}

	h := &HGL{
		GuidesCount:   uint32(guides),
		SegmentsCount: uint32(segments),
	}

	vertexCount := int(guides) * int(segments+1)
	want := hglHeaderSize + vertexCount*12 + int(triangles)*12
	if len(data) < want {
		return nil, fmt.Errorf("%w: need %d bytes, have %d", ErrTruncatedHGLData, want, len(data))
	}

	h.Vertices = make([]math.Vec3, vertexCount)
	if err := binary.Read(r, binary.LittleEndian, h.Vertices); err != nil {
		return nil, fmt.Errorf("%w: reading vertices", ErrTruncatedHGLData)
	}

	h.Triangles = make([][3]uint32, triangles)
	for i := range h.Triangles {
		var tri [3]int32
		if err := binary.Read(r, binary.LittleEndian, &tri); err != nil {
			return nil, fmt.Errorf("%w: reading triangle %d", ErrTruncatedHGLData, i)
		}
		for k, idx := range tri {
			if idx < 0 || idx >= guides {
				return nil, fmt.Errorf("%w: triangle %d index %d", ErrInvalidHGLTriangle, i, idx)
			}
			h.Triangles[i][k] = uint32(idx)
		}
	}

	return h, nil
}

// ParseHGLFile parses an HGL file from disk.
func ParseHGLFile(path string) (*HGL, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading HGL file: %w", err)
	}
	return ParseHGL(data)
}

// Encode writes h in HGL layout.
func (h *HGL) Encode(w io.Writer) error {
	want := int(h.GuidesCount) * int(h.VerticesPerStrand())
	if len(h.Vertices) != want {
		return fmt.Errorf("%w: %d vertices for %d guides of %d", ErrInvalidHGLHeader, len(h.Vertices), h.GuidesCount, h.VerticesPerStrand())
	}

	header := [3]int32{int32(h.GuidesCount), int32(h.SegmentsCount), int32(len(h.Triangles))}
	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, h.Vertices); err != nil {
		return err
	}
	for _, tri := range h.Triangles {
		if err := binary.Write(w, binary.LittleEndian, [3]int32{int32(tri[0]), int32(tri[1]), int32(tri[2])}); err != nil {
			return err
		}
	}
	return nil
}

// WriteHGLFile writes h to path.
func WriteHGLFile(path string, h *HGL) error {
	var buf bytes.Buffer
	if err := h.Encode(&buf); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}
