// Package hair implements guide-hair dynamics and the guide-to-render
// interpolation stage.
//
// A tick runs three stages, each dispatched in parallel with a barrier in
// between: the Integrator advances every guide, the Solver relaxes stretch,
// bend and twist constraints per guide, and the interpolator expands the
// guides into render strands bound to a growth mesh. Guides never interact,
// so every stage writes disjoint slots and the output is deterministic.
package hair

import (
	"fmt"

	"github.com/VincentWang001/hairgl/pkg/formats"
	"github.com/VincentWang001/hairgl/pkg/math"
)

// Asset is the immutable guide description bound to an instance.
// Positions are guide-major, root to tip. W carries the authored twist angle.
type Asset struct {
	SegmentsCount uint32 // control points per guide
	GuidesCount   uint32
	Positions     []math.Vec4

	// Triangles is an optional growth mesh over guide roots (indices are
	// guide numbers).
	Triangles [][3]uint32
}

// NewAsset validates the buffer shape and returns the asset.
func NewAsset(segments, guides uint32, positions []math.Vec4) (*Asset, error) {
	a := &Asset{
		SegmentsCount: segments,
		GuidesCount:   guides,
		Positions:     positions,
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Asset) validate() error {
	if a.SegmentsCount < 2 {
		return fmt.Errorf("%w: need at least 2 control points per guide, got %d", ErrAssetShape, a.SegmentsCount)
	}
	if a.GuidesCount < 1 {
		return fmt.Errorf("%w: no guides", ErrAssetShape)
	}
	want := uint64(a.GuidesCount) * uint64(a.SegmentsCount)
	if uint64(len(a.Positions)) != want {
		return fmt.Errorf("%w: %d positions, want %d guides x %d segments = %d",
			ErrAssetShape, len(a.Positions), a.GuidesCount, a.SegmentsCount, want)
	}
	for i, tri := range a.Triangles {
		for _, idx := range tri {
			if idx >= a.GuidesCount {
				return fmt.Errorf("%w: triangle %d references guide %d of %d", ErrAssetShape, i, idx, a.GuidesCount)
			}
		}
	}
	return nil
}

// Offset maps (guide, segment) to the linear index in Positions.
func (a *Asset) Offset(guide, segment int) int {
	return guide*int(a.SegmentsCount) + segment
}

// Position returns the rest position of a control point.
func (a *Asset) Position(guide, segment int) math.Vec3 {
	return a.Positions[a.Offset(guide, segment)].XYZ()
}

// Root returns the rest position of a guide's first control point.
func (a *Asset) Root(guide int) math.Vec3 {
	return a.Position(guide, 0)
}

// Roots returns the rest root of every guide in guide order.
func (a *Asset) Roots() []math.Vec3 {
	roots := make([]math.Vec3, a.GuidesCount)
	for g := range roots {
		roots[g] = a.Root(g)
	}
	return roots
}

// Bounds returns the rest-pose box as [minX, minY, minZ, maxX, maxY, maxZ].
func (a *Asset) Bounds() [6]float32 {
	if len(a.Positions) == 0 {
		return [6]float32{}
	}
	p := a.Positions[0]
	b := [6]float32{p.X, p.Y, p.Z, p.X, p.Y, p.Z}
	for _, p := range a.Positions[1:] {
		b[0], b[3] = min(b[0], p.X), max(b[3], p.X)
		b[1], b[4] = min(b[1], p.Y), max(b[4], p.Y)
		b[2], b[5] = min(b[2], p.Z), max(b[5], p.Z)
	}
	return b
}

// AssetFromHGL converts a parsed HGL file. HGL carries no twist, so every W
// is zero, and its triangles become the asset's growth mesh.
func AssetFromHGL(h *formats.HGL) (*Asset, error) {
	positions := make([]math.Vec4, len(h.Vertices))
	for i, v := range h.Vertices {
		positions[i] = v.Vec4(0)
	}
	a := &Asset{
		SegmentsCount: h.VerticesPerStrand(),
		GuidesCount:   h.GuidesCount,
		Positions:     positions,
		Triangles:     append([][3]uint32(nil), h.Triangles...),
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	return a, nil
}
