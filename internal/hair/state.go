package hair

import (
	"github.com/VincentWang001/hairgl/pkg/math"
)

// GuideState is the mutable simulation state, laid out like the asset:
// index = guide*Segments + segment.
type GuideState struct {
	Guides   int
	Segments int

	Position []math.Vec3
	Previous []math.Vec3
	Twist    []float32 // material frame roll per control point, radians
}

// newGuideState places every control point at its rest position under model.
func newGuideState(a *Asset, model math.Mat4) *GuideState {
	n := len(a.Positions)
	s := &GuideState{
		Guides:   int(a.GuidesCount),
		Segments: int(a.SegmentsCount),
		Position: make([]math.Vec3, n),
		Previous: make([]math.Vec3, n),
		Twist:    make([]float32, n),
	}
	for i, p := range a.Positions {
		w := model.TransformPoint(p.XYZ())
		s.Position[i] = w
		s.Previous[i] = w
		s.Twist[i] = p.W
	}
	return s
}

// Offset maps (guide, segment) to the linear index.
func (s *GuideState) Offset(guide, segment int) int {
	return guide*s.Segments + segment
}

// Guide returns the current positions of one guide. The slice aliases the state.
func (s *GuideState) Guide(guide int) []math.Vec3 {
	start := guide * s.Segments
	return s.Position[start : start+s.Segments]
}

// Clone returns a deep copy.
func (s *GuideState) Clone() *GuideState {
	c := &GuideState{Guides: s.Guides, Segments: s.Segments}
	c.Position = append([]math.Vec3(nil), s.Position...)
	c.Previous = append([]math.Vec3(nil), s.Previous...)
	c.Twist = append([]float32(nil), s.Twist...)
	return c
}

func (s *GuideState) copyFrom(src *GuideState) {
	copy(s.Position, src.Position)
	copy(s.Previous, src.Previous)
	copy(s.Twist, src.Twist)
}

// strand is one guide's view into the state and the per-tick rest data.
// All slices alias larger buffers and have length Segments (restLen has
// Segments-1, bendH0 is indexed by the middle point).
type strand struct {
	pos   []math.Vec3
	prev  []math.Vec3
	twist []float32

	rest    []math.Vec4 // asset, model space
	world   []math.Vec3 // rest under the model matrix
	restLen []float32
	bendH0  []float32
}

func (s *strand) len() int { return len(s.pos) }
