package hair

import (
	"github.com/VincentWang001/hairgl/pkg/math"
)

// maxBlendGuides is how many guides shape one render strand.
const maxBlendGuides = 3

// binding ties a growth sample to the guides whose shapes it blends.
type binding struct {
	count   int
	guides  [maxBlendGuides]int
	weights [maxBlendGuides]float32
}

// bindSample picks the nearest guide roots (ties go to the lower guide
// index) and weights them by inverse squared distance. A sample sitting on a
// root follows that guide alone.
func bindSample(p math.Vec3, roots []math.Vec3) binding {
	var b binding
	var dist [maxBlendGuides]float32

	for g, r := range roots {
		d := p.Sub(r).LengthSquared()
		if b.count < maxBlendGuides {
			b.guides[b.count] = g
			dist[b.count] = d
			b.count++
		} else if d < dist[b.count-1] {
			b.guides[b.count-1] = g
			dist[b.count-1] = d
		} else {
			continue
		}
		// Insertion step keeps the list sorted; strict < keeps ties stable.
		for k := b.count - 1; k > 0 && dist[k] < dist[k-1]; k-- {
			dist[k], dist[k-1] = dist[k-1], dist[k]
			b.guides[k], b.guides[k-1] = b.guides[k-1], b.guides[k]
		}
	}

	if b.count > 0 && dist[0] == 0 {
		b.count = 1
		b.weights[0] = 1
		return b
	}

	var sum float32
	for k := 0; k < b.count; k++ {
		b.weights[k] = 1 / dist[k]
		sum += b.weights[k]
	}
	for k := 0; k < b.count; k++ {
		b.weights[k] /= sum
	}
	return b
}

// interpolator expands simulated guides into render strands.
type interpolator struct {
	roots    []math.Vec3 // rest guide roots, model space
	bindings map[uint32]binding
	density  float32 // bindings are only valid for this density
}

func newInterpolator(roots []math.Vec3) *interpolator {
	return &interpolator{
		roots:    roots,
		bindings: make(map[uint32]binding),
	}
}

// bind resolves bindings for samples not seen before. It must run before the
// parallel stage: strand() only reads the map. Sample indices are renumbered
// when the density changes, so a new density drops every binding.
func (ip *interpolator) bind(samples []GrowthSample, density float32) {
	if density != ip.density {
		clear(ip.bindings)
		ip.density = density
	}
	for _, s := range samples {
		if _, ok := ip.bindings[s.Index]; !ok {
			ip.bindings[s.Index] = bindSample(s.Position, ip.roots)
		}
	}
}

// strand synthesizes the render strand rooted at sample from the current
// guide state.
func (ip *interpolator) strand(sample GrowthSample, state *GuideState, settings *InstanceSettings) RenderStrand {
	b := ip.bindings[sample.Index]
	n := state.Segments
	root := settings.Visualization.ModelMatrix.TransformPoint(sample.Position)

	points := make([]math.Vec3, n)
	twist := make([]float32, n)
	for j := 0; j < n; j++ {
		p := root
		var tw float32
		for k := 0; k < b.count; k++ {
			g := b.guides[k]
			w := b.weights[k]
			off := state.Position[state.Offset(g, j)].Sub(state.Position[state.Offset(g, 0)])
			p = p.Add(off.Scale(w))
			tw += state.Twist[state.Offset(g, j)] * w
		}
		points[j] = p
		twist[j] = tw
	}

	points, twist = tessellate(points, twist, subdivisions(settings.Visualization.TesselationFactor))
	return RenderStrand{
		Index:    sample.Index,
		Vertices: buildVertices(points, twist, settings.Shape),
	}
}

// guideStrand emits a simulated guide as-is.
func guideStrand(guide int, state *GuideState, shape ShapeConfig) RenderStrand {
	start := state.Offset(guide, 0)
	end := start + state.Segments
	return RenderStrand{
		Index:    uint32(guide),
		Vertices: buildVertices(state.Position[start:end], state.Twist[start:end], shape),
	}
}
