package hair

import (
	"github.com/VincentWang001/hairgl/pkg/math"
)

// DefaultIterations is the solver iteration count used when none is configured.
const DefaultIterations = 4

// Solver relaxes the per-guide constraints for a fixed number of iterations.
// Each iteration runs stretch, then bend, then twist. There is no early exit.
type Solver struct {
	Iterations int
	TimeStep   float32
}

// compliance converts a stiffness coefficient into the XPBD compliance
// alpha = 1/(k dt^2). ok is false when the constraint is disabled.
func (sv Solver) compliance(k float32) (alpha float32, ok bool) {
	if k <= 0 {
		return 0, false
	}
	return 1 / (k * sv.TimeStep * sv.TimeStep), true
}

// Relax projects s back toward its rest shape in place.
func (sv Solver) Relax(s *strand, sim *SimulationConfig) {
	stretchAlpha, stretch := sv.compliance(sim.Ks)
	bendAlpha, bend := sv.compliance(sim.Kb)
	twistAlpha, twist := sv.compliance(sim.Kt)

	for iter := 0; iter < sv.Iterations; iter++ {
		if stretch {
			solveStretch(s, stretchAlpha)
		}
		if bend {
			solveBend(s, bendAlpha)
		}
		if twist {
			solveTwist(s, twistAlpha)
		}
	}
}

// invMass is 0 for the pinned root and 1 elsewhere.
func invMass(i int) float32 {
	if i == 0 {
		return 0
	}
	return 1
}

// solveStretch restores each segment toward its rest length, moving both
// endpoints along the segment.
func solveStretch(s *strand, alpha float32) {
	for i := 0; i < s.len()-1; i++ {
		a, b := s.pos[i], s.pos[i+1]
		d := b.Sub(a)
		l := d.Length()
		if l == 0 {
			continue
		}

		wa, wb := invMass(i), invMass(i+1)
		lambda := (l - s.restLen[i]) / (wa + wb + alpha)
		n := d.Scale(1 / l)

		s.pos[i] = a.Add(n.Scale(wa * lambda))
		s.pos[i+1] = b.Sub(n.Scale(wb * lambda))
	}
}

// solveBend is triangle bending: the distance of each middle point from the
// centroid of its triple is driven toward the rest (bias-rotated) height.
// The middle point takes the largest share of the correction.
func solveBend(s *strand, alpha float32) {
	k := 1 / (1 + alpha)
	for i := 1; i < s.len()-1; i++ {
		a, b, c := s.pos[i-1], s.pos[i], s.pos[i+1]
		h := b.Sub(centroid(a, b, c))
		hl := h.Length()
		if hl == 0 {
			continue
		}

		wa, wb, wc := invMass(i-1), invMass(i), invMass(i+1)
		w := wa + 2*wb + wc
		f := (1 - s.bendH0[i]/hl) * k / w

		s.pos[i-1] = a.Add(h.Scale(2 * wa * f))
		s.pos[i] = b.Sub(h.Scale(4 * wb * f))
		s.pos[i+1] = c.Add(h.Scale(2 * wc * f))
	}
}

// solveTwist relaxes the relative roll between consecutive frames toward
// zero. The root frame is held.
func solveTwist(s *strand, alpha float32) {
	k := 1 / (1 + alpha)
	for i := 0; i < s.len()-1; i++ {
		d := s.twist[i+1] - s.twist[i]
		if d == 0 {
			continue
		}
		wa, wb := invMass(i), invMass(i+1)
		step := d * k / (wa + wb)
		s.twist[i] += wa * step
		s.twist[i+1] -= wb * step
	}
}

// StretchError returns the largest |segment length - rest length| of a guide
// given in world space, against rest lengths measured on rest.
func StretchError(guide []math.Vec3, rest []math.Vec3) float32 {
	var worst float32
	for i := 0; i+1 < len(guide) && i+1 < len(rest); i++ {
		e := guide[i+1].Distance(guide[i]) - rest[i+1].Distance(rest[i])
		if e < 0 {
			e = -e
		}
		worst = max(worst, e)
	}
	return worst
}
