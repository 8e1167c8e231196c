package hair

import (
	"github.com/VincentWang001/hairgl/pkg/math"
)

// Integrator advances guides by one fixed timestep with position Verlet.
type Integrator struct {
	TimeStep float32
}

// prepareRest places the rest shape under the model matrix and derives the
// rest segment lengths and bend heights the solver targets this tick.
func prepareRest(s *strand, model math.Mat4, bias math.Quat) {
	n := s.len()
	for i := 0; i < n; i++ {
		s.world[i] = model.TransformPoint(s.rest[i].XYZ())
	}
	for i := 0; i < n-1; i++ {
		s.restLen[i] = s.world[i+1].Distance(s.world[i])
	}
	for i := 1; i < n-1; i++ {
		a, b, c := s.world[i-1], s.world[i], s.world[i+1]
		if !bias.IsIdentity() {
			c = b.Add(bias.Rotate(c.Sub(b)))
		}
		s.bendH0[i] = b.Distance(centroid(a, b, c))
	}
}

// Step advances every non-root control point of s. The root is snapped to
// its attachment point (world[0]) with zero velocity.
//
//	x' = x + (1-damping)(x - x_prev) + wind*windMagnitude*dt^2
//	x' += globalStiffness * (rest_i - x')
//	x' += localStiffness  * (x'_{i-1} + rest_i - rest_{i-1} - x')
func (it Integrator) Step(s *strand, sim *SimulationConfig) {
	n := s.len()
	s.pos[0] = s.world[0]
	s.prev[0] = s.world[0]

	dt2 := it.TimeStep * it.TimeStep
	force := sim.Wind.Scale(sim.WindMagnitude * dt2)
	keep := 1 - sim.Damping

	for i := 1; i < n; i++ {
		x := s.pos[i]
		next := x.Add(x.Sub(s.prev[i]).Scale(keep)).Add(force)

		if sim.GlobalStiffness != 0 {
			next = next.Add(s.world[i].Sub(next).Scale(sim.GlobalStiffness))
		}
		if sim.LocalStiffness != 0 {
			// s.pos[i-1] already holds this tick's parent position.
			target := s.pos[i-1].Add(s.world[i].Sub(s.world[i-1]))
			next = next.Add(target.Sub(next).Scale(sim.LocalStiffness))
		}

		s.prev[i] = x
		s.pos[i] = next
	}
}

func centroid(a, b, c math.Vec3) math.Vec3 {
	return math.Vec3{
		X: (a.X + b.X + c.X) / 3,
		Y: (a.Y + b.Y + c.Y) / 3,
		Z: (a.Z + b.Z + c.Z) / 3,
	}
}
