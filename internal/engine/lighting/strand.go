package lighting

import (
	"github.com/chewxy/math32"

	"github.com/VincentWang001/hairgl/internal/hair"
	"github.com/VincentWang001/hairgl/pkg/math"
)

// StrandTerms returns the Kajiya-Kay diffuse and specular terms for a strand
// with unit tangent t. Lighting depends only on the angles to the tangent,
// so a strand has no front or back face.
func StrandTerms(t, toLight, toEye math.Vec3, specularPower float32) (diffuse, specular float32) {
	tl := t.Dot(toLight)
	diffuse = sinFromCos(tl)

	h := toLight.Add(toEye)
	if h.LengthSquared() == 0 {
		return diffuse, 0
	}
	th := t.Dot(h.Normalize())
	specular = math32.Pow(sinFromCos(th), specularPower)
	return diffuse, specular
}

// ShadeStrand returns the lit RGB of a strand segment, clamped to [0, 1].
func ShadeStrand(m hair.MaterialConfig, l Light, t, toEye math.Vec3) math.Vec3 {
	d, s := StrandTerms(t, l.Direction, toEye, m.SpecularPower)
	k := m.Ambient + m.Diffuse*d
	spec := m.Specular * s
	return math.Vec3{
		X: clamp01(m.Color.X*k*l.Color.X + spec*l.Color.X),
		Y: clamp01(m.Color.Y*k*l.Color.Y + spec*l.Color.Y),
		Z: clamp01(m.Color.Z*k*l.Color.Z + spec*l.Color.Z),
	}
}

func sinFromCos(c float32) float32 {
	return math32.Sqrt(max(0, 1-c*c))
}

func clamp01(v float32) float32 {
	return min(max(v, 0), 1)
}
