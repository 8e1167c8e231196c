package hair

import (
	"github.com/chewxy/math32"

	"github.com/VincentWang001/hairgl/pkg/math"
)

// subdivisions converts the tessellation factor into segments per span.
func subdivisions(factor float32) int {
	return max(1, int(math32.Floor(factor+0.5)))
}

// catmullRom evaluates the uniform Catmull-Rom span between p1 and p2.
// t = 0 returns p1 exactly.
func catmullRom(p0, p1, p2, p3 math.Vec3, t float32) math.Vec3 {
	t2 := t * t
	t3 := t2 * t
	eval := func(a, b, c, d float32) float32 {
		return 0.5 * (2*b + (c-a)*t + (2*a-5*b+4*c-d)*t2 + (3*b-a-3*c+d)*t3)
	}
	return math.Vec3{
		X: eval(p0.X, p1.X, p2.X, p3.X),
		Y: eval(p0.Y, p1.Y, p2.Y, p3.Y),
		Z: eval(p0.Z, p1.Z, p2.Z, p3.Z),
	}
}

// tessellate subdivides a control polygon into (n-1)*sub+1 points with
// mirrored phantom end points. twist is interpolated linearly alongside.
func tessellate(points []math.Vec3, twist []float32, sub int) ([]math.Vec3, []float32) {
	n := len(points)
	if n < 2 || sub <= 1 {
		return append([]math.Vec3(nil), points...), append([]float32(nil), twist...)
	}

	at := func(i int) math.Vec3 {
		switch {
		case i < 0:
			return points[0].Scale(2).Sub(points[1])
		case i >= n:
			return points[n-1].Scale(2).Sub(points[n-2])
		}
		return points[i]
	}

	outP := make([]math.Vec3, 0, (n-1)*sub+1)
	outT := make([]float32, 0, (n-1)*sub+1)
	for i := 0; i < n-1; i++ {
		for k := 0; k < sub; k++ {
			t := float32(k) / float32(sub)
			outP = append(outP, catmullRom(at(i-1), at(i), at(i+1), at(i+2), t))
			outT = append(outT, twist[i]+(twist[i+1]-twist[i])*t)
		}
	}
	outP = append(outP, points[n-1])
	outT = append(outT, twist[n-1])
	return outP, outT
}
