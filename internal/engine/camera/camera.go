// Package camera provides the orbit camera used by the hair viewer.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/VincentWang001/hairgl/pkg/math"
)

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	Center math.Vec3

	// Spherical coordinates
	Distance float32
	Pitch    float32 // radians
	Yaw      float32 // radians

	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	DragSensitivity float32
	ZoomSensitivity float32

	FovY float32 // radians
}

// NewOrbitCamera creates an orbit camera sized for a head of hair.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        3.0,
		Pitch:           0.3,
		MinDistance:     0.2,
		MaxDistance:     50.0,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		FovY:            math32.Pi / 4,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	cp, sp := math32.Cos(c.Pitch), math32.Sin(c.Pitch)
	return c.Center.Add(math.Vec3{
		X: c.Distance * cp * math32.Sin(c.Yaw),
		Y: c.Distance * sp,
		Z: c.Distance * cp * math32.Cos(c.Yaw),
	})
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Center, math.Vec3{Y: 1})
}

// ProjectionMatrix returns a perspective projection whose clip planes
// follow the orbit distance.
func (c *OrbitCamera) ProjectionMatrix(aspect float32) math.Mat4 {
	near := max(c.Distance*0.01, 0.001)
	far := c.Distance * 100
	return math.Perspective(c.FovY, aspect, near, far)
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.Yaw -= deltaX * c.DragSensitivity
	c.Pitch = clamp(c.Pitch+deltaY*c.DragSensitivity, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance = clamp(c.Distance-delta*c.Distance*c.ZoomSensitivity, c.MinDistance, c.MaxDistance)
}

// FitToBounds centers the camera on bounds ([min xyz, max xyz]) and backs
// off far enough to frame the whole box.
func (c *OrbitCamera) FitToBounds(bounds [6]float32) {
	c.Center = math.Vec3{
		X: (bounds[0] + bounds[3]) / 2,
		Y: (bounds[1] + bounds[4]) / 2,
		Z: (bounds[2] + bounds[5]) / 2,
	}
	radius := math.Vec3{
		X: bounds[3] - bounds[0],
		Y: bounds[4] - bounds[1],
		Z: bounds[5] - bounds[2],
	}.Length() / 2
	if radius == 0 {
		radius = 1
	}
	c.Distance = clamp(radius/math32.Sin(c.FovY/2), c.MinDistance, c.MaxDistance)
	c.Pitch = 0.3
	c.Yaw = 0
}

func clamp(v, lo, hi float32) float32 {
	return min(max(v, lo), hi)
}
