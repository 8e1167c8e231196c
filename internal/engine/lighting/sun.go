// Package lighting provides the directional light and strand shading model
// shared by the GL and PNG backends.
package lighting

import (
	"github.com/chewxy/math32"

	"github.com/VincentWang001/hairgl/pkg/math"
)

// Light is a directional light.
type Light struct {
	Direction math.Vec3 // unit vector toward the light
	Color     math.Vec3
}

// DefaultLight is a white sun above and in front of the origin.
func DefaultLight() Light {
	return Light{
		Direction: SunDirection(45, 45),
		Color:     math.Vec3{X: 1, Y: 1, Z: 1},
	}
}

// SunDirection converts longitude (around Y, degrees) and latitude
// (elevation above the horizon, degrees) to a unit vector toward the sun.
func SunDirection(longitude, latitude float32) math.Vec3 {
	lon := longitude * math32.Pi / 180
	lat := latitude * math32.Pi / 180
	return math.Vec3{
		X: math32.Cos(lat) * math32.Sin(lon),
		Y: math32.Sin(lat),
		Z: math32.Cos(lat) * math32.Cos(lon),
	}
}
