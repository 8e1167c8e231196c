// Package debug builds line geometry for the viewer: strand batches, growth
// mesh edges and bounding boxes, as flat float32 slices ready for upload.
package debug

import "github.com/VincentWang001/hairgl/pkg/math"

// BBoxWireframeVertexCount is the number of vertices for a bbox wireframe (12 edges x 2).
const BBoxWireframeVertexCount = 24

// BBoxWireframe returns the 12 edges of an axis-aligned box as a line list,
// [x, y, z] per vertex. bounds is [minX, minY, minZ, maxX, maxY, maxZ].
func BBoxWireframe(bounds [6]float32) []float32 {
	minX, minY, minZ := bounds[0], bounds[1], bounds[2]
	maxX, maxY, maxZ := bounds[3], bounds[4], bounds[5]
	return []float32{
		// Bottom face
		minX, minY, minZ, maxX, minY, minZ,
		maxX, minY, minZ, maxX, minY, maxZ,
		maxX, minY, maxZ, minX, minY, maxZ,
		minX, minY, maxZ, minX, minY, minZ,
		// Top face
		minX, maxY, minZ, maxX, maxY, minZ,
		maxX, maxY, minZ, maxX, maxY, maxZ,
		maxX, maxY, maxZ, minX, maxY, maxZ,
		minX, maxY, maxZ, minX, maxY, minZ,
		// Vertical edges
		minX, minY, minZ, minX, maxY, minZ,
		maxX, minY, minZ, maxX, maxY, minZ,
		maxX, minY, maxZ, maxX, maxY, maxZ,
		minX, minY, maxZ, minX, maxY, maxZ,
	}
}

// TransformBounds returns the axis-aligned box around bounds after m.
func TransformBounds(bounds [6]float32, m math.Mat4) [6]float32 {
	var out [6]float32
	for i := 0; i < 8; i++ {
		corner := math.Vec3{X: bounds[0], Y: bounds[1], Z: bounds[2]}
		if i&1 != 0 {
			corner.X = bounds[3]
		}
		if i&2 != 0 {
			corner.Y = bounds[4]
		}
		if i&4 != 0 {
			corner.Z = bounds[5]
		}
		p := m.TransformPoint(corner)
		if i == 0 {
			out = [6]float32{p.X, p.Y, p.Z, p.X, p.Y, p.Z}
			continue
		}
		out[0], out[1], out[2] = min(out[0], p.X), min(out[1], p.Y), min(out[2], p.Z)
		out[3], out[4], out[5] = max(out[3], p.X), max(out[4], p.Y), max(out[5], p.Z)
	}
	return out
}

// Pad grows bounds by padding on every side.
func Pad(bounds [6]float32, padding float32) [6]float32 {
	return [6]float32{
		bounds[0] - padding, bounds[1] - padding, bounds[2] - padding,
		bounds[3] + padding, bounds[4] + padding, bounds[5] + padding,
	}
}
