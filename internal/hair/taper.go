package hair

import (
	"github.com/tanema/gween/ease"
)

// thinningRamp shapes the width falloff after ThinningStart. InQuad starts
// gently and accelerates toward the tip.
var thinningRamp ease.TweenFunc = ease.InQuad

// Width returns the strand width at arc-length fraction s in [0, 1].
// Up to ThinningStart the width is RootWidth; after it the width moves to
// TipWidth along the thinning ramp, reaching TipWidth exactly at s = 1.
func (c ShapeConfig) Width(s float32) float32 {
	if s >= 1 {
		return c.TipWidth
	}
	if s <= c.ThinningStart {
		return c.RootWidth
	}

	f := (s - c.ThinningStart) / (1 - c.ThinningStart)
	w := thinningRamp(f, c.RootWidth, c.TipWidth-c.RootWidth, 1)

	// Rounding must not carry the width past the tip value.
	if c.RootWidth >= c.TipWidth {
		return max(w, c.TipWidth)
	}
	return min(w, c.TipWidth)
}
