package texture

import (
	"math"

	"github.com/rayforge/raytracer/pkg/core"
)

// CheckerboardTexture alternates between two colors over a regular grid,
// indexed either by the 3D world/object point or by 2D UV (spec.md §9 Open
// Question #2: object-bound checkers use Domain3D, background/environment
// checkers use Domain2D). Grounded on pkg/material/procedural_textures.go's
// NewCheckerboardTexture, generalized to the dual-domain split.
type CheckerboardTexture struct {
	ColorA, ColorB core.Vec3
	Scale          float64
	Domain         Domain
}

// NewCheckerboardTexture builds a checkerboard with the given cell scale.
func NewCheckerboardTexture(colorA, colorB core.Vec3, scale float64, domain Domain) *CheckerboardTexture {
	return &CheckerboardTexture{ColorA: colorA, ColorB: colorB, Scale: scale, Domain: domain}
}

// SampleColor implements Sampler.
func (t *CheckerboardTexture) SampleColor(u, v float64, point core.Vec3) core.Vec3 {
	if t.Domain == Domain2D {
		return t.at(int(math.Floor(u*t.Scale)) + int(math.Floor(v*t.Scale)))
	}
	sum := int(math.Floor(point.X*t.Scale)) + int(math.Floor(point.Y*t.Scale)) + int(math.Floor(point.Z*t.Scale))
	return t.at(sum)
}

func (t *CheckerboardTexture) at(sum int) core.Vec3 {
	if mod2(sum) == 0 {
		return t.ColorA
	}
	return t.ColorB
}

func mod2(x int) int {
	m := x % 2
	if m < 0 {
		m += 2
	}
	return m
}
