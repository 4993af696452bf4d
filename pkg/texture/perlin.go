package texture

import (
	"math"

	"github.com/aquilax/go-perlin"

	"github.com/rayforge/raytracer/pkg/core"
)

// PerlinTexture drives a scalar or marble-like color field from 3D Perlin
// noise, backed by github.com/aquilax/go-perlin rather than a hand-rolled
// permutation table (see SPEC_FULL.md domain stack; grounded on
// nicolasmd87-gopher3D/internal/renderer/improved_perlin.go's role as the
// pack's only Perlin source, though that file implements its own table —
// we use the imported library instead of copying it).
type PerlinTexture struct {
	noise    *perlin.Perlin
	Scale    float64
	BaseColor core.Vec3
	Marble   bool // turbulence-driven sin-banded marble pattern vs raw noise
}

// NewPerlinTexture builds a Perlin texture with the given frequency alpha,
// persistence beta, octave count n, and seed (spec.md §4.6).
func NewPerlinTexture(alpha, beta float64, n int32, seed int64, scale float64, base core.Vec3) *PerlinTexture {
	return &PerlinTexture{
		noise:     perlin.NewPerlin(alpha, beta, n, seed),
		Scale:     scale,
		BaseColor: base,
	}
}

// SampleColor implements Sampler over the 3D point (Domain3D).
func (t *PerlinTexture) SampleColor(_, _ float64, point core.Vec3) core.Vec3 {
	p := point.Multiply(t.Scale)
	if !t.Marble {
		n := (t.noise.Noise3D(p.X, p.Y, p.Z) + 1) / 2
		return t.BaseColor.Multiply(n)
	}
	turb := t.turbulence(p, 7)
	n := 0.5 * (1 + math.Sin(p.Z+10*turb))
	return t.BaseColor.Multiply(n)
}

// SampleScalar implements ScalarSampler for bump mapping.
func (t *PerlinTexture) SampleScalar(_, _ float64, point core.Vec3) float64 {
	p := point.Multiply(t.Scale)
	return t.noise.Noise3D(p.X, p.Y, p.Z)
}

func (t *PerlinTexture) turbulence(p core.Vec3, depth int) float64 {
	accum := 0.0
	weight := 1.0
	cur := p
	for i := 0; i < depth; i++ {
		accum += weight * t.noise.Noise3D(cur.X, cur.Y, cur.Z)
		weight *= 0.5
		cur = cur.Multiply(2)
	}
	return math.Abs(accum)
}
