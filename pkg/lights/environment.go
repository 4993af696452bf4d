package lights

import (
	"math"

	"github.com/rayforge/raytracer/pkg/core"
)

// LatLongSampler is the capability an HDR environment map exposes: a
// lat-long lookup by direction, independent of pkg/texture's (u,v)-based
// Sampler to avoid importing it here (the scene loader wires the two
// together). Matches original_source/light.cpp's EnvironmentLight::GetColor
// phi/theta mapping exactly.
type LatLongSampler interface {
	SampleDirection(direction core.Vec3) core.Vec3
}

// EnvironmentLight is the XML's SphericalDirectionalLight: an HDR
// environment sampled by rejecting random points in the unit cube until one
// lands in the unit ball with positive dot to the shading normal, then
// normalizing to a direction (spec.md §4.4). Grounded on
// original_source/light.cpp's EnvironmentLight.
type EnvironmentLight struct {
	HDR        LatLongSampler
	MaxRejects int
}

func NewEnvironmentLight(hdr LatLongSampler) *EnvironmentLight {
	return &EnvironmentLight{HDR: hdr, MaxRejects: 64}
}

func (l *EnvironmentLight) Type() Type { return TypeEnvironment }

// Sample implements rejection sampling over the visible hemisphere. Per
// spec.md §7, the rejection loop is bounded and returns a zero-PDF sample
// on exhaustion rather than looping forever.
func (l *EnvironmentLight) Sample(_, normal core.Vec3, u core.Vec2) Sample {
	rng := core.NewRNG(int64(u.X*1e9) ^ int64(u.Y*1e9))
	maxRejects := l.MaxRejects
	if maxRejects <= 0 {
		maxRejects = 64
	}
	for i := 0; i < maxRejects; i++ {
		x := rng.Float64()*2 - 1
		y := rng.Float64()*2 - 1
		z := rng.Float64()*2 - 1
		candidate := core.NewVec3(x, y, z)
		if candidate.LengthSquared() <= 1 && normal.Dot(candidate) > 0 {
			dir := candidate.Normalize()
			radiance := l.HDR.SampleDirection(dir).Multiply(2 * math.Pi)
			return Sample{Direction: dir, Distance: math.Inf(1), Radiance: radiance, PDF: 1}
		}
	}
	return Sample{}
}

func (l *EnvironmentLight) PDF(_, _, _ core.Vec3) float64 { return 1 }

// Emit implements EmittingLight: a camera/miss ray looking directly at the
// environment sees the raw HDR sample along its direction. The 2pi factor is
// a Sample-only solid-angle weighting for direct lighting; the background
// path uses the unweighted radiance, matching original_source/light.cpp's
// GetColor (background) vs GetLuminance (direct-lighting) split.
func (l *EnvironmentLight) Emit(ray core.Ray) core.Vec3 {
	return l.HDR.SampleDirection(ray.Direction.Normalize())
}
