package material

import "github.com/rayforge/raytracer/pkg/core"

// SampledColor is the minimal capability a bound texture.Sampler exposes to
// this package, avoiding a material<->texture import cycle: pkg/texture
// implements this, and a Material's DiffuseMap/NormalMap/BumpMap fields hold
// values satisfying it behind the opaque core.Material handle.
type SampledColor interface {
	SampleColor(u, v float64, point core.Vec3) core.Vec3
}

// SampledScalar is the capability a bound bump map exposes: a scalar height
// or displacement, sampled the same way as SampledColor.
type SampledScalar interface {
	SampleScalar(u, v float64, point core.Vec3) float64
}

// ResolveDiffuse applies DecalMode to the material's own diffuse
// reflectance and an optionally-bound diffuse texture sample, per
// original_source/object.cpp's texture-slot resolution (spec.md §4.6).
func (m Material) ResolveDiffuse(u, v float64, point core.Vec3) core.Vec3 {
	sampler, ok := m.DiffuseMap.(SampledColor)
	if !ok {
		return m.DiffuseReflectance
	}
	sample := sampler.SampleColor(u, v, point)

	switch m.DecalMode {
	case ReplaceKd, ReplaceAll:
		return sample
	case BlendKd:
		return m.DiffuseReflectance.Add(sample).Multiply(0.5)
	default:
		return m.DiffuseReflectance
	}
}

// ResolveAmbient applies DecalMode's ReplaceAll rule to ambient
// reflectance: a replace_all decal drives both Ka and Kd from the same
// sample (spec.md §4.6).
func (m Material) ResolveAmbient(u, v float64, point core.Vec3) core.Vec3 {
	if m.DecalMode == ReplaceAll {
		if sampler, ok := m.DiffuseMap.(SampledColor); ok {
			return sampler.SampleColor(u, v, point)
		}
	}
	return m.AmbientReflectance
}

// HasNormalMap reports whether a normal map is bound.
func (m Material) HasNormalMap() bool {
	_, ok := m.NormalMap.(SampledColor)
	return ok
}

// SampleNormalMap returns the tangent-space perturbed normal encoded in the
// bound normal map, decoded from [0,1] RGB to [-1,1] per-axis.
func (m Material) SampleNormalMap(u, v float64, point core.Vec3) (core.Vec3, bool) {
	sampler, ok := m.NormalMap.(SampledColor)
	if !ok {
		return core.Vec3{}, false
	}
	c := sampler.SampleColor(u, v, point)
	return core.NewVec3(2*c.X-1, 2*c.Y-1, 2*c.Z-1).Normalize(), true
}

// HasBumpMap reports whether a bump map is bound.
func (m Material) HasBumpMap() bool {
	_, ok := m.BumpMap.(SampledScalar)
	return ok
}

// SampleBump returns the scalar height sample used for finite-difference
// bump perturbation, scaled by BumpFactor.
func (m Material) SampleBump(u, v float64, point core.Vec3) (float64, bool) {
	sampler, ok := m.BumpMap.(SampledScalar)
	if !ok {
		return 0, false
	}
	factor := m.BumpFactor
	if factor == 0 {
		factor = 1
	}
	return sampler.SampleScalar(u, v, point) * factor, true
}
