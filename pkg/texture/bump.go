package texture

import "github.com/rayforge/raytracer/pkg/core"

// BumpMappedNormal perturbs a geometric normal using finite differences of a
// ScalarSampler's height field along the surface tangent/bitangent, per
// original_source/texture.cpp's bump perturbation (spec.md §4.6). No
// teacher equivalent exists (the teacher has no bump mapping). The height
// gradient is a forward difference with du = dv = 1e-4.
func BumpMappedNormal(sampler ScalarSampler, normal, tangent, bitangent core.Vec3, u, v float64, point core.Vec3, factor float64) core.Vec3 {
	const du, dv = 1e-4, 1e-4

	h0 := sampler.SampleScalar(u, v, point)
	hu := sampler.SampleScalar(u+du, v, point.Add(tangent.Multiply(du)))
	hv := sampler.SampleScalar(u, v+dv, point.Add(bitangent.Multiply(dv)))

	dhDu := (hu - h0) / du
	dhDv := (hv - h0) / dv

	perturbed := normal.
		Add(tangent.Multiply(-dhDu * factor)).
		Add(bitangent.Multiply(-dhDv * factor))
	return perturbed.Normalize()
}
