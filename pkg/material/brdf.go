package material

import (
	"math"

	"github.com/rayforge/raytracer/pkg/core"
)

// Shade evaluates the local per-light diffuse/specular BRDF contribution at
// a hit point for one already-visible light direction; the ambient term is
// added by the caller, not here.
// wo and wi both point away from the surface. Grounded on
// original_source/material.cpp's per-variant BRDF dispatch (spec.md §4.5).
func (m Material) Shade(normal, wo, wi, kd, ks core.Vec3) core.Vec3 {
	nDotL := normal.Dot(wi)
	if nDotL <= 0 {
		return core.Vec3{}
	}

	diffuse := kd.Multiply(nDotL)
	if m.Normalized {
		diffuse = diffuse.Multiply(1.0 / math.Pi)
	}

	specular := m.specularTerm(normal, wo, wi, ks, nDotL)

	return diffuse.Add(specular)
}

func (m Material) specularTerm(normal, wo, wi, ks core.Vec3, nDotL float64) core.Vec3 {
	if ks.IsZero() || m.PhongExponent <= 0 {
		return core.Vec3{}
	}

	switch m.BRDF {
	case OriginalBlinnPhong, ModifiedBlinnPhong:
		h := wo.Add(wi).Normalize()
		nDotH := math.Max(normal.Dot(h), 0)
		coeff := math.Pow(nDotH, m.PhongExponent)
		if m.BRDF == ModifiedBlinnPhong && m.Normalized {
			coeff *= (m.PhongExponent + 8) / (8 * math.Pi)
		}
		return ks.Multiply(coeff)

	case TorranceSparrow:
		return m.torranceSparrow(normal, wo, wi, ks, nDotL)

	default: // OriginalPhong, ModifiedPhong
		r := normal.Multiply(2 * normal.Dot(wi)).Subtract(wi).Normalize()
		rDotV := math.Max(r.Dot(wo), 0)
		coeff := math.Pow(rDotV, m.PhongExponent)
		if m.BRDF == ModifiedPhong && m.Normalized {
			coeff *= (m.PhongExponent + 2) / (2 * math.Pi)
		}
		return ks.Multiply(coeff)
	}
}

// torranceSparrow evaluates the microfacet specular term: D (Beckmann), the
// Smith/Torrance geometric attenuation G, and the dielectric Fresnel term,
// divided by (4 * nDotV * nDotL). Grounded on original_source/material.cpp's
// Torrance-Sparrow branch (spec.md §4.5).
func (m Material) torranceSparrow(normal, wo, wi, ks core.Vec3, nDotL float64) core.Vec3 {
	nDotV := normal.Dot(wo)
	if nDotV <= 0 {
		return core.Vec3{}
	}
	h := wo.Add(wi).Normalize()
	nDotH := normal.Dot(h)
	if nDotH <= 0 {
		return core.Vec3{}
	}
	vDotH := math.Max(wo.Dot(h), 1e-8)

	alpha := math.Max(m.Roughness, 1e-4)
	tanAlpha2 := (1 - nDotH*nDotH) / (nDotH * nDotH)
	d := math.Exp(-tanAlpha2/(alpha*alpha)) / (math.Pi * alpha * alpha * nDotH * nDotH * nDotH * nDotH)

	g := math.Min(1, math.Min(2*nDotH*nDotV/vDotH, 2*nDotH*nDotL/vDotH))

	fr := DielectricFresnel(vDotH, m.RefractionIndex)

	coeff := (fr * d * g) / (4 * nDotV * nDotL)
	specular := ks.Multiply(coeff)

	if m.KdFresnel {
		// caller applies (1-fr) weighting to Kd separately via KdWeight
	}
	return specular
}

// KdWeight returns the multiplier applied to the diffuse term for this
// material: 1 unless Torrance-Sparrow's KdFresnel flag asks for energy
// conservation via (1 - dielectric Fresnel at the viewing angle, cos = n.wo).
func (m Material) KdWeight(normal, wo core.Vec3) float64 {
	if !m.KdFresnel {
		return 1
	}
	nDotV := math.Max(normal.Dot(wo), 0)
	return 1 - DielectricFresnel(nDotV, m.RefractionIndex)
}
