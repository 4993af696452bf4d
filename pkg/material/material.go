// Package material holds the shading data and BRDF math the tracer needs at
// a hit point: reflectances, the conductor/dielectric/mirror/default type
// switch, and the Phong/Blinn-Phong/Torrance-Sparrow BRDF variants (spec.md
// §3, §4.5). Grounded on original_source/material.h's field list and the
// teacher's pkg/material/dielectric.go and metal.go reflect/refract/Schlick
// helpers, generalized to the exact Fresnel formulas spec.md §4.5 names.
package material

import "github.com/rayforge/raytracer/pkg/core"

// Type selects the high-level shading branch the tracer takes (spec.md
// §4.5): a Default material shades with ambient+diffuse+specular BRDF and
// shadow-tested lights; Mirror and Dielectric and Conductor recurse.
type Type int

const (
	Default Type = iota
	Conductor
	Dielectric
	Mirror
)

// BRDFVariant selects the specular lobe shape used by a Default material.
type BRDFVariant int

const (
	OriginalPhong BRDFVariant = iota
	ModifiedPhong
	OriginalBlinnPhong
	ModifiedBlinnPhong
	TorranceSparrow
)

// DecalMode controls how a bound diffuse texture composes with the
// material's own reflectances (spec.md §4.6).
type DecalMode int

const (
	DecalNone DecalMode = iota
	ReplaceKd
	BlendKd
	ReplaceAll
	ReplaceNormal
	BumpNormal
	ReplaceBackground
)

// Material is the full shading-parameter set a scene Object binds to
// (spec.md §3). DiffuseMap, NormalMap and BumpMap hold texture.Sampler
// values behind the opaque core.Material handle; pkg/texture and
// pkg/material avoid importing each other through this indirection (the
// values are type-asserted back in texture_binding.go and by the tracer).
type Material struct {
	Type Type

	AmbientReflectance  core.Vec3
	DiffuseReflectance  core.Vec3
	SpecularReflectance core.Vec3
	MirrorReflectance   core.Vec3
	PhongExponent       float64

	RefractionIndex      float64   // n
	AbsorptionIndex       float64  // k, conductor only
	AbsorptionCoefficient core.Vec3 // dielectric Beer-Lambert coefficient

	Roughness float64

	BRDF          BRDFVariant
	Normalized    bool // divide diffuse by pi / normalize specular lobe
	KdFresnel     bool // weight diffuse by (1 - Fresnel) as Torrance-Sparrow does
	Degamma       bool // degamma Ka/Kd/Ks before shading

	DiffuseMap core.Material // texture.Sampler
	NormalMap  core.Material // texture.Sampler
	BumpMap    core.Material // texture.Sampler
	DecalMode  DecalMode
	BumpFactor float64
}

// IsSpecular reports whether this material's high-level branch is handled
// by recursive specular tracing rather than direct BRDF shading.
func (m Material) IsSpecular() bool {
	return m.Type == Mirror || m.Type == Dielectric || m.Type == Conductor
}

// DegammaColor converts a texture-space (gamma-encoded) color to linear,
// applied to Ka/Kd/Ks when Material.Degamma is set (spec.md §4.5).
func DegammaColor(c core.Vec3, degamma bool) core.Vec3 {
	if !degamma {
		return c
	}
	return c.GammaCorrect(1.0 / 2.2)
}
