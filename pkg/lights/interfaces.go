// Package lights implements the point/directional/area/spot/environment/mesh
// light sources spec.md §3/§4.4 names, sampled once per shading point by the
// Whitted tracer (no BDPT light-path generation, so the teacher's
// SampleEmission/EmissionPDF/PDF_Le surface is trimmed). Grounded on the
// teacher's pkg/lights/interfaces.go Light shape and its embedding pattern
// for values that are both Hittable and Light (SphereLight).
package lights

import "github.com/rayforge/raytracer/pkg/core"

// Type names the light's shading behavior (spec.md §3).
type Type string

const (
	TypePoint       Type = "point"
	TypeDirectional Type = "directional"
	TypeArea        Type = "area"
	TypeSpot        Type = "spot"
	TypeEnvironment Type = "environment"
	TypeMesh        Type = "mesh"
)

// Sample is one drawn sample toward a light from a shading point: direction
// points from the shading point to the light, per the teacher's convention.
type Sample struct {
	Direction core.Vec3
	Distance  float64
	Radiance  core.Vec3
	PDF       float64
}

// Light is the capability every light source implements: sample a direction
// for direct lighting at a shading point, and (for lights an eye ray can hit
// directly - sphere/mesh/environment, via EmittingLight) evaluate emitted
// radiance along a ray.
type Light interface {
	Type() Type
	// Sample draws a direction from point toward the light using a 2D
	// stratified sample (spec.md §4.3), with normal used by lights that
	// restrict to a visible hemisphere (environment).
	Sample(point, normal core.Vec3, u core.Vec2) Sample
	// PDF returns the solid-angle probability density of the given
	// direction having been drawn from this light at the shading point.
	PDF(point, normal, direction core.Vec3) float64
}

// EmittingLight is implemented by lights an eye ray can hit directly
// (sphere/mesh/environment); Emit returns the radiance seen looking along ray
// when nothing else occludes it.
type EmittingLight interface {
	Light
	Emit(ray core.Ray) core.Vec3
}
