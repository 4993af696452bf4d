// Package texture implements the sampled color/scalar sources an Object can
// bind as a diffuse, normal, or bump map (spec.md §4.6): image textures,
// Perlin noise, checkerboard, and Voronoi. Grounded on the teacher's
// pkg/material/image_texture.go and procedural_textures.go shapes (by name;
// content differs since the teacher's textures feed a PBRT-style BRDF
// rather than this package's decal-mode resolution).
package texture

import "github.com/rayforge/raytracer/pkg/core"

// Sampler is the color-producing capability a texture exposes. U,V are the
// surface parametrization in [0,1); point is the world or object-space hit
// point, used by 3D-domain textures (checkerboard/Voronoi on objects, per
// spec.md §9 Open Question #2).
type Sampler interface {
	SampleColor(u, v float64, point core.Vec3) core.Vec3
}

// ScalarSampler is the height/displacement capability a bump map exposes.
type ScalarSampler interface {
	SampleScalar(u, v float64, point core.Vec3) float64
}

// Domain selects whether a procedural texture indexes by the 3D world/object
// point or by the 2D (u,v) parametrization, per spec.md §9 Open Question #2:
// object-bound checkerboard/Voronoi use the 3D point, background/environment
// use 2D UV.
type Domain int

const (
	Domain3D Domain = iota
	Domain2D
)
