package lights

import "github.com/rayforge/raytracer/pkg/core"

// Occluder is the minimal capability shadow testing needs from a scene:
// a shadow-ray hit test. pkg/scene's Scene satisfies this.
type Occluder interface {
	ShadowHit(ray core.Ray, tMin, tMax float64) bool
}

// Visible casts a shadow ray from hit point p toward a light sample, offset
// by normal*shadowEps to avoid self-intersection, with ignoreObjectID set
// to the emissive object's id for Object-Lights to prevent self-shadowing
// (spec.md §4.4). Returns false if an occluder blocks the ray before
// reaching the light.
func Visible(occluder Occluder, p, normal core.Vec3, sample Sample, shadowEps float64, ignoreObjectID int) bool {
	origin := p.Add(normal.Multiply(shadowEps))
	ray := core.NewRay(origin, sample.Direction).WithIgnore(ignoreObjectID)
	return !occluder.ShadowHit(ray, 1e-6, sample.Distance-shadowEps)
}
