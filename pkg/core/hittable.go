package core

// Hittable is the capability every intersectable thing in the scene
// implements: primitives (Sphere, Face), the per-object BVH wrapping a
// Mesh, the Object transform wrapper, and the top-level BVH itself. This
// mirrors spec.md §9's "capability sets, not inheritance" guidance — there
// is no Object<-Mesh base-class hierarchy, just this one small interface.
type Hittable interface {
	// Hit tests the ray (already in whatever space this Hittable expects)
	// against tMin <= t <= tMax, returning the closest hit if any.
	Hit(ray Ray, tMin, tMax float64) (*RayHit, bool)
	// BoundingBox returns this Hittable's AABB in the same space as Hit
	// expects its ray. World-space wrappers (Object) return world-space
	// boxes; local primitives return local-space boxes.
	BoundingBox() AABB
}

// Material is declared here as an opaque marker interface to break the
// import cycle between core (RayHit) and material (Material implementations
// need core.Vec3/Ray). Package material defines the real interface and
// every concrete type satisfies this trivially; RayHit only ever stores and
// forwards the value, it never calls methods on it.
type Material interface{}

// RayHit carries everything the tracer needs once a ray has found its
// closest intersection: geometric data (point, normal, parametric t),
// shading data (material, optional texture binding, UV, tangent frame), and
// the id of the object that was hit plus its emitted radiance (for emissive
// lookups and self-intersection avoidance).
type RayHit struct {
	T        float64
	Point    Vec3 // world space
	Normal   Vec3 // world space, unit, face-forward (Direction.Dot(Normal) <= 0)
	Material Material
	U, V     float64
	Tangent  Vec3 // world space, unit
	Bitangent Vec3 // world space, unit
	ObjectID int
	Radiance Vec3 // non-zero for emissive Sphere/Mesh light objects (spec.md §4.5 step 5)
}

// SetFaceNormal sets Normal from an outward-facing geometric normal,
// flipping it to face the incoming ray when necessary. Returns whether the
// original outward normal already faced the ray (the "front face").
func (h *RayHit) SetFaceNormal(ray Ray, outwardNormal Vec3) bool {
	frontFace := ray.Direction.Dot(outwardNormal) < 0
	if frontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
	return frontFace
}

// TBN returns the tangent/bitangent/normal frame as three orthonormal axes,
// used by normal/bump mapping to convert a tangent-space perturbation into
// world space.
func (h *RayHit) TBN() (t, b, n Vec3) {
	return h.Tangent, h.Bitangent, h.Normal
}
