package geometry

import (
	"github.com/rayforge/raytracer/pkg/core"
)

// Object wraps a Hittable primitive (Sphere, Mesh, or a shared MeshInstance
// geometry) with an affine transform, optional motion blur, and a material
// binding (spec.md §3). It is the only place a world<->local transform or
// motion-blur offset is applied; Geometry itself always operates in local
// space. Texture bindings live on the material.Material stored in Material
// (DiffuseMap/NormalMap/BumpMap), not on Object directly — pkg/loaders binds
// them there via bindTextureRefs.
type Object struct {
	ID       int
	Name     string
	Material core.Material

	Geometry core.Hittable // local-space primitive or shared Mesh

	WorldFromLocal core.Mat4
	LocalFromWorld core.Mat4
	MotionBlur     core.Vec3 // world-space translation, scaled by ray.Time

	// Emissive objects (LightSphere/LightMesh) set Radiance non-zero and
	// are looked up by the tracer when a ray hits them directly.
	Radiance core.Vec3

	boundsCache core.AABB
}

// NewObject builds a static (non-instanced) object from local geometry and
// a world transform.
func NewObject(id int, geometry core.Hittable, worldFromLocal core.Mat4) *Object {
	o := &Object{
		ID:             id,
		Geometry:       geometry,
		WorldFromLocal: worldFromLocal,
		LocalFromWorld: worldFromLocal.Inverse(),
	}
	o.computeBounds()
	return o
}

// NewMeshInstanceObject builds an Object that shares base's Geometry (never
// duplicating the underlying Mesh BVH, per spec.md §9) with its own
// transform. When resetTransform is false the base object's transform
// composes under the instance's transform (instance applied in base's
// space); when true the base's transform is ignored entirely, matching
// spec.md §8 "Mesh-instance with reset_transform=true ignores base mesh's
// transform."
func NewMeshInstanceObject(id int, base *Object, instanceTransform core.Mat4, resetTransform bool) *Object {
	worldFromLocal := instanceTransform
	if !resetTransform {
		worldFromLocal = instanceTransform.Mul(base.WorldFromLocal)
	}
	o := &Object{
		ID:             id,
		Geometry:       base.Geometry,
		Material:       base.Material,
		WorldFromLocal: worldFromLocal,
		LocalFromWorld: worldFromLocal.Inverse(),
	}
	o.computeBounds()
	return o
}

func (o *Object) computeBounds() {
	localBox := o.Geometry.BoundingBox()
	if o.MotionBlur.IsZero() {
		o.boundsCache = localBox.ApplyTransform(o.WorldFromLocal)
		return
	}
	// Open Question #3 (SPEC_FULL.md): union the world AABB at t=0 and t=1
	// rather than the original's axis-scale-by-(1+|motion|) approximation.
	worldAtT0 := localBox.ApplyTransform(o.WorldFromLocal)
	worldFromLocalT1 := o.WorldFromLocal.Pretranslate(o.MotionBlur)
	worldAtT1 := localBox.ApplyTransform(worldFromLocalT1)
	o.boundsCache = worldAtT0.Union(worldAtT1)
}

// BoundingBox implements core.Hittable. For a motion-blurred Object the box
// is the t=0/t=1 union, recomputed here so that a MotionBlur assigned after
// construction (as the XML loader does) is covered too.
func (o *Object) BoundingBox() core.AABB {
	if o.MotionBlur.IsZero() {
		return o.boundsCache
	}
	localBox := o.Geometry.BoundingBox()
	worldAtT0 := localBox.ApplyTransform(o.WorldFromLocal)
	worldAtT1 := localBox.ApplyTransform(o.WorldFromLocal.Pretranslate(o.MotionBlur))
	return worldAtT0.Union(worldAtT1)
}

// Hit implements core.Hittable: transform the incoming world ray into local
// space (applying the motion-blur offset for this ray's time, per spec.md
// §4.2), intersect the local geometry, then transform the result back to
// world space and stamp in this object's material/id.
func (o *Object) Hit(ray core.Ray, tMin, tMax float64) (*core.RayHit, bool) {
	if ray.IgnoreID == o.ID {
		return nil, false
	}

	localFromWorld := o.LocalFromWorld
	worldFromLocal := o.WorldFromLocal
	if !o.MotionBlur.IsZero() {
		offset := o.MotionBlur.Multiply(ray.Time)
		// original_source/object.cpp: wtl.translate(-motion*time) paired
		// with ltw.pretranslate(motion*time) so the two remain inverses.
		localFromWorld = o.LocalFromWorld.PostTranslate(offset.Negate())
		worldFromLocal = o.WorldFromLocal.Pretranslate(offset)
	}

	localOrigin := localFromWorld.MulPoint(ray.Origin)
	localDir := localFromWorld.MulDirection(ray.Direction).Normalize()
	localRay := core.NewRay(localOrigin, localDir)
	localRay.Time = ray.Time

	hit, ok := o.Geometry.Hit(localRay, tMin, tMax)
	if !ok {
		return nil, false
	}

	hit.Point = worldFromLocal.MulPoint(hit.Point)
	hit.Normal = worldFromLocal.MulNormal(hit.Normal).Normalize()
	hit.Tangent = worldFromLocal.MulDirection(hit.Tangent).Normalize()
	hit.Bitangent = worldFromLocal.MulDirection(hit.Bitangent).Normalize()
	hit.Material = o.Material
	hit.ObjectID = o.ID
	hit.Radiance = o.Radiance

	return hit, true
}
