package geometry

import "github.com/rayforge/raytracer/pkg/core"

// Mesh owns a set of Faces and the per-object BVH over them. Per spec.md
// §9 "shared geometry for instances", a MeshInstance never copies this BVH
// — it holds a pointer to the same *Mesh and shares its traversal.
type Mesh struct {
	Faces []*Face
	bvh   core.Hittable
	bbox  core.AABB
}

// NewMesh builds a Mesh and its per-object BVH over the given faces.
func NewMesh(faces []*Face) *Mesh {
	m := &Mesh{Faces: faces}
	items := make([]core.Hittable, len(faces))
	box := faces[0].BoundingBox()
	for i, f := range faces {
		items[i] = f
		box = box.Union(f.BoundingBox())
	}
	m.bvh = core.BuildBVH(items)
	m.bbox = box
	return m
}

// BoundingBox implements core.Hittable in local space.
func (m *Mesh) BoundingBox() core.AABB { return m.bbox }

// Hit implements core.Hittable by delegating to the per-mesh BVH.
func (m *Mesh) Hit(ray core.Ray, tMin, tMax float64) (*core.RayHit, bool) {
	return m.bvh.Hit(ray, tMin, tMax)
}

// TriangleCount returns the number of faces, used for primitive counting.
func (m *Mesh) TriangleCount() int { return len(m.Faces) }
