// Package geometry owns the local-space primitives (Face, Sphere), the
// Mesh/MeshInstance geometry containers built from them, and the Object
// wrapper that gives any of the above a world transform, motion blur, and
// material/texture bindings (spec.md §3, §4.2).
package geometry

import (
	"math"

	"github.com/rayforge/raytracer/pkg/core"
)

// Face is a single triangle in local space: one vertex per corner, optional
// per-vertex normals for smooth shading, and optional per-vertex UVs.
// Grounded on original_source/object.cpp's Face::Hit (Möller-Trumbore) and
// the teacher's pkg/geometry/triangle.go field layout — but implemented
// fresh since the teacher has no Möller-Trumbore triangle of its own (its
// Triangle/TriangleMesh route through a different BVH).
type Face struct {
	V0, V1, V2    core.Vec3
	N0, N1, N2    core.Vec3 // per-vertex normals; only used when Smooth is true
	UV0, UV1, UV2 core.Vec2
	Smooth        bool
	hasUV         bool

	geomNormal core.Vec3 // cross(E1,E2), normalized; used when !Smooth
	e1, e2     core.Vec3
	bbox       core.AABB
}

// NewFace builds a flat-shaded face (no per-vertex normals) with default UVs
// equal to the barycentric coordinates.
func NewFace(v0, v1, v2 core.Vec3) *Face {
	f := &Face{V0: v0, V1: v1, V2: v2}
	f.init()
	return f
}

// NewFaceSmooth builds a face with per-vertex normals, interpolated across
// the triangle for smooth shading (spec.md §4.2).
func NewFaceSmooth(v0, v1, v2, n0, n1, n2 core.Vec3) *Face {
	f := &Face{V0: v0, V1: v1, V2: v2, N0: n0, N1: n1, N2: n2, Smooth: true}
	f.init()
	return f
}

// WithUVs attaches explicit per-vertex texture coordinates.
func (f *Face) WithUVs(uv0, uv1, uv2 core.Vec2) *Face {
	f.UV0, f.UV1, f.UV2 = uv0, uv1, uv2
	f.hasUV = true
	return f
}

func (f *Face) init() {
	f.e1 = f.V1.Subtract(f.V0)
	f.e2 = f.V2.Subtract(f.V0)
	f.geomNormal = f.e1.Cross(f.e2).Normalize()
	f.bbox = core.NewAABBFromPoints(f.V0, f.V1, f.V2)
}

// BoundingBox implements core.Hittable.
func (f *Face) BoundingBox() core.AABB { return f.bbox }

// Hit implements core.Hittable using Möller-Trumbore, per spec.md §4.2:
// reject a near-degenerate determinant, reject barycentric coordinates
// outside the triangle, reject non-positive t. Self-intersection at grazing
// angles is handled upstream by the caller's tMin (shadow_eps), not here.
func (f *Face) Hit(ray core.Ray, tMin, tMax float64) (*core.RayHit, bool) {
	p := ray.Direction.Cross(f.e2)
	det := f.e1.Dot(p)
	if math.Abs(det) < core.DefaultDeterminantEpsilon {
		return nil, false
	}
	invDet := 1.0 / det

	tvec := ray.Origin.Subtract(f.V0)
	u := tvec.Dot(p) * invDet
	if u < 0 || u > 1 {
		return nil, false
	}

	q := tvec.Cross(f.e1)
	v := ray.Direction.Dot(q) * invDet
	if v < 0 || u+v > 1 {
		return nil, false
	}

	t := f.e2.Dot(q) * invDet
	if t <= 0 || t < tMin || t > tMax {
		return nil, false
	}

	hit := &core.RayHit{T: t, Point: ray.At(t)}

	var normal core.Vec3
	if f.Smooth {
		w := 1 - u - v
		normal = f.N0.Multiply(w).Add(f.N1.Multiply(u)).Add(f.N2.Multiply(v)).Normalize()
	} else {
		normal = f.geomNormal
	}
	hit.SetFaceNormal(ray, normal)

	if f.hasUV {
		w := 1 - u - v
		uv := f.UV0.Multiply(w).Add(f.UV1.Multiply(u)).Add(f.UV2.Multiply(v))
		hit.U, hit.V = uv.X, uv.Y
	} else {
		hit.U, hit.V = u, v
	}

	tangent := f.e1.Normalize()
	bitangent := hit.Normal.Cross(tangent).Normalize()
	hit.Tangent, hit.Bitangent = tangent, bitangent

	return hit, true
}
