package geometry

import (
	"math"

	"github.com/rayforge/raytracer/pkg/core"
)

// Sphere is a local-space sphere primitive: a center index resolves to this
// at Object construction (spec.md §3 "Sphere: center index + radius").
// Grounded on pkg/geometry/sphere.go's quadratic solve, extended with the
// configurable near-root epsilon spec.md §9 Open Question #4 calls for
// instead of the original's hard-coded 0.01, and the (phi,theta) UV mapping
// spec.md §4.2 specifies exactly.
type Sphere struct {
	Center          core.Vec3
	Radius          float64
	IntersectionEps float64 // near-root rejection distance; defaults to core.DefaultIntersectionEpsilon
}

// NewSphere creates a sphere with the default intersection epsilon.
func NewSphere(center core.Vec3, radius float64) *Sphere {
	return &Sphere{Center: center, Radius: radius, IntersectionEps: core.DefaultIntersectionEpsilon}
}

// BoundingBox implements core.Hittable.
func (s *Sphere) BoundingBox() core.AABB {
	r := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return core.NewAABB(s.Center.Subtract(r), s.Center.Add(r))
}

// Hit implements core.Hittable: solve the quadratic at^2+bt+c=0, reject a
// negative discriminant, prefer the nearer root unless it falls inside the
// epsilon band (then fall back to the farther root), per spec.md §4.2.
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (*core.RayHit, bool) {
	oc := ray.Origin.Subtract(s.Center)
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	disc := halfB*halfB - a*c
	if disc < 0 {
		return nil, false
	}
	sqrtDisc := math.Sqrt(disc)
	eps := s.IntersectionEps
	if eps <= 0 {
		eps = core.DefaultIntersectionEpsilon
	}

	root := (-halfB - sqrtDisc) / a
	if root < eps {
		root = (-halfB + sqrtDisc) / a
		if root < eps {
			return nil, false
		}
	}
	if root < tMin || root > tMax {
		return nil, false
	}

	point := ray.At(root)
	outward := point.Subtract(s.Center).Multiply(1.0 / s.Radius)

	hit := &core.RayHit{T: root, Point: point}
	hit.SetFaceNormal(ray, outward)

	// u = (pi - atan2(z,x)) / 2pi, v = acos(y/R) / pi, per spec.md §4.2.
	u := (math.Pi - math.Atan2(outward.Z, outward.X)) / (2 * math.Pi)
	v := math.Acos(clampUnit(outward.Y)) / math.Pi
	hit.U, hit.V = u, v

	// Tangent frame: dPdu direction around the equator, bitangent completes it.
	tangent := core.NewVec3(-outward.Z, 0, outward.X).Normalize()
	if tangent.IsZero() {
		tangent = core.NewVec3(1, 0, 0)
	}
	bitangent := hit.Normal.Cross(tangent).Normalize()
	hit.Tangent, hit.Bitangent = tangent, bitangent

	return hit, true
}

func clampUnit(x float64) float64 {
	if x < -1 {
		return -1
	}
	if x > 1 {
		return 1
	}
	return x
}
