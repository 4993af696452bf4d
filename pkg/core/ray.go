package core

// Ray is a parametric ray: point(t) = Origin + t*Direction. InvDir and Sign
// are derived from Direction at construction time so the AABB slab test
// (aabb.go) never recomputes a division per axis per node.
type Ray struct {
	Origin    Vec3
	Direction Vec3    // expected unit length
	InvDir    Vec3    // componentwise 1/Direction; +/-Inf is valid and handled by the slab test
	Sign      [3]int  // 0 if the component of Direction is positive, 1 otherwise
	N         float64 // refractive index of the medium the ray currently travels through; 1 = vacuum
	Time      float64 // shutter fraction in [0,1), used for motion blur
	IgnoreID  int     // object id to skip during intersection (-1 = none); prevents emissive self-shadowing
	Dist      float64 // populated by Scene.Cast with the resulting hit distance (+Inf on miss)
}

// NewRay builds a ray, deriving InvDir/Sign from direction. The medium index
// defaults to vacuum (1) and IgnoreID to none (-1).
func NewRay(origin, direction Vec3) Ray {
	r := Ray{Origin: origin, Direction: direction, N: 1, IgnoreID: -1}
	r.InvDir = Vec3{X: 1 / direction.X, Y: 1 / direction.Y, Z: 1 / direction.Z}
	if r.InvDir.X < 0 {
		r.Sign[0] = 1
	}
	if r.InvDir.Y < 0 {
		r.Sign[1] = 1
	}
	if r.InvDir.Z < 0 {
		r.Sign[2] = 1
	}
	return r
}

// NewRayTo builds a ray from origin toward target, normalizing the direction.
func NewRayTo(origin, target Vec3) Ray {
	return NewRay(origin, target.Subtract(origin).Normalize())
}

// WithTime returns a copy of the ray with Time set, re-deriving nothing
// (Time does not affect InvDir/Sign).
func (r Ray) WithTime(t float64) Ray {
	r.Time = t
	return r
}

// WithMedium returns a copy of the ray with the current medium index set.
func (r Ray) WithMedium(n float64) Ray {
	r.N = n
	return r
}

// WithIgnore returns a copy of the ray set to skip the given object id.
func (r Ray) WithIgnore(id int) Ray {
	r.IgnoreID = id
	return r
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}
