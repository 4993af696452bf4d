package core

import "math"

// AABB is an axis-aligned bounding box: two corners plus a cached center.
// Invariant: Min <= Max componentwise.
type AABB struct {
	Min, Max Vec3
	center   Vec3
}

// NewAABB creates an AABB from explicit min/max corners.
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max, center: min.Add(max).Multiply(0.5)}
}

// NewAABBFromPoints creates the smallest AABB containing every given point.
func NewAABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}
	min, max := points[0], points[0]
	for _, p := range points[1:] {
		min = Vec3{math.Min(min.X, p.X), math.Min(min.Y, p.Y), math.Min(min.Z, p.Z)}
		max = Vec3{math.Max(max.X, p.X), math.Max(max.Y, p.Y), math.Max(max.Z, p.Z)}
	}
	return NewAABB(min, max)
}

// Center returns the box's center point.
func (b AABB) Center() Vec3 { return b.center }

// Size returns the extent along each axis.
func (b AABB) Size() Vec3 { return b.Max.Subtract(b.Min) }

// SurfaceArea returns the box's surface area.
func (b AABB) SurfaceArea() float64 {
	s := b.Size()
	return 2.0 * (s.X*s.Y + s.Y*s.Z + s.Z*s.X)
}

// IsValid reports whether Min <= Max on every axis.
func (b AABB) IsValid() bool {
	return b.Min.X <= b.Max.X && b.Min.Y <= b.Max.Y && b.Min.Z <= b.Max.Z
}

// LongestAxis returns 0/1/2 for the axis with the greatest extent.
func (b AABB) LongestAxis() int {
	s := b.Size()
	if s.X > s.Y && s.X > s.Z {
		return 0
	}
	if s.Y > s.Z {
		return 1
	}
	return 2
}

// Corner returns one of the 8 corners of the box, indexed 0-7 by treating i
// as a 3-bit mask over (X,Y,Z): bit set selects Max on that axis, clear
// selects Min.
func (b AABB) Corner(i int) Vec3 {
	x := b.Min.X
	if i&1 != 0 {
		x = b.Max.X
	}
	y := b.Min.Y
	if i&2 != 0 {
		y = b.Max.Y
	}
	z := b.Min.Z
	if i&4 != 0 {
		z = b.Max.Z
	}
	return Vec3{x, y, z}
}

// ApplyTransform returns the AABB of the transformed box: it transforms all
// 8 corners and takes the componentwise min/max of the results. Naively
// transforming just Min and Max corners is wrong under rotation (the
// transformed box would not contain the whole rotated volume), which is why
// this always goes through all 8 corners.
func (b AABB) ApplyTransform(t Mat4) AABB {
	c0 := t.MulPoint(b.Corner(0))
	min, max := c0, c0
	for i := 1; i < 8; i++ {
		c := t.MulPoint(b.Corner(i))
		min = Vec3{math.Min(min.X, c.X), math.Min(min.Y, c.Y), math.Min(min.Z, c.Z)}
		max = Vec3{math.Max(max.X, c.X), math.Max(max.Y, c.Y), math.Max(max.Z, c.Z)}
	}
	return NewAABB(min, max)
}

// Union returns the smallest AABB containing both b and o.
func (b AABB) Union(o AABB) AABB {
	return NewAABB(
		Vec3{math.Min(b.Min.X, o.Min.X), math.Min(b.Min.Y, o.Min.Y), math.Min(b.Min.Z, o.Min.Z)},
		Vec3{math.Max(b.Max.X, o.Max.X), math.Max(b.Max.Y, o.Max.Y), math.Max(b.Max.Z, o.Max.Z)},
	)
}

// Expand returns the AABB grown by amount in every direction.
func (b AABB) Expand(amount float64) AABB {
	e := NewVec3(amount, amount, amount)
	return NewAABB(b.Min.Subtract(e), b.Max.Add(e))
}

// Hit performs the slab test using the ray's precomputed InvDir/Sign: for
// each axis, compute the near/far t of the two planes bounding that slab
// (selecting near/far via Sign so the test never branches on the sign of
// InvDir itself), intersect the three per-axis intervals, and report a hit
// iff tmin <= tmax and tmax >= 0. This works for any ray direction, not just
// axis-aligned ones.
func (b AABB) Hit(ray Ray, tMin, tMax float64) bool {
	bounds := [2]Vec3{b.Min, b.Max}
	for axis := 0; axis < 3; axis++ {
		var near, far, invDir float64
		switch axis {
		case 0:
			near, far, invDir = bounds[ray.Sign[0]].X, bounds[1-ray.Sign[0]].X, ray.InvDir.X
		case 1:
			near, far, invDir = bounds[ray.Sign[1]].Y, bounds[1-ray.Sign[1]].Y, ray.InvDir.Y
		default:
			near, far, invDir = bounds[ray.Sign[2]].Z, bounds[1-ray.Sign[2]].Z, ray.InvDir.Z
		}
		origin := originComponent(ray.Origin, axis)
		t0 := (near - origin) * invDir
		t1 := (far - origin) * invDir
		if t0 > tMin {
			tMin = t0
		}
		if t1 < tMax {
			tMax = t1
		}
		if tMin > tMax {
			return false
		}
	}
	return tMax >= 0
}

func originComponent(v Vec3, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}
