package material

import (
	"math"

	"github.com/rayforge/raytracer/pkg/core"
)

// DielectricFresnel computes the unpolarized Fresnel reflectance at a
// dielectric interface from the cosine of the incident angle and the
// relative index of refraction n, using the exact formula spec.md §4.5
// names (Fr = (rs^2 + rp^2) / 2), not Schlick's approximation. Total
// internal reflection returns 1.
func DielectricFresnel(cosI, n float64) float64 {
	cosI = math.Min(math.Max(cosI, 0), 1)
	sinI2 := 1 - cosI*cosI
	sinT2 := sinI2 / (n * n)
	if sinT2 >= 1 {
		return 1
	}
	cosT := math.Sqrt(1 - sinT2)

	rs := (n*cosI - cosT) / (n*cosI + cosT)
	rp := (cosI - n*cosT) / (cosI + n*cosT)
	return (rs*rs + rp*rp) / 2
}

// ConductorFresnel computes the unpolarized Fresnel reflectance at a
// conductor (metal) interface given the complex index of refraction n + ik,
// per original_source/material.cpp's conductor branch (spec.md §4.5).
func ConductorFresnel(cosI, n, k float64) float64 {
	cosI = math.Min(math.Max(cosI, 0), 1)
	cos2 := cosI * cosI
	sin2 := 1 - cos2
	n2 := n * n
	k2 := k * k

	t0 := n2 - k2 - sin2
	a2b2 := math.Sqrt(math.Max(t0*t0+4*n2*k2, 0))
	t1 := a2b2 + cos2
	a := math.Sqrt(math.Max((a2b2+t0)/2, 0))
	t2 := 2 * a * cosI
	rs := (t1 - t2) / (t1 + t2)

	t3 := cos2*a2b2 + sin2*sin2
	t4 := t2 * sin2
	rp := rs * (t3 - t4) / (t3 + t4)

	return (rs + rp) / 2
}

// Reflect mirrors incident direction i (pointing away from the surface)
// about normal n.
func Reflect(i, n core.Vec3) core.Vec3 {
	return n.Multiply(2 * n.Dot(i)).Subtract(i)
}

// Refract bends incident direction i (pointing away from the surface,
// entering a medium of relative index n = n1/n2) through normal n, which is
// assumed to point against i (out of the surface i originates from). ok is
// false on total internal reflection.
func Refract(i, n core.Vec3, eta float64) (core.Vec3, bool) {
	cosI := math.Min(n.Dot(i), 1)
	sin2T := eta * eta * (1 - cosI*cosI)
	if sin2T >= 1 {
		return core.Vec3{}, false
	}
	cosT := math.Sqrt(1 - sin2T)
	t := i.Multiply(-eta).Add(n.Multiply(eta*cosI - cosT))
	return t.Normalize(), true
}

// BeerLambert applies Beer-Lambert absorption over a distance traveled
// inside a dielectric with the given per-channel absorption coefficient
// (original_source/material.cpp's dielectric attenuation, spec.md §4.5).
func BeerLambert(coefficient core.Vec3, distance float64) core.Vec3 {
	return core.Vec3{
		X: math.Exp(-coefficient.X * distance),
		Y: math.Exp(-coefficient.Y * distance),
		Z: math.Exp(-coefficient.Z * distance),
	}
}
