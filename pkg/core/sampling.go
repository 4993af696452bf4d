package core

import (
	"math"
	"math/rand"
)

// RandomInUnitDisk returns a uniform random point in the unit disk, used by
// the camera's depth-of-field aperture sampling.
func RandomInUnitDisk(rng *rand.Rand) Vec2 {
	for {
		p := Vec2{2*rng.Float64() - 1, 2*rng.Float64() - 1}
		if p.X*p.X+p.Y*p.Y < 1 {
			return p
		}
	}
}

// RandomInUnitSphere returns a uniform random point in the unit ball.
func RandomInUnitSphere(rng *rand.Rand) Vec3 {
	for {
		p := Vec3{2*rng.Float64() - 1, 2*rng.Float64() - 1, 2*rng.Float64() - 1}
		if p.LengthSquared() < 1 {
			return p
		}
	}
}

// StratifiedSamples2D returns a num x num grid of jittered samples in
// [0,1)x[0,1), one uniform jitter per cell, as spec.md §4.3 describes for
// per-pixel antialiasing and §5 for per-thread deterministic sampling.
func StratifiedSamples2D(n int, rng *rand.Rand) []Vec2 {
	samples := make([]Vec2, 0, n*n)
	inv := 1.0 / float64(n)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			x := (float64(i) + rng.Float64()) * inv
			y := (float64(j) + rng.Float64()) * inv
			samples = append(samples, Vec2{x, y})
		}
	}
	return samples
}

// StratifiedGridDims returns (nx, ny) with nx == floor(sqrt(numSamples)) and
// ny == numSamples/nx (integer division), matching spec.md §4.3's
// "N = sqrt(samples), M = samples/N" grid shape. When numSamples is not a
// multiple of nx the grid holds fewer cells than numSamples (5 gives 2x2).
func StratifiedGridDims(numSamples int) (nx, ny int) {
	if numSamples <= 1 {
		return 1, 1
	}
	nx = int(math.Sqrt(float64(numSamples)))
	if nx < 1 {
		nx = 1
	}
	ny = numSamples / nx
	if ny < 1 {
		ny = 1
	}
	return nx, ny
}

// SphereConePDF returns the solid-angle PDF for sampling a sphere of the
// given radius by its subtended cone from a point `distance` away (spec.md
// §4.4). Inside the sphere, sampling degenerates to uniform-over-the-sphere.
func SphereConePDF(distance, radius float64) float64 {
	if distance <= radius {
		return 1.0 / (4.0 * math.Pi * radius * radius)
	}
	sinThetaMax2 := math.Min(1, (radius*radius)/(distance*distance))
	cosThetaMax := math.Sqrt(1 - sinThetaMax2)
	return 1.0 / (2.0 * math.Pi * (1.0 - cosThetaMax))
}

// SampleConePDF is an alias kept for readability at call sites that sample a
// direction rather than a PDF value in isolation.
func SampleConePDF(distance, radius float64) float64 { return SphereConePDF(distance, radius) }

// NewRNG returns a PRNG seeded distinctly per (worker, pixel-index-ish)
// input, so parallel workers never share RNG state (spec.md §5).
func NewRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
