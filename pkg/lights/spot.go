package lights

import (
	"math"

	"github.com/rayforge/raytracer/pkg/core"
)

// SpotLight is a point source with a coverage cone and a falloff band
// between coverage and falloff half-angles, quartic-interpolated (spec.md
// §3, §4.4). Grounded on original_source/light.cpp's SpotLight exactly
// (CoverageAngle/FalloffAngle in degrees, full angles halved for the
// theta comparison).
type SpotLight struct {
	Position      core.Vec3
	Direction     core.Vec3
	Intensity     core.Vec3
	CoverageAngle float64 // degrees, full cone angle
	FalloffAngle  float64 // degrees, full angle where falloff begins
}

func NewSpotLight(position, direction, intensity core.Vec3, coverageAngle, falloffAngle float64) *SpotLight {
	return &SpotLight{
		Position: position, Direction: direction.Normalize(), Intensity: intensity,
		CoverageAngle: coverageAngle, FalloffAngle: falloffAngle,
	}
}

func (l *SpotLight) Type() Type { return TypeSpot }

func (l *SpotLight) Sample(point, _ core.Vec3, _ core.Vec2) Sample {
	toLight := l.Position.Subtract(point)
	dist := toLight.Length()
	if dist == 0 {
		return Sample{}
	}
	dir := toLight.Multiply(1 / dist)

	dirFromLight := dir.Multiply(-1)
	thetaDeg := math.Abs(math.Acos(clamp(dirFromLight.Dot(l.Direction), -1, 1)) * 180 / math.Pi)

	alpha := l.CoverageAngle
	beta := l.FalloffAngle

	var radiance core.Vec3
	switch {
	case thetaDeg > alpha/2:
		radiance = core.Vec3{}
	case thetaDeg > beta/2:
		f := (math.Cos(thetaDeg*math.Pi/180) - math.Cos(alpha/2*math.Pi/180)) /
			(math.Cos(beta/2*math.Pi/180) - math.Cos(alpha/2*math.Pi/180))
		f = math.Pow(f, 4)
		radiance = l.Intensity.Multiply(f / (dist * dist))
	default:
		radiance = l.Intensity.Multiply(1 / (dist * dist))
	}

	return Sample{Direction: dir, Distance: dist, Radiance: radiance, PDF: 1}
}

func (l *SpotLight) PDF(_, _, _ core.Vec3) float64 { return 1 }

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
