package lights

import "github.com/rayforge/raytracer/pkg/core"

// PointLight is an idealized point source: intensity falls off as 1/d^2,
// no sampling variance (spec.md §3, §4.4). Grounded on
// original_source/light.cpp's PointLight::ComputeLightContribution.
type PointLight struct {
	Position  core.Vec3
	Intensity core.Vec3
}

func NewPointLight(position, intensity core.Vec3) *PointLight {
	return &PointLight{Position: position, Intensity: intensity}
}

func (l *PointLight) Type() Type { return TypePoint }

func (l *PointLight) Sample(point, _ core.Vec3, _ core.Vec2) Sample {
	toLight := l.Position.Subtract(point)
	dist := toLight.Length()
	if dist == 0 {
		return Sample{}
	}
	dir := toLight.Multiply(1 / dist)
	radiance := l.Intensity.Multiply(1 / (dist * dist))
	return Sample{Direction: dir, Distance: dist, Radiance: radiance, PDF: 1}
}

func (l *PointLight) PDF(_, _, _ core.Vec3) float64 { return 1 }
