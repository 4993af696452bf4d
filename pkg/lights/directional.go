package lights

import "github.com/rayforge/raytracer/pkg/core"

// DirectionalLight is a parallel-ray source (sun/distant light): constant
// radiance regardless of shading point distance (spec.md §3, §4.4).
// Grounded on original_source/light.cpp's DirectionalLight.
type DirectionalLight struct {
	Direction core.Vec3 // direction light travels (toward the scene)
	Radiance  core.Vec3
}

// NewDirectionalLight stores the normalized incoming direction.
func NewDirectionalLight(direction, radiance core.Vec3) *DirectionalLight {
	return &DirectionalLight{Direction: direction.Normalize(), Radiance: radiance}
}

func (l *DirectionalLight) Type() Type { return TypeDirectional }

func (l *DirectionalLight) Sample(_, _ core.Vec3, _ core.Vec2) Sample {
	toLight := l.Direction.Multiply(-1)
	const farAway = 1e8
	return Sample{Direction: toLight, Distance: farAway, Radiance: l.Radiance, PDF: 1}
}

func (l *DirectionalLight) PDF(_, _, _ core.Vec3) float64 { return 1 }
