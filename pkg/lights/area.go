package lights

import (
	"math"

	"github.com/rayforge/raytracer/pkg/core"
)

// AreaLight is a square emitter defined by its center, facing normal, and
// side length (spec.md §6's AreaLight element). Grounded on
// original_source/light.cpp's AreaLight (Position/Normal/Radiance/Size,
// u/v tangent frame built from the axis least aligned with Normal), with
// sampling corner-parametrized by u,v ∈ [0,1) per SPEC_FULL.md's Open
// Question #1 resolution (the teacher's quad_light.go "corner + u*edge1 +
// v*edge2" shape) rather than the original's centered r∈[-0.5,0.5).
type AreaLight struct {
	Position core.Vec3
	Normal   core.Vec3
	Radiance core.Vec3
	Size     float64

	corner core.Vec3
	edgeU  core.Vec3
	edgeV  core.Vec3
}

// NewAreaLight builds the tangent frame (u,v) the same way the original
// picks the coordinate axis least aligned with Normal to avoid degeneracy.
func NewAreaLight(position, normal, radiance core.Vec3, size float64) *AreaLight {
	n := normal.Normalize()
	ax, ay, az := math.Abs(n.X), math.Abs(n.Y), math.Abs(n.Z)
	var np core.Vec3
	switch {
	case ax <= ay && ax <= az:
		np = core.NewVec3(1, n.Y, n.Z)
	case ay <= ax && ay <= az:
		np = core.NewVec3(n.X, 1, n.Z)
	default:
		np = core.NewVec3(n.X, n.Y, 1)
	}
	np = np.Normalize()
	u := np.Cross(n).Normalize()
	v := n.Cross(u).Normalize()

	corner := position.Subtract(u.Multiply(size / 2)).Subtract(v.Multiply(size / 2))

	return &AreaLight{
		Position: position, Normal: n, Radiance: radiance, Size: size,
		corner: corner, edgeU: u.Multiply(size), edgeV: v.Multiply(size),
	}
}

func (l *AreaLight) Type() Type { return TypeArea }

func (l *AreaLight) samplePoint(sample core.Vec2) core.Vec3 {
	return l.corner.Add(l.edgeU.Multiply(sample.X)).Add(l.edgeV.Multiply(sample.Y))
}

func (l *AreaLight) Sample(point, _ core.Vec3, sample core.Vec2) Sample {
	p := l.samplePoint(sample)
	toLight := p.Subtract(point)
	dist := toLight.Length()
	if dist == 0 {
		return Sample{}
	}
	dir := toLight.Multiply(1 / dist)

	cosTheta := math.Abs(l.Normal.Dot(dir.Multiply(-1)))
	radiance := l.Radiance.Multiply(cosTheta * l.Size * l.Size / (dist * dist))

	return Sample{Direction: dir, Distance: dist, Radiance: radiance, PDF: 1}
}

func (l *AreaLight) PDF(_, _, _ core.Vec3) float64 { return 1 }
