package lights

import (
	"math"

	"github.com/rayforge/raytracer/pkg/core"
	"github.com/rayforge/raytracer/pkg/geometry"
)

// SphereLight embeds *geometry.Sphere so a value is both a Hittable (the
// tracer can hit it directly as an emissive object) and a Light (other
// surfaces can sample it for direct lighting), matching spec.md §9's
// "LightSphere = value that implements both Hittable and Light" and the
// teacher's SphereLight{ *geometry.Sphere } embedding. Sampling follows
// spec.md §4.4's exact solid-angle cone formula, grounded on the teacher's
// pkg/lights/sphere_light.go sampleVisible.
type SphereLight struct {
	*geometry.Sphere
	Radiance core.Vec3
	objectID int
}

func NewSphereLight(center core.Vec3, radius float64, radiance core.Vec3) *SphereLight {
	return &SphereLight{Sphere: geometry.NewSphere(center, radius), Radiance: radiance, objectID: -1}
}

// SetObjectID records the scene Object id this light is also registered as,
// so the tracer can set ignore_object_id on shadow rays toward it (spec.md
// §4.4's self-shadowing prevention for Object-Lights).
func (l *SphereLight) SetObjectID(id int) { l.objectID = id }

// ObjectID implements the tracer's ignoreObjectID lookup capability.
func (l *SphereLight) ObjectID() int { return l.objectID }

func (l *SphereLight) Type() Type { return TypeArea }

// Sample implements spec.md §4.4's sphere cone sampling: d=|center-p|,
// sinThetaMax^2 = min(1, R^2/d^2), cosThetaMax = sqrt(1-sinThetaMax^2);
// theta = acos(1-xi1+xi1*cosThetaMax), phi = 2*pi*xi2; build a local frame
// around w=(center-p)/d and emit the direction.
func (l *SphereLight) Sample(point, _ core.Vec3, u core.Vec2) Sample {
	toCenter := l.Center.Subtract(point)
	d := toCenter.Length()
	if d <= l.Radius {
		return l.sampleUniform(point, u)
	}

	w := toCenter.Multiply(1 / d)
	onb := core.NewONB(w)

	sinThetaMax2 := math.Min(1, (l.Radius*l.Radius)/(d*d))
	cosThetaMax := math.Sqrt(1 - sinThetaMax2)

	cosTheta := 1 - u.X + u.X*cosThetaMax
	sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))
	phi := 2 * math.Pi * u.Y

	local := core.NewVec3(sinTheta*math.Cos(phi), sinTheta*math.Sin(phi), cosTheta)
	dir := onb.Local(local).Normalize()

	pdf := 1.0 / (2 * math.Pi * (1 - cosThetaMax))
	radiance := l.Radiance.Multiply(2 * math.Pi * (1 - cosThetaMax))

	return Sample{Direction: dir, Distance: d, Radiance: radiance, PDF: pdf}
}

func (l *SphereLight) sampleUniform(point core.Vec3, u core.Vec2) Sample {
	z := 1 - 2*u.X
	r := math.Sqrt(math.Max(0, 1-z*z))
	phi := 2 * math.Pi * u.Y
	localDir := core.NewVec3(r*math.Cos(phi), r*math.Sin(phi), z)
	samplePoint := l.Center.Add(localDir.Multiply(l.Radius))

	toSample := samplePoint.Subtract(point)
	dist := toSample.Length()
	if dist == 0 {
		return Sample{}
	}
	dir := toSample.Multiply(1 / dist)

	pdf := 1.0 / (4 * math.Pi * l.Radius * l.Radius)
	radiance := l.Radiance.Multiply(4 * math.Pi * l.Radius * l.Radius)
	return Sample{Direction: dir, Distance: dist, Radiance: radiance, PDF: pdf}
}

func (l *SphereLight) PDF(point, _, direction core.Vec3) float64 {
	toCenter := l.Center.Subtract(point)
	d := toCenter.Length()
	if d <= l.Radius {
		return 1.0 / (4 * math.Pi * l.Radius * l.Radius)
	}
	sinThetaMax2 := math.Min(1, (l.Radius*l.Radius)/(d*d))
	cosThetaMax := math.Sqrt(1 - sinThetaMax2)
	return 1.0 / (2 * math.Pi * (1 - cosThetaMax))
}

// Emit implements EmittingLight: a ray hitting this sphere directly returns
// its constant radiance regardless of direction.
func (l *SphereLight) Emit(core.Ray) core.Vec3 { return l.Radiance }
