package lights

import (
	"math"

	"github.com/rayforge/raytracer/pkg/core"
	"github.com/rayforge/raytracer/pkg/geometry"
)

// MeshLight is an emissive triangle mesh (the XML's LightMesh), sampled by
// choosing a triangle proportional to its world-space area and a uniform
// barycentric point within it (spec.md §4.4). Grounded on
// original_source/objectlight.cpp's area-weighted triangle sampling,
// restructured into the value-embeds-Hittable-and-Light pattern
// SphereLight also uses.
type MeshLight struct {
	*geometry.Mesh
	Radiance   core.Vec3
	faceAreas  []float64
	cumulative []float64
	totalArea  float64
	objectID   int
}

// SetObjectID records the scene Object id this light is also registered as.
func (l *MeshLight) SetObjectID(id int) { l.objectID = id }

// ObjectID implements the tracer's ignoreObjectID lookup capability.
func (l *MeshLight) ObjectID() int { return l.objectID }

func NewMeshLight(mesh *geometry.Mesh, radiance core.Vec3) *MeshLight {
	l := &MeshLight{Mesh: mesh, Radiance: radiance, objectID: -1}
	l.faceAreas = make([]float64, len(mesh.Faces))
	l.cumulative = make([]float64, len(mesh.Faces))
	sum := 0.0
	for i, f := range mesh.Faces {
		a := faceArea(f)
		l.faceAreas[i] = a
		sum += a
		l.cumulative[i] = sum
	}
	l.totalArea = sum
	return l
}

func faceArea(f *geometry.Face) float64 {
	e1 := f.V1.Subtract(f.V0)
	e2 := f.V2.Subtract(f.V0)
	return e1.Cross(e2).Length() / 2
}

func (l *MeshLight) Type() Type { return TypeMesh }

func (l *MeshLight) pickFace(xi float64) int {
	target := xi * l.totalArea
	lo, hi := 0, len(l.cumulative)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if l.cumulative[mid] < target {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// Sample implements spec.md §4.4's area-weighted mesh-light sampling:
// u' = 1-sqrt(xi1), v' = sqrt(xi1)*(1-xi2), weighted by total area, cosine
// at the light surface, and inverse squared distance.
func (l *MeshLight) Sample(point, _ core.Vec3, u core.Vec2) Sample {
	if l.totalArea <= 0 || len(l.Faces) == 0 {
		return Sample{}
	}
	idx := l.pickFace(u.X)
	f := l.Faces[idx]

	// Rescale xi1 to [0,1] within the chosen face's share of the area CDF so
	// the barycentric sample covers that whole face uniformly.
	lo := 0.0
	if idx > 0 {
		lo = l.cumulative[idx-1]
	}
	xi1 := 0.0
	if l.faceAreas[idx] > 0 {
		xi1 = math.Min(math.Max((u.X*l.totalArea-lo)/l.faceAreas[idx], 0), 1)
	}
	sqrtXi1 := math.Sqrt(xi1)
	bu := 1 - sqrtXi1
	bv := sqrtXi1 * (1 - u.Y)
	bw := 1 - bu - bv

	samplePoint := f.V0.Multiply(bu).Add(f.V1.Multiply(bv)).Add(f.V2.Multiply(bw))
	normal := f.V1.Subtract(f.V0).Cross(f.V2.Subtract(f.V0)).Normalize()

	toSample := samplePoint.Subtract(point)
	dist := toSample.Length()
	if dist == 0 {
		return Sample{}
	}
	dir := toSample.Multiply(1 / dist)

	cosLight := math.Abs(normal.Dot(dir.Multiply(-1)))
	radiance := l.Radiance.Multiply(cosLight * l.totalArea / (dist * dist))

	return Sample{Direction: dir, Distance: dist, Radiance: radiance, PDF: 1}
}

func (l *MeshLight) PDF(_, _, _ core.Vec3) float64 { return 1 }

// Emit implements EmittingLight: a ray hitting this mesh directly returns
// its constant radiance.
func (l *MeshLight) Emit(core.Ray) core.Vec3 { return l.Radiance }
