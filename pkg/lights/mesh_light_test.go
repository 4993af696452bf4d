package lights

import (
	"testing"

	"github.com/rayforge/raytracer/pkg/core"
	"github.com/rayforge/raytracer/pkg/geometry"
)

func twoTriangleQuad() *geometry.Mesh {
	faces := []*geometry.Face{
		geometry.NewFace(core.NewVec3(-1, 0, -1), core.NewVec3(1, 0, -1), core.NewVec3(1, 0, 1)),
		geometry.NewFace(core.NewVec3(-1, 0, -1), core.NewVec3(1, 0, 1), core.NewVec3(-1, 0, 1)),
	}
	return geometry.NewMesh(faces)
}

func TestMeshLightSamplePicksAFace(t *testing.T) {
	l := NewMeshLight(twoTriangleQuad(), core.NewVec3(1, 1, 1))
	s := l.Sample(core.NewVec3(0, -5, 0), core.Vec3{}, core.Vec2{X: 0.3, Y: 0.6})
	if s.Direction.IsZero() {
		t.Fatal("expected a non-degenerate sample direction")
	}
	if s.Radiance.IsZero() {
		t.Errorf("expected non-zero radiance for a downward-facing observer, got %v", s.Radiance)
	}
}

func TestMeshLightEmitIsConstant(t *testing.T) {
	l := NewMeshLight(twoTriangleQuad(), core.NewVec3(4, 4, 4))
	got := l.Emit(core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0)))
	if got != l.Radiance {
		t.Errorf("Emit() = %v, want %v", got, l.Radiance)
	}
}

func TestMeshLightPickFaceBoundaries(t *testing.T) {
	l := NewMeshLight(twoTriangleQuad(), core.NewVec3(1, 1, 1))
	if idx := l.pickFace(0); idx != 0 {
		t.Errorf("pickFace(0) = %v, want 0", idx)
	}
	if idx := l.pickFace(0.999999); idx > 1 {
		t.Errorf("pickFace(0.999999) out of range: %v", idx)
	}
}
